package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ecomload/internal/handler"
	"ecomload/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health *handler.HealthHandler
	Report *handler.ReportHandler
	Run    *handler.RunHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(logger *logrus.Logger, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	reports := v1.Group("/reports")
	reports.GET("/states", h.Report.States)
	reports.GET("/orders", h.Report.Orders)
	reports.GET("/delivery", h.Report.Delivery)
	reports.GET("/collections/:name", h.Report.Collection)

	v1.GET("/runs", h.Run.List)

	return r
}
