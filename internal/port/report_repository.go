package port

import (
	"context"

	"ecomload/internal/domain"
)

// ReportRepository provides aggregation queries over the loaded collections.
type ReportRepository interface {
	RevenueByState(ctx context.Context, filters domain.ReportFilters) ([]domain.StateRevenueRow, error)
	TopOrders(ctx context.Context, filters domain.ReportFilters) ([]domain.OrderValueRow, error)
	DeliveryTimeByState(ctx context.Context, filters domain.ReportFilters) ([]domain.DeliveryTimeRow, error)
	CountDocuments(ctx context.Context, collection string) (int64, error)
	CountNulls(ctx context.Context, collection, field string) (int64, error)
}
