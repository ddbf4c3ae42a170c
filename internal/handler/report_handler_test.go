package handler_test

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecomload/internal/csvexport"
	"ecomload/internal/domain"
	"ecomload/internal/handler"
	"ecomload/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newReportHandler() (*handler.ReportHandler, *mocks.MockReportService) {
	svc := new(mocks.MockReportService)
	return handler.NewReportHandler(svc), svc
}

func newContext(target string, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, target, http.NoBody)
	c.Params = params
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestReportHandler_States_JSON(t *testing.T) {
	h, svc := newReportHandler()
	rows := []domain.StateRevenueRow{{State: "SP", Revenue: 5202.5, OrderCount: 40}}
	svc.On("Rows", mock.Anything, domain.ReportStates, "", domain.ReportFilters{Limit: 5}).Return(rows, nil)

	c, w := newContext("/api/v1/reports/states?limit=5")
	h.States(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Count)
	assert.Equal(t, 5, resp.Meta.Limit)
	data := resp.Data.([]interface{})
	assert.Equal(t, "SP", data[0].(map[string]interface{})["state"])
	svc.AssertExpectations(t)
}

func TestReportHandler_Delivery_CSV(t *testing.T) {
	h, svc := newReportHandler()
	rows := []domain.DeliveryTimeRow{{State: "SP", AvgDays: 8.5}, {State: "RR", AvgDays: 29.25}}
	svc.On("Rows", mock.Anything, domain.ReportDelivery, "", domain.ReportFilters{}).Return(rows, nil)

	c, w := newContext("/api/v1/reports/delivery?format=csv")
	h.Delivery(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "delivery_")

	body := w.Body.Bytes()
	require.True(t, len(body) >= 3)
	assert.Equal(t, csvexport.BOM, body[:3])
	records, err := csv.NewReader(strings.NewReader(string(body[3:]))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"state", "avg_days"}, records[0])
	assert.Equal(t, "RR", records[2][0])
}

func TestReportHandler_InvalidLimit(t *testing.T) {
	h, svc := newReportHandler()

	for _, target := range []string{"/?limit=abc", "/?limit=0", "/?limit=5000"} {
		c, w := newContext(target)
		h.Orders(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
	svc.AssertNotCalled(t, "Rows", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReportHandler_InvalidFormat(t *testing.T) {
	h, _ := newReportHandler()

	c, w := newContext("/?format=xml")
	h.States(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode(t, w).Error.Code)
}

func TestReportHandler_ServiceError(t *testing.T) {
	h, svc := newReportHandler()
	svc.On("Rows", mock.Anything, domain.ReportOrders, "", domain.ReportFilters{}).Return(nil, errors.New("cursor killed"))

	c, w := newContext("/api/v1/reports/orders")
	h.Orders(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decode(t, w).Error.Code)
}

func TestReportHandler_Collection_JSON(t *testing.T) {
	h, svc := newReportHandler()
	overview := &domain.CollectionOverview{
		Collection: "orders",
		Total:      99441,
		Fields:     []domain.FieldNullCount{{Field: "order_approved_at", Nulls: 160, Percent: 0.16}},
	}
	svc.On("CollectionOverview", mock.Anything, "orders").Return(overview, nil)

	c, w := newContext("/api/v1/reports/collections/orders", gin.Param{Key: "name", Value: "orders"})
	h.Collection(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "orders", data["collection"])
	assert.Equal(t, float64(99441), data["total"])
}

func TestReportHandler_Collection_CSV(t *testing.T) {
	h, svc := newReportHandler()
	fields := []domain.FieldNullCount{{Field: "customer_zip_code_prefix", Nulls: 3, Percent: 1.5}}
	svc.On("Rows", mock.Anything, domain.ReportCollection, "customers", domain.ReportFilters{}).Return(fields, nil)

	c, w := newContext("/api/v1/reports/collections/customers?format=csv", gin.Param{Key: "name", Value: "customers"})
	h.Collection(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "customers_overview_")
	assert.Contains(t, w.Body.String(), "customer_zip_code_prefix,3,1.5")
}

func TestReportHandler_Collection_Unknown(t *testing.T) {
	h, svc := newReportHandler()
	svc.On("CollectionOverview", mock.Anything, "sellers").Return(nil, domain.ErrUnknownDataset)

	c, w := newContext("/api/v1/reports/collections/sellers", gin.Param{Key: "name", Value: "sellers"})
	h.Collection(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "UNKNOWN_COLLECTION", decode(t, w).Error.Code)
}
