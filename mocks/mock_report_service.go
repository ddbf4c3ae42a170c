package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ecomload/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) RevenueByState(ctx context.Context, filters domain.ReportFilters) ([]domain.StateRevenueRow, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StateRevenueRow), args.Error(1)
}

func (m *MockReportService) TopOrders(ctx context.Context, filters domain.ReportFilters) ([]domain.OrderValueRow, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderValueRow), args.Error(1)
}

func (m *MockReportService) DeliveryTimeByState(ctx context.Context, filters domain.ReportFilters) ([]domain.DeliveryTimeRow, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeliveryTimeRow), args.Error(1)
}

func (m *MockReportService) CollectionOverview(ctx context.Context, collection string) (*domain.CollectionOverview, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionOverview), args.Error(1)
}

func (m *MockReportService) Rows(ctx context.Context, name, collection string, filters domain.ReportFilters) (interface{}, error) {
	args := m.Called(ctx, name, collection, filters)
	return args.Get(0), args.Error(1)
}

func (m *MockReportService) Export(ctx context.Context, name, collection string, filters domain.ReportFilters, dest string) (string, error) {
	args := m.Called(ctx, name, collection, filters, dest)
	return args.String(0), args.Error(1)
}

func (m *MockReportService) ListRuns(ctx context.Context, dataset string, limit int) ([]domain.RunSummary, error) {
	args := m.Called(ctx, dataset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RunSummary), args.Error(1)
}
