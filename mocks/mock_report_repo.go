package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ecomload/internal/domain"
)

// MockReportRepo is a mock implementation of port.ReportRepository.
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) RevenueByState(ctx context.Context, filters domain.ReportFilters) ([]domain.StateRevenueRow, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StateRevenueRow), args.Error(1)
}

func (m *MockReportRepo) TopOrders(ctx context.Context, filters domain.ReportFilters) ([]domain.OrderValueRow, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderValueRow), args.Error(1)
}

func (m *MockReportRepo) DeliveryTimeByState(ctx context.Context, filters domain.ReportFilters) ([]domain.DeliveryTimeRow, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeliveryTimeRow), args.Error(1)
}

func (m *MockReportRepo) CountDocuments(ctx context.Context, collection string) (int64, error) {
	args := m.Called(ctx, collection)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepo) CountNulls(ctx context.Context, collection, field string) (int64, error) {
	args := m.Called(ctx, collection, field)
	return args.Get(0).(int64), args.Error(1)
}
