package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ecomload/internal/domain"
)

// MockRunRepo is a mock implementation of port.RunRepository.
type MockRunRepo struct {
	mock.Mock
}

func (m *MockRunRepo) Create(ctx context.Context, run *domain.RunSummary) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepo) ListRecent(ctx context.Context, dataset string, limit int) ([]domain.RunSummary, error) {
	args := m.Called(ctx, dataset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RunSummary), args.Error(1)
}
