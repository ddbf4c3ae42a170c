package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ecomload/internal/domain"
	"ecomload/internal/schema"
)

// MockDocumentStore is a mock implementation of port.DocumentStore.
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDocumentStore) CollectionExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentStore) CreateCollection(ctx context.Context, name string, validator *schema.Descriptor, level domain.ValidationLevel) error {
	args := m.Called(ctx, name, validator, level)
	return args.Error(0)
}

func (m *MockDocumentStore) UpdateValidator(ctx context.Context, name string, validator *schema.Descriptor, level domain.ValidationLevel) error {
	args := m.Called(ctx, name, validator, level)
	return args.Error(0)
}

func (m *MockDocumentStore) InsertMany(ctx context.Context, collection string, docs []interface{}) (*domain.InsertResult, error) {
	args := m.Called(ctx, collection, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InsertResult), args.Error(1)
}

func (m *MockDocumentStore) CreateIndexes(ctx context.Context, collection string, indexes []domain.IndexSpec) ([]string, error) {
	args := m.Called(ctx, collection, indexes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDocumentStore) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
