package port

import (
	"context"

	"ecomload/internal/domain"
	"ecomload/internal/schema"
)

// DocumentStore is the target database of an ingest run.
type DocumentStore interface {
	Ping(ctx context.Context) error
	CollectionExists(ctx context.Context, name string) (bool, error)
	CreateCollection(ctx context.Context, name string, validator *schema.Descriptor, level domain.ValidationLevel) error
	UpdateValidator(ctx context.Context, name string, validator *schema.Descriptor, level domain.ValidationLevel) error
	// InsertMany performs one unordered bulk insert. Per-document write
	// failures are reported in the result, not as an error.
	InsertMany(ctx context.Context, collection string, docs []interface{}) (*domain.InsertResult, error)
	CreateIndexes(ctx context.Context, collection string, indexes []domain.IndexSpec) ([]string, error)
	Close(ctx context.Context) error
}
