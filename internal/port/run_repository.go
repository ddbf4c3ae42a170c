package port

import (
	"context"

	"ecomload/internal/domain"
)

// RunRepository persists ingest run summaries.
type RunRepository interface {
	Create(ctx context.Context, run *domain.RunSummary) error
	ListRecent(ctx context.Context, dataset string, limit int) ([]domain.RunSummary, error)
}
