package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"ecomload/internal/domain"
	"ecomload/internal/port"
)

type runRepo struct {
	db *sqlx.DB
}

// NewRunRepo creates a new PostgreSQL-backed RunRepository.
func NewRunRepo(db *sqlx.DB) port.RunRepository {
	return &runRepo{db: db}
}

func (r *runRepo) Create(ctx context.Context, run *domain.RunSummary) error {
	query := `INSERT INTO ingest_runs
		(id, dataset, collection, source, status, collection_created, rows_read, offered,
		 accepted, rejected, dropped, join_dropped, coercion_failures, flushes, error, started_at, finished_at)
		VALUES (:id, :dataset, :collection, :source, :status, :collection_created, :rows_read, :offered,
		 :accepted, :rejected, :dropped, :join_dropped, :coercion_failures, :flushes, :error, :started_at, :finished_at)`

	if _, err := r.db.NamedExecContext(ctx, query, run); err != nil {
		return fmt.Errorf("runRepo.Create: %w", err)
	}
	return nil
}

func (r *runRepo) ListRecent(ctx context.Context, dataset string, limit int) ([]domain.RunSummary, error) {
	var runs []domain.RunSummary
	var err error
	if dataset == "" {
		err = r.db.SelectContext(ctx, &runs,
			"SELECT * FROM ingest_runs ORDER BY started_at DESC LIMIT $1", limit)
	} else {
		err = r.db.SelectContext(ctx, &runs,
			"SELECT * FROM ingest_runs WHERE dataset = $1 ORDER BY started_at DESC LIMIT $2", dataset, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("runRepo.ListRecent: %w", err)
	}
	if runs == nil {
		runs = []domain.RunSummary{}
	}
	return runs, nil
}
