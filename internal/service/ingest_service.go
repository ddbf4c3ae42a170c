package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"ecomload/internal/config"
	"ecomload/internal/dataset"
	"ecomload/internal/domain"
	"ecomload/internal/ingest"
	"ecomload/internal/port"
)

// IngestService loads datasets and builds their indexes.
type IngestService interface {
	// Ingest runs the named datasets in order, stopping at the first failed
	// run. Summaries of every attempted run are returned.
	Ingest(ctx context.Context, names []string) ([]domain.RunSummary, error)
	CreateIndexes(ctx context.Context, names []string) (map[string][]string, error)
}

type ingestService struct {
	store   port.DocumentStore
	opener  ingest.RowOpener
	runRepo port.RunRepository
	opts    ingest.Options
	sources dataset.Sources
	log     *logrus.Entry
}

// NewIngestService creates a new IngestService. runRepo may be nil when the
// run ledger is disabled.
func NewIngestService(
	store port.DocumentStore,
	opener ingest.RowOpener,
	runRepo port.RunRepository,
	opts ingest.Options,
	sources dataset.Sources,
	log *logrus.Entry,
) IngestService {
	return &ingestService{
		store:   store,
		opener:  opener,
		runRepo: runRepo,
		opts:    opts,
		sources: sources,
		log:     log,
	}
}

// LoaderOptions converts ingest configuration into loader options.
func LoaderOptions(cfg *config.IngestConfig) (ingest.Options, error) {
	level, err := domain.ParseValidationLevel(cfg.ValidationLevel)
	if err != nil {
		return ingest.Options{}, err
	}
	mode, err := domain.ParseCoercionMode(cfg.Coercion)
	if err != nil {
		return ingest.Options{}, err
	}
	return ingest.Options{
		BatchSize:       cfg.BatchSize,
		ValidationLevel: level,
		Coercion:        mode,
		Precheck:        cfg.Precheck,
		ProgressEvery:   cfg.ProgressEvery,
	}, nil
}

func (s *ingestService) Ingest(ctx context.Context, names []string) ([]domain.RunSummary, error) {
	names, err := dataset.Resolve(names)
	if err != nil {
		return nil, err
	}

	loader := ingest.NewLoader(s.store, s.opener, s.opts, s.log)
	summaries := make([]domain.RunSummary, 0, len(names))
	for _, name := range names {
		spec, err := dataset.Build(name, s.sources)
		if err != nil {
			return summaries, err
		}

		summary, runErr := loader.Run(ctx, spec)
		if summary != nil {
			s.record(ctx, summary)
			summaries = append(summaries, *summary)
		}
		if runErr != nil {
			return summaries, fmt.Errorf("ingesting %s: %w", name, runErr)
		}
	}
	return summaries, nil
}

// record writes the summary to the ledger. Ledger failures never fail a run.
func (s *ingestService) record(ctx context.Context, summary *domain.RunSummary) {
	if s.runRepo == nil {
		return
	}
	if err := s.runRepo.Create(ctx, summary); err != nil {
		s.log.WithError(err).WithField("dataset", summary.Dataset).Warn("Failed to record ingest run")
	}
}

func (s *ingestService) CreateIndexes(ctx context.Context, names []string) (map[string][]string, error) {
	names, err := dataset.Resolve(names)
	if err != nil {
		return nil, err
	}

	created := make(map[string][]string, len(names))
	for _, name := range names {
		spec, err := dataset.Build(name, s.sources)
		if err != nil {
			return created, err
		}
		indexNames, err := s.store.CreateIndexes(ctx, spec.Collection, spec.Indexes)
		if err != nil {
			return created, fmt.Errorf("indexing %s: %w", name, err)
		}
		s.log.WithField("collection", spec.Collection).Infof("Created %d indexes: %v", len(indexNames), indexNames)
		created[spec.Collection] = indexNames
	}
	return created, nil
}
