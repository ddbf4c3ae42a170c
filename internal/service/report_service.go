package service

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"ecomload/internal/csvexport"
	"ecomload/internal/dataset"
	"ecomload/internal/domain"
	"ecomload/internal/port"
	"ecomload/internal/source"
)

// ReportService provides exploratory reports over the loaded collections
// and the ingest run history.
type ReportService interface {
	RevenueByState(ctx context.Context, filters domain.ReportFilters) ([]domain.StateRevenueRow, error)
	TopOrders(ctx context.Context, filters domain.ReportFilters) ([]domain.OrderValueRow, error)
	DeliveryTimeByState(ctx context.Context, filters domain.ReportFilters) ([]domain.DeliveryTimeRow, error)
	CollectionOverview(ctx context.Context, collection string) (*domain.CollectionOverview, error)
	// Rows returns the named report as a slice of csv-tagged rows. The
	// collection argument applies to the collection overview only.
	Rows(ctx context.Context, name, collection string, filters domain.ReportFilters) (interface{}, error)
	// Export writes the named report as CSV to a local path or s3:// location
	// and returns where it was written.
	Export(ctx context.Context, name, collection string, filters domain.ReportFilters, dest string) (string, error)
	ListRuns(ctx context.Context, dataset string, limit int) ([]domain.RunSummary, error)
}

type reportService struct {
	reportRepo port.ReportRepository
	runRepo    port.RunRepository
	storage    port.ObjectStorage
}

// NewReportService creates a new ReportService. runRepo and storage may be
// nil; the operations needing them then fail.
func NewReportService(reportRepo port.ReportRepository, runRepo port.RunRepository, storage port.ObjectStorage) ReportService {
	return &reportService{reportRepo: reportRepo, runRepo: runRepo, storage: storage}
}

func (s *reportService) RevenueByState(ctx context.Context, filters domain.ReportFilters) ([]domain.StateRevenueRow, error) {
	return s.reportRepo.RevenueByState(ctx, filters)
}

func (s *reportService) TopOrders(ctx context.Context, filters domain.ReportFilters) ([]domain.OrderValueRow, error) {
	return s.reportRepo.TopOrders(ctx, filters)
}

func (s *reportService) DeliveryTimeByState(ctx context.Context, filters domain.ReportFilters) ([]domain.DeliveryTimeRow, error) {
	return s.reportRepo.DeliveryTimeByState(ctx, filters)
}

// CollectionOverview counts documents and nulls per top-level field of a
// dataset's collection.
func (s *reportService) CollectionOverview(ctx context.Context, collection string) (*domain.CollectionOverview, error) {
	spec, err := dataset.Build(collection, nil)
	if err != nil {
		return nil, err
	}

	total, err := s.reportRepo.CountDocuments(ctx, spec.Collection)
	if err != nil {
		return nil, err
	}

	overview := &domain.CollectionOverview{
		Collection: spec.Collection,
		Total:      total,
		Fields:     make([]domain.FieldNullCount, 0, len(spec.Schema.Fields)),
	}
	for _, f := range spec.Schema.Fields {
		nulls, err := s.reportRepo.CountNulls(ctx, spec.Collection, f.Name)
		if err != nil {
			return nil, err
		}
		fc := domain.FieldNullCount{Field: f.Name, Nulls: nulls}
		if total > 0 {
			fc.Percent = float64(nulls) / float64(total) * 100
		}
		overview.Fields = append(overview.Fields, fc)
	}
	return overview, nil
}

func (s *reportService) Rows(ctx context.Context, name, collection string, filters domain.ReportFilters) (interface{}, error) {
	switch name {
	case domain.ReportStates:
		return s.RevenueByState(ctx, filters)
	case domain.ReportOrders:
		return s.TopOrders(ctx, filters)
	case domain.ReportDelivery:
		return s.DeliveryTimeByState(ctx, filters)
	case domain.ReportCollection:
		overview, err := s.CollectionOverview(ctx, collection)
		if err != nil {
			return nil, err
		}
		return overview.Fields, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownReport, name)
}

func (s *reportService) Export(ctx context.Context, name, collection string, filters domain.ReportFilters, dest string) (string, error) {
	loc, err := source.ParseLocation(dest, "")
	if err != nil {
		return "", err
	}

	rows, err := s.Rows(ctx, name, collection, filters)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := csvexport.Encode(&buf, rows, true); err != nil {
		return "", err
	}

	if !loc.IsRemote() {
		if err := os.WriteFile(loc.Path, buf.Bytes(), 0o644); err != nil {
			return "", fmt.Errorf("writing report: %w", err)
		}
		return loc.Path, nil
	}

	if s.storage == nil {
		return "", fmt.Errorf("%w: %s: object storage is not configured", domain.ErrInvalidLocation, dest)
	}
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      loc.Bucket,
		Key:         loc.Key,
		Body:        &buf,
		ContentType: "text/csv",
	})
	if err != nil {
		return "", fmt.Errorf("uploading report: %w", err)
	}
	return out.Location, nil
}

func (s *reportService) ListRuns(ctx context.Context, datasetName string, limit int) ([]domain.RunSummary, error) {
	if s.runRepo == nil {
		return nil, domain.ErrLedgerDisabled
	}
	if limit <= 0 {
		limit = 20
	}
	return s.runRepo.ListRecent(ctx, datasetName, limit)
}
