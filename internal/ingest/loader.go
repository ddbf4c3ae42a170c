package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ecomload/internal/coerce"
	"ecomload/internal/domain"
	"ecomload/internal/port"
	"ecomload/internal/source"
)

// DefaultBatchSize is the number of documents sent per bulk insert.
const DefaultBatchSize = 5000

// RowOpener opens a row source by location.
type RowOpener interface {
	Open(ctx context.Context, location string) (source.Reader, error)
}

// Options tunes a Loader.
type Options struct {
	BatchSize       int
	ValidationLevel domain.ValidationLevel
	Coercion        domain.CoercionMode
	// Precheck drops documents that fail the dataset's descriptor before
	// they are sent to the store.
	Precheck bool
	// ProgressEvery logs a progress line every N rows. Zero disables it;
	// each flush is still logged.
	ProgressEvery int
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.ValidationLevel == "" {
		o.ValidationLevel = domain.ValidationLevelModerate
	}
	if o.Coercion == "" {
		o.Coercion = domain.CoercionNull
	}
	return o
}

// Loader runs the read, transform, buffer and flush cycle for one dataset at
// a time. It is not safe for concurrent use.
type Loader struct {
	store  port.DocumentStore
	opener RowOpener
	opts   Options
	log    *logrus.Entry
	now    func() time.Time
}

// NewLoader returns a Loader writing to store and reading through opener.
func NewLoader(store port.DocumentStore, opener RowOpener, opts Options, log *logrus.Entry) *Loader {
	return &Loader{
		store:  store,
		opener: opener,
		opts:   opts.withDefaults(),
		log:    log,
		now:    time.Now,
	}
}

// Run ingests spec's source into its collection. Rejected documents do not
// fail the run; store errors other than per-document write failures and
// source read errors do. The returned summary is populated in both cases.
func (l *Loader) Run(ctx context.Context, spec *Spec) (*domain.RunSummary, error) {
	summary := &domain.RunSummary{
		ID:         uuid.New(),
		Dataset:    spec.Dataset,
		Collection: spec.Collection,
		Source:     spec.Source,
		StartedAt:  l.now(),
	}
	log := l.log.WithFields(logrus.Fields{"dataset": spec.Dataset, "collection": spec.Collection})

	if err := spec.Validate(); err != nil {
		return l.fail(summary, err)
	}

	created, err := EnsureCollection(ctx, l.store, spec.Collection, spec.Schema, l.opts.ValidationLevel, log)
	if err != nil {
		return l.fail(summary, err)
	}
	summary.CollectionCreated = created

	if spec.Join != nil {
		if err := l.collect(ctx, spec.Join, summary, log); err != nil {
			return l.fail(summary, err)
		}
	}

	log.Infof("Reading data from %s", spec.Source)
	r, err := l.opener.Open(ctx, spec.Source)
	if err != nil {
		return l.fail(summary, err)
	}
	defer func() { _ = r.Close() }()

	batch := NewBatch(l.opts.BatchSize)
	rec := coerce.NewRecorder()

	err = source.Each(r, func(row source.Row) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.Rows++
		if l.opts.ProgressEvery > 0 && summary.Rows%l.opts.ProgressEvery == 0 {
			log.Infof("Parsed %d rows...", summary.Rows)
		}

		rec.Reset()
		doc := spec.Transform(row, rec)
		key := spec.key(row)
		if !l.admit(spec, key, doc, rec, summary, log) {
			return nil
		}

		batch.Add(Entry{Key: key, Doc: doc})
		if batch.Full() {
			return l.flush(ctx, spec.Collection, batch, summary, log)
		}
		return nil
	})
	if err != nil {
		return l.fail(summary, err)
	}

	if batch.Len() > 0 {
		if err := l.flush(ctx, spec.Collection, batch, summary, log); err != nil {
			return l.fail(summary, err)
		}
	}

	summary.FinishedAt = l.now()
	summary.Status = domain.RunStatusCompleted
	if summary.Rejected > 0 || summary.Dropped > 0 || summary.JoinDropped > 0 {
		summary.Status = domain.RunStatusPartial
	}

	entry := log.WithFields(logrus.Fields{
		"accepted": summary.Accepted,
		"rejected": summary.Rejected,
		"dropped":  summary.Dropped,
		"flushes":  summary.Flushes,
	})
	if spec.Join != nil {
		entry = entry.WithField("join_dropped", summary.JoinDropped)
	}
	if l.opts.Coercion != domain.CoercionNull {
		entry = entry.WithField("coercion_failures", summary.CoercionFailures)
	}
	entry.Infof("Processed total %d rows in %.2f seconds", summary.Rows, summary.Elapsed().Seconds())
	return summary, nil
}

// collect reads the whole join source into its collector.
func (l *Loader) collect(ctx context.Context, join *Join, summary *domain.RunSummary, log *logrus.Entry) error {
	log.Infof("Loading join rows from %s", join.Source)
	r, err := l.opener.Open(ctx, join.Source)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	rec := coerce.NewRecorder()
	n := 0
	err = source.Each(r, func(row source.Row) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec.Reset()
		doc := join.Transform(row, rec)
		key := join.Key(row)
		if !l.admitCoercion(key, rec, summary, &summary.JoinDropped, log.WithField("join", join.Source)) {
			return nil
		}
		n++
		return join.Into.Collect(key, doc)
	})
	if err != nil {
		return fmt.Errorf("reading join source %s: %w", join.Source, err)
	}
	if summary.JoinDropped > 0 {
		log.Warnf("Loaded %d join rows, dropped %d", n, summary.JoinDropped)
		return nil
	}
	log.Infof("Loaded %d join rows", n)
	return nil
}

// admit applies the coercion policy and the optional precheck to a document.
func (l *Loader) admit(spec *Spec, key string, doc interface{}, rec *coerce.Recorder, summary *domain.RunSummary, log *logrus.Entry) bool {
	if !l.admitCoercion(key, rec, summary, &summary.Dropped, log) {
		return false
	}
	if !l.opts.Precheck {
		return true
	}

	violations, err := spec.Schema.Check(doc)
	if err != nil {
		summary.Dropped++
		log.WithField("key", key).WithError(err).Warn("Dropping document that cannot be encoded")
		return false
	}
	if len(violations) > 0 {
		summary.Dropped++
		reasons := make([]string, len(violations))
		for i, v := range violations {
			reasons[i] = v.String()
		}
		log.WithField("key", key).Warnf("Dropping document failing schema: %s", strings.Join(reasons, "; "))
		return false
	}
	return true
}

// admitCoercion applies the coercion policy. Rows rejected under it are
// counted in dropped, which is the primary or the join counter.
func (l *Loader) admitCoercion(key string, rec *coerce.Recorder, summary *domain.RunSummary, dropped *int, log *logrus.Entry) bool {
	failures := rec.Failures()
	if failures == 0 {
		return true
	}
	summary.CoercionFailures += failures

	switch l.opts.Coercion {
	case domain.CoercionReport:
		log.WithField("key", key).Debugf("Coercion failed: %v", rec.Err())
	case domain.CoercionReject:
		*dropped++
		log.WithField("key", key).Warnf("Dropping row: %v", rec.Err())
		return false
	}
	return true
}

// flush sends the batch in one unordered bulk insert and clears it whatever
// the outcome.
func (l *Loader) flush(ctx context.Context, collection string, batch *Batch, summary *domain.RunSummary, log *logrus.Entry) error {
	defer batch.Reset()

	offered := batch.Len()
	summary.Flushes++
	summary.Offered += offered

	res, err := l.store.InsertMany(ctx, collection, batch.Docs())
	if err != nil {
		return fmt.Errorf("bulk insert into %s: %w", collection, err)
	}

	accepted := res.Accepted
	if accepted > offered {
		accepted = offered
	}
	if accepted < 0 {
		accepted = 0
	}
	summary.Accepted += accepted
	summary.Rejected += offered - accepted

	log.Infof("Inserted %d documents...", accepted)
	if len(res.Rejected) > 0 {
		log.Warnf("Some documents failed validation: %d of %d", offered-accepted, offered)
		for _, rej := range res.Rejected {
			log.WithFields(logrus.Fields{
				"key":     batch.KeyAt(rej.Index),
				"index":   rej.Index,
				"code":    rej.Code,
				"details": rej.Details,
			}).Warn(rej.Message)
		}
	}
	return nil
}

func (l *Loader) fail(summary *domain.RunSummary, err error) (*domain.RunSummary, error) {
	summary.FinishedAt = l.now()
	summary.Status = domain.RunStatusFailed
	summary.Error = err.Error()
	return summary, err
}
