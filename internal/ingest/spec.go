package ingest

import (
	"errors"
	"fmt"

	"ecomload/internal/coerce"
	"ecomload/internal/domain"
	"ecomload/internal/schema"
	"ecomload/internal/source"
)

// TransformFunc builds a document from one row. Coercion failures are
// recorded on rec and the affected values left null.
type TransformFunc func(row source.Row, rec *coerce.Recorder) interface{}

// KeyFunc extracts the identifier used in logs for a row's document.
type KeyFunc func(row source.Row) string

// Join describes a secondary source folded into a Collector before the
// primary pass starts.
type Join struct {
	Source    string
	Key       KeyFunc
	Transform TransformFunc
	Into      Collector
}

// Spec configures one dataset's ingest run.
type Spec struct {
	Dataset    string
	Collection string
	Source     string
	Schema     *schema.Descriptor
	Indexes    []domain.IndexSpec
	Key        KeyFunc
	Transform  TransformFunc
	Join       *Join
}

// Validate reports a missing mandatory part of the spec.
func (s *Spec) Validate() error {
	switch {
	case s.Dataset == "":
		return errors.New("spec: dataset name is required")
	case s.Collection == "":
		return fmt.Errorf("spec %s: collection is required", s.Dataset)
	case s.Source == "":
		return fmt.Errorf("spec %s: source is required", s.Dataset)
	case s.Schema == nil:
		return fmt.Errorf("spec %s: schema is required", s.Dataset)
	case s.Transform == nil:
		return fmt.Errorf("spec %s: transform is required", s.Dataset)
	}
	if s.Join != nil && (s.Join.Source == "" || s.Join.Key == nil || s.Join.Transform == nil || s.Join.Into == nil) {
		return fmt.Errorf("spec %s: incomplete join", s.Dataset)
	}
	return s.Schema.Validate()
}

func (s *Spec) key(row source.Row) string {
	if s.Key == nil {
		return fmt.Sprintf("line %d", row.Line())
	}
	return s.Key(row)
}
