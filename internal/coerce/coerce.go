// Package coerce converts raw string cells into typed document values.
//
// Every conversion returns a pointer: nil stands for a null value. Empty input
// is always null and is not treated as a failure. Unparseable input is null
// too, and the failure is recorded on the Recorder so the caller can decide,
// per its CoercionMode, whether to ignore it, count it or drop the row.
package coerce

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// DateLayout is the timestamp format used throughout the dataset.
const DateLayout = "2006-01-02 15:04:05"

// FieldError describes one cell that could not be coerced.
type FieldError struct {
	Column string
	Value  string
	Target string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("column %s: cannot parse %q as %s", e.Column, e.Value, e.Target)
}

// Recorder collects coercion failures for a single row.
type Recorder struct {
	errs *multierror.Error
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Int parses v as a base-10 integer.
func (r *Recorder) Int(column, v string) *int64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.fail(column, v, "int")
		return nil
	}
	return &n
}

// Float parses v as a 64-bit float.
func (r *Recorder) Float(column, v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(column, v, "float")
		return nil
	}
	return &f
}

// Date parses v with DateLayout, in UTC.
func (r *Recorder) Date(column, v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	t, err := time.ParseInLocation(DateLayout, v, time.UTC)
	if err != nil {
		r.fail(column, v, "date")
		return nil
	}
	return &t
}

// Failures returns the number of recorded failures.
func (r *Recorder) Failures() int {
	if r.errs == nil {
		return 0
	}
	return len(r.errs.Errors)
}

// Err returns the recorded failures as a single error, or nil.
func (r *Recorder) Err() error {
	return r.errs.ErrorOrNil()
}

// Reset clears recorded failures so the Recorder can be reused for the next row.
func (r *Recorder) Reset() {
	r.errs = nil
}

func (r *Recorder) fail(column, v, target string) {
	r.errs = multierror.Append(r.errs, &FieldError{Column: column, Value: v, Target: target})
}

// StripQuotes removes literal double-quote characters wrapping s.
func StripQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// Optional returns nil for an empty string and a pointer to s otherwise.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
