// Package csvexport encodes report rows as CSV.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/jszwec/csvutil"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer encodes slices of tagged structs as CSV, one header row first.
type Writer struct {
	out     io.Writer
	csv     *csv.Writer
	enc     *csvutil.Encoder
	withBOM bool
	started bool
}

// NewWriter creates a Writer that writes CSV to w. With withBOM set, the
// UTF-8 BOM precedes the header.
func NewWriter(w io.Writer, withBOM bool) *Writer {
	cw := csv.NewWriter(w)
	return &Writer{out: w, csv: cw, enc: csvutil.NewEncoder(cw), withBOM: withBOM}
}

// WriteRows encodes rows, a slice of structs carrying csv tags. The header
// is written once, ahead of the first rows.
func (w *Writer) WriteRows(rows interface{}) error {
	if !w.started {
		w.started = true
		if w.withBOM {
			if _, err := w.out.Write(BOM); err != nil {
				return err
			}
		}
	}
	if err := w.enc.Encode(rows); err != nil {
		return fmt.Errorf("encoding csv rows: %w", err)
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// Encode writes rows to w as a complete CSV document.
func Encode(w io.Writer, rows interface{}, withBOM bool) error {
	cw := NewWriter(w, withBOM)
	if err := cw.WriteRows(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a report name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_report_name}_{YYYY-MM-DD}.csv
func BuildFilename(reportName string) string {
	sanitized := SanitizeFilename(reportName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
