package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVReader reads delimited text with a header row.
type CSVReader struct {
	closer io.Closer
	reader *csv.Reader
	header []string
	index  map[string]int
	line   int
}

// NewCSVReader reads the header from rc. The reader owns rc and closes it on Close.
func NewCSVReader(rc io.ReadCloser) (*CSVReader, error) {
	r := csv.NewReader(rc)
	r.ReuseRecord = false
	r.FieldsPerRecord = -1
	// Stray quotes inside unquoted fields are kept as literal characters.
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	header = normalizeHeader(header)

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	return &CSVReader{closer: rc, reader: r, header: header, index: index, line: 1}, nil
}

// Header returns the column names.
func (c *CSVReader) Header() []string { return c.header }

// Next returns the next row. A malformed line is returned as an error, which
// aborts the run like any other read failure.
func (c *CSVReader) Next() (Row, error) {
	values, err := c.reader.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	c.line++
	if err != nil {
		return Row{}, fmt.Errorf("reading csv line %d: %w", c.line, err)
	}
	return Row{index: c.index, values: values, line: c.line}, nil
}

// Close closes the underlying stream.
func (c *CSVReader) Close() error {
	return c.closer.Close()
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = string(bytes.TrimPrefix([]byte(h), utf8BOM))
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}
