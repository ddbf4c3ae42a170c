package source

import "io"

// Row is one data line keyed by the header's column names. Column order is
// the header's order.
type Row struct {
	index  map[string]int
	values []string
	line   int
}

// NewRow builds a Row from a header and its values. Short rows read missing
// columns as empty strings.
func NewRow(header []string, values []string, line int) Row {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	return Row{index: index, values: values, line: line}
}

// Get returns the raw value of column, or "" when the column is absent.
func (r Row) Get(column string) string {
	i, ok := r.index[column]
	if !ok || i >= len(r.values) {
		return ""
	}
	return r.values[i]
}

// Line returns the 1-based line number of the row, counting the header.
func (r Row) Line() int {
	return r.line
}

// Reader yields Rows in file order. Next returns io.EOF after the last row.
type Reader interface {
	Header() []string
	Next() (Row, error)
	Close() error
}

// Each calls fn for every remaining row of r.
func Each(r Reader, fn func(Row) error) error {
	for {
		row, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}
