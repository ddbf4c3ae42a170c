package source

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetReader streams rows of one worksheet of an .xlsx workbook. The first
// row is the header.
type SheetReader struct {
	file   *excelize.File
	rows   *excelize.Rows
	header []string
	index  map[string]int
	line   int
}

// NewSheetReader opens the workbook in r and positions on sheet, or on the
// first sheet when sheet is empty.
func NewSheetReader(r io.Reader, sheet string) (*SheetReader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open sheet %q: %w", sheet, err)
	}

	s := &SheetReader{file: f, rows: rows}
	if !rows.Next() {
		_ = s.Close()
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}
	header, err := rows.Columns()
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("reading sheet header: %w", err)
	}
	s.header = normalizeHeader(header)
	s.index = make(map[string]int, len(s.header))
	for i, h := range s.header {
		s.index[h] = i
	}
	s.line = 1
	return s, nil
}

// Header returns the column names.
func (s *SheetReader) Header() []string { return s.header }

// Next returns the next row.
func (s *SheetReader) Next() (Row, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return Row{}, fmt.Errorf("reading sheet: %w", err)
		}
		return Row{}, io.EOF
	}
	s.line++
	values, err := s.rows.Columns()
	if err != nil {
		return Row{}, fmt.Errorf("reading sheet row %d: %w", s.line, err)
	}
	return Row{index: s.index, values: values, line: s.line}, nil
}

// Close releases the workbook.
func (s *SheetReader) Close() error {
	if s.rows != nil {
		_ = s.rows.Close()
	}
	return s.file.Close()
}
