// ABOUTME: Delimited-text parsing for bulk import
// ABOUTME: Header rows become column maps; cells are trimmed and blank lines skipped

package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one data line keyed by lowercased header name. Columns missing
// from a short line are absent from Cells.
type Row struct {
	Line  int
	Cells map[string]string
}

// Get returns the trimmed cell for column and whether the line had it.
func (r Row) Get(column string) (string, bool) {
	v, ok := r.Cells[column]
	return v, ok
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	return cr
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ParseCSV reads a header line followed by data lines.
func ParseCSV(r io.Reader) ([]Row, error) {
	records, lines, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		cells := make(map[string]string, len(header))
		for j, name := range header {
			if j < len(record) && name != "" {
				cells[name] = strings.TrimSpace(record[j])
			}
		}
		rows = append(rows, Row{Line: lines[i+1], Cells: cells})
	}
	return rows, nil
}

// ParseLines reads header-less input as trimmed records.
func ParseLines(r io.Reader) ([][]string, error) {
	records, _, err := readAll(r)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
	}
	return records, nil
}

// readAll returns the non-blank records with the line each started on.
func readAll(r io.Reader) ([][]string, []int, error) {
	cr := newReader(r)
	var (
		records [][]string
		lines   []int
	)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		if blank(record) {
			continue
		}
		if len(records) == 0 && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
		}
		line, _ := cr.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}
	return records, lines, nil
}
