package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\uFEFF"

// ReadCSV parses a CSV document whose first record is the header. Cell kinds
// are inferred per column, short rows are padded with missing cells and
// blank header names become "Unnamed: <i>".
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		columns[i] = h
	}

	fields := make([][]string, len(columns))
	n := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", n+1, err)
		}
		if len(record) > len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", ErrRaggedRow, n+1, len(record), len(columns))
		}

		for i := range columns {
			field := ""
			if i < len(record) {
				field = record[i]
			}
			fields[i] = append(fields[i], field)
		}
		n++
	}

	rows := make([][]Cell, n)
	for r := range rows {
		rows[r] = make([]Cell, len(columns))
	}
	for i, column := range fields {
		for r, c := range ParseColumn(column) {
			rows[r][i] = c
		}
	}

	return New(columns, rows)
}
