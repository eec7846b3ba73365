package cyclecoach

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// ReadCSV parses a ride export into a RawTable. Stray quotes are kept as literal cell text.
// Rows that still fail to parse, or that have more cells than the header, are skipped and
// counted; short rows are padded with empty cells. Only header and I/O failures are fatal.
func ReadCSV(r io.Reader) (RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return RawTable{}, ErrEmptyFile
	}
	if err != nil {
		return RawTable{}, fmt.Errorf("%w: read header: %v", ErrUnreadable, err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		columns[i] = strings.TrimSpace(name)
	}

	table := RawTable{Columns: columns}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			table.SkippedRows++
			continue
		}
		if err != nil {
			return RawTable{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		if len(record) > len(columns) {
			table.SkippedRows++
			continue
		}
		row := make(RawRow, len(columns))
		for i, name := range columns {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
