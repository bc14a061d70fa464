// Package ingest loads the simulation inputs from CSV files: the road
// network, the call priority table, the ambulance fleet and the call list.
// Files are addressed by column name, tolerate a UTF-8 BOM and extra
// columns, and survive bad rows: a row that does not parse is dropped with
// a warning instead of failing the load.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Column names of the input files.
const (
	colStart        = "Start"
	colEnd          = "End"
	colTravelTime   = "Travel Time"
	colTrafficDelay = "Traffic Delay"

	colCallType = "Call Type"
	colPriority = "Priority"

	colAmbulance = "Ambulance Number"
	colStaging   = "Staging Location"

	colCallID   = "Call ID"
	colLocation = "Location"
)

// rowReader wraps a csv.Reader with header-indexed field access.
type rowReader struct {
	r    *csv.Reader
	cols map[string]int
	line int
}

func newRowReader(r io.Reader, required ...string) (*rowReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty csv file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := headerIndex(header)
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}
	return &rowReader{r: cr, cols: cols, line: 1}, nil
}

// next returns the following data row. ok is false once the file is
// exhausted; a non-nil error means the file itself is unreadable.
func (t *rowReader) next() ([]string, bool, error) {
	row, err := t.r.Read()
	if errors.Is(err, io.EOF) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	t.line++
	return row, true, nil
}

// get returns the named field of row, or "" when the row is too short.
func (t *rowReader) get(row []string, key string) string {
	i, ok := t.cols[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func headerIndex(hdr []string) map[string]int {
	m := make(map[string]int, len(hdr))
	for i, k := range hdr {
		k = strings.TrimPrefix(k, "\uFEFF")
		m[strings.TrimSpace(k)] = i
	}
	return m
}
