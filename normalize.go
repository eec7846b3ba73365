package cyclecoach

import (
	"strconv"
	"strings"
	"time"
)

// NormalizeResult is the normalized series plus bookkeeping about what was discarded.
type NormalizeResult struct {
	Layout      LayoutID     `json:"layout"`
	Samples     []RideSample `json:"samples"`
	RowsRead    int          `json:"rows_read"`
	RowsDropped int          `json:"rows_dropped"`
	RowsSkipped int          `json:"rows_skipped"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Normalize maps raw rows onto RideSamples using the hinted layout, or the detected one
// when hint is LayoutAuto. Rows missing a timestamp or power are dropped; order is kept.
func Normalize(table RawTable, hint LayoutID) (NormalizeResult, error) {
	id := hint
	if id == LayoutAuto {
		id = DetectLayout(table)
	}
	layout, err := LookupLayout(id)
	if err != nil {
		return NormalizeResult{}, err
	}

	res := NormalizeResult{
		Layout:      layout.ID,
		Samples:     make([]RideSample, 0, len(table.Rows)),
		RowsRead:    len(table.Rows),
		RowsSkipped: table.SkippedRows,
	}
	if layout.ID == LayoutStandard && !table.HasColumn(layout.Power) {
		res.RowsDropped = len(table.Rows)
		return res, nil
	}

	for _, row := range table.Rows {
		sample, ok := normalizeRow(row, layout)
		if !ok {
			res.RowsDropped++
			continue
		}
		res.Samples = append(res.Samples, sample)
	}
	return res, nil
}

func normalizeRow(row RawRow, layout ColumnLayout) (RideSample, bool) {
	ts, ok := parseTimestamp(row[layout.Timestamp])
	if !ok {
		return RideSample{}, false
	}
	power := parseNumber(row[layout.Power])
	if power == nil {
		return RideSample{}, false
	}
	return RideSample{
		Timestamp: ts,
		HeartRate: parseNumber(row[layout.HeartRate]),
		Cadence:   parseNumber(row[layout.Cadence]),
		Power:     power,
	}, true
}

func parseTimestamp(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, true
		}
	}
	// Naive timestamps with a trailing Z, e.g. "2024-05-01 07:30:00Z".
	if strings.HasSuffix(v, "Z") {
		return parseTimestamp(strings.TrimSuffix(v, "Z"))
	}
	return time.Time{}, false
}

func parseNumber(v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !isFinite(f) {
		return nil
	}
	return floatPtr(f)
}
