package cyclecoach

import (
	"fmt"
	"strconv"
	"strings"
)

// LayoutID names a column layout. LayoutAuto defers to DetectLayout.
type LayoutID string

const (
	// LayoutAuto asks Normalize to pick a layout with DetectLayout.
	LayoutAuto LayoutID = ""
	// LayoutStandard reads timestamp, heart_rate, cadence and power by name.
	LayoutStandard LayoutID = "standard"
	// LayoutGOTOES reads the shifted columns of a GOTOES export.
	LayoutGOTOES LayoutID = "gotoes"
)

// GOTOESMarkerColumn is the header written by GOTOES exports whose columns are shifted by one.
const GOTOESMarkerColumn = "GOTOES_CSV"

// ColumnLayout maps the four normalized fields to source column names.
type ColumnLayout struct {
	ID        LayoutID
	Timestamp string
	HeartRate string
	Cadence   string
	Power     string
}

var layouts = []ColumnLayout{
	{
		ID:        LayoutStandard,
		Timestamp: "timestamp",
		HeartRate: "heart_rate",
		Cadence:   "cadence",
		Power:     "power",
	},
	{
		// The exporter writes every value one column to the left of its header.
		ID:        LayoutGOTOES,
		Timestamp: GOTOESMarkerColumn,
		HeartRate: "altitude",
		Cadence:   "heart_rate",
		Power:     "speed",
	},
}

// Layouts returns the registered column layouts.
func Layouts() []ColumnLayout {
	out := make([]ColumnLayout, len(layouts))
	copy(out, layouts)
	return out
}

// LookupLayout returns the registered layout for id.
func LookupLayout(id LayoutID) (ColumnLayout, error) {
	for _, l := range layouts {
		if l.ID == id {
			return l, nil
		}
	}
	return ColumnLayout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, id)
}

// ParseLayoutID accepts a user supplied layout name; "auto" and "" both mean LayoutAuto.
func ParseLayoutID(s string) (LayoutID, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "auto":
		return LayoutAuto, nil
	default:
		if _, err := LookupLayout(LayoutID(v)); err != nil {
			return LayoutAuto, err
		}
		return LayoutID(v), nil
	}
}

// DetectLayout picks the GOTOES layout when the marker column exists and its first
// non-empty value is date-like text; otherwise the standard layout.
func DetectLayout(table RawTable) LayoutID {
	if !table.HasColumn(GOTOESMarkerColumn) {
		return LayoutStandard
	}
	sample := firstNonEmpty(table.Rows, GOTOESMarkerColumn)
	if looksLikeTimestamp(sample) {
		return LayoutGOTOES
	}
	return LayoutStandard
}

func firstNonEmpty(rows []RawRow, column string) string {
	for _, row := range rows {
		if v := strings.TrimSpace(row[column]); v != "" {
			return v
		}
	}
	return ""
}

// looksLikeTimestamp mirrors the exporter sniffing rule: numeric cells never count,
// text counts when it carries a "202x" year prefix or an ISO "T" separator.
func looksLikeTimestamp(v string) bool {
	if v == "" {
		return false
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return false
	}
	return strings.Contains(v, "202") || strings.Contains(v, "T")
}
