package cyclecoach

import (
	"errors"
	"fmt"
)

// Report is everything a caller needs to display one ride.
type Report struct {
	Profile     Profile        `json:"profile"`
	Layout      LayoutID       `json:"layout"`
	RowsRead    int            `json:"rows_read"`
	RowsDropped int            `json:"rows_dropped"`
	RowsSkipped int            `json:"rows_skipped"`
	Metrics     *RideMetrics   `json:"metrics"`
	Feedback    []Feedback     `json:"feedback"`
	PowerZones  []ZoneDuration `json:"power_zones,omitempty"`
	Notes       string         `json:"notes"`
	Warnings    []string       `json:"warnings,omitempty"`
	Samples     []RideSample   `json:"-"`
}

// Analyze computes metrics and feedback for a normalized ride. Insufficient data is
// reported as a warning with nil Metrics rather than an error.
func (e *Engine) Analyze(res NormalizeResult) Report {
	r := Report{
		Profile:     e.profile,
		Layout:      res.Layout,
		RowsRead:    res.RowsRead,
		RowsDropped: res.RowsDropped,
		RowsSkipped: res.RowsSkipped,
		Feedback:    []Feedback{},
		PowerZones:  PowerZones(res.Samples, e.profile.FTPWatts),
		Samples:     res.Samples,
	}
	if res.RowsSkipped > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("skipped %d malformed rows", res.RowsSkipped))
	}
	if res.RowsDropped > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("dropped %d rows without timestamp or power", res.RowsDropped))
	}

	m, err := e.Compute(res.Samples)
	switch {
	case errors.Is(err, ErrInsufficientData):
		r.Warnings = append(r.Warnings, err.Error())
	case err != nil:
		r.Warnings = append(r.Warnings, fmt.Sprintf("compute metrics: %v", err))
	default:
		r.Metrics = m
		r.Feedback = e.Feedback(m)
	}
	r.Notes = BuildCoachNotes(e.profile, r.Metrics, r.Feedback)
	return r
}
