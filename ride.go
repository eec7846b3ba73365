package cyclecoach

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrEmptyFile is returned when a ride file has no header row at all.
	ErrEmptyFile = errors.New("ride file is empty")

	// ErrUnreadable is returned when a ride file cannot be parsed as tabular data.
	ErrUnreadable = errors.New("ride file is not readable as tabular data")

	// ErrUnknownLayout is returned for a column layout hint that is not registered.
	ErrUnknownLayout = errors.New("unknown column layout")

	// ErrUnsupportedFormat is returned for source formats other than csv and fit.
	ErrUnsupportedFormat = errors.New("unsupported ride file format")

	// ErrInsufficientData is returned when no sample shows active pedaling.
	ErrInsufficientData = errors.New("insufficient data: no active pedaling samples")
)

// RawRow maps a column name to its cell text for one input row.
type RawRow map[string]string

// RawTable is a parsed tabular ride file with its header order preserved.
type RawTable struct {
	Columns     []string
	Rows        []RawRow
	SkippedRows int
}

// HasColumn reports whether the header contains name.
func (t RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// RideSample is one row of the normalized time series.
// Normalized series only contain samples with a timestamp and a power value.
type RideSample struct {
	Timestamp time.Time `json:"timestamp"`
	HeartRate *float64  `json:"heart_rate,omitempty"`
	Cadence   *float64  `json:"cadence,omitempty"`
	Power     *float64  `json:"power,omitempty"`
}

// PowerWatts returns the power value, or 0 when absent.
func (s RideSample) PowerWatts() float64 {
	return valueOrZero(s.Power)
}

// RideMetrics is the summary computed once per ride.
type RideMetrics struct {
	DurationMinutes  float64 `json:"duration_minutes"`
	AvgPower         float64 `json:"avg_power_watts"`
	NormPowerProxy   float64 `json:"norm_power_proxy_watts"`
	AvgHeartRate     float64 `json:"avg_heart_rate_bpm"`
	AvgCadence       float64 `json:"avg_cadence_rpm"`
	EfficiencyFactor float64 `json:"efficiency_factor"`
	DecouplingPct    float64 `json:"decoupling_pct"`
	IntensityFactor  float64 `json:"intensity_factor"`
	ActiveSamples    int     `json:"active_samples"`
	TotalSamples     int     `json:"total_samples"`
}

func floatPtr(v float64) *float64 {
	out := v
	return &out
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
