package cyclecoach

import (
	"math"
	"time"
)

const (
	defaultDownsampleEvery = 10
	defaultCadenceMin      = 40
	defaultCadenceBins     = 50
)

// SeriesPoint is one downsampled point of the power vs heart rate chart.
type SeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Power     *float64  `json:"power,omitempty"`
	HeartRate *float64  `json:"heart_rate,omitempty"`
}

// HistogramBin counts samples with Low <= cadence < High (the last bin includes High).
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// ChartSeries is the data behind the two ride charts.
type ChartSeries struct {
	PowerHeartRate   []SeriesPoint  `json:"power_heart_rate"`
	CadenceHistogram []HistogramBin `json:"cadence_histogram"`
	TargetCadenceRPM float64        `json:"target_cadence_rpm"`
}

// BuildChartSeries prepares both chart datasets with the dashboard defaults.
func BuildChartSeries(samples []RideSample, p Profile) ChartSeries {
	return ChartSeries{
		PowerHeartRate:   Downsample(samples, defaultDownsampleEvery),
		CadenceHistogram: CadenceHistogram(samples, defaultCadenceMin, defaultCadenceBins),
		TargetCadenceRPM: p.TargetCadenceRPM,
	}
}

// Downsample keeps every n-th sample starting with the first.
func Downsample(samples []RideSample, every int) []SeriesPoint {
	if every <= 0 {
		every = 1
	}
	out := make([]SeriesPoint, 0, len(samples)/every+1)
	for i := 0; i < len(samples); i += every {
		s := samples[i]
		out = append(out, SeriesPoint{
			Timestamp: s.Timestamp,
			Power:     s.Power,
			HeartRate: s.HeartRate,
		})
	}
	return out
}

// CadenceHistogram bins cadences strictly above minCadence into equal-width bins that
// span the observed range. Samples without cadence are ignored.
func CadenceHistogram(samples []RideSample, minCadence float64, bins int) []HistogramBin {
	if bins <= 0 {
		return nil
	}
	values := make([]float64, 0, len(samples))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		if s.Cadence == nil || *s.Cadence <= minCadence {
			continue
		}
		v := *s.Cadence
		values = append(values, v)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if len(values) == 0 {
		return nil
	}
	if hi == lo {
		// Single distinct value: centre a unit-wide range on it.
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}
