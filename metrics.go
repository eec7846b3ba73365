package cyclecoach

import "math"

const samplesPerMinute = 60.0

// Engine computes ride metrics and coaching feedback for one rider profile.
type Engine struct {
	profile Profile
}

// NewEngine returns an Engine bound to profile.
func NewEngine(profile Profile) *Engine {
	return &Engine{profile: profile}
}

// Profile returns the profile the engine was built with.
func (e *Engine) Profile() Profile {
	return e.profile
}

// ComputeMetrics is Compute with DefaultProfile.
func ComputeMetrics(samples []RideSample) (*RideMetrics, error) {
	return NewEngine(DefaultProfile()).Compute(samples)
}

// Compute reduces a normalized series to RideMetrics. Averages only consider samples
// above the profile's active power floor; duration counts every sample at 1 Hz.
// It returns ErrInsufficientData when no sample is active.
func (e *Engine) Compute(samples []RideSample) (*RideMetrics, error) {
	active := e.activeSamples(samples)
	if len(active) == 0 {
		return nil, ErrInsufficientData
	}

	power := make([]float64, 0, len(active))
	for _, s := range active {
		power = append(power, s.PowerWatts())
	}

	m := &RideMetrics{
		DurationMinutes: float64(len(samples)) / samplesPerMinute,
		AvgPower:        average(power),
		NormPowerProxy:  rmsPower(power),
		AvgHeartRate:    meanPresent(active, heartRateOf),
		AvgCadence:      meanPresent(active, cadenceOf),
		ActiveSamples:   len(active),
		TotalSamples:    len(samples),
	}
	if m.AvgHeartRate > 0 {
		m.EfficiencyFactor = m.AvgPower / m.AvgHeartRate
	}
	m.DecouplingPct = decoupling(active)
	if e.profile.FTPWatts > 0 {
		m.IntensityFactor = m.NormPowerProxy / e.profile.FTPWatts
	}
	return m, nil
}

func (e *Engine) activeSamples(samples []RideSample) []RideSample {
	out := make([]RideSample, 0, len(samples))
	for _, s := range samples {
		if s.Power != nil && *s.Power > e.profile.ActivePowerMinWatts {
			out = append(out, s)
		}
	}
	return out
}

// rmsPower is a quadratic-mean stand-in for Normalized Power. It omits the
// 30 s rolling average and 4th-power mean of true Normalized Power.
func rmsPower(power []float64) float64 {
	if len(power) == 0 {
		return 0
	}
	sumSq := 0.0
	for _, p := range power {
		sumSq += p * p
	}
	return math.Sqrt(sumSq / float64(len(power)))
}

// decoupling is the percentage drop in power:HR between the two halves of the active
// series, split at n/2. Undefined ratios (a half without heart rate, ef1 of zero) give 0.
func decoupling(active []RideSample) float64 {
	mid := len(active) / 2
	h1, h2 := active[:mid], active[mid:]
	if len(h1) == 0 || len(h2) == 0 {
		return 0
	}

	ef1 := halfEfficiency(h1)
	ef2 := halfEfficiency(h2)
	if !isFinite(ef1) || !isFinite(ef2) || ef1 == 0 {
		return 0
	}
	return (ef1 - ef2) / ef1 * 100.0
}

func halfEfficiency(half []RideSample) float64 {
	hr := meanPresent(half, heartRateOf)
	if hr == 0 {
		return math.NaN()
	}
	return meanPresent(half, powerOf) / hr
}

func heartRateOf(s RideSample) *float64 { return s.HeartRate }
func cadenceOf(s RideSample) *float64   { return s.Cadence }
func powerOf(s RideSample) *float64     { return s.Power }

// meanPresent averages a field over the samples where it is present; 0 when none are.
func meanPresent(samples []RideSample, field func(RideSample) *float64) float64 {
	total := 0.0
	count := 0
	for _, s := range samples {
		v := field(s)
		if v == nil || !isFinite(*v) {
			continue
		}
		total += *v
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	count := 0
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		total += v
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
