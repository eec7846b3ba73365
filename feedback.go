package cyclecoach

import "fmt"

// Feedback categories, in the order the rules are evaluated.
const (
	CategoryRecoveryRide        = "Recovery ride"
	CategorySweetSpotZ2         = "Sweet-spot Z2"
	CategoryHighZ2              = "High Z2"
	CategoryIntensityAlert      = "Intensity alert"
	CategoryExcellentEfficiency = "Excellent efficiency"
	CategoryGoodEfficiency      = "Good efficiency"
	CategoryDriftAlert          = "Drift alert"
	CategoryGrindWarning        = "Grind warning"
	CategoryGoodCadence         = "Good cadence"
)

// Feedback is one coaching message.
type Feedback struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Categories returns the category of each feedback item, order preserved.
func Categories(items []Feedback) []string {
	out := make([]string, 0, len(items))
	for _, f := range items {
		out = append(out, f.Category)
	}
	return out
}

// Feedback evaluates the power, decoupling and cadence rules against m. Each rule group
// contributes at most one message; values falling between bands produce nothing.
func (e *Engine) Feedback(m *RideMetrics) []Feedback {
	if m == nil {
		return nil
	}
	p := e.profile
	out := make([]Feedback, 0, 3)

	switch pwr := m.AvgPower; {
	case pwr < p.RecoveryMaxWatts:
		out = append(out, Feedback{
			Category: CategoryRecoveryRide,
			Message:  "Power was very low. Good for flushing legs, but minimal aerobic gain.",
		})
	case pwr >= p.SweetSpotMinWatts && pwr <= p.Z2PowerMinWatts:
		out = append(out, Feedback{
			Category: CategorySweetSpotZ2,
			Message:  "Perfect execution for base building without leg fatigue.",
		})
	case pwr > p.Z2PowerMinWatts && pwr <= p.Z2PowerMaxWatts:
		out = append(out, Feedback{
			Category: CategoryHighZ2,
			Message:  "Strong aerobic push. Ensure you fuel well after this.",
		})
	case pwr > p.IntensityMinWatts:
		out = append(out, Feedback{
			Category: CategoryIntensityAlert,
			Message:  "This was a hard ride (Tempo/Threshold). Monitor leg freshness for running.",
		})
	}

	switch d := m.DecouplingPct; {
	case d < p.DecouplingExcellentPct:
		out = append(out, Feedback{
			Category: CategoryExcellentEfficiency,
			Message:  fmt.Sprintf("Less than %.0f%% decoupling. Your engine is rock solid.", p.DecouplingExcellentPct),
		})
	case d < p.DecouplingGoodPct:
		out = append(out, Feedback{
			Category: CategoryGoodEfficiency,
			Message:  "Standard drift.",
		})
	default:
		out = append(out, Feedback{
			Category: CategoryDriftAlert,
			Message:  fmt.Sprintf("Decoupling was %.1f%%. You faded in the second half. Check hydration/fueling.", d),
		})
	}

	switch cad := m.AvgCadence; {
	case cad < p.CadenceGrindRPM:
		out = append(out, Feedback{
			Category: CategoryGrindWarning,
			Message:  fmt.Sprintf("Avg cadence %.0f is too low. This strains your running legs. Aim for %.0f+.", cad, p.TargetCadenceRPM),
		})
	case cad > p.TargetCadenceRPM:
		out = append(out, Feedback{
			Category: CategoryGoodCadence,
			Message:  fmt.Sprintf("Excellent cadence (%.0f). You saved your legs.", cad),
		})
	}

	return out
}
