package cyclecoach

import (
	"fmt"
	"math"
	"strings"
)

// ProfileLine is the one-line rider summary shown above every verdict.
func ProfileLine(p Profile) string {
	return fmt.Sprintf(
		"Profile %s: FTP %.0f W | Z2 target %.0f-%.0f W | HR cap %.0f bpm | Cadence target %.0f rpm",
		p.Name,
		p.FTPWatts,
		p.Z2PowerMinWatts,
		p.Z2PowerMaxWatts,
		p.Z2HRCapBPM,
		p.TargetCadenceRPM,
	)
}

// BuildCoachNotes renders the verdict text for a ride. A nil m produces the
// insufficient-data notice instead of stats.
func BuildCoachNotes(p Profile, m *RideMetrics, feedback []Feedback) string {
	var b strings.Builder

	b.WriteString(ProfileLine(p))
	b.WriteByte('\n')

	if m == nil {
		b.WriteString("\nNo active pedaling found (power above ")
		fmt.Fprintf(&b, "%.0f W). Ensure it is a valid GOTOES or Intervals CSV.\n", p.ActivePowerMinWatts)
		return strings.TrimSpace(b.String())
	}

	fmt.Fprintf(
		&b,
		"Duration %s | Power %.0f avg / %.0f NP proxy W | HR %.0f avg bpm | Cadence %.0f avg rpm\n",
		formatDuration(m.DurationMinutes*60),
		m.AvgPower,
		m.NormPowerProxy,
		m.AvgHeartRate,
		m.AvgCadence,
	)
	fmt.Fprintf(
		&b,
		"Efficiency (EF) %.2f | Decoupling %.2f%% | IF %.2f\n",
		m.EfficiencyFactor,
		m.DecouplingPct,
		m.IntensityFactor,
	)

	b.WriteString("\nCoach's Verdict\n")
	if len(feedback) == 0 {
		b.WriteString("- Nothing stood out on this ride.\n")
	}
	for _, f := range feedback {
		fmt.Fprintf(&b, "- %s: %s\n", f.Category, f.Message)
	}

	return strings.TrimSpace(b.String())
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "0s"
	}
	s := int(math.Round(seconds))
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, sec)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, sec)
	}
	return fmt.Sprintf("%ds", sec)
}
