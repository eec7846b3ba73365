package cyclecoach

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackSweetSpotRide(t *testing.T) {
	got := NewEngine(DefaultProfile()).Feedback(&RideMetrics{AvgPower: 130, DecouplingPct: 2, AvgCadence: 95})
	assert.Equal(t, []string{"Sweet-spot Z2", "Excellent efficiency", "Good cadence"}, Categories(got))
}

func TestFeedbackRuleTable(t *testing.T) {
	cases := []struct {
		name  string
		m     RideMetrics
		wants []string
	}{
		{"recovery", RideMetrics{AvgPower: 114.9, DecouplingPct: 1, AvgCadence: 87}, []string{CategoryRecoveryRide, CategoryExcellentEfficiency}},
		{"gap below sweet spot", RideMetrics{AvgPower: 120, DecouplingPct: 1, AvgCadence: 87}, []string{CategoryExcellentEfficiency}},
		{"sweet spot lower edge", RideMetrics{AvgPower: 125, DecouplingPct: 1, AvgCadence: 87}, []string{CategorySweetSpotZ2, CategoryExcellentEfficiency}},
		{"sweet spot upper edge", RideMetrics{AvgPower: 140, DecouplingPct: 1, AvgCadence: 87}, []string{CategorySweetSpotZ2, CategoryExcellentEfficiency}},
		{"high z2", RideMetrics{AvgPower: 140.1, DecouplingPct: 1, AvgCadence: 87}, []string{CategoryHighZ2, CategoryExcellentEfficiency}},
		{"high z2 upper edge", RideMetrics{AvgPower: 155, DecouplingPct: 1, AvgCadence: 87}, []string{CategoryHighZ2, CategoryExcellentEfficiency}},
		{"gap below intensity", RideMetrics{AvgPower: 158, DecouplingPct: 1, AvgCadence: 87}, []string{CategoryExcellentEfficiency}},
		{"intensity edge excluded", RideMetrics{AvgPower: 160, DecouplingPct: 1, AvgCadence: 87}, []string{CategoryExcellentEfficiency}},
		{"intensity", RideMetrics{AvgPower: 200, DecouplingPct: 1, AvgCadence: 87}, []string{CategoryIntensityAlert, CategoryExcellentEfficiency}},
		{"good efficiency lower edge", RideMetrics{AvgPower: 120, DecouplingPct: 3, AvgCadence: 87}, []string{CategoryGoodEfficiency}},
		{"good efficiency", RideMetrics{AvgPower: 120, DecouplingPct: 4.99, AvgCadence: 87}, []string{CategoryGoodEfficiency}},
		{"drift edge", RideMetrics{AvgPower: 120, DecouplingPct: 5, AvgCadence: 87}, []string{CategoryDriftAlert}},
		{"negative decoupling", RideMetrics{AvgPower: 120, DecouplingPct: -4, AvgCadence: 87}, []string{CategoryExcellentEfficiency}},
		{"grind", RideMetrics{AvgPower: 120, DecouplingPct: 1, AvgCadence: 84}, []string{CategoryExcellentEfficiency, CategoryGrindWarning}},
		{"cadence edges silent", RideMetrics{AvgPower: 120, DecouplingPct: 1, AvgCadence: 90}, []string{CategoryExcellentEfficiency}},
		{"cadence lower edge silent", RideMetrics{AvgPower: 120, DecouplingPct: 1, AvgCadence: 85}, []string{CategoryExcellentEfficiency}},
	}

	engine := NewEngine(DefaultProfile())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := tc.m
			assert.Equal(t, tc.wants, Categories(engine.Feedback(&m)))
		})
	}
}

func TestFeedbackDriftMessageCarriesValue(t *testing.T) {
	got := NewEngine(DefaultProfile()).Feedback(&RideMetrics{AvgPower: 150, DecouplingPct: 7.26, AvgCadence: 80})
	require.Len(t, got, 3)
	assert.Equal(t, CategoryDriftAlert, got[1].Category)
	assert.Contains(t, got[1].Message, "7.3%")
	assert.Contains(t, got[2].Message, "Avg cadence 80")
}

func TestFeedbackNilMetrics(t *testing.T) {
	assert.Nil(t, NewEngine(DefaultProfile()).Feedback(nil))
}

func TestFeedbackFollowsProfileThresholds(t *testing.T) {
	p := DefaultProfile()
	p.SweetSpotMinWatts = 180
	p.Z2PowerMinWatts = 200
	p.Z2PowerMaxWatts = 220
	p.IntensityMinWatts = 240
	p.RecoveryMaxWatts = 150

	got := NewEngine(p).Feedback(&RideMetrics{AvgPower: 210, DecouplingPct: 0, AvgCadence: 88})
	assert.Equal(t, []string{CategoryHighZ2, CategoryExcellentEfficiency}, Categories(got))
}

func TestBuildCoachNotes(t *testing.T) {
	engine := NewEngine(DefaultProfile())
	m := &RideMetrics{DurationMinutes: 62.5, AvgPower: 130, NormPowerProxy: 134, AvgHeartRate: 128, AvgCadence: 95, EfficiencyFactor: 1.02, DecouplingPct: 2}
	notes := BuildCoachNotes(engine.Profile(), m, engine.Feedback(m))

	assert.True(t, strings.HasPrefix(notes, "Profile default: FTP 242 W | Z2 target 140-155 W | HR cap 130 bpm"))
	assert.Contains(t, notes, "Duration 1h02m30s")
	assert.Contains(t, notes, "Coach's Verdict")
	assert.Contains(t, notes, "- Sweet-spot Z2: ")
	assert.Contains(t, notes, "- Good cadence: Excellent cadence (95).")

	empty := BuildCoachNotes(engine.Profile(), nil, nil)
	assert.Contains(t, empty, "No active pedaling found")
}
