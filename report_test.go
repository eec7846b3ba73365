package cyclecoach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeBuildsFullReport(t *testing.T) {
	engine := NewEngine(DefaultProfile())
	r := engine.Analyze(NormalizeResult{
		Layout:      LayoutStandard,
		Samples:     steadyRide(120, 130, 125, 95),
		RowsRead:    122,
		RowsDropped: 2,
	})

	require.NotNil(t, r.Metrics)
	assert.Equal(t, LayoutStandard, r.Layout)
	assert.Equal(t, []string{CategorySweetSpotZ2, CategoryExcellentEfficiency, CategoryGoodCadence}, Categories(r.Feedback))
	assert.Equal(t, []string{"dropped 2 rows without timestamp or power"}, r.Warnings)
	assert.Contains(t, r.Notes, "Coach's Verdict")
	assert.Len(t, r.Samples, 120)
	require.Len(t, r.PowerZones, 7)
	assert.Equal(t, 120.0, r.PowerZones[0].Seconds)
}

func TestAnalyzeInsufficientData(t *testing.T) {
	r := NewEngine(DefaultProfile()).Analyze(NormalizeResult{
		Layout:  LayoutStandard,
		Samples: steadyRide(10, 0, 90, 0),
	})

	assert.Nil(t, r.Metrics)
	assert.NotNil(t, r.Feedback)
	assert.Empty(t, r.Feedback)
	assert.Contains(t, r.Warnings, ErrInsufficientData.Error())
	assert.Contains(t, r.Notes, "No active pedaling found")
}
