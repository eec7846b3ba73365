package cyclecoach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownsampleKeepsEveryNth(t *testing.T) {
	samples := steadyRide(25, 150, 140, 90)

	points := Downsample(samples, 10)
	require.Len(t, points, 3)
	assert.True(t, points[1].Timestamp.Equal(samples[10].Timestamp))
	assert.True(t, points[2].Timestamp.Equal(samples[20].Timestamp))

	assert.Len(t, Downsample(samples, 0), 25)
	assert.Empty(t, Downsample(nil, 10))
}

func TestCadenceHistogram(t *testing.T) {
	samples := []RideSample{
		sample(0, 150, 140, 30),
		sample(1, 150, 140, 40),
		sample(2, 150, 140, 80),
		sample(3, 150, 140, 90),
		sample(4, 150, 140, 100),
		{Timestamp: rideStart, Power: floatPtr(150)},
	}

	bins := CadenceHistogram(samples, 40, 2)
	require.Len(t, bins, 2)
	assert.Equal(t, 80.0, bins[0].Low)
	assert.Equal(t, 100.0, bins[1].High)
	assert.Equal(t, 1, bins[0].Count)
	assert.Equal(t, 2, bins[1].Count)
}

func TestCadenceHistogramSingleValue(t *testing.T) {
	bins := CadenceHistogram(steadyRide(5, 150, 140, 90), 40, 50)
	require.Len(t, bins, 50)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 5, total)
	assert.Nil(t, CadenceHistogram(steadyRide(5, 150, 140, 30), 40, 50))
}

func TestBuildChartSeriesUsesProfileTarget(t *testing.T) {
	p := DefaultProfile()
	p.TargetCadenceRPM = 95

	series := BuildChartSeries(steadyRide(30, 150, 140, 90), p)
	assert.Len(t, series.PowerHeartRate, 3)
	assert.Len(t, series.CadenceHistogram, 50)
	assert.Equal(t, 95.0, series.TargetCadenceRPM)
}
