package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"single", []float64{7}, 7},
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"negatives", []float64{-5, 10, -1}, -1},
		{"repeated", []float64{2, 2, 2, 9}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := append([]float64(nil), tt.values...)
			got, err := Median(tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, original, tt.values, "input must not be reordered")
		})
	}

	_, err := Median(nil)
	assert.ErrorIs(t, err, ErrEmptyPeerSet)
}

func TestSummarize(t *testing.T) {
	stats, err := Summarize([]float64{18, 12, 30, 20})
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, 12.0, stats.Min)
	assert.Equal(t, 30.0, stats.Max)
	assert.Equal(t, 20.0, stats.Mean)
	assert.Equal(t, 19.0, stats.Median)

	_, err = Summarize(nil)
	assert.ErrorIs(t, err, ErrEmptyPeerSet)
}

func TestCalculator_Summarize(t *testing.T) {
	calc := NewCalculator(nil)
	industry, err := calc.IndustryImpliedPE(samplePeers())
	require.NoError(t, err)

	stats, err := calc.Summarize(industry)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, industry.Median, stats.Median)
	assert.InDelta(t, 120/6.72, stats.Min, 1e-9)
	assert.InDelta(t, 80/4.32, stats.Max, 1e-9)
}

func TestCalculator_SummarizeNil(t *testing.T) {
	_, err := NewCalculator(nil).Summarize(nil)
	assert.ErrorIs(t, err, ErrEmptyPeerSet)
}
