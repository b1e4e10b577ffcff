package utils

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"implied-pe/models"
)

func TestFormatMultiple(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		expected string
	}{
		{100 / 5.5, 2, "18.18"},
		{80 / 4.32, 2, "18.52"},
		{20, 2, "20.00"},
		{18.125, 1, "18.1"},
		{-3.456, 0, "-3"},
		{math.NaN(), 2, "NaN"},
		{math.Inf(1), 2, "+Inf"},
		{math.Inf(-1), 2, "-Inf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatMultiple(tt.value, tt.decimals))
	}
}

func TestRenderGrid(t *testing.T) {
	out := RenderGrid(sampleGrid(t), DisplayOptions{Decimals: 2})

	assert.True(t, strings.HasPrefix(out, "Sensitivity Analysis\n"))
	for _, want := range []string{"Growth \\ Payout", "20.0%", "30.0%", "5.0%", "10.0%", "19.05", "18.18"} {
		assert.Contains(t, out, want)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	var dataLines int
	for _, line := range lines {
		if strings.Contains(line, "18.18") || strings.Contains(line, "19.05") {
			dataLines++
		}
	}
	assert.Equal(t, 2, dataLines)
}

func TestRenderIndustry(t *testing.T) {
	industry := sampleIndustry(t)
	stats := &models.IndustryStats{Count: 3, Min: 17.857, Max: 18.518, Mean: 18.185, Median: industry.Median}

	out := RenderIndustry(industry, stats, DisplayOptions{Decimals: 2})
	for _, want := range []string{"Industry Analysis", "Company A", "18.18x", "18.52x", "17.86x",
		"Median Industry P/E: 18.18x", "Peers: 3 | Min: 17.86x | Max: 18.52x"} {
		assert.Contains(t, out, want)
	}

	out = RenderIndustry(industry, nil, DisplayOptions{Decimals: 1})
	assert.Contains(t, out, "Median Industry P/E: 18.2x")
	assert.NotContains(t, out, "Peers:")
}

func TestRenderImpliedPE(t *testing.T) {
	input := models.ValuationInput{Price: 100, EPS: 5, GrowthRate: 0.10, PayoutRatio: 0.30}
	out := RenderImpliedPE(input, 100/5.5, DisplayOptions{Decimals: 2})
	assert.Contains(t, out, "Implied Forward P/E: 18.18x")
	assert.Contains(t, out, "growth 10.0% | payout 30.0%")

	input.Ticker = "ACME"
	out = RenderImpliedPE(input, 100/5.5, DisplayOptions{Decimals: 2})
	assert.Contains(t, out, "ACME Implied Forward P/E: 18.18x")
}
