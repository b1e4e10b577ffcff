package models

import "fmt"

// Grid is a dense table of implied P/E multiples. Rows are growth rate
// scenarios and columns are payout ratio scenarios, both in input order.
type Grid struct {
	RowLabels    []string    `json:"row_labels"`
	ColumnLabels []string    `json:"column_labels"`
	RowValues    []float64   `json:"growth_rates"`
	ColumnValues []float64   `json:"payout_ratios"`
	Values       [][]float64 `json:"values"`
}

// NewGrid allocates a grid for the given scenarios with labels filled in
func NewGrid(growthRates, payoutRatios []float64) *Grid {
	g := &Grid{
		RowLabels:    make([]string, len(growthRates)),
		ColumnLabels: make([]string, len(payoutRatios)),
		RowValues:    append([]float64(nil), growthRates...),
		ColumnValues: append([]float64(nil), payoutRatios...),
		Values:       make([][]float64, len(growthRates)),
	}
	for i, rate := range growthRates {
		g.RowLabels[i] = FormatPercent(rate)
		g.Values[i] = make([]float64, len(payoutRatios))
	}
	for j, ratio := range payoutRatios {
		g.ColumnLabels[j] = FormatPercent(ratio)
	}
	return g
}

// Shape returns the number of rows and columns
func (g *Grid) Shape() (rows, cols int) {
	return len(g.RowLabels), len(g.ColumnLabels)
}

// At returns the cell at row i, column j
func (g *Grid) At(i, j int) float64 {
	return g.Values[i][j]
}

// Lookup returns the cell addressed by labels. Duplicate labels resolve to
// the last matching row and column.
func (g *Grid) Lookup(row, col string) (float64, error) {
	i := lastIndex(g.RowLabels, row)
	if i < 0 {
		return 0, fmt.Errorf("unknown row label %q", row)
	}
	j := lastIndex(g.ColumnLabels, col)
	if j < 0 {
		return 0, fmt.Errorf("unknown column label %q", col)
	}
	return g.Values[i][j], nil
}

func lastIndex(labels []string, label string) int {
	for i := len(labels) - 1; i >= 0; i-- {
		if labels[i] == label {
			return i
		}
	}
	return -1
}

// FormatPercent formats a decimal rate as a percentage with one decimal place
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}
