package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"implied-pe/models"
)

// Terminal colors (ANSI 256 palette)
const (
	ColorCyan  = lipgloss.Color("6")
	ColorGreen = lipgloss.Color("2")
	ColorRed   = lipgloss.Color("1")
	ColorGray  = lipgloss.Color("8")
)

// DisplayOptions controls how results are rendered
type DisplayOptions struct {
	ShowColors bool
	Decimals   int
}

func (o DisplayOptions) titleStyle() lipgloss.Style {
	if !o.ShowColors {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(ColorCyan)
}

func (o DisplayOptions) headerStyle() lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 1)
	if o.ShowColors {
		s = s.Bold(true).Foreground(ColorCyan)
	}
	return s
}

// FormatMultiple formats a multiple with a fixed number of decimals. NaN and
// infinities are printed as "NaN", "+Inf" and "-Inf".
func FormatMultiple(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'f', decimals, 64)
	}
	return decimal.NewFromFloat(value).StringFixed(int32(decimals))
}

// RenderImpliedPE renders a single implied P/E result
func RenderImpliedPE(input models.ValuationInput, pe float64, opts DisplayOptions) string {
	var b strings.Builder
	name := input.Ticker
	if name == "" {
		name = "Implied Forward P/E"
	} else {
		name += " Implied Forward P/E"
	}
	fmt.Fprintf(&b, "%s: %sx\n", opts.titleStyle().Render(name), FormatMultiple(pe, opts.Decimals))
	fmt.Fprintf(&b, "  price %s | eps %s | growth %s | payout %s\n",
		FormatMultiple(input.Price, 2),
		FormatMultiple(input.EPS, 2),
		models.FormatPercent(input.GrowthRate),
		models.FormatPercent(input.PayoutRatio),
	)
	return b.String()
}

// RenderIndustry renders peer multiples followed by the median and, when
// given, summary statistics
func RenderIndustry(industry *models.IndustryPE, stats *models.IndustryStats, opts DisplayOptions) string {
	rows := make([][]string, 0, len(industry.Individual))
	for _, m := range industry.Individual {
		rows = append(rows, []string{m.ID, FormatMultiple(m.ImpliedPE, opts.Decimals) + "x"})
	}

	median := industry.Median
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle(opts)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return opts.headerStyle()
			}
			s := lipgloss.NewStyle().Padding(0, 1)
			if opts.ShowColors && col == 1 && row < len(industry.Individual) {
				if industry.Individual[row].ImpliedPE > median {
					s = s.Foreground(ColorRed)
				} else if industry.Individual[row].ImpliedPE < median {
					s = s.Foreground(ColorGreen)
				}
			}
			return s
		}).
		Headers("Company", "Implied P/E").
		Rows(rows...)

	var b strings.Builder
	b.WriteString(opts.titleStyle().Render("Industry Analysis"))
	b.WriteString("\n")
	b.WriteString(t.String())
	b.WriteString("\n")
	fmt.Fprintf(&b, "Median Industry P/E: %sx\n", FormatMultiple(industry.Median, opts.Decimals))
	if stats != nil {
		fmt.Fprintf(&b, "Peers: %d | Min: %sx | Max: %sx | Mean: %sx\n",
			stats.Count,
			FormatMultiple(stats.Min, opts.Decimals),
			FormatMultiple(stats.Max, opts.Decimals),
			FormatMultiple(stats.Mean, opts.Decimals),
		)
	}
	return b.String()
}

// RenderGrid renders a sensitivity grid with growth rates down the side and
// payout ratios across the top
func RenderGrid(grid *models.Grid, opts DisplayOptions) string {
	headers := append([]string{"Growth \\ Payout"}, grid.ColumnLabels...)
	rows := make([][]string, 0, len(grid.RowLabels))
	for i, label := range grid.RowLabels {
		row := make([]string, 0, len(grid.ColumnLabels)+1)
		row = append(row, label)
		for j := range grid.ColumnLabels {
			row = append(row, FormatMultiple(grid.At(i, j), opts.Decimals))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle(opts)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return opts.headerStyle()
			}
			return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
		}).
		Headers(headers...).
		Rows(rows...)

	var b strings.Builder
	b.WriteString(opts.titleStyle().Render("Sensitivity Analysis"))
	b.WriteString("\n")
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}

func borderStyle(opts DisplayOptions) lipgloss.Style {
	if opts.ShowColors {
		return lipgloss.NewStyle().Foreground(ColorGray)
	}
	return lipgloss.NewStyle()
}
