package models

import (
	"time"

	"github.com/google/uuid"
)

// Formula modes for the implied P/E calculation
const (
	// FormulaLiteral divides price by EPS grown at the full growth rate.
	// The payout ratio has no effect.
	FormulaLiteral = "literal"
	// FormulaRetention grows EPS only by the retained share of earnings.
	FormulaRetention = "retention"
)

// Report bundles the results of one CLI run
type Report struct {
	ID          string          `json:"id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Formula     string          `json:"formula"`
	Input       *ValuationInput `json:"input,omitempty"`
	ImpliedPE   *float64        `json:"implied_pe,omitempty"`
	Industry    *IndustryPE     `json:"industry,omitempty"`
	Stats       *IndustryStats  `json:"industry_stats,omitempty"`
	Grid        *Grid           `json:"sensitivity,omitempty"`
}

// NewReport creates an empty report stamped with a fresh identifier
func NewReport(formula string) *Report {
	return &Report{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Formula:     formula,
	}
}
