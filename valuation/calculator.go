package valuation

import (
	"fmt"

	"go.uber.org/zap"

	"implied-pe/models"
)

// Calculator computes implied forward P/E multiples. It holds configuration
// only and is safe to reuse across calls.
type Calculator struct {
	formula string
	logger  *zap.Logger
}

// NewCalculator creates a calculator using the literal formula
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{
		formula: models.FormulaLiteral,
		logger:  logger,
	}
}

// SetFormula selects the formula used by subsequent calculations
func (c *Calculator) SetFormula(formula string) error {
	switch formula {
	case models.FormulaLiteral, models.FormulaRetention:
		c.formula = formula
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormula, formula)
	}
}

// GetFormula returns the formula currently in use
func (c *Calculator) GetFormula() string {
	return c.formula
}

// ImpliedPE calculates the implied 12-month forward P/E multiple
func (c *Calculator) ImpliedPE(price, eps, growthRate, payoutRatio float64) (float64, error) {
	input := models.ValuationInput{
		Price:       price,
		EPS:         eps,
		GrowthRate:  growthRate,
		PayoutRatio: payoutRatio,
	}

	retention := input.RetentionRatio()
	forwardEPS := input.ForwardEPS()
	if c.formula == models.FormulaRetention {
		forwardEPS = eps * (1 + growthRate*retention)
	}

	if forwardEPS == 0 {
		return 0, fmt.Errorf("implied P/E for price=%g eps=%g growth=%g: %w",
			price, eps, growthRate, ErrDivisionByZero)
	}

	pe := price / forwardEPS
	c.logger.Debug("calculated implied P/E",
		zap.String("formula", c.formula),
		zap.Float64("price", price),
		zap.Float64("eps", eps),
		zap.Float64("growth_rate", growthRate),
		zap.Float64("payout_ratio", payoutRatio),
		zap.Float64("forward_eps", forwardEPS),
		zap.Float64("implied_pe", pe),
	)
	return pe, nil
}

// IndustryImpliedPE calculates the implied P/E of every peer and their median.
// Peers are evaluated with a zero payout ratio. A failure on any peer fails
// the whole call.
func (c *Calculator) IndustryImpliedPE(peers models.PeerSet) (*models.IndustryPE, error) {
	if len(peers) == 0 {
		return nil, ErrEmptyPeerSet
	}

	index := peers.Index()
	result := &models.IndustryPE{
		Individual: make([]models.PeerMultiple, 0, len(peers)),
	}

	for i, peer := range peers {
		if first := index[peer.ID]; first != i {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicatePeer, peer.ID, first, i)
		}

		pe, err := c.ImpliedPE(peer.Price, peer.EPS, peer.GrowthRate, 0)
		if err != nil {
			return nil, fmt.Errorf("peer %q: %w", peer.ID, err)
		}
		result.Individual = append(result.Individual, models.PeerMultiple{ID: peer.ID, ImpliedPE: pe})
	}

	median, err := Median(result.Values())
	if err != nil {
		return nil, err
	}
	result.Median = median

	c.logger.Debug("calculated industry implied P/E",
		zap.Int("peers", len(peers)),
		zap.Float64("median_pe", median),
	)
	return result, nil
}

// SensitivityGrid evaluates the implied P/E over every growth rate and payout
// ratio scenario. Growth rates form the rows and payout ratios the columns.
func (c *Calculator) SensitivityGrid(price, eps float64, growthRates, payoutRatios []float64) (*models.Grid, error) {
	grid := models.NewGrid(growthRates, payoutRatios)

	for i, growth := range growthRates {
		for j, payout := range payoutRatios {
			pe, err := c.ImpliedPE(price, eps, growth, payout)
			if err != nil {
				return nil, fmt.Errorf("scenario growth=%s payout=%s: %w",
					grid.RowLabels[i], grid.ColumnLabels[j], err)
			}
			grid.Values[i][j] = pe
		}
	}

	c.logger.Debug("built sensitivity grid",
		zap.Int("rows", len(growthRates)),
		zap.Int("columns", len(payoutRatios)),
	)
	return grid, nil
}

// Summarize returns descriptive statistics over an industry result
func (c *Calculator) Summarize(industry *models.IndustryPE) (models.IndustryStats, error) {
	if industry == nil {
		return models.IndustryStats{}, ErrEmptyPeerSet
	}
	return Summarize(industry.Values())
}

var defaultCalculator = NewCalculator(nil)

// ImpliedPE calculates price / (eps * (1 + growthRate)). The payout ratio is
// accepted but does not change the result.
func ImpliedPE(price, eps, growthRate, payoutRatio float64) (float64, error) {
	return defaultCalculator.ImpliedPE(price, eps, growthRate, payoutRatio)
}

// IndustryImpliedPE applies ImpliedPE to every peer and aggregates with a median
func IndustryImpliedPE(peers models.PeerSet) (*models.IndustryPE, error) {
	return defaultCalculator.IndustryImpliedPE(peers)
}

// SensitivityGrid applies ImpliedPE across growthRates x payoutRatios
func SensitivityGrid(price, eps float64, growthRates, payoutRatios []float64) (*models.Grid, error) {
	return defaultCalculator.SensitivityGrid(price, eps, growthRates, payoutRatios)
}
