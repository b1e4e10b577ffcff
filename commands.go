package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"implied-pe/config"
	"implied-pe/models"
	"implied-pe/utils"
)

// emit writes a report in the configured output format
func (app *Application) emit(report *models.Report, table func() string, writeCSV func(io.Writer) error) error {
	switch app.config.Output.Format {
	case config.FormatJSON:
		return utils.WriteJSON(app.out, report)
	case config.FormatCSV:
		return writeCSV(app.out)
	default:
		_, err := io.WriteString(app.out, table())
		return err
	}
}

func newPECommand(getApp func() *Application) *cobra.Command {
	var input models.ValuationInput

	cmd := &cobra.Command{
		Use:   "pe",
		Short: "Implied forward P/E for a single company",
		Example: `  impliedpe pe --price 100 --eps 5 --growth 0.10 --payout 0.30
  impliedpe pe --ticker ACME --price 42 --eps 2.1 --growth 0.07 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return getApp().runImpliedPE(input)
		},
	}

	cmd.Flags().StringVar(&input.Ticker, "ticker", "", "Optional ticker symbol for labelling")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "Current stock price")
	cmd.Flags().Float64Var(&input.EPS, "eps", 0, "Current earnings per share")
	cmd.Flags().Float64Var(&input.GrowthRate, "growth", 0, "Expected earnings growth rate (decimal)")
	cmd.Flags().Float64Var(&input.PayoutRatio, "payout", 0, "Dividend payout ratio (decimal)")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("eps")
	return cmd
}

func (app *Application) runImpliedPE(input models.ValuationInput) error {
	if err := app.validator.Struct(input); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	pe, err := app.calculator.ImpliedPE(input.Price, input.EPS, input.GrowthRate, input.PayoutRatio)
	if err != nil {
		return err
	}

	report := app.newReport()
	report.Input = &input
	report.ImpliedPE = &pe

	decimals := app.config.Output.Decimals
	return app.emit(report,
		func() string { return utils.RenderImpliedPE(input, pe, app.displayOptions()) },
		func(w io.Writer) error { return utils.WriteImpliedPECSV(w, input, pe, decimals) },
	)
}

func newIndustryCommand(getApp func() *Application) *cobra.Command {
	var (
		peersFile string
		sheet     string
		peerFlags []string
	)

	cmd := &cobra.Command{
		Use:   "industry",
		Short: "Implied P/E of every peer and the industry median",
		Long: `Computes the implied forward P/E of each peer (payout ratio 0) and the
median across the set. Peers come from --peer flags or a CSV, XLSX or saved
HTML file with ticker, price, eps and growth_rate columns.`,
		Example: `  impliedpe industry --peer "Company A=100,5,0.10" --peer "Company B=80,4,8%"
  impliedpe industry --peers comps.xlsx --sheet Comps`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp()
			peers, err := app.resolvePeers(peerFlags, peersFile, sheet)
			if err != nil {
				return err
			}
			return app.runIndustry(peers)
		},
	}

	cmd.Flags().StringVar(&peersFile, "peers", "", "Peer file (.csv, .xlsx, .html); defaults to peers.file from config")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Workbook sheet holding the peer table")
	cmd.Flags().StringArrayVar(&peerFlags, "peer", nil, `Peer as "ID=price,eps,growth"; repeatable`)
	return cmd
}

// resolvePeers builds the peer set from --peer flags when given, otherwise
// from the peer file named by flag or configuration
func (app *Application) resolvePeers(peerFlags []string, peersFile, sheet string) (models.PeerSet, error) {
	if len(peerFlags) > 0 {
		records := [][]string{{"ticker", "price", "eps", "growth_rate"}}
		for _, raw := range peerFlags {
			id, values, ok := strings.Cut(raw, "=")
			if !ok {
				return nil, fmt.Errorf("peer %q: expected ID=price,eps,growth", raw)
			}
			fields := strings.Split(values, ",")
			if len(fields) < 2 || len(fields) > 3 {
				return nil, fmt.Errorf("peer %q: expected ID=price,eps,growth", raw)
			}
			records = append(records, append([]string{strings.TrimSpace(id)}, fields...))
		}
		return app.loader.LoadRecords(records)
	}

	if peersFile == "" {
		peersFile = app.config.Peers.File
	}
	if sheet == "" {
		sheet = app.config.Peers.Sheet
	}
	if peersFile == "" {
		return nil, errors.New("no peers given: use --peer or --peers, or set peers.file")
	}

	app.logger.Debug("loading peers", zap.String("file", peersFile), zap.String("sheet", sheet))
	peers, err := app.loader.LoadFile(peersFile, sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to load peers from %s: %w", peersFile, err)
	}
	return peers, nil
}

func (app *Application) runIndustry(peers models.PeerSet) error {
	industry, err := app.calculator.IndustryImpliedPE(peers)
	if err != nil {
		return err
	}
	stats, err := app.calculator.Summarize(industry)
	if err != nil {
		return err
	}

	report := app.newReport()
	report.Industry = industry
	report.Stats = &stats

	decimals := app.config.Output.Decimals
	return app.emit(report,
		func() string { return utils.RenderIndustry(industry, &stats, app.displayOptions()) },
		func(w io.Writer) error { return utils.WriteIndustryCSV(w, industry, decimals) },
	)
}

func newSensitivityCommand(getApp func() *Application) *cobra.Command {
	var (
		price, eps   float64
		growthRates  []float64
		payoutRatios []float64
		xlsxFile     string
	)

	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Implied P/E over growth and payout ratio scenarios",
		Example: `  impliedpe sensitivity --price 100 --eps 5
  impliedpe sensitivity --price 100 --eps 5 --growth 0.05,0.1 --payout 0.2,0.4 --xlsx grid.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp()
			if !cmd.Flags().Changed("growth") {
				growthRates = app.config.Scenarios.GrowthRates
			}
			if !cmd.Flags().Changed("payout") {
				payoutRatios = app.config.Scenarios.PayoutRatios
			}
			if xlsxFile == "" {
				xlsxFile = app.config.Output.XLSXFile
			}
			return app.runSensitivity(price, eps, growthRates, payoutRatios, xlsxFile)
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "Current stock price")
	cmd.Flags().Float64Var(&eps, "eps", 0, "Current earnings per share")
	cmd.Flags().Float64SliceVar(&growthRates, "growth", nil, "Growth rate scenarios (rows); defaults to scenarios.growth_rates")
	cmd.Flags().Float64SliceVar(&payoutRatios, "payout", nil, "Payout ratio scenarios (columns); defaults to scenarios.payout_ratios")
	cmd.Flags().StringVar(&xlsxFile, "xlsx", "", "Also save the grid to this workbook")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("eps")
	return cmd
}

// validateScenarios checks price and EPS once, then every growth rate and
// payout ratio scenario on its own
func (app *Application) validateScenarios(price, eps float64, growthRates, payoutRatios []float64) error {
	base := models.ValuationInput{Price: price, EPS: eps}
	if err := app.validator.Struct(base); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	var errs error
	for _, g := range growthRates {
		scenario := base
		scenario.GrowthRate = g
		if err := app.validator.Struct(scenario); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("growth scenario %s: %w", models.FormatPercent(g), err))
		}
	}
	for _, p := range payoutRatios {
		scenario := base
		scenario.PayoutRatio = p
		if err := app.validator.Struct(scenario); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("payout scenario %s: %w", models.FormatPercent(p), err))
		}
	}
	if errs != nil {
		return fmt.Errorf("invalid scenarios: %w", errs)
	}
	return nil
}

func (app *Application) runSensitivity(price, eps float64, growthRates, payoutRatios []float64, xlsxFile string) error {
	if err := app.validateScenarios(price, eps, growthRates, payoutRatios); err != nil {
		return err
	}

	grid, err := app.calculator.SensitivityGrid(price, eps, growthRates, payoutRatios)
	if err != nil {
		return err
	}

	if xlsxFile != "" {
		if err := utils.WriteGridXLSX(grid, xlsxFile); err != nil {
			return err
		}
		app.logger.Info("saved sensitivity grid", zap.String("file", xlsxFile))
	}

	report := app.newReport()
	report.Input = &models.ValuationInput{Price: price, EPS: eps}
	report.Grid = grid

	decimals := app.config.Output.Decimals
	return app.emit(report,
		func() string { return utils.RenderGrid(grid, app.displayOptions()) },
		func(w io.Writer) error { return utils.WriteGridCSV(w, grid, decimals) },
	)
}

// demoPeers is the sample peer set used by the demo command
var demoPeers = models.PeerSet{
	{ID: "Company A", Price: 100, EPS: 5, GrowthRate: 0.10},
	{ID: "Company B", Price: 80, EPS: 4, GrowthRate: 0.08},
	{ID: "Company C", Price: 120, EPS: 6, GrowthRate: 0.12},
}

func newDemoCommand(getApp func() *Application) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run all three calculations on sample inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return getApp().runDemo()
		},
	}
}

func (app *Application) runDemo() error {
	input := models.ValuationInput{Price: 100, EPS: 5, GrowthRate: 0.10, PayoutRatio: 0.30}

	pe, err := app.calculator.ImpliedPE(input.Price, input.EPS, input.GrowthRate, input.PayoutRatio)
	if err != nil {
		return err
	}
	industry, err := app.calculator.IndustryImpliedPE(demoPeers)
	if err != nil {
		return err
	}
	stats, err := app.calculator.Summarize(industry)
	if err != nil {
		return err
	}
	grid, err := app.calculator.SensitivityGrid(input.Price, input.EPS,
		app.config.Scenarios.GrowthRates, app.config.Scenarios.PayoutRatios)
	if err != nil {
		return err
	}

	report := app.newReport()
	report.Input = &input
	report.ImpliedPE = &pe
	report.Industry = industry
	report.Stats = &stats
	report.Grid = grid

	opts := app.displayOptions()
	decimals := app.config.Output.Decimals
	return app.emit(report,
		func() string {
			return strings.Join([]string{
				utils.RenderImpliedPE(input, pe, opts),
				utils.RenderIndustry(industry, &stats, opts),
				utils.RenderGrid(grid, opts),
			}, "\n")
		},
		func(w io.Writer) error {
			if err := utils.WriteImpliedPECSV(w, input, pe, decimals); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			if err := utils.WriteIndustryCSV(w, industry, decimals); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			return utils.WriteGridCSV(w, grid, decimals)
		},
	)
}
