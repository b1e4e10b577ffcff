package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"implied-pe/config"
	"implied-pe/models"
	"implied-pe/services"
	"implied-pe/utils"
	"implied-pe/valuation"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent command line flags. Zero values mean the
// flag was not given and the loaded configuration applies.
type rootOptions struct {
	configPath string
	verbose    bool
	format     string
	formula    string
	noColor    bool
	decimals   int
}

// Application represents the main application
type Application struct {
	config     *config.Config
	logger     *zap.Logger
	calculator *valuation.Calculator
	loader     *services.PeerLoader
	validator  *services.Validator
	out        io.Writer
}

// NewApplication creates a new application instance
func NewApplication(cfg *config.Config, logger *zap.Logger, out io.Writer) (*Application, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	calculator := valuation.NewCalculator(logger)
	if err := calculator.SetFormula(cfg.Engine.Formula); err != nil {
		return nil, err
	}

	return &Application{
		config:     cfg,
		logger:     logger,
		calculator: calculator,
		loader:     services.NewPeerLoader(logger),
		validator:  services.NewValidator(),
		out:        out,
	}, nil
}

func (app *Application) displayOptions() utils.DisplayOptions {
	return utils.DisplayOptions{
		ShowColors: app.config.Output.ShowColors,
		Decimals:   app.config.Output.Decimals,
	}
}

func (app *Application) newReport() *models.Report {
	return models.NewReport(app.calculator.GetFormula())
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{decimals: -1}
	var app *Application

	cmd := &cobra.Command{
		Use:   "impliedpe",
		Short: "Implied forward P/E multiples for a stock or a peer set",
		Long: `impliedpe computes implied 12-month forward P/E multiples.

  price / (eps * (1 + growth))

It values a single company, compares a peer set by its median multiple and
builds sensitivity tables over growth and payout ratio scenarios.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if err := opts.apply(cfg); err != nil {
				return err
			}

			logger, err := cfg.Logging.ZapConfig(opts.verbose).Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			app, err = NewApplication(cfg, logger, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			logger.Debug("application configured",
				zap.String("command", cmd.Name()),
				zap.String("formula", cfg.Engine.Formula),
				zap.String("format", cfg.Output.Format),
			)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				_ = app.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to YAML configuration file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVarP(&opts.format, "format", "o", "", "Output format: table, json, csv")
	flags.StringVar(&opts.formula, "formula", "", "Formula: literal (payout ignored) or retention")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.IntVar(&opts.decimals, "decimals", -1, "Decimal places for multiples")

	getApp := func() *Application { return app }
	cmd.AddCommand(
		newPECommand(getApp),
		newIndustryCommand(getApp),
		newSensitivityCommand(getApp),
		newDemoCommand(getApp),
	)
	return cmd
}

// apply overrides configuration values with the flags that were given
func (o *rootOptions) apply(cfg *config.Config) error {
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.formula != "" {
		cfg.Engine.Formula = o.formula
	}
	if o.noColor {
		cfg.Output.ShowColors = false
	}
	if o.decimals >= 0 {
		cfg.Output.Decimals = o.decimals
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}
