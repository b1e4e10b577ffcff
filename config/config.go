package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"

	"implied-pe/models"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "IMPLIEDPE"

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Config holds application configuration
type Config struct {
	Engine    EngineConfig   `yaml:"engine" envconfig:"ENGINE"`
	Scenarios ScenarioConfig `yaml:"scenarios" envconfig:"SCENARIOS"`
	Peers     PeersConfig    `yaml:"peers" envconfig:"PEERS"`
	Output    OutputConfig   `yaml:"output" envconfig:"OUTPUT"`
	Logging   LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// EngineConfig selects how the implied P/E is computed
type EngineConfig struct {
	Formula string `yaml:"formula" envconfig:"FORMULA"`
}

// ScenarioConfig holds the default sensitivity scenarios
type ScenarioConfig struct {
	GrowthRates  []float64 `yaml:"growth_rates" envconfig:"GROWTH_RATES"`
	PayoutRatios []float64 `yaml:"payout_ratios" envconfig:"PAYOUT_RATIOS"`
}

// PeersConfig holds configuration for the peer set source
type PeersConfig struct {
	File  string `yaml:"file" envconfig:"FILE"`
	Sheet string `yaml:"sheet" envconfig:"SHEET"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	Format     string `yaml:"format" envconfig:"FORMAT"` // "table", "json", "csv"
	ShowColors bool   `yaml:"show_colors" envconfig:"SHOW_COLORS"`
	Decimals   int    `yaml:"decimals" envconfig:"DECIMALS"`
	XLSXFile   string `yaml:"xlsx_file" envconfig:"XLSX_FILE"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Encoding string `yaml:"encoding" envconfig:"ENCODING"` // "json" or "console"
}

// NewDefaultConfig creates a new configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Formula: models.FormulaLiteral,
		},
		Scenarios: ScenarioConfig{
			GrowthRates:  []float64{0.05, 0.10, 0.15, 0.20},
			PayoutRatios: []float64{0.20, 0.30, 0.40, 0.50},
		},
		Peers: PeersConfig{
			File: "",
		},
		Output: OutputConfig{
			Format:     FormatTable,
			ShowColors: true,
			Decimals:   2,
		},
		Logging: LoggingConfig{
			Level:    "warn",
			Encoding: "console",
		},
	}
}

// GetTestConfig returns a configuration suited to tests: plain output and
// debug logging
func GetTestConfig() *Config {
	config := NewDefaultConfig()

	config.Output.ShowColors = false
	config.Logging.Level = "debug"

	return config
}

// Load builds a configuration from defaults, an optional YAML file, a .env
// file in the working directory and IMPLIEDPE_* environment variables, in
// that order of precedence (later wins)
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Validate validates the configuration and reports every problem found
func (c *Config) Validate() error {
	var errs error

	switch c.Engine.Formula {
	case models.FormulaLiteral, models.FormulaRetention:
	default:
		errs = multierr.Append(errs, fmt.Errorf("formula must be %q or %q, got %q",
			models.FormulaLiteral, models.FormulaRetention, c.Engine.Formula))
	}

	for _, g := range c.Scenarios.GrowthRates {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			errs = multierr.Append(errs, fmt.Errorf("growth rate scenario %g must be finite", g))
		}
	}
	for _, p := range c.Scenarios.PayoutRatios {
		if !(p >= 0 && p <= 1) {
			errs = multierr.Append(errs, fmt.Errorf("payout ratio scenario %g must be between 0 and 1", p))
		}
	}
	errs = multierr.Append(errs, c.Scenarios.checkForwardEPS(c.Engine.Formula))

	switch c.Output.Format {
	case FormatTable, FormatJSON, FormatCSV:
	default:
		errs = multierr.Append(errs, fmt.Errorf("output format must be one of table, json, csv, got %q", c.Output.Format))
	}

	if c.Output.Decimals < 0 || c.Output.Decimals > 8 {
		errs = multierr.Append(errs, errors.New("decimals must be between 0 and 8"))
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("invalid log level: %w", err))
	}

	switch strings.ToLower(c.Logging.Encoding) {
	case "json", "console":
	default:
		errs = multierr.Append(errs, fmt.Errorf("log encoding must be json or console, got %q", c.Logging.Encoding))
	}

	return errs
}

// checkForwardEPS reports scenarios whose growth factor is zero under the
// given formula. Such a scenario always fails with a division by zero.
func (s ScenarioConfig) checkForwardEPS(formula string) error {
	var errs error
	for _, g := range s.GrowthRates {
		switch formula {
		case models.FormulaLiteral:
			if 1+g == 0 {
				errs = multierr.Append(errs, fmt.Errorf("growth rate scenario %s makes forward EPS zero", models.FormatPercent(g)))
			}
		case models.FormulaRetention:
			for _, p := range s.PayoutRatios {
				if 1+g*(1-p) == 0 {
					errs = multierr.Append(errs, fmt.Errorf("scenario growth=%s payout=%s makes forward EPS zero",
						models.FormatPercent(g), models.FormatPercent(p)))
				}
			}
		}
	}
	return errs
}

// ZapConfig converts the logging configuration into a zap configuration.
// verbose forces debug level.
func (l LoggingConfig) ZapConfig(verbose bool) zap.Config {
	config := zap.NewProductionConfig()
	config.Encoding = strings.ToLower(l.Encoding)
	if config.Encoding == "console" {
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)
	return config
}
