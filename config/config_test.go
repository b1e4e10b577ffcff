package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"implied-pe/models"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, models.FormulaLiteral, cfg.Engine.Formula)
	assert.Equal(t, []float64{0.05, 0.10, 0.15, 0.20}, cfg.Scenarios.GrowthRates)
	assert.Equal(t, []float64{0.20, 0.30, 0.40, 0.50}, cfg.Scenarios.PayoutRatios)
	assert.Equal(t, FormatTable, cfg.Output.Format)
}

func TestGetTestConfig(t *testing.T) {
	cfg := GetTestConfig()
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.Output.ShowColors)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errs   int
	}{
		{"valid", func(c *Config) {}, 0},
		{"retention formula", func(c *Config) { c.Engine.Formula = models.FormulaRetention }, 0},
		{"unknown formula", func(c *Config) { c.Engine.Formula = "gordon" }, 1},
		{"growth of -100%", func(c *Config) { c.Scenarios.GrowthRates = []float64{0.1, -1} }, 1},
		{"growth of -100% under retention", func(c *Config) {
			c.Engine.Formula = models.FormulaRetention
			c.Scenarios.GrowthRates = []float64{-1}
		}, 0},
		{"retention growth and payout cancel out", func(c *Config) {
			c.Engine.Formula = models.FormulaRetention
			c.Scenarios.GrowthRates = []float64{-2, 0.1}
			c.Scenarios.PayoutRatios = []float64{0.5, 0.3}
		}, 1},
		{"retention with zero payout", func(c *Config) {
			c.Engine.Formula = models.FormulaRetention
			c.Scenarios.GrowthRates = []float64{-1}
			c.Scenarios.PayoutRatios = []float64{0, 0.4}
		}, 1},
		{"non-finite scenarios", func(c *Config) {
			c.Scenarios.GrowthRates = []float64{math.NaN(), math.Inf(1)}
			c.Scenarios.PayoutRatios = []float64{math.NaN()}
		}, 3},
		{"payout out of range", func(c *Config) { c.Scenarios.PayoutRatios = []float64{-0.1, 0.5, 1.2} }, 2},
		{"bad format", func(c *Config) { c.Output.Format = "html" }, 1},
		{"bad decimals", func(c *Config) { c.Output.Decimals = -1 }, 1},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, 1},
		{"bad encoding", func(c *Config) { c.Logging.Encoding = "xml" }, 1},
		{"several problems", func(c *Config) {
			c.Engine.Formula = ""
			c.Output.Format = ""
			c.Output.Decimals = 20
		}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.errs == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Len(t, multierr.Errors(err), tt.errs)
		})
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "impliedpe.yaml")
	content := `engine:
  formula: retention
scenarios:
  growth_rates: [0.02, 0.04]
  payout_ratios: [0.1]
output:
  format: json
  decimals: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("IMPLIEDPE_OUTPUT_FORMAT", "csv")
	t.Setenv("IMPLIEDPE_SCENARIOS_PAYOUT_RATIOS", "0.25,0.75")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, models.FormulaRetention, cfg.Engine.Formula)
	assert.Equal(t, []float64{0.02, 0.04}, cfg.Scenarios.GrowthRates)
	assert.Equal(t, []float64{0.25, 0.75}, cfg.Scenarios.PayoutRatios)
	assert.Equal(t, FormatCSV, cfg.Output.Format)
	assert.Equal(t, 3, cfg.Output.Decimals)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Setenv("IMPLIEDPE_ENGINE_FORMULA", "gordon")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config validation failed")
	})
}

func TestLoggingConfig_ZapConfig(t *testing.T) {
	cfg := LoggingConfig{Level: "info", Encoding: "json"}

	zc := cfg.ZapConfig(false)
	assert.Equal(t, "json", zc.Encoding)
	assert.Equal(t, zapcore.InfoLevel, zc.Level.Level())

	zc = cfg.ZapConfig(true)
	assert.Equal(t, zapcore.DebugLevel, zc.Level.Level())

	zc = LoggingConfig{Level: "nonsense", Encoding: "console"}.ZapConfig(false)
	assert.Equal(t, "console", zc.Encoding)
	assert.Equal(t, zapcore.WarnLevel, zc.Level.Level())
}
