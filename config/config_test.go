package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/exilebot/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
default_league: "Settlers"
api:
  minimum_listings: 25
  item_blacklist:
    - "Mirror of Kalandra"
  cache_ttl_minutes: 5
analysis:
  interval_minutes: 10
  assumed_flips_per_hour: 60
  profit_volatility_risk_thresholds:
    low: 10
    medium: 40
    high: 100
    extreme: 400
strategies:
  gem_corruption:
    probabilities:
      no_change: 0.3
      level_change: 0.3
      quality_change: 0.2
      vaal_version: 0.2
    min_profit_chaos: 50
storage:
  dsn: "history.db"
log:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Settlers", cfg.DefaultLeague)
	assert.Equal(t, 25, cfg.API.MinimumListings)
	assert.Equal(t, []string{"Mirror of Kalandra"}, cfg.API.ItemBlacklist)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 10*time.Minute, cfg.AnalysisInterval())
	assert.Equal(t, 60.0, cfg.Analysis.AssumedFlipsPerHour)
	assert.Equal(t, domain.RiskThresholds{Low: 10, Medium: 40, High: 100, Extreme: 400},
		cfg.Analysis.RiskThresholds)
	assert.Equal(t, 0.3, cfg.Strategies.GemCorruption.Probabilities.NoChange)
	assert.Equal(t, 50.0, cfg.Strategies.GemCorruption.MinProfitChaos)
	assert.Equal(t, "history.db", cfg.Storage.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EmptyConfigGetsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	require.NoError(t, err)

	assert.Equal(t, "Standard", cfg.DefaultLeague)
	assert.Equal(t, "https://poe.ninja/api/data/", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.API.MinimumListings)
	assert.Equal(t, 120.0, cfg.Analysis.AssumedFlipsPerHour)
	assert.Equal(t, domain.RiskThresholds{Low: 15, Medium: 50, High: 150, Extreme: 500},
		cfg.Analysis.RiskThresholds)
	assert.InDelta(t, 1.0, cfg.Strategies.GemCorruption.Probabilities.Sum(), 1e-9)
	assert.Equal(t, 15, cfg.Strategies.GemCorruption.MaxResults)
	assert.Equal(t, "exilebot.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_ThresholdKeysParse(t *testing.T) {
	// Las keys del YAML son minúsculas; una tabla de umbrales del usuario debe
	// cargarse tal cual, nunca caer en silencio a los defaults
	cfg, err := Load(writeConfig(t, `
analysis:
  profit_volatility_risk_thresholds:
    low: 1
    medium: 2
    high: 3
    extreme: 4
`))
	require.NoError(t, err)
	assert.Equal(t, domain.RiskThresholds{Low: 1, Medium: 2, High: 3, Extreme: 4},
		cfg.Analysis.RiskThresholds)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, "default_league: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_NonAscendingThresholdsFail(t *testing.T) {
	_, err := Load(writeConfig(t, `
analysis:
  profit_volatility_risk_thresholds:
    low: 100
    medium: 50
    high: 150
    extreme: 500
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "risk thresholds")
}

func TestLoad_BadProbabilitySumFails(t *testing.T) {
	_, err := Load(writeConfig(t, `
strategies:
  gem_corruption:
    probabilities:
      no_change: 0.5
      level_change: 0.5
      quality_change: 0.5
      vaal_version: 0.5
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
}

func TestLoad_NegativeFlipsPerHourFails(t *testing.T) {
	_, err := Load(writeConfig(t, `
analysis:
  assumed_flips_per_hour: -5
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assumed_flips_per_hour")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LEAGUE", "Necropolis")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, `default_league: "Settlers"`))
	require.NoError(t, err)

	assert.Equal(t, "Necropolis", cfg.DefaultLeague)
	assert.Equal(t, "warn", cfg.Log.Level)
}
