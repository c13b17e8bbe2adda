package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/exilebot/internal/domain"
)

// Config es la configuración completa del analyzer.
type Config struct {
	DefaultLeague string          `yaml:"default_league"`
	API           APIConfig       `yaml:"api"`
	Analysis      AnalysisConfig  `yaml:"analysis"`
	Strategies    StrategyConfigs `yaml:"strategies"`
	Storage       StorageConfig   `yaml:"storage"`
	Log           LogConfig       `yaml:"log"`
}

// APIConfig contiene los parámetros de adquisición de datos de poe.ninja.
type APIConfig struct {
	BaseURL         string   `yaml:"base_url"`
	TradeURLBase    string   `yaml:"trade_url_base"`
	ItemBlacklist   []string `yaml:"item_blacklist"`   // ítems excluidos de todas las estrategias
	MinimumListings int      `yaml:"minimum_listings"` // suelo de liquidez: menos listings = ilíquido
	CacheDir        string   `yaml:"cache_dir"`
	CacheTTLMinutes int      `yaml:"cache_ttl_minutes"`
}

// AnalysisConfig controla los parámetros compartidos por todas las estrategias.
type AnalysisConfig struct {
	IntervalMinutes       int                   `yaml:"interval_minutes"`
	AssumedFlipsPerHour   float64               `yaml:"assumed_flips_per_hour"`
	RiskThresholds        domain.RiskThresholds `yaml:"profit_volatility_risk_thresholds"`
	NumJackpots           int                   `yaml:"num_jackpots_to_display"`
	ShoppingListTolerance float64               `yaml:"shopping_list_price_tolerance_chaos"`
}

// StrategyConfigs agrupa la configuración específica de cada estrategia.
type StrategyConfigs struct {
	GemCorruption GemCorruptionConfig `yaml:"gem_corruption"`
}

// GemCorruptionConfig parametriza la estrategia de inversión en gemas.
type GemCorruptionConfig struct {
	// Probabilities es la distribución de outcomes de un Vaal Orb sobre una
	// gema. Debe sumar 1.0 (tolerancia 1e-6); level_change se reparte a
	// partes iguales entre +1 y -1 nivel.
	Probabilities  GemProbabilities `yaml:"probabilities"`
	MinProfitChaos float64          `yaml:"min_profit_chaos"`
	MaxResults     int              `yaml:"max_results"`
}

// GemProbabilities son las probabilidades de cada outcome de corrupción.
type GemProbabilities struct {
	NoChange      float64 `yaml:"no_change"`
	LevelChange   float64 `yaml:"level_change"`
	QualityChange float64 `yaml:"quality_change"`
	VaalVersion   float64 `yaml:"vaal_version"`
}

// Sum devuelve la masa de probabilidad total de la tabla.
func (p GemProbabilities) Sum() float64 {
	return p.NoChange + p.LevelChange + p.QualityChange + p.VaalVersion
}

// StorageConfig controla dónde se persiste el histórico.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
// La validación ocurre una sola vez aquí — las estrategias reciben una config
// ya saneada.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// Validate comprueba los invariantes de la configuración: umbrales de riesgo
// ascendentes, probabilidades que suman 1.0 y parámetros de análisis positivos.
func (c *Config) Validate() error {
	if err := c.Analysis.RiskThresholds.Validate(); err != nil {
		return err
	}
	if c.Analysis.AssumedFlipsPerHour <= 0 {
		return fmt.Errorf("analysis.assumed_flips_per_hour must be positive, got %v",
			c.Analysis.AssumedFlipsPerHour)
	}
	if c.API.MinimumListings < 0 {
		return fmt.Errorf("api.minimum_listings must be >= 0, got %d", c.API.MinimumListings)
	}
	if sum := c.Strategies.GemCorruption.Probabilities.Sum(); math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("strategies.gem_corruption.probabilities must sum to 1.0, got %v", sum)
	}
	return nil
}

// AnalysisInterval devuelve el intervalo entre ciclos como time.Duration.
func (c *Config) AnalysisInterval() time.Duration {
	return time.Duration(c.Analysis.IntervalMinutes) * time.Minute
}

// CacheTTL devuelve la vida útil del cache de respuestas de la API.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.API.CacheTTLMinutes) * time.Minute
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("LEAGUE"); v != "" {
		cfg.DefaultLeague = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.DefaultLeague == "" {
		cfg.DefaultLeague = "Standard"
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://poe.ninja/api/data/"
	}
	if cfg.API.TradeURLBase == "" {
		cfg.API.TradeURLBase = "https://www.pathofexile.com/trade/exchange/"
	}
	if cfg.API.MinimumListings == 0 {
		cfg.API.MinimumListings = 10
	}
	if cfg.API.CacheDir == "" {
		cfg.API.CacheDir = "cache"
	}
	if cfg.API.CacheTTLMinutes <= 0 {
		cfg.API.CacheTTLMinutes = 15
	}
	if cfg.Analysis.IntervalMinutes <= 0 {
		cfg.Analysis.IntervalMinutes = 30
	}
	if cfg.Analysis.AssumedFlipsPerHour == 0 {
		cfg.Analysis.AssumedFlipsPerHour = 120
	}
	if cfg.Analysis.RiskThresholds == (domain.RiskThresholds{}) {
		cfg.Analysis.RiskThresholds = domain.RiskThresholds{Low: 15, Medium: 50, High: 150, Extreme: 500}
	}
	if cfg.Analysis.NumJackpots <= 0 {
		cfg.Analysis.NumJackpots = 5
	}
	if cfg.Analysis.ShoppingListTolerance <= 0 {
		cfg.Analysis.ShoppingListTolerance = 2.0
	}
	if cfg.Strategies.GemCorruption.Probabilities == (GemProbabilities{}) {
		cfg.Strategies.GemCorruption.Probabilities = GemProbabilities{
			NoChange:      0.25,
			LevelChange:   0.25,
			QualityChange: 0.25,
			VaalVersion:   0.25,
		}
	}
	if cfg.Strategies.GemCorruption.MinProfitChaos == 0 {
		cfg.Strategies.GemCorruption.MinProfitChaos = 10
	}
	if cfg.Strategies.GemCorruption.MaxResults <= 0 {
		cfg.Strategies.GemCorruption.MaxResults = 15
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "exilebot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
