package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/exilebot/config"
	"github.com/alejandrodnm/exilebot/internal/adapters/notify"
	"github.com/alejandrodnm/exilebot/internal/adapters/poeninja"
	"github.com/alejandrodnm/exilebot/internal/adapters/storage"
	"github.com/alejandrodnm/exilebot/internal/analyzer"
	"github.com/alejandrodnm/exilebot/internal/ports"
	"github.com/alejandrodnm/exilebot/internal/strategy"
)

func main() {
	// os.Exit no ejecuta defers; run hace el unwind completo (cierre de
	// storage incluido) antes de devolver el código de salida
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	league := flag.String("league", "", "league to analyze (overrides config)")
	once := flag.Bool("once", false, "run one analysis cycle and exit")
	table := flag.Bool("table", false, "print full dashboard + top strategy breakdown (default: compact 1-line)")
	history := flag.Bool("history", false, "after the run, print the historical trend of the top strategy (implies -once)")
	dryRun := flag.Bool("dry-run", false, "skip persistence")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		return 1
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	if *league == "" {
		*league = cfg.DefaultLeague
	}

	slog.Info("exilebot starting",
		"config", *configPath,
		"league", *league,
		"interval", cfg.AnalysisInterval(),
		"once", *once,
		"dry_run", *dryRun,
	)

	registry, err := buildRegistry(cfg)
	if err != nil {
		// Colisión de nombres u otra inconsistencia del registry: error de
		// programación, el arranque falla en seco
		slog.Error("failed to assemble strategy registry", "err", err)
		return 1
	}

	provider := poeninja.NewClient(poeninja.Config{
		BaseURL:         cfg.API.BaseURL,
		ItemBlacklist:   cfg.API.ItemBlacklist,
		MinimumListings: cfg.API.MinimumListings,
		CacheDir:        cfg.API.CacheDir,
		CacheTTL:        cfg.CacheTTL(),
	})

	var store *storage.SQLiteStorage
	if !*dryRun {
		store, err = storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			return 1
		}
		defer store.Close()
	}

	notifier := notify.NewConsoleWriter(os.Stdout, *table || *history)

	a := analyzer.New(analyzer.Config{
		League:   *league,
		Interval: cfg.AnalysisInterval(),
		Once:     *once || *history,
	}, provider, storageOrNil(store), notifier, registry)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *history {
		return runWithHistory(ctx, a, store, notifier, *league)
	}

	if err := a.Run(ctx); err != nil {
		slog.Error("analyzer exited with error", "err", err)
		return 1
	}

	slog.Info("exilebot stopped cleanly")
	return 0
}

// runWithHistory ejecuta un ciclo, lo notifica/persiste y después imprime la
// tendencia histórica de la estrategia ganadora. Devuelve el código de salida.
func runWithHistory(ctx context.Context, a *analyzer.Analyzer, store *storage.SQLiteStorage, notifier *notify.Console, league string) int {
	report, err := a.RunOnce(ctx)
	if err != nil {
		slog.Error("analysis failed", "err", err)
		return 1
	}

	if err := notifier.Notify(ctx, report); err != nil {
		slog.Warn("notifier error", "err", err)
	}
	if store != nil {
		if err := store.SaveReport(ctx, report); err != nil {
			slog.Warn("storage error", "err", err)
		}
	}

	if len(report.Results) == 0 {
		return 0
	}
	top := report.Results[0]

	if store == nil {
		slog.Warn("history requested but persistence is disabled")
		return 0
	}
	points, err := store.GetHistory(ctx, top.StrategyName, league)
	if err != nil {
		slog.Error("failed to load history", "err", err, "strategy", top.StrategyName)
		return 1
	}
	notifier.PrintHistory(top.StrategyName, league, points, report.DivineRate, 10)
	return 0
}

// buildRegistry ensambla la lista estática de estrategias desde la
// configuración validada. Añadir una estrategia = añadirla aquí.
func buildRegistry(cfg *config.Config) (*strategy.Registry, error) {
	flipCfg := strategy.FlipConfig{
		FlipsPerHour:   cfg.Analysis.AssumedFlipsPerHour,
		RiskThresholds: cfg.Analysis.RiskThresholds,
		MinListings:    cfg.API.MinimumListings,
		NumJackpots:    cfg.Analysis.NumJackpots,
		PriceTolerance: cfg.Analysis.ShoppingListTolerance,
		TradeURLBase:   cfg.API.TradeURLBase,
	}
	gemCfg := strategy.GemInvestConfig{
		Probabilities: strategy.GemOutcomeProbs{
			NoChange:      cfg.Strategies.GemCorruption.Probabilities.NoChange,
			LevelChange:   cfg.Strategies.GemCorruption.Probabilities.LevelChange,
			QualityChange: cfg.Strategies.GemCorruption.Probabilities.QualityChange,
			VaalVersion:   cfg.Strategies.GemCorruption.Probabilities.VaalVersion,
		},
		MinProfitChaos: cfg.Strategies.GemCorruption.MinProfitChaos,
		MaxResults:     cfg.Strategies.GemCorruption.MaxResults,
		TradeURLBase:   cfg.API.TradeURLBase,
	}

	return strategy.NewRegistry(
		strategy.NewScarabGamble(flipCfg),
		strategy.NewScarabByType(flipCfg),
		strategy.NewTattooFlip(flipCfg),
		strategy.NewGemInvest(gemCfg),
	)
}

// storageOrNil evita pasar un puntero tipado nil como interfaz no-nil.
func storageOrNil(s *storage.SQLiteStorage) ports.Storage {
	if s == nil {
		return nil
	}
	return s
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
