package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/exilebot/internal/domain"
	"github.com/alejandrodnm/exilebot/internal/ports"
	"github.com/alejandrodnm/exilebot/internal/strategy"
)

// Config contiene la configuración del analyzer.
type Config struct {
	League   string
	Interval time.Duration
	Once     bool // ejecutar un ciclo y salir
}

// Analyzer es el orquestador: fetch del snapshot, ejecución de todas las
// estrategias, orden canónico, notificación y persistencia.
type Analyzer struct {
	cfg      Config
	provider ports.MarketProvider
	storage  ports.Storage // nil = no persistir (dry-run)
	notifier ports.Notifier
	registry *strategy.Registry
}

// New crea un Analyzer con todas las dependencias inyectadas.
func New(cfg Config, provider ports.MarketProvider, storage ports.Storage, notifier ports.Notifier, registry *strategy.Registry) *Analyzer {
	return &Analyzer{
		cfg:      cfg,
		provider: provider,
		storage:  storage,
		notifier: notifier,
		registry: registry,
	}
}

// Run ejecuta ciclos de análisis hasta que el contexto se cancele.
// Con cfg.Once ejecuta exactamente un ciclo.
func (a *Analyzer) Run(ctx context.Context) error {
	slog.Info("analyzer starting",
		"league", a.cfg.League,
		"interval", a.cfg.Interval,
		"once", a.cfg.Once,
		"strategies", a.registry.Len(),
	)

	if err := a.runCycle(ctx); err != nil {
		slog.Error("analysis cycle failed", "err", err)
		if a.cfg.Once {
			return err
		}
	}

	if a.cfg.Once {
		return nil
	}

	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("analyzer stopped")
			return nil
		case <-ticker.C:
			if err := a.runCycle(ctx); err != nil {
				slog.Error("analysis cycle failed", "err", err)
			}
		}
	}
}

// RunOnce ejecuta exactamente un ciclo y devuelve el report sin notificar
// ni persistir.
func (a *Analyzer) RunOnce(ctx context.Context) (domain.Report, error) {
	return a.cycle(ctx)
}

// runCycle ejecuta un ciclo completo y notifica/persiste el resultado.
func (a *Analyzer) runCycle(ctx context.Context) error {
	start := time.Now()

	report, err := a.cycle(ctx)
	if err != nil {
		return err
	}

	if err := a.notifier.Notify(ctx, report); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	if a.storage != nil {
		if err := a.storage.SaveReport(ctx, report); err != nil {
			slog.Warn("storage error", "err", err)
		}
	}

	slog.Info("analysis cycle complete",
		"run_id", report.RunID,
		"league", report.League,
		"results", len(report.Results),
		"divine_rate", report.DivineRate,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// cycle hace fetch → run all strategies → sort y construye el report.
func (a *Analyzer) cycle(ctx context.Context) (domain.Report, error) {
	cache, err := a.provider.FetchAll(ctx, a.cfg.League)
	if err != nil {
		return domain.Report{}, fmt.Errorf("analyzer.cycle: fetch data: %w", err)
	}

	results := RunAll(cache, a.cfg.League, a.registry)

	return domain.Report{
		RunID:       uuid.NewString(),
		League:      a.cfg.League,
		GeneratedAt: time.Now().UTC(),
		DivineRate:  cache.DivineRate(),
		Results:     results,
	}, nil
}

// RunAll ejecuta cada estrategia del registry de forma aislada, aplana los
// resultados y los devuelve en el orden canónico. El fallo de una estrategia
// (error o panic) se registra y no detiene a las demás: el run completo nunca
// aborta por una estrategia que se porta mal.
func RunAll(cache domain.DataCache, league string, registry *strategy.Registry) []domain.AnalysisResult {
	var all []domain.AnalysisResult

	for _, s := range registry.Strategies() {
		results, err := safeAnalyze(s, cache, league)
		if err != nil {
			slog.Warn("strategy failed", "strategy", s.Name(), "err", err)
			continue
		}
		if len(results) == 0 {
			slog.Debug("strategy found no opportunities", "strategy", s.Name())
			continue
		}
		slog.Debug("strategy complete", "strategy", s.Name(), "results", len(results))
		all = append(all, results...)
	}

	domain.SortResults(all)
	return all
}

// safeAnalyze aísla la ejecución de una estrategia convirtiendo panics en
// errores ordinarios.
func safeAnalyze(s strategy.Strategy, cache domain.DataCache, league string) (results []domain.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Analyze(cache, league)
}
