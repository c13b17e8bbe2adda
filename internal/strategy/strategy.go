package strategy

import (
	"fmt"
	"sort"

	"github.com/alejandrodnm/exilebot/internal/domain"
)

// Strategy define el contrato de una heurística de profitability.
// Las implementaciones son puras: sin I/O, sin estado mutable, y una entrada
// malformada en el cache se salta en vez de abortar la evaluación.
type Strategy interface {
	// Name devuelve el identificador único y estable de la estrategia.
	// Forma parte de la clave del histórico persistido.
	Name() string

	// Analyze evalúa el snapshot de precios y devuelve cero o más resultados.
	// Devuelve error solo si la estrategia no puede ejecutarse en absoluto
	// (p.ej. distribución de outcomes mal configurada); el runner lo registra
	// y continúa con el resto.
	Analyze(cache domain.DataCache, league string) ([]domain.AnalysisResult, error)
}

// Registry es la lista estática de estrategias disponibles, en orden
// lexicográfico por nombre para que cada ejecución sea reproducible.
type Registry struct {
	strategies []Strategy
}

// NewRegistry ensambla el registry a partir de la lista explícita de
// estrategias. Dos estrategias con el mismo nombre son un error de
// programación y fallan el arranque, nunca un shadowing silencioso.
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	seen := make(map[string]bool, len(strategies))
	for _, s := range strategies {
		name := s.Name()
		if name == "" {
			return nil, fmt.Errorf("strategy.NewRegistry: strategy with empty name (%T)", s)
		}
		if seen[name] {
			return nil, fmt.Errorf("strategy.NewRegistry: duplicate strategy name %q", name)
		}
		seen[name] = true
	}

	ordered := make([]Strategy, len(strategies))
	copy(ordered, strategies)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Name() < ordered[j].Name()
	})
	return &Registry{strategies: ordered}, nil
}

// Strategies devuelve las estrategias en orden estable de ejecución.
func (r *Registry) Strategies() []Strategy {
	return r.strategies
}

// Len devuelve el número de estrategias registradas.
func (r *Registry) Len() int {
	return len(r.strategies)
}
