package domain

import (
	"sort"
	"time"
)

// AnalysisResult es el registro universal que toda estrategia debe emitir.
// Se construye una vez por evaluación y no se muta después: el runner lo
// ordena y el sink de persistencia lo almacena tal cual.
//
// Los campos opcionales son punteros: nil significa "no aplica" (p.ej. una
// inversión a largo plazo no tiene profit por hora). Nunca NaN — los nil
// ordenan al final.
type AnalysisResult struct {
	StrategyName string // identidad de la estrategia que lo produjo
	ItemOrCombo  string // ítem o combinación analizada ("Scarab Type: Harbinger")

	InputCost      *float64 // coste de un ciclo en chaos; nil si no se modela desembolso directo
	ProfitPerFlip  float64  // profit esperado por ciclo completado (puede ser negativo)
	ProfitPerHour  *float64 // ProfitPerFlip × flips/hora; nil para inversiones sin ciclo corto
	ProfitStdDev   *float64 // desviación estándar del profit; requerido si el outcome es probabilístico
	Risk           RiskProfile
	LiquidityScore *float64 // 0-1, confianza de ejecutar cerca del precio cotizado; nil = N/A
	LongTerm       bool     // true si requiere inversión de tiempo multi-paso (leveling)

	// Suplementos para presentación y shopping
	ShoppingList []string
	TradeURL     string
	Details      []Detail
}

// Detail es un par etiqueta/valor del desglose de una estrategia.
// Slice ordenado en vez de map para que el dashboard sea determinista.
type Detail struct {
	Label string
	Chaos float64
}

// Report es el resultado completo de un ciclo de análisis.
type Report struct {
	RunID       string // UUID del ciclo
	League      string
	GeneratedAt time.Time
	DivineRate  float64 // chaos por Divine Orb en el snapshot (0 = usar default)
	Results     []AnalysisResult
}

// SortResults ordena in-place con el orden canónico del runner:
//  1. ProfitPerHour descendente, nil siempre después de cualquier valor
//  2. ProfitPerFlip descendente
//  3. StrategyName ascendente, luego ItemOrCombo, para desempate determinista
func SortResults(results []AnalysisResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return resultLess(results[i], results[j])
	})
}

// resultLess devuelve true si a debe aparecer antes que b.
func resultLess(a, b AnalysisResult) bool {
	switch {
	case a.ProfitPerHour != nil && b.ProfitPerHour == nil:
		return true
	case a.ProfitPerHour == nil && b.ProfitPerHour != nil:
		return false
	case a.ProfitPerHour != nil && b.ProfitPerHour != nil:
		if *a.ProfitPerHour != *b.ProfitPerHour {
			return *a.ProfitPerHour > *b.ProfitPerHour
		}
	}
	if a.ProfitPerFlip != b.ProfitPerFlip {
		return a.ProfitPerFlip > b.ProfitPerFlip
	}
	if a.StrategyName != b.StrategyName {
		return a.StrategyName < b.StrategyName
	}
	return a.ItemOrCombo < b.ItemOrCombo
}

// Float devuelve un puntero al valor dado. Azúcar para construir resultados.
func Float(v float64) *float64 {
	return &v
}
