package strategy

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/alejandrodnm/exilebot/internal/domain"
)

const (
	scarabGambleName = "scarab_gamble"
	scarabByTypeName = "scarab_by_type"

	scarabCategory = "Scarab"
)

// scarabTypePattern extrae el tipo de un scarab: "Harbinger Scarab" y
// "Scarab of Wisps" son formatos válidos.
var scarabTypePattern = regexp.MustCompile(`^(\w+) Scarab|^Scarab of (\w+)`)

// ScarabGamble analiza la receta 3-a-1 sobre TODOS los scarabs como un único
// pool. Ingreso estable: el pool completo diluye la varianza de los tipos caros.
type ScarabGamble struct {
	cfg FlipConfig
}

// NewScarabGamble crea la estrategia con la configuración dada.
func NewScarabGamble(cfg FlipConfig) *ScarabGamble {
	return &ScarabGamble{cfg: cfg}
}

// Name implementa Strategy.
func (s *ScarabGamble) Name() string {
	return scarabGambleName
}

// Analyze implementa Strategy. Produce como máximo un resultado: el pool completo.
func (s *ScarabGamble) Analyze(cache domain.DataCache, league string) ([]domain.AnalysisResult, error) {
	table := cache.Table(scarabCategory).Liquid(s.cfg.MinListings)

	p, ok := newPool(table)
	if !ok {
		return nil, nil
	}
	profit := p.profit()
	if profit <= 0 {
		return nil, nil
	}

	// Comprable: todo lo que cueste menos de un tercio del retorno medio
	maxBuy := p.mean / 3
	shopping := p.entries.Filter(func(e domain.PriceEntry) bool {
		return e.Chaos < maxBuy
	}).Names()

	details := []domain.Detail{
		{Label: "Pool Size", Chaos: float64(len(p.entries))},
		{Label: "Cost per Flip", Chaos: p.cost()},
		{Label: "Recommended Max Buy Price", Chaos: maxBuy},
	}
	details = append(details, jackpotDetails(p.entries, s.cfg.NumJackpots)...)

	result := domain.AnalysisResult{
		StrategyName:   scarabGambleName,
		ItemOrCombo:    "Scarab: Full Pool (3-to-1)",
		InputCost:      domain.Float(p.cheapest.Chaos),
		ProfitPerFlip:  profit,
		ProfitPerHour:  domain.Float(profit * s.cfg.FlipsPerHour),
		ProfitStdDev:   domain.Float(p.stdDev),
		Risk:           s.cfg.RiskThresholds.Classify(p.stdDev),
		LiquidityScore: domain.Float(p.liquidity()),
		ShoppingList:   shopping,
		TradeURL:       domain.BulkTradeURL(s.cfg.TradeURLBase, league, shopping),
		Details:        details,
	}
	return []domain.AnalysisResult{result}, nil
}

// ScarabByType analiza la receta 3-a-1 por tipo de scarab. Pools pequeños y
// volátiles: gambles de riesgo alto con jackpots gordos.
type ScarabByType struct {
	cfg FlipConfig
}

// NewScarabByType crea la estrategia con la configuración dada.
func NewScarabByType(cfg FlipConfig) *ScarabByType {
	return &ScarabByType{cfg: cfg}
}

// Name implementa Strategy.
func (s *ScarabByType) Name() string {
	return scarabByTypeName
}

// Analyze implementa Strategy. Un resultado por tipo de scarab rentable.
func (s *ScarabByType) Analyze(cache domain.DataCache, league string) ([]domain.AnalysisResult, error) {
	table := cache.Table(scarabCategory).Liquid(s.cfg.MinListings)
	if len(table) == 0 {
		return nil, nil
	}

	groups := make(map[string]domain.PriceTable)
	for _, e := range table {
		if !e.Valid() {
			continue
		}
		kind, ok := scarabType(e.Name)
		if !ok {
			continue
		}
		groups[kind] = append(groups[kind], e)
	}

	// Orden lexicográfico de tipos: ejecución reproducible
	kinds := make([]string, 0, len(groups))
	for kind := range groups {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	var results []domain.AnalysisResult
	for _, kind := range kinds {
		p, ok := newPool(groups[kind])
		if !ok || len(p.entries) <= 1 {
			// Un pool de un solo scarab no es un gamble, es comprarte a ti mismo
			continue
		}
		profit := p.profit()
		if profit <= 0 {
			continue
		}

		shopping := p.shoppingList(s.cfg.PriceTolerance)
		results = append(results, domain.AnalysisResult{
			StrategyName:   scarabByTypeName,
			ItemOrCombo:    fmt.Sprintf("Scarab Type: %s", kind),
			InputCost:      domain.Float(p.cheapest.Chaos),
			ProfitPerFlip:  profit,
			ProfitPerHour:  domain.Float(profit * s.cfg.FlipsPerHour),
			ProfitStdDev:   domain.Float(p.stdDev),
			Risk:           s.cfg.RiskThresholds.Classify(p.stdDev),
			LiquidityScore: domain.Float(p.liquidity()),
			ShoppingList:   shopping,
			TradeURL:       domain.BulkTradeURL(s.cfg.TradeURLBase, league, shopping),
			Details: []domain.Detail{
				{Label: "Jackpot", Chaos: p.jackpot.Chaos},
				{Label: "Pool Size", Chaos: float64(len(p.entries))},
				{Label: "Cost per Flip", Chaos: p.cost()},
			},
		})
	}
	return results, nil
}

// scarabType extrae el tipo de un nombre de scarab. ok es false para nombres
// que no siguen ninguno de los dos formatos.
func scarabType(name string) (string, bool) {
	m := scarabTypePattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}

// jackpotDetails devuelve los n ítems más caros del pool como entradas del
// desglose.
func jackpotDetails(entries domain.PriceTable, n int) []domain.Detail {
	sorted := make(domain.PriceTable, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Chaos != sorted[j].Chaos {
			return sorted[i].Chaos > sorted[j].Chaos
		}
		return sorted[i].Name < sorted[j].Name
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	details := make([]domain.Detail, 0, n)
	for _, e := range sorted[:n] {
		details = append(details, domain.Detail{Label: "Jackpot: " + e.Name, Chaos: e.Chaos})
	}
	return details
}
