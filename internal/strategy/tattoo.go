package strategy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alejandrodnm/exilebot/internal/domain"
)

const (
	tattooFlipName = "tattoo_flip"

	tattooCategory = "Tattoo"
)

// TattooFlip analiza la receta 3-a-1 del vendor para Tattoos, agrupados por
// tribu ("Tattoo of the Ngamahu Firewalker" → tribu Ngamahu). Los tattoos
// "Journey" no entran en la receta y se excluyen.
type TattooFlip struct {
	cfg FlipConfig
}

// NewTattooFlip crea la estrategia con la configuración dada.
func NewTattooFlip(cfg FlipConfig) *TattooFlip {
	return &TattooFlip{cfg: cfg}
}

// Name implementa Strategy.
func (s *TattooFlip) Name() string {
	return tattooFlipName
}

// Analyze implementa Strategy. Un resultado por tribu rentable.
func (s *TattooFlip) Analyze(cache domain.DataCache, league string) ([]domain.AnalysisResult, error) {
	table := cache.Table(tattooCategory).Liquid(s.cfg.MinListings)
	if len(table) == 0 {
		return nil, nil
	}

	groups := make(map[string]domain.PriceTable)
	for _, e := range table {
		if !e.Valid() || strings.Contains(e.Name, "Journey") {
			continue
		}
		tribe, ok := tattooTribe(e.Name)
		if !ok {
			continue
		}
		groups[tribe] = append(groups[tribe], e)
	}

	tribes := make([]string, 0, len(groups))
	for tribe := range groups {
		tribes = append(tribes, tribe)
	}
	sort.Strings(tribes)

	var results []domain.AnalysisResult
	for _, tribe := range tribes {
		p, ok := newPool(groups[tribe])
		if !ok {
			continue
		}
		profit := p.profit()
		if profit <= 0 {
			continue
		}

		shopping := p.shoppingList(s.cfg.PriceTolerance)
		results = append(results, domain.AnalysisResult{
			StrategyName:   tattooFlipName,
			ItemOrCombo:    fmt.Sprintf("Tattoo: %s", tribe),
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

// tattooTribe extrae la tribu: la palabra que sigue a " of the ".
// "Tattoo of the Ngamahu Firewalker" → "Ngamahu".
func tattooTribe(name string) (string, bool) {
	_, rest, found := strings.Cut(name, " of the ")
	if !found {
		return "", false
	}
	tribe, _, _ := strings.Cut(rest, " ")
	if tribe == "" {
		return "", false
	}
	return tribe, true
}
