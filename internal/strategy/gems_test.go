package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/exilebot/internal/domain"
)

func testGemConfig() GemInvestConfig {
	return GemInvestConfig{
		Probabilities: GemOutcomeProbs{
			NoChange:      0.25,
			LevelChange:   0.25,
			QualityChange: 0.25,
			VaalVersion:   0.25,
		},
		MinProfitChaos: 10,
		MaxResults:     15,
		TradeURLBase:   "https://www.pathofexile.com/trade/exchange/",
	}
}

// gemCache construye una tabla con las seis variantes de "Fireball":
// compra 10c, venta base 100c, L21 500c, L19 40c, Q23 200c, Vaal 300c.
func gemCache() domain.DataCache {
	return domain.DataCache{
		"Gem": {
			{Name: "Fireball", Chaos: 10, GemLevel: 1, GemQuality: 20},
			{Name: "Fireball", Chaos: 100, GemLevel: 20, GemQuality: 20},
			{Name: "Fireball", Chaos: 500, GemLevel: 21, GemQuality: 20, Corrupted: true},
			{Name: "Fireball", Chaos: 40, GemLevel: 19, GemQuality: 20, Corrupted: true},
			{Name: "Fireball", Chaos: 200, GemLevel: 20, GemQuality: 23, Corrupted: true},
			{Name: "Vaal Fireball", Chaos: 300, GemLevel: 20, GemQuality: 20, Corrupted: true},
		},
		"Currency": {
			{Name: "Vaal Orb", Chaos: 1},
		},
	}
}

func TestGemInvest_ExpectedValueMath(t *testing.T) {
	s := NewGemInvest(testGemConfig())
	results, err := s.Analyze(gemCache(), "Settlers")
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "gem_invest", r.StrategyName)
	assert.Equal(t, "Gem Invest: Fireball", r.ItemOrCombo)

	// EV = 0.25×100 + 0.125×500 + 0.125×40 + 0.25×200 + 0.25×300 = 217.5
	// Coste = compra 10 + Vaal Orb 1 = 11; profit = 206.5
	require.NotNil(t, r.InputCost)
	assert.InDelta(t, 11.0, *r.InputCost, 1e-9)
	assert.InDelta(t, 206.5, r.ProfitPerFlip, 1e-9)
	require.NotNil(t, r.ProfitStdDev)
	assert.InDelta(t, 138.3609, *r.ProfitStdDev, 1e-3) // sqrt(19143.75)

	assert.Equal(t, domain.RiskInvestment, r.Risk)
	assert.True(t, r.LongTerm)
	assert.Nil(t, r.ProfitPerHour)
	assert.Equal(t, []string{"Fireball (Level 1, 20% Quality)"}, r.ShoppingList)
}

func TestGemInvest_SkipsCandidateMissingAnyOutcome(t *testing.T) {
	// Sin precio para L20Q23 el pricing es parcial: la candidata se descarta
	// entera, nunca se rellena con cero
	cache := gemCache()
	gems := cache["Gem"]
	var trimmed domain.PriceTable
	for _, e := range gems {
		if e.GemQuality == 23 {
			continue
		}
		trimmed = append(trimmed, e)
	}
	cache["Gem"] = trimmed

	s := NewGemInvest(testGemConfig())
	results, err := s.Analyze(cache, "Settlers")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGemInvest_BadProbabilityTableFails(t *testing.T) {
	cfg := testGemConfig()
	cfg.Probabilities.VaalVersion = 0.5 // suma 1.25

	s := NewGemInvest(cfg)
	_, err := s.Analyze(gemCache(), "Settlers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probabilities")
}

func TestGemInvest_RequiresVaalOrbPrice(t *testing.T) {
	cache := gemCache()
	delete(cache, "Currency")

	s := NewGemInvest(testGemConfig())
	_, err := s.Analyze(cache, "Settlers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Vaal Orb")
}

func TestGemInvest_MinProfitFilter(t *testing.T) {
	cfg := testGemConfig()
	cfg.MinProfitChaos = 500 // por encima del profit de 206.5

	s := NewGemInvest(cfg)
	results, err := s.Analyze(gemCache(), "Settlers")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGemInvest_Deterministic(t *testing.T) {
	s := NewGemInvest(testGemConfig())

	first, err := s.Analyze(gemCache(), "Settlers")
	require.NoError(t, err)
	second, err := s.Analyze(gemCache(), "Settlers")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCutVaalPrefix(t *testing.T) {
	base, ok := cutVaalPrefix("Vaal Fireball")
	require.True(t, ok)
	assert.Equal(t, "Fireball", base)

	_, ok = cutVaalPrefix("Fireball")
	assert.False(t, ok)

	_, ok = cutVaalPrefix("Vaal ")
	assert.False(t, ok)
}
