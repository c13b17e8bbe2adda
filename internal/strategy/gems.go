package strategy

import (
	"fmt"
	"math"
	"sort"

	"github.com/alejandrodnm/exilebot/internal/domain"
)

const (
	gemInvestName = "gem_invest"

	gemCategory = "Gem"
)

// GemOutcomeProbs es la distribución de outcomes de corromper una gema con un
// Vaal Orb. Debe sumar 1.0; level_change se reparte a partes iguales entre
// +1 y -1 nivel.
type GemOutcomeProbs struct {
	NoChange      float64
	LevelChange   float64
	QualityChange float64
	VaalVersion   float64
}

// GemInvestConfig parametriza la estrategia de inversión en gemas.
type GemInvestConfig struct {
	Probabilities  GemOutcomeProbs
	MinProfitChaos float64 // profit mínimo para emitir un resultado
	MaxResults     int
	TradeURLBase   string
}

// GemInvest analiza la inversión a largo plazo de comprar, subir de nivel y
// corromper skill gems. Es el único ciclo con payoff estocástico: el resultado
// de la corrupción es una distribución discreta, no un número.
//
// TODO: la ruta correcta es la vendor recipe clásica (3× gemas nivel 1 → gema
// con +1 de calidad, repetir hasta 20%, subir a 20 y corromper). poe.ninja no
// publica precios de gemas low-quality, así que aproximamos con la ruta
// L1Q20 → L20Q20 que sí tiene datos. Es un compromiso de disponibilidad de
// datos documentado, no un bug: mantener la aproximación hasta tener una
// fuente de precios para gemas sin calidad.
type GemInvest struct {
	cfg GemInvestConfig
}

// NewGemInvest crea la estrategia con la configuración dada.
func NewGemInvest(cfg GemInvestConfig) *GemInvest {
	return &GemInvest{cfg: cfg}
}

// Name implementa Strategy.
func (s *GemInvest) Name() string {
	return gemInvestName
}

// gemVariants son las tablas de precios por nombre de gema para cada variante
// que participa en el cálculo.
type gemVariants struct {
	buyL1   map[string]float64 // L1 Q20 sin corromper — la compra
	sellL20 map[string]float64 // L20 Q20 sin corromper — outcome "no change"
	l21     map[string]float64 // L21 Q20 corrupta — outcome "level +1"
	l19     map[string]float64 // L19 Q20 corrupta — outcome "level -1"
	q23     map[string]float64 // L20 Q23 corrupta — outcome "quality +3"
	vaal    map[string]float64 // variante Vaal a L20 — outcome "vaal version"
}

// Analyze implementa Strategy. Un resultado por gema cuya corrupción tiene
// valor esperado por encima del mínimo configurado.
func (s *GemInvest) Analyze(cache domain.DataCache, league string) ([]domain.AnalysisResult, error) {
	if sum := s.probabilitySum(); math.Abs(sum-1.0) > 1e-6 {
		// Tabla mal especificada: mejor cero resultados que un EV engañoso
		return nil, fmt.Errorf("gem_invest: outcome probabilities sum to %v, want 1.0", sum)
	}

	gems := cache.Table(gemCategory)
	if len(gems) == 0 {
		return nil, nil
	}
	vaalOrb, ok := cache.VaalOrbPrice()
	if !ok {
		return nil, fmt.Errorf("gem_invest: Vaal Orb price not found in Currency table")
	}

	variants := collectVariants(gems)

	// Candidatas: gemas con precio de compra y de venta base, en orden estable
	names := make([]string, 0, len(variants.buyL1))
	for name := range variants.buyL1 {
		if _, ok := variants.sellL20[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var results []domain.AnalysisResult
	for _, name := range names {
		r, ok := s.analyzeGem(name, variants, vaalOrb, league)
		if !ok {
			continue
		}
		results = append(results, r)
	}

	// Mejores primero, recortado al máximo configurado
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].ProfitPerFlip != results[j].ProfitPerFlip {
			return results[i].ProfitPerFlip > results[j].ProfitPerFlip
		}
		return results[i].ItemOrCombo < results[j].ItemOrCombo
	})
	if len(results) > s.cfg.MaxResults {
		results = results[:s.cfg.MaxResults]
	}
	return results, nil
}

// analyzeGem evalúa una gema concreta. ok es false si falta el precio de
// cualquier outcome — un pricing parcial sesgaría la expectativa en silencio,
// así que la candidata se descarta entera.
func (s *GemInvest) analyzeGem(name string, v gemVariants, vaalOrb float64, league string) (domain.AnalysisResult, bool) {
	buy := v.buyL1[name]
	sell := v.sellL20[name]

	dist, ok := s.outcomeDistribution(name, v)
	if !ok {
		return domain.AnalysisResult{}, false
	}
	if err := dist.Validate(); err != nil {
		return domain.AnalysisResult{}, false
	}

	// Coste de un ciclo: la gema base más el Vaal Orb de la corrupción final
	inputCost := buy + vaalOrb
	ev := dist.ExpectedValue()
	profit := ev - inputCost
	stdDev := dist.StdDev()

	if profit <= s.cfg.MinProfitChaos {
		return domain.AnalysisResult{}, false
	}

	shopping := []string{fmt.Sprintf("%s (Level 1, 20%% Quality)", name)}
	return domain.AnalysisResult{
		StrategyName:  gemInvestName,
		ItemOrCombo:   "Gem Invest: " + name,
		InputCost:     domain.Float(inputCost),
		ProfitPerFlip: profit,
		ProfitPerHour: nil, // inversión multi-día: el profit/hora no aplica
		ProfitStdDev:  domain.Float(stdDev),
		Risk:          domain.RiskInvestment,
		LongTerm:      true,
		ShoppingList:  shopping,
		TradeURL:      domain.BulkTradeURL(s.cfg.TradeURLBase, league, []string{name}),
		Details: []domain.Detail{
			{Label: "Buy Price (L1Q20)", Chaos: buy},
			{Label: "Profit (Level Only)", Chaos: sell - buy},
			{Label: "Corruption EV", Chaos: ev - sell - vaalOrb},
			{Label: "Expected Value", Chaos: ev},
			{Label: "Sell Price (L20Q20)", Chaos: sell},
			{Label: "Sell Price (L21Q20)", Chaos: v.l21[name]},
			{Label: "Sell Price (L19Q20)", Chaos: v.l19[name]},
			{Label: "Sell Price (L20Q23)", Chaos: v.q23[name]},
			{Label: "Sell Price (Vaal L20)", Chaos: v.vaal[name]},
		},
	}, true
}

// outcomeDistribution construye la distribución de outcomes de corromper la
// gema dada. ok es false si falta algún precio.
func (s *GemInvest) outcomeDistribution(name string, v gemVariants) (domain.OutcomeDistribution, bool) {
	prices := [5]float64{}
	sources := [5]map[string]float64{v.sellL20, v.l21, v.l19, v.q23, v.vaal}
	for i, src := range sources {
		p, ok := src[name]
		if !ok {
			return nil, false
		}
		prices[i] = p
	}

	probs := s.cfg.Probabilities
	return domain.OutcomeDistribution{
		{Label: "no change", Probability: probs.NoChange, Chaos: prices[0]},
		{Label: "level +1", Probability: probs.LevelChange / 2, Chaos: prices[1]},
		{Label: "level -1", Probability: probs.LevelChange / 2, Chaos: prices[2]},
		{Label: "quality +3", Probability: probs.QualityChange, Chaos: prices[3]},
		{Label: "vaal version", Probability: probs.VaalVersion, Chaos: prices[4]},
	}, true
}

func (s *GemInvest) probabilitySum() float64 {
	p := s.cfg.Probabilities
	return p.NoChange + p.LevelChange + p.QualityChange + p.VaalVersion
}

// collectVariants indexa la tabla de gemas por nombre para cada variante.
// Las entradas malformadas se ignoran sin abortar.
func collectVariants(gems domain.PriceTable) gemVariants {
	v := gemVariants{
		buyL1:   make(map[string]float64),
		sellL20: make(map[string]float64),
		l21:     make(map[string]float64),
		l19:     make(map[string]float64),
		q23:     make(map[string]float64),
		vaal:    make(map[string]float64),
	}
	for _, e := range gems {
		if !e.Valid() {
			continue
		}
		switch {
		case !e.Corrupted && e.GemLevel == 1 && e.GemQuality == 20:
			v.buyL1[e.Name] = e.Chaos
		case !e.Corrupted && e.GemLevel == 20 && e.GemQuality == 20:
			v.sellL20[e.Name] = e.Chaos
		case e.Corrupted && e.GemLevel == 21 && e.GemQuality == 20:
			v.l21[e.Name] = e.Chaos
		case e.Corrupted && e.GemLevel == 19 && e.GemQuality == 20:
			v.l19[e.Name] = e.Chaos
		case e.Corrupted && e.GemLevel == 20 && e.GemQuality == 23:
			v.q23[e.Name] = e.Chaos
		}
		// La variante Vaal es una gema distinta: "Vaal Fireball" a L20
		if e.Corrupted && e.GemLevel == 20 && e.GemQuality == 20 {
			if base, found := cutVaalPrefix(e.Name); found {
				v.vaal[base] = e.Chaos
			}
		}
	}
	return v
}

// cutVaalPrefix devuelve el nombre base de una gema Vaal ("Vaal Fireball" →
// "Fireball"). found es false si el nombre no lleva el prefijo.
func cutVaalPrefix(name string) (string, bool) {
	const prefix = "Vaal "
	if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
		return "", false
	}
	return name[len(prefix):], true
}
