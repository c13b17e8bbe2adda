package strategy

// flip.go — matemática compartida de las recetas 3-a-1 del vendor.
//
// Comprar 3 ítems baratos de un pool y venderlos al vendor devuelve un ítem
// aleatorio del mismo pool: el coste es 3× el más barato y el retorno esperado
// es la media del pool. La volatilidad del pool decide el perfil de riesgo.

import (
	"github.com/alejandrodnm/exilebot/internal/domain"
)

// FlipConfig son los parámetros compartidos por las estrategias de flip de
// ciclo corto. cmd/ la construye desde la configuración validada.
type FlipConfig struct {
	FlipsPerHour   float64 // ciclos asumidos por hora para estimar profit/hora
	RiskThresholds domain.RiskThresholds
	MinListings    int     // suelo de liquidez: ítems con menos listings se excluyen
	NumJackpots    int     // jackpots a mostrar en el desglose
	PriceTolerance float64 // margen en chaos sobre el más barato para la shopping list
	TradeURLBase   string
}

// pool es el resumen estadístico de un grupo de ítems intercambiables en la
// receta 3-a-1.
type pool struct {
	entries  domain.PriceTable
	cheapest domain.PriceEntry
	mean     float64
	stdDev   float64
	jackpot  domain.PriceEntry
}

// newPool calcula las estadísticas del grupo. ok es false si el pool no tiene
// entradas válidas.
func newPool(entries domain.PriceTable) (pool, bool) {
	valid := entries.Filter(domain.PriceEntry.Valid)
	cheapest, ok := valid.Cheapest()
	if !ok {
		return pool{}, false
	}
	jackpot, _ := valid.Jackpot()
	return pool{
		entries:  valid,
		cheapest: cheapest,
		mean:     valid.MeanChaos(),
		stdDev:   valid.StdDevChaos(),
		jackpot:  jackpot,
	}, true
}

// cost devuelve el coste de un ciclo: 3× el ítem más barato.
func (p pool) cost() float64 {
	return 3 * p.cheapest.Chaos
}

// profit devuelve el profit esperado por ciclo: retorno medio menos coste.
func (p pool) profit() float64 {
	return p.mean - p.cost()
}

// liquidity aproxima la confianza de ejecutar cerca del precio cotizado como
// la fracción cheapest/mean: cuanto más lejos esté el suelo de la media, más
// fino es el margen real.
func (p pool) liquidity() float64 {
	if p.mean <= 0 {
		return 0
	}
	return p.cheapest.Chaos / p.mean
}

// shoppingList devuelve los nombres comprables: todo lo que cueste hasta el
// más barato + tolerance.
func (p pool) shoppingList(tolerance float64) []string {
	ceiling := p.cheapest.Chaos + tolerance
	return p.entries.Filter(func(e domain.PriceEntry) bool {
		return e.Chaos <= ceiling
	}).Names()
}
