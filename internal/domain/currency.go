package domain

import (
	"fmt"
	"math"
)

// DefaultDivineRate es el ratio chaos/divine usado cuando el snapshot no trae
// precio de Divine Orb.
const DefaultDivineRate = 200.0

const (
	divineOrbName = "Divine Orb"
	vaalOrbName   = "Vaal Orb"
)

// DivineRate busca el precio del Divine Orb en la tabla Currency del cache.
// Devuelve DefaultDivineRate si no hay dato (tabla ausente o ítem no listado).
func (c DataCache) DivineRate() float64 {
	if price, ok := c.Table("Currency").PriceOf(divineOrbName); ok && price > 0 {
		return price
	}
	return DefaultDivineRate
}

// VaalOrbPrice busca el precio del Vaal Orb en la tabla Currency.
func (c DataCache) VaalOrbPrice() (float64, bool) {
	return c.Table("Currency").PriceOf(vaalOrbName)
}

// FormatChaos formatea un valor en chaos como string legible, convirtiendo a
// divines por encima del rate dado. NaN se muestra como "N/A".
func FormatChaos(chaos, divineRate float64) string {
	if math.IsNaN(chaos) {
		return "N/A"
	}
	if divineRate <= 0 {
		divineRate = DefaultDivineRate
	}
	if math.Abs(chaos) >= divineRate {
		return fmt.Sprintf("%.2f div", chaos/divineRate)
	}
	return fmt.Sprintf("%.1fc", chaos)
}
