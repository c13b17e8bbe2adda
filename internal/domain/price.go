package domain

import "math"

// PriceEntry es un ítem con precio dentro de una categoría del mercado.
// Chaos es el precio en Chaos Orbs, la moneda de referencia de todo el análisis.
type PriceEntry struct {
	Name     string
	Chaos    float64
	Listings int // número de listings activos — proxy de liquidez (0 = desconocido)

	// Atributos de gema (solo relevantes en la categoría "Gem")
	GemLevel   int
	GemQuality int
	Corrupted  bool
}

// Valid devuelve true si la entrada tiene nombre y precio utilizables.
// Las entradas malformadas se saltan, nunca abortan una estrategia.
func (e PriceEntry) Valid() bool {
	return e.Name != "" && e.Chaos >= 0 && !math.IsNaN(e.Chaos)
}

// PriceTable es la secuencia ordenada de precios de una categoría.
type PriceTable []PriceEntry

// DataCache mapea nombre de categoría ("Currency", "Scarab", "Gem"...) a su
// tabla de precios. Se puebla una vez por ciclo de análisis y las estrategias
// la leen sin mutarla.
type DataCache map[string]PriceTable

// Table devuelve la tabla de la categoría dada. Una categoría ausente se trata
// como tabla vacía, no como error.
func (c DataCache) Table(category string) PriceTable {
	return c[category]
}

// PriceOf busca el precio de un ítem por nombre exacto.
func (t PriceTable) PriceOf(name string) (float64, bool) {
	for _, e := range t {
		if e.Name == name {
			return e.Chaos, true
		}
	}
	return 0, false
}

// Liquid devuelve las entradas con al menos minListings listings activos.
// Con minListings <= 0 devuelve la tabla completa.
func (t PriceTable) Liquid(minListings int) PriceTable {
	if minListings <= 0 {
		return t
	}
	out := make(PriceTable, 0, len(t))
	for _, e := range t {
		if e.Listings >= minListings {
			out = append(out, e)
		}
	}
	return out
}

// Cheapest devuelve la entrada válida más barata de la tabla.
func (t PriceTable) Cheapest() (PriceEntry, bool) {
	var best PriceEntry
	found := false
	for _, e := range t {
		if !e.Valid() {
			continue
		}
		if !found || e.Chaos < best.Chaos {
			best = e
			found = true
		}
	}
	return best, found
}

// Jackpot devuelve la entrada válida más cara de la tabla.
func (t PriceTable) Jackpot() (PriceEntry, bool) {
	var best PriceEntry
	found := false
	for _, e := range t {
		if !e.Valid() {
			continue
		}
		if !found || e.Chaos > best.Chaos {
			best = e
			found = true
		}
	}
	return best, found
}

// MeanChaos devuelve el precio medio de las entradas válidas.
func (t PriceTable) MeanChaos() float64 {
	sum, n := 0.0, 0
	for _, e := range t {
		if !e.Valid() {
			continue
		}
		sum += e.Chaos
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// StdDevChaos devuelve la desviación estándar muestral (n-1) de los precios.
// Devuelve 0 con menos de dos entradas válidas.
func (t PriceTable) StdDevChaos() float64 {
	mean := t.MeanChaos()
	sum, n := 0.0, 0
	for _, e := range t {
		if !e.Valid() {
			continue
		}
		d := e.Chaos - mean
		sum += d * d
		n++
	}
	if n < 2 {
		return 0
	}
	return math.Sqrt(sum / float64(n-1))
}

// Filter devuelve las entradas que cumplen el predicado.
func (t PriceTable) Filter(keep func(PriceEntry) bool) PriceTable {
	out := make(PriceTable, 0, len(t))
	for _, e := range t {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Names devuelve los nombres de todas las entradas, en el orden de la tabla.
func (t PriceTable) Names() []string {
	names := make([]string, 0, len(t))
	for _, e := range t {
		names = append(names, e.Name)
	}
	return names
}
