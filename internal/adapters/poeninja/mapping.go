package poeninja

import (
	"github.com/alejandrodnm/exilebot/internal/domain"
)

// mapItemLines convierte las filas de itemoverview al modelo de dominio,
// aplicando la blacklist y el suelo de liquidez. Las filas sin nombre o con
// precio inválido se descartan aquí, antes de que ninguna estrategia las vea.
func mapItemLines(lines []itemLine, blacklist map[string]bool, minListings int) domain.PriceTable {
	table := make(domain.PriceTable, 0, len(lines))
	for _, l := range lines {
		e := domain.PriceEntry{
			Name:       l.Name,
			Chaos:      l.ChaosValue,
			Listings:   l.Count,
			GemLevel:   l.GemLevel,
			GemQuality: l.GemQuality,
			Corrupted:  l.Corrupted,
		}
		if !e.Valid() || blacklist[e.Name] {
			continue
		}
		// Solo filtrar por listings cuando el API reporta el dato
		if minListings > 0 && e.Listings > 0 && e.Listings < minListings {
			continue
		}
		table = append(table, e)
	}
	return table
}

// mapCurrencyLines convierte las filas de currencyoverview al modelo de
// dominio. Las monedas no se filtran por liquidez: se usan como referencia de
// precio, no como mercancía del flip.
func mapCurrencyLines(lines []currencyLine, blacklist map[string]bool) domain.PriceTable {
	table := make(domain.PriceTable, 0, len(lines))
	for _, l := range lines {
		e := domain.PriceEntry{
			Name:  l.CurrencyTypeName,
			Chaos: l.ChaosEquivalent,
		}
		if l.Receive != nil {
			e.Listings = l.Receive.Count
		}
		if !e.Valid() || blacklist[e.Name] {
			continue
		}
		table = append(table, e)
	}
	return table
}
