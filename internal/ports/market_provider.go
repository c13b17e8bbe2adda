package ports

import (
	"context"

	"github.com/alejandrodnm/exilebot/internal/domain"
)

// MarketProvider obtiene el snapshot de precios de todas las categorías
// relevantes para una liga.
type MarketProvider interface {
	// FetchAll devuelve el cache de datos completo para la liga dada.
	// Una categoría que falle en el fetch aparece como tabla vacía:
	// el análisis degrada, nunca aborta por un fallo de red parcial.
	FetchAll(ctx context.Context, league string) (domain.DataCache, error)
}
