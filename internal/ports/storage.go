package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/exilebot/internal/domain"
)

// HistoryPoint es una observación histórica de una estrategia persistida.
type HistoryPoint struct {
	Timestamp      time.Time
	RunID          string
	ItemOrCombo    string
	ProfitPerFlip  float64
	ProfitPerHour  *float64
	Risk           domain.RiskProfile
	LiquidityScore *float64
	LongTerm       bool
}

// Storage persiste los resultados de cada ciclo de análisis para el
// histórico de tendencias.
type Storage interface {
	// SaveReport inserta una fila por resultado. Re-ejecutar dentro del mismo
	// segundo para la misma (estrategia, ítem, liga) sobreescribe la fila,
	// no duplica.
	SaveReport(ctx context.Context, report domain.Report) error

	// GetHistory devuelve las observaciones de una estrategia en una liga,
	// ordenadas por timestamp ascendente.
	GetHistory(ctx context.Context, strategyName, league string) ([]HistoryPoint, error)

	Close() error
}
