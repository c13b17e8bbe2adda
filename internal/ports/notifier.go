package ports

import (
	"context"

	"github.com/alejandrodnm/exilebot/internal/domain"
)

// Notifier presenta el resultado de un ciclo de análisis al usuario.
type Notifier interface {
	// Notify renderiza el report completo (dashboard, desglose, etc.).
	Notify(ctx context.Context, report domain.Report) error
}
