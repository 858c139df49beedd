package ports

import (
	"context"

	"github.com/jhoicas/atelier-api/internal/application/dto"
)

// SchedulePDFGenerator genera el PDF de cronograma de specs de un proyecto.
type SchedulePDFGenerator interface {
	GenerateSchedule(ctx context.Context, doc dto.ScheduleDocument) ([]byte, error)
}
