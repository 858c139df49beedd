package repository

import (
	"context"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// MeetingRepository persistencia de reuniones.
type MeetingRepository interface {
	Create(ctx context.Context, m *entity.Meeting) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Meeting, error)
	ListByProject(ctx context.Context, tenantID, projectID string) ([]*entity.Meeting, error)
}

// RecordingRepository persistencia de grabaciones y su análisis.
type RecordingRepository interface {
	Create(ctx context.Context, r *entity.MeetingRecording) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.MeetingRecording, error)
	// SaveAnalysis guarda resumen, action items y fecha de procesamiento.
	SaveAnalysis(ctx context.Context, r *entity.MeetingRecording) error
}
