package dto

import (
	"time"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// CreateMeetingRequest alta de reunión.
type CreateMeetingRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// MeetingResponse reunión en respuestas HTTP.
type MeetingResponse struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CreateRecordingRequest registra la grabación (y opcionalmente su transcripción).
type CreateRecordingRequest struct {
	StorageURL string `json:"storageUrl" validate:"omitempty,url"`
	Transcript string `json:"transcript"`
}

// RecordingResponse grabación con su análisis.
type RecordingResponse struct {
	ID          string              `json:"id"`
	MeetingID   string              `json:"meetingId"`
	StorageURL  string              `json:"storageUrl"`
	Transcript  string              `json:"transcript"`
	Summary     string              `json:"summary"`
	ActionItems []entity.ActionItem `json:"actionItems"`
	ProcessedAt *time.Time          `json:"processedAt"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// MeetingAnalysis resultado del resumidor.
type MeetingAnalysis struct {
	Summary     string              `json:"summary"`
	ActionItems []entity.ActionItem `json:"actionItems"`
}

// CreateTasksResponse resultado de convertir action items en tareas.
type CreateTasksResponse struct {
	CreatedCount int `json:"createdCount"`
}
