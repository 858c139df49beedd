package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/ports"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

// summarizeTimeout límite para la llamada al resumidor IA.
const summarizeTimeout = 10 * time.Second

// TaskTxRunner ejecuta fn con un TaskRepository atado a una transacción.
type TaskTxRunner interface {
	RunTasks(ctx context.Context, fn func(tasks repository.TaskRepository) error) error
}

// MeetingUseCase reuniones, grabaciones, resumen IA y conversión de action items en tareas.
type MeetingUseCase struct {
	meetings   repository.MeetingRepository
	recordings repository.RecordingRepository
	projects   repository.ProjectRepository
	summarizer ports.Summarizer
	tx         TaskTxRunner
	log        *logger.Logger
}

// NewMeetingUseCase construye el caso de uso.
func NewMeetingUseCase(
	meetings repository.MeetingRepository,
	recordings repository.RecordingRepository,
	projects repository.ProjectRepository,
	summarizer ports.Summarizer,
	tx TaskTxRunner,
	log *logger.Logger,
) *MeetingUseCase {
	return &MeetingUseCase{
		meetings: meetings, recordings: recordings, projects: projects,
		summarizer: summarizer, tx: tx, log: log.Component("meetings"),
	}
}

// Create agenda una reunión del proyecto.
func (uc *MeetingUseCase) Create(ctx context.Context, tenantID, projectID string, in dto.CreateMeetingRequest) (*dto.MeetingResponse, error) {
	if err := requireProject(ctx, uc.projects, tenantID, projectID); err != nil {
		return nil, err
	}
	m := &entity.Meeting{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		ProjectID:   projectID,
		Title:       strings.TrimSpace(in.Title),
		ScheduledAt: in.ScheduledAt,
		CreatedAt:   time.Now(),
	}
	if err := uc.meetings.Create(ctx, m); err != nil {
		return nil, err
	}
	out := toMeetingResponse(m)
	return &out, nil
}

// List lista las reuniones del proyecto.
func (uc *MeetingUseCase) List(ctx context.Context, tenantID, projectID string) ([]dto.MeetingResponse, error) {
	if err := requireProject(ctx, uc.projects, tenantID, projectID); err != nil {
		return nil, err
	}
	list, err := uc.meetings.ListByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MeetingResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMeetingResponse(m))
	}
	return out, nil
}

// AddRecording registra la grabación de una reunión.
func (uc *MeetingUseCase) AddRecording(ctx context.Context, tenantID, meetingID string, in dto.CreateRecordingRequest) (*dto.RecordingResponse, error) {
	if _, err := uc.meeting(ctx, tenantID, meetingID); err != nil {
		return nil, err
	}
	r := &entity.MeetingRecording{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		MeetingID:  meetingID,
		StorageURL: in.StorageURL,
		Transcript: in.Transcript,
		CreatedAt:  time.Now(),
	}
	if err := uc.recordings.Create(ctx, r); err != nil {
		return nil, err
	}
	out := toRecordingResponse(r)
	return &out, nil
}

// Process resume la transcripción con IA y guarda resumen y action items.
func (uc *MeetingUseCase) Process(ctx context.Context, tenantID, meetingID, recordingID string) (*dto.RecordingResponse, error) {
	m, err := uc.meeting(ctx, tenantID, meetingID)
	if err != nil {
		return nil, err
	}
	r, err := uc.recording(ctx, tenantID, meetingID, recordingID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(r.Transcript) == "" {
		return nil, fmt.Errorf("%w: la grabación no tiene transcripción", domain.ErrInvalidInput)
	}

	aiCtx, cancel := context.WithTimeout(ctx, summarizeTimeout)
	defer cancel()
	analysis, err := uc.summarizer.SummarizeMeeting(aiCtx, m.Title, r.Transcript)
	if err != nil {
		uc.log.Error().Err(err).Str("recording_id", r.ID).Msg("falló el resumen de la reunión")
		return nil, fmt.Errorf("resumir reunión: %w", err)
	}

	now := time.Now()
	r.Summary = analysis.Summary
	r.ActionItems = analysis.ActionItems
	r.ProcessedAt = &now
	if err := uc.recordings.SaveAnalysis(ctx, r); err != nil {
		return nil, err
	}
	uc.log.Info().Str("recording_id", r.ID).Int("action_items", len(r.ActionItems)).Msg("reunión procesada")
	out := toRecordingResponse(r)
	return &out, nil
}

// CreateTasks crea una tarea del proyecto por cada action item de la grabación.
func (uc *MeetingUseCase) CreateTasks(ctx context.Context, tenantID, meetingID, recordingID string) (*dto.CreateTasksResponse, error) {
	m, err := uc.meeting(ctx, tenantID, meetingID)
	if err != nil {
		return nil, err
	}
	r, err := uc.recording(ctx, tenantID, meetingID, recordingID)
	if err != nil {
		return nil, err
	}
	if len(r.ActionItems) == 0 {
		return nil, fmt.Errorf("%w: la grabación no tiene action items", domain.ErrInvalidInput)
	}

	now := time.Now()
	created := 0
	err = uc.tx.RunTasks(ctx, func(tasks repository.TaskRepository) error {
		for _, item := range r.ActionItems {
			t := &entity.Task{
				ID:          uuid.New().String(),
				TenantID:    tenantID,
				ProjectID:   m.ProjectID,
				Title:       item.Title,
				Description: actionItemDescription(m.Title, item),
				Status:      entity.TaskStatusTodo,
				DueDate:     parseDueDate(item.DueDate),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := tasks.Create(ctx, t); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreateTasksResponse{CreatedCount: created}, nil
}

func actionItemDescription(meetingTitle string, item entity.ActionItem) string {
	assignee := item.Assignee
	if assignee == "" {
		assignee = "Sin asignar"
	}
	due := item.DueDate
	if due == "" {
		due = "N/A"
	}
	return fmt.Sprintf("Creada desde la reunión: %s\nResponsable: %s\nFecha límite: %s", meetingTitle, assignee, due)
}

// parseDueDate acepta fechas ISO (2006-01-02 o RFC 3339); lo demás queda sin fecha.
func parseDueDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func (uc *MeetingUseCase) meeting(ctx context.Context, tenantID, meetingID string) (*entity.Meeting, error) {
	m, err := uc.meetings.GetByID(ctx, tenantID, meetingID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: reunión %s", domain.ErrNotFound, meetingID)
	}
	return m, nil
}

func (uc *MeetingUseCase) recording(ctx context.Context, tenantID, meetingID, recordingID string) (*entity.MeetingRecording, error) {
	r, err := uc.recordings.GetByID(ctx, tenantID, recordingID)
	if err != nil {
		return nil, err
	}
	if r == nil || r.MeetingID != meetingID {
		return nil, fmt.Errorf("%w: grabación %s", domain.ErrNotFound, recordingID)
	}
	return r, nil
}

func toMeetingResponse(m *entity.Meeting) dto.MeetingResponse {
	return dto.MeetingResponse{ID: m.ID, ProjectID: m.ProjectID, Title: m.Title, ScheduledAt: m.ScheduledAt, CreatedAt: m.CreatedAt}
}

func toRecordingResponse(r *entity.MeetingRecording) dto.RecordingResponse {
	items := r.ActionItems
	if items == nil {
		items = []entity.ActionItem{}
	}
	return dto.RecordingResponse{
		ID:          r.ID,
		MeetingID:   r.MeetingID,
		StorageURL:  r.StorageURL,
		Transcript:  r.Transcript,
		Summary:     r.Summary,
		ActionItems: items,
		ProcessedAt: r.ProcessedAt,
		CreatedAt:   r.CreatedAt,
	}
}
