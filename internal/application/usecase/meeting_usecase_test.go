package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/testutil/memstore"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

type stubSummarizer struct {
	out   *dto.MeetingAnalysis
	err   error
	calls int
}

func (s *stubSummarizer) SummarizeMeeting(ctx context.Context, title, transcript string) (*dto.MeetingAnalysis, error) {
	s.calls++
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("se esperaba un contexto con timeout")
	}
	return s.out, s.err
}

func newMeetingFixture(t *testing.T, sum *stubSummarizer) (*usecase.MeetingUseCase, *memstore.Store, string) {
	t.Helper()
	st := memstore.New()
	seedProject(t, st, tenantA, "p1")
	uc := usecase.NewMeetingUseCase(st.Meetings(), st.Recordings(), st.Projects(), sum, st, logger.Nop())
	m, err := uc.Create(context.Background(), tenantA, "p1", dto.CreateMeetingRequest{Title: "Revisión de cocina"})
	require.NoError(t, err)
	return uc, st, m.ID
}

func TestMeeting_ProcesarYCrearTareas(t *testing.T) {
	sum := &stubSummarizer{out: &dto.MeetingAnalysis{
		Summary: "Se aprobó la isla de cocina.",
		ActionItems: []entity.ActionItem{
			{Title: "Cotizar mármol", Assignee: "Laura", DueDate: "2025-06-01"},
			{Title: "Enviar planos"},
		},
	}}
	uc, st, meetingID := newMeetingFixture(t, sum)
	ctx := context.Background()

	rec, err := uc.AddRecording(ctx, tenantA, meetingID, dto.CreateRecordingRequest{Transcript: "Cliente: me encanta la isla..."})
	require.NoError(t, err)

	processed, err := uc.Process(ctx, tenantA, meetingID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Se aprobó la isla de cocina.", processed.Summary)
	assert.Len(t, processed.ActionItems, 2)
	assert.NotNil(t, processed.ProcessedAt)

	created, err := uc.CreateTasks(ctx, tenantA, meetingID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, created.CreatedCount)

	tasks, err := st.Tasks().ListByProject(ctx, tenantA, "p1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Cotizar mármol", tasks[0].Title)
	assert.True(t, strings.Contains(tasks[0].Description, "Revisión de cocina"))
	assert.True(t, strings.Contains(tasks[0].Description, "Laura"))
	require.NotNil(t, tasks[0].DueDate)
	assert.Equal(t, "2025-06-01", tasks[0].DueDate.Format("2006-01-02"))
	assert.True(t, strings.Contains(tasks[1].Description, "Sin asignar"))
	assert.Nil(t, tasks[1].DueDate)
}

func TestMeeting_SinTranscripcionEsInvalido(t *testing.T) {
	sum := &stubSummarizer{}
	uc, _, meetingID := newMeetingFixture(t, sum)
	ctx := context.Background()

	rec, err := uc.AddRecording(ctx, tenantA, meetingID, dto.CreateRecordingRequest{StorageURL: "https://files.example.com/a.mp3"})
	require.NoError(t, err)

	_, err = uc.Process(ctx, tenantA, meetingID, rec.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Zero(t, sum.calls)
}

func TestMeeting_CrearTareasSinActionItems(t *testing.T) {
	uc, _, meetingID := newMeetingFixture(t, &stubSummarizer{})
	ctx := context.Background()
	rec, err := uc.AddRecording(ctx, tenantA, meetingID, dto.CreateRecordingRequest{Transcript: "hola"})
	require.NoError(t, err)

	_, err = uc.CreateTasks(ctx, tenantA, meetingID, rec.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMeeting_FalloEnTareasRevierteTodas(t *testing.T) {
	sum := &stubSummarizer{out: &dto.MeetingAnalysis{ActionItems: []entity.ActionItem{{Title: "Uno"}, {Title: "Dos"}}}}
	uc, st, meetingID := newMeetingFixture(t, sum)
	ctx := context.Background()
	rec, err := uc.AddRecording(ctx, tenantA, meetingID, dto.CreateRecordingRequest{Transcript: "x"})
	require.NoError(t, err)
	_, err = uc.Process(ctx, tenantA, meetingID, rec.ID)
	require.NoError(t, err)

	st.FailOn["TaskCreate"] = errors.New("db caída")
	_, err = uc.CreateTasks(ctx, tenantA, meetingID, rec.ID)
	require.Error(t, err)

	tasks, err := st.Tasks().ListByProject(ctx, tenantA, "p1")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestMeeting_GrabacionDeOtraReunion(t *testing.T) {
	uc, _, meetingID := newMeetingFixture(t, &stubSummarizer{})
	ctx := context.Background()
	other, err := uc.Create(ctx, tenantA, "p1", dto.CreateMeetingRequest{Title: "Otra"})
	require.NoError(t, err)
	rec, err := uc.AddRecording(ctx, tenantA, other.ID, dto.CreateRecordingRequest{Transcript: "x"})
	require.NoError(t, err)

	_, err = uc.Process(ctx, tenantA, meetingID, rec.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
