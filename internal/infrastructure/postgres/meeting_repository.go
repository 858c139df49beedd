package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

var (
	_ repository.MeetingRepository   = (*MeetingRepo)(nil)
	_ repository.RecordingRepository = (*RecordingRepo)(nil)
)

// MeetingRepo persiste reuniones.
type MeetingRepo struct {
	q Querier
}

// NewMeetingRepository construye el adaptador.
func NewMeetingRepository(q Querier) *MeetingRepo {
	return &MeetingRepo{q: q}
}

// Create persiste una reunión.
func (r *MeetingRepo) Create(ctx context.Context, m *entity.Meeting) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO meetings (id, tenant_id, project_id, title, scheduled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.TenantID, m.ProjectID, m.Title, m.ScheduledAt, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proyecto inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert meeting: %w", err)
	}
	return nil
}

// GetByID obtiene una reunión del estudio.
func (r *MeetingRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Meeting, error) {
	if !validUUID(tenantID, id) {
		return nil, nil
	}
	var m entity.Meeting
	err := r.q.QueryRow(ctx, `
		SELECT id, tenant_id, project_id, title, scheduled_at, created_at
		FROM meetings WHERE id = $1 AND tenant_id = $2`, id, tenantID,
	).Scan(&m.ID, &m.TenantID, &m.ProjectID, &m.Title, &m.ScheduledAt, &m.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	return &m, nil
}

// ListByProject lista las reuniones del proyecto, más recientes primero.
func (r *MeetingRepo) ListByProject(ctx context.Context, tenantID, projectID string) ([]*entity.Meeting, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, tenant_id, project_id, title, scheduled_at, created_at
		FROM meetings WHERE tenant_id = $1 AND project_id = $2 ORDER BY created_at DESC`, tenantID, projectID)
	if err != nil {
		return nil, queryErr("list meetings", err)
	}
	defer rows.Close()
	var list []*entity.Meeting
	for rows.Next() {
		var m entity.Meeting
		if err := rows.Scan(&m.ID, &m.TenantID, &m.ProjectID, &m.Title, &m.ScheduledAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// RecordingRepo persiste grabaciones y su análisis IA. action_items se guarda como JSONB.
type RecordingRepo struct {
	q Querier
}

// NewRecordingRepository construye el adaptador.
func NewRecordingRepository(q Querier) *RecordingRepo {
	return &RecordingRepo{q: q}
}

// Create persiste una grabación sin procesar.
func (r *RecordingRepo) Create(ctx context.Context, rec *entity.MeetingRecording) error {
	items, err := marshalActionItems(rec.ActionItems)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO meeting_recordings (id, tenant_id, meeting_id, storage_url, transcript, summary,
			action_items, processed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.TenantID, rec.MeetingID, rec.StorageURL, rec.Transcript, rec.Summary,
		items, rec.ProcessedAt, rec.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: reunión inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert recording: %w", err)
	}
	return nil
}

// GetByID obtiene una grabación del estudio.
func (r *RecordingRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.MeetingRecording, error) {
	if !validUUID(tenantID, id) {
		return nil, nil
	}
	var rec entity.MeetingRecording
	var items []byte
	err := r.q.QueryRow(ctx, `
		SELECT id, tenant_id, meeting_id, storage_url, transcript, summary, action_items, processed_at, created_at
		FROM meeting_recordings WHERE id = $1 AND tenant_id = $2`, id, tenantID,
	).Scan(&rec.ID, &rec.TenantID, &rec.MeetingID, &rec.StorageURL, &rec.Transcript, &rec.Summary,
		&items, &rec.ProcessedAt, &rec.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recording: %w", err)
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &rec.ActionItems); err != nil {
			return nil, fmt.Errorf("decode action items: %w", err)
		}
	}
	return &rec, nil
}

// SaveAnalysis guarda resumen, tareas y fecha de proceso.
func (r *RecordingRepo) SaveAnalysis(ctx context.Context, rec *entity.MeetingRecording) error {
	items, err := marshalActionItems(rec.ActionItems)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		UPDATE meeting_recordings SET summary = $3, action_items = $4, processed_at = $5
		WHERE id = $1 AND tenant_id = $2`,
		rec.ID, rec.TenantID, rec.Summary, items, rec.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

func marshalActionItems(items []entity.ActionItem) ([]byte, error) {
	if items == nil {
		items = []entity.ActionItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode action items: %w", err)
	}
	return b, nil
}
