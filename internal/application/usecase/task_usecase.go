package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

// TaskUseCase CRUD de tareas de proyecto.
type TaskUseCase struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(tasks repository.TaskRepository, projects repository.ProjectRepository) *TaskUseCase {
	return &TaskUseCase{tasks: tasks, projects: projects}
}

// Create crea una tarea en el proyecto.
func (uc *TaskUseCase) Create(ctx context.Context, tenantID, projectID string, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := requireProject(ctx, uc.projects, tenantID, projectID); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.TaskStatusTodo
	}
	now := time.Now()
	t := &entity.Task{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		ProjectID:   projectID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      status,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	out := toTaskResponse(t)
	return &out, nil
}

// List lista las tareas del proyecto.
func (uc *TaskUseCase) List(ctx context.Context, tenantID, projectID string) ([]dto.TaskResponse, error) {
	if err := requireProject(ctx, uc.projects, tenantID, projectID); err != nil {
		return nil, err
	}
	list, err := uc.tasks.ListByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTaskResponse(t))
	}
	return out, nil
}

// Update aplica una actualización parcial.
func (uc *TaskUseCase) Update(ctx context.Context, tenantID, projectID, taskID string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	t, err := uc.projectTask(ctx, tenantID, projectID, taskID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		t.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	t.UpdatedAt = time.Now()
	if err := uc.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	out := toTaskResponse(t)
	return &out, nil
}

// Delete elimina una tarea.
func (uc *TaskUseCase) Delete(ctx context.Context, tenantID, projectID, taskID string) error {
	t, err := uc.projectTask(ctx, tenantID, projectID, taskID)
	if err != nil {
		return err
	}
	return uc.tasks.Delete(ctx, tenantID, t.ID)
}

func (uc *TaskUseCase) projectTask(ctx context.Context, tenantID, projectID, taskID string) (*entity.Task, error) {
	t, err := uc.tasks.GetByID(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.ProjectID != projectID {
		return nil, fmt.Errorf("%w: tarea %s", domain.ErrNotFound, taskID)
	}
	return t, nil
}

func toTaskResponse(t *entity.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
