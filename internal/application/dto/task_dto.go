package dto

import "time"

// CreateTaskRequest alta de tarea.
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=300"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskRequest actualización parcial de tarea.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=300"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	DueDate     *time.Time `json:"dueDate"`
}

// TaskResponse tarea en respuestas HTTP.
type TaskResponse struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
