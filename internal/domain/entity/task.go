package entity

import "time"

// Estados de una tarea.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Task es una tarea de proyecto.
type Task struct {
	ID          string
	TenantID    string
	ProjectID   string
	Title       string
	Description string
	Status      string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
