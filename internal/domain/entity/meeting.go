package entity

import "time"

// Meeting es una reunión con el cliente asociada a un proyecto.
type Meeting struct {
	ID          string
	TenantID    string
	ProjectID   string
	Title       string
	ScheduledAt *time.Time
	CreatedAt   time.Time
}

// ActionItem es una tarea extraída del resumen de una reunión.
type ActionItem struct {
	Title    string `json:"title"`
	Assignee string `json:"assignee"`
	DueDate  string `json:"dueDate"`
}

// MeetingRecording guarda la transcripción y el resumen IA de una reunión.
type MeetingRecording struct {
	ID          string
	TenantID    string
	MeetingID   string
	StorageURL  string
	Transcript  string
	Summary     string
	ActionItems []ActionItem
	ProcessedAt *time.Time
	CreatedAt   time.Time
}
