package ports

import (
	"context"

	"github.com/jhoicas/atelier-api/internal/application/dto"
)

// Summarizer define el puerto de salida para resumir reuniones con IA.
// Cualquier adaptador (Anthropic, resumidor offline, mock) debe implementar esta interfaz.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type Summarizer interface {
	SummarizeMeeting(ctx context.Context, title, transcript string) (*dto.MeetingAnalysis, error)
}
