package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/ports"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

var _ ports.Summarizer = (*OfflineSummarizer)(nil)

const offlineSummaryMaxLen = 280

var (
	// speakerRe separa "Nombre: texto" en cada línea de la transcripción.
	speakerRe = regexp.MustCompile(`^\s*([\p{L}][\p{L} .'-]{0,40}):\s*(.+)$`)
	// actionCueRe detecta compromisos ("voy a", "I'll", "hay que", "TODO:"…).
	actionCueRe = regexp.MustCompile(`(?i)(\bvoy a\b|\bvamos a\b|\bhay que\b|\bdebemos\b|\bme encargo\b|\bi will\b|\bi'll\b|\bwe will\b|\bwe'll\b|\bneed to\b|\btodo:)`)
	isoDateRe   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	sentenceRe  = regexp.MustCompile(`[^.!?]+[.!?]?`)
)

// OfflineSummarizer resume sin llamar a ningún proveedor: reglas deterministas sobre la transcripción.
// Se usa cuando no hay ANTHROPIC_API_KEY.
type OfflineSummarizer struct{}

// NewOfflineSummarizer construye el resumidor offline.
func NewOfflineSummarizer() *OfflineSummarizer { return &OfflineSummarizer{} }

// SummarizeMeeting arma el resumen con las primeras frases y extrae como tareas las frases con compromiso.
func (OfflineSummarizer) SummarizeMeeting(ctx context.Context, title, transcript string) (*dto.MeetingAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var spoken []string
	items := []entity.ActionItem{}
	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		speaker, text := "", line
		if m := speakerRe.FindStringSubmatch(line); m != nil {
			speaker, text = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		}
		spoken = append(spoken, text)

		for _, sentence := range sentenceRe.FindAllString(text, -1) {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" || !actionCueRe.MatchString(sentence) {
				continue
			}
			items = append(items, entity.ActionItem{
				Title:    capitalize(strings.TrimRight(sentence, ".!? ")),
				Assignee: speaker,
				DueDate:  isoDateRe.FindString(sentence),
			})
		}
	}

	summary := fmt.Sprintf("Reunión «%s».", title)
	if len(spoken) > 0 {
		summary += " " + truncate(firstSentences(strings.Join(spoken, " "), 2), offlineSummaryMaxLen)
	}
	return &dto.MeetingAnalysis{Summary: summary, ActionItems: items}, nil
}

func firstSentences(text string, n int) string {
	parts := sentenceRe.FindAllString(text, n)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, " ")
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:max-1])) + "…"
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
