package email

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/jhoicas/atelier-api/internal/application/ports"
)

var _ ports.MarkdownRenderer = (*MarkdownRenderer)(nil)

// MarkdownRenderer convierte el cuerpo markdown de las plantillas en HTML saneado.
type MarkdownRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkdownRenderer construye el renderer con GFM y la política UGC de bluemonday.
func NewMarkdownRenderer() *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	return &MarkdownRenderer{md: md, policy: bluemonday.UGCPolicy()}
}

// ToHTML renderiza y sanea. El HTML crudo embebido en la plantilla se descarta o se limpia.
func (r *MarkdownRenderer) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convertir markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}
