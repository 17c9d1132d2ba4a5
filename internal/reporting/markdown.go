package reporting

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scanbrief/api/schemas"
)

//go:embed templates/report.md.tmpl
var templateFS embed.FS

const reportTemplate = "templates/report.md.tmpl"

// MarkdownRenderer composes the human readable report from the embedded
// template. Sprig functions are available to the template.
type MarkdownRenderer struct {
	tmpl   *template.Template
	logger *zap.Logger
}

// NewMarkdownRenderer parses the embedded template.
func NewMarkdownRenderer(logger *zap.Logger) (*MarkdownRenderer, error) {
	tmpl, err := template.New("report.md.tmpl").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		ParseFS(templateFS, reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &MarkdownRenderer{tmpl: tmpl, logger: logger}, nil
}

func (m *MarkdownRenderer) Format() string { return FormatMarkdown }

// Render executes the template into a buffer so a failure never yields a
// partial document.
func (m *MarkdownRenderer) Render(report *schemas.AggregateReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}
	var buf bytes.Buffer
	if err := m.tmpl.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("failed to render markdown report: %w", err)
	}
	m.logger.Debug("Rendered markdown report", zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}
