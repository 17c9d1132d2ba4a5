// -- internal/reporting/reporter.go --
package reporting

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/scanbrief/api/schemas"
)

// Supported output formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Formats lists every format New accepts.
var Formats = []string{FormatMarkdown, FormatJSON, FormatYAML}

// Renderer turns a fully assembled report into the bytes of the output document.
// Rendering is all-or-nothing; no partial output is ever produced.
type Renderer interface {
	Render(report *schemas.AggregateReport) ([]byte, error)
	// Format returns the name the renderer was selected by.
	Format() string
}

// New creates a renderer for the specified format.
func New(format string, logger *zap.Logger) (Renderer, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	logger = logger.Named("reporter")

	switch format {
	case FormatMarkdown, "md", "":
		return NewMarkdownRenderer(logger)
	case FormatJSON:
		return &jsonRenderer{logger: logger}, nil
	case FormatYAML, "yml":
		return &yamlRenderer{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// IsSupported reports whether New accepts format.
func IsSupported(format string) bool {
	switch format {
	case FormatMarkdown, "md", "", FormatJSON, FormatYAML, "yml":
		return true
	}
	return false
}
