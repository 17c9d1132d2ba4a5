// Package console prints the short progress and summary lines of a run.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for console lines.
var (
	colorInfo    = lipgloss.Color("#4D96FF")
	colorSuccess = lipgloss.Color("#00D26A")
	colorWarning = lipgloss.Color("#FFB800")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Printer writes the console summary. Styling degrades to plain text when out
// is not a terminal.
type Printer struct {
	out     io.Writer
	info    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		info:    r.NewStyle().Foreground(colorInfo),
		success: r.NewStyle().Bold(true).Foreground(colorSuccess),
		warning: r.NewStyle().Bold(true).Foreground(colorWarning),
		muted:   r.NewStyle().Foreground(colorMuted),
	}
}

// Start announces the run.
func (p *Printer) Start() {
	fmt.Fprintln(p.out, p.info.Render("Analyzing scan results and generating security report..."))
}

// Done reports the written file and the combined finding count.
func (p *Printer) Done(path string, total int) {
	fmt.Fprintln(p.out, p.success.Render("Security report written: "+path))
	fmt.Fprintln(p.out, p.muted.Render(fmt.Sprintf("Total findings: %d", total)))
	if total == 0 {
		fmt.Fprintln(p.out, p.success.Render("No vulnerabilities found."))
		return
	}
	fmt.Fprintln(p.out, p.warning.Render("Review required: address the reported findings."))
}
