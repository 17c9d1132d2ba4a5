// Package narrative assembles the human readable analysis section of the report:
// the risk headline, one section per scan category and the recommendations.
package narrative

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/scanbrief/api/schemas"
	"github.com/xkilldash9x/scanbrief/internal/results"
)

// Assembler renders narrative text. It holds no per-run state and can be reused.
type Assembler struct {
	caps   map[schemas.Category]Caps
	logger *zap.Logger
}

// NewAssembler creates an Assembler. Categories missing from caps fall back to
// their defaults.
func NewAssembler(caps map[schemas.Category]Caps, logger *zap.Logger) *Assembler {
	merged := DefaultCaps()
	for c, v := range caps {
		merged[c] = v
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{caps: merged, logger: logger.Named("narrative")}
}

// Assemble builds the narrative for summary. tier drives the headline.
func (a *Assembler) Assemble(summary results.Summary, tier schemas.RiskTier) string {
	var b strings.Builder

	writeHeadline(&b, tier, summary.Counts)

	for _, cs := range summary.Categories {
		a.writeCategory(&b, cs)
	}

	b.WriteString("### General security recommendations\n")
	for _, line := range recommendations(summary.Counts) {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	return b.String()
}

func writeHeadline(b *strings.Builder, tier schemas.RiskTier, counts schemas.SeverityCounts) {
	fmt.Fprintf(b, "### Security posture: %s\n", tier)
	switch tier {
	case schemas.RiskDanger:
		fmt.Fprintf(b, "Immediate action required for **%s**.\n\n", plural(counts.High, "high severity finding"))
	case schemas.RiskCaution:
		fmt.Fprintf(b, "Prioritize remediation of **%s**.\n\n", plural(counts.Medium, "medium severity finding"))
	default:
		b.WriteString("No high or medium severity findings were reported.\n\n")
	}
}

// writeCategory emits nothing for a successful scan without findings.
func (a *Assembler) writeCategory(b *strings.Builder, cs results.CategorySummary) {
	r := cs.Result
	if r.OK() && r.Total() == 0 {
		return
	}

	fmt.Fprintf(b, "### %s findings\n", r.Category.Title())
	if !r.OK() {
		fmt.Fprintf(b, "Scan results unavailable: %s\n\n", r.Failure.Reason)
		return
	}

	fmt.Fprintf(b, "Most affected location: `%s` (%s across %s)\n\n",
		cs.MostAffected(), plural(r.Total(), "finding"), plural(len(cs.Groups), "location"))

	caps := a.caps[r.Category]
	for _, sev := range schemas.NarratedSeverities {
		count := r.Counts.Get(sev)
		if count == 0 {
			continue
		}
		listed, remaining := Truncate(r.BySeverity(sev), caps.For(sev))
		fmt.Fprintf(b, "#### %s (%d)\n", sev, count)
		for _, f := range listed {
			fmt.Fprintf(b, "- %s\n", Entry(f))
		}
		if remaining > 0 {
			fmt.Fprintf(b, "- ... and %d more\n", remaining)
			a.logger.Debug("Truncated severity tier",
				zap.String("category", string(r.Category)),
				zap.String("severity", string(sev)),
				zap.Int("listed", len(listed)),
				zap.Int("remaining", remaining),
			)
		}
		b.WriteString("\n")
	}

	if recs := categoryRecommendations[r.Category]; len(recs) > 0 {
		b.WriteString("**Recommendations**:\n")
		for _, rec := range recs {
			fmt.Fprintf(b, "- %s\n", rec)
		}
		b.WriteString("\n")
	}
}

// Entry formats a finding as "ruleId: message", folding the message onto one line.
func Entry(f schemas.Finding) string {
	return fmt.Sprintf("%s: %s", f.RuleID, strings.Join(strings.Fields(f.Message), " "))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
