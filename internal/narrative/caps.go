package narrative

import "github.com/xkilldash9x/scanbrief/api/schemas"

// Caps is the truncation cap per narrated severity tier: at most this many
// findings of a tier are listed before the remainder collapses into a count.
type Caps struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
}

// Default caps per category.
var (
	DefaultFilesystemCaps     = Caps{High: 5, Medium: 5, Low: 3}
	DefaultInfrastructureCaps = Caps{High: 8, Medium: 5, Low: 5}
)

// DefaultCaps returns the default cap table keyed by category.
func DefaultCaps() map[schemas.Category]Caps {
	return map[schemas.Category]Caps{
		schemas.CategoryFilesystem:     DefaultFilesystemCaps,
		schemas.CategoryInfrastructure: DefaultInfrastructureCaps,
	}
}

// For returns the cap for tier s. NONE is never narrated and has no cap.
func (c Caps) For(s schemas.Severity) int {
	switch s {
	case schemas.SeverityHigh:
		return c.High
	case schemas.SeverityMedium:
		return c.Medium
	case schemas.SeverityLow:
		return c.Low
	default:
		return 0
	}
}

// Truncate splits findings into the listed prefix and the number left over.
func Truncate(findings []schemas.Finding, limit int) (listed []schemas.Finding, remaining int) {
	if limit < 0 {
		limit = 0
	}
	if len(findings) <= limit {
		return findings, 0
	}
	return findings[:limit], len(findings) - limit
}
