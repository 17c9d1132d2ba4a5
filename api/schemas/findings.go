package schemas

import (
	"errors"
	"fmt"
)

// -- Finding Schemas --

// Severity is the normalized severity tier of a finding. Raw scanner levels are
// mapped onto these four values by SeverityFromLevel.
type Severity string

// Constants defining the severity tiers a finding can carry.
const (
	SeverityHigh   Severity = "HIGH"   // Raw level "error".
	SeverityMedium Severity = "MEDIUM" // Raw level "warning".
	SeverityLow    Severity = "LOW"    // Raw level "note".
	SeverityNone   Severity = "NONE"   // Any other raw level, including an absent one.
)

// NarratedSeverities lists the tiers that appear in narrative sections, in the
// order they are rendered. NONE is counted but never narrated.
var NarratedSeverities = []Severity{SeverityHigh, SeverityMedium, SeverityLow}

// SeverityFromLevel maps a raw SARIF result level to a Severity.
// Unrecognized levels are not an error; they become SeverityNone.
func SeverityFromLevel(level string) Severity {
	switch level {
	case "error":
		return SeverityHigh
	case "warning":
		return SeverityMedium
	case "note":
		return SeverityLow
	default:
		return SeverityNone
	}
}

// UnknownValue is substituted for any string field that is absent from the input.
const UnknownValue = "unknown"

// Finding is one normalized issue reported by a scanner. Values are treated as
// immutable once created by the parser.
type Finding struct {
	Message      string   `json:"message" yaml:"message"`
	Severity     Severity `json:"severity" yaml:"severity"`
	LocationPath string   `json:"location_path" yaml:"location_path"`
	RuleID       string   `json:"rule_id" yaml:"rule_id"`
}

// SeverityCounts holds one counter per severity tier. Using a struct instead of a
// map guarantees every tier is always present with a zero default.
type SeverityCounts struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
	None   int `json:"none" yaml:"none"`
}

// Add increments the counter for s.
func (c *SeverityCounts) Add(s Severity) {
	switch s {
	case SeverityHigh:
		c.High++
	case SeverityMedium:
		c.Medium++
	case SeverityLow:
		c.Low++
	default:
		c.None++
	}
}

// Get returns the counter for s.
func (c SeverityCounts) Get(s Severity) int {
	switch s {
	case SeverityHigh:
		return c.High
	case SeverityMedium:
		return c.Medium
	case SeverityLow:
		return c.Low
	default:
		return c.None
	}
}

// Plus returns the element-wise sum of c and o.
func (c SeverityCounts) Plus(o SeverityCounts) SeverityCounts {
	return SeverityCounts{
		High:   c.High + o.High,
		Medium: c.Medium + o.Medium,
		Low:    c.Low + o.Low,
		None:   c.None + o.None,
	}
}

// Sum returns the total across all four tiers.
func (c SeverityCounts) Sum() int {
	return c.High + c.Medium + c.Low + c.None
}

// -- Scan Categories --

// Category identifies which of the two fixed scans a result came from.
type Category string

const (
	CategoryFilesystem     Category = "filesystem"
	CategoryInfrastructure Category = "infrastructure"
)

// Categories lists the scan categories in report order.
var Categories = []Category{CategoryFilesystem, CategoryInfrastructure}

// Title returns the human readable heading for the category.
func (c Category) Title() string {
	switch c {
	case CategoryFilesystem:
		return "Filesystem scan"
	case CategoryInfrastructure:
		return "Infrastructure-as-code scan"
	default:
		return string(c)
	}
}

// -- Scan Results --

// Sentinel errors for the recoverable input failure kinds. A Failure unwraps to
// one of these, so callers can use errors.Is.
var (
	ErrInputUnavailable = errors.New("input unavailable")
	ErrInputMalformed   = errors.New("input malformed")
)

// FailureKind classifies why a category could not be parsed.
type FailureKind string

const (
	FailureInputUnavailable FailureKind = "input_unavailable"
	FailureInputMalformed   FailureKind = "input_malformed"
)

// Failure describes a category whose document could not be read or decoded.
type Failure struct {
	Kind   FailureKind `json:"kind" yaml:"kind"`
	Reason string      `json:"reason" yaml:"reason"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Reason)
}

// Unwrap maps the failure kind onto its sentinel error.
func (f *Failure) Unwrap() error {
	switch f.Kind {
	case FailureInputUnavailable:
		return ErrInputUnavailable
	case FailureInputMalformed:
		return ErrInputMalformed
	default:
		return nil
	}
}

// ScanResult is the outcome of parsing one category's document. It is a tagged
// union: when Failure is non-nil the result is the failure variant and carries no
// findings; otherwise it is the success variant.
//
// For a success value Counts.Sum() == Total() == len(Findings) always holds, which
// is why the constructors are the only supported way to build one.
type ScanResult struct {
	Category Category       `json:"category" yaml:"category"`
	Failure  *Failure       `json:"failure,omitempty" yaml:"failure,omitempty"`
	Findings []Finding      `json:"findings" yaml:"findings"`
	Counts   SeverityCounts `json:"severity_counts" yaml:"severity_counts"`
}

// NewSuccess builds the success variant and derives the severity counts from the
// findings, preserving their order.
func NewSuccess(category Category, findings []Finding) ScanResult {
	if findings == nil {
		findings = []Finding{}
	}
	var counts SeverityCounts
	for _, f := range findings {
		counts.Add(f.Severity)
	}
	return ScanResult{Category: category, Findings: findings, Counts: counts}
}

// NewFailure builds the failure variant.
func NewFailure(category Category, kind FailureKind, reason string) ScanResult {
	return ScanResult{
		Category: category,
		Failure:  &Failure{Kind: kind, Reason: reason},
		Findings: []Finding{},
	}
}

// OK reports whether r is the success variant.
func (r ScanResult) OK() bool {
	return r.Failure == nil
}

// Total is the number of findings. A failure contributes zero.
func (r ScanResult) Total() int {
	return len(r.Findings)
}

// BySeverity returns the findings of tier s in document order.
func (r ScanResult) BySeverity(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}
