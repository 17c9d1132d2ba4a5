package schemas

import "time"

// -- Report Schemas --

// RiskTier is the overall risk posture derived from the combined counts.
type RiskTier string

const (
	RiskDanger  RiskTier = "DANGER"
	RiskCaution RiskTier = "CAUTION"
	RiskHealthy RiskTier = "HEALTHY"
)

// Verdict is the pass/fail outcome. It is informational and never changes the
// process exit status.
type Verdict string

const (
	VerdictPass Verdict = "PASS"
	VerdictFail Verdict = "FAIL"
)

// TimestampLayout is the display format for the report timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// shortCommitLen is how many characters of the commit id are displayed.
const shortCommitLen = 8

// Metadata describes the scanned revision. Any string field the provider could
// not resolve holds UnknownValue.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Branch      string    `json:"branch" yaml:"branch"`
	Commit      string    `json:"commit" yaml:"commit"`
	Repository  string    `json:"repository" yaml:"repository"`
}

// Timestamp renders GeneratedAt, or UnknownValue for the zero time.
func (m Metadata) Timestamp() string {
	if m.GeneratedAt.IsZero() {
		return UnknownValue
	}
	return m.GeneratedAt.Format(TimestampLayout)
}

// ShortCommit returns the first eight characters of the commit id.
func (m Metadata) ShortCommit() string {
	runes := []rune(m.Commit)
	if len(runes) <= shortCommitLen {
		return m.Commit
	}
	return string(runes[:shortCommitLen])
}

// AggregateReport is everything the composer needs to render the final
// document. It is built once per invocation and not mutated afterwards.
type AggregateReport struct {
	Metadata       Metadata       `json:"metadata" yaml:"metadata"`
	Filesystem     ScanResult     `json:"filesystem" yaml:"filesystem"`
	Infrastructure ScanResult     `json:"infrastructure" yaml:"infrastructure"`
	Counts         SeverityCounts `json:"severity_counts" yaml:"severity_counts"`
	Total          int            `json:"total" yaml:"total"`
	Narrative      string         `json:"narrative" yaml:"narrative"`
	Risk           RiskTier       `json:"risk" yaml:"risk"`
	Verdict        Verdict        `json:"verdict" yaml:"verdict"`
}

// Scans returns the two category results in report order.
func (r *AggregateReport) Scans() []ScanResult {
	return []ScanResult{r.Filesystem, r.Infrastructure}
}
