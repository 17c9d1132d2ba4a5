// Package sarif defines the subset of the SARIF 2.1.0 log format that scanbrief
// reads. Every field is optional, so every field is a pointer or a slice, and the
// accessor methods resolve absence to the documented default.
package sarif

// Default values used when a field is absent from the document.
const (
	DefaultText  = "unknown"
	DefaultLevel = "none"
)

type Log struct {
	Version string `json:"version,omitempty"`
	Schema  string `json:"$schema,omitempty"`
	Runs    []*Run `json:"runs,omitempty"`
}

type Run struct {
	Tool    *Tool     `json:"tool,omitempty"`
	Results []*Result `json:"results,omitempty"`
}

type Tool struct {
	Driver *ToolComponent `json:"driver,omitempty"`
}

// ToolComponent names the scanner that produced a run.
type ToolComponent struct {
	Name    string  `json:"name"`
	Version *string `json:"version,omitempty"`
}

type Result struct {
	RuleID    *string     `json:"ruleId,omitempty"`
	Message   *Message    `json:"message,omitempty"`
	Level     *Level      `json:"level,omitempty"`
	Locations []*Location `json:"locations,omitempty"`
}

type Location struct {
	PhysicalLocation *PhysicalLocation `json:"physicalLocation,omitempty"`
}

type PhysicalLocation struct {
	ArtifactLocation *ArtifactLocation `json:"artifactLocation,omitempty"`
}

type ArtifactLocation struct {
	URI *string `json:"uri,omitempty"`
}

type Message struct {
	Text *string `json:"text,omitempty"`
}

// Level is the raw result level label. Its mapping onto a severity tier lives
// in schemas.SeverityFromLevel.
type Level string

// AllResults flattens runs[].results[] in document order, skipping null entries.
func (l *Log) AllResults() []*Result {
	if l == nil {
		return nil
	}
	var out []*Result
	for _, run := range l.Runs {
		if run == nil {
			continue
		}
		for _, res := range run.Results {
			if res != nil {
				out = append(out, res)
			}
		}
	}
	return out
}

// ToolName returns the driver name of the first run, or "" if absent.
func (l *Log) ToolName() string {
	if l == nil {
		return ""
	}
	for _, run := range l.Runs {
		if run != nil && run.Tool != nil && run.Tool.Driver != nil {
			return run.Tool.Driver.Name
		}
	}
	return ""
}

// LevelOrDefault returns the raw level label, or "none" if absent.
func (r *Result) LevelOrDefault() string {
	if r.Level == nil {
		return DefaultLevel
	}
	return string(*r.Level)
}

// MessageText returns message.text, or "unknown" if absent.
func (r *Result) MessageText() string {
	if r.Message == nil || r.Message.Text == nil {
		return DefaultText
	}
	return *r.Message.Text
}

// RuleIDOrDefault returns ruleId, or "unknown" if absent.
func (r *Result) RuleIDOrDefault() string {
	if r.RuleID == nil {
		return DefaultText
	}
	return *r.RuleID
}

// URI returns the artifact uri of the first listed location, or "unknown" when
// there is no location or any level of the nesting is missing.
func (r *Result) URI() string {
	if len(r.Locations) == 0 {
		return DefaultText
	}
	loc := r.Locations[0]
	if loc == nil || loc.PhysicalLocation == nil ||
		loc.PhysicalLocation.ArtifactLocation == nil ||
		loc.PhysicalLocation.ArtifactLocation.URI == nil {
		return DefaultText
	}
	return *loc.PhysicalLocation.ArtifactLocation.URI
}
