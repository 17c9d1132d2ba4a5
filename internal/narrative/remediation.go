package narrative

import "github.com/xkilldash9x/scanbrief/api/schemas"

// categoryRecommendations is appended to every narrated category section.
var categoryRecommendations = map[schemas.Category][]string{
	schemas.CategoryFilesystem: {
		"Update dependency packages to their latest patched versions",
		"Review replacing libraries with known unpatched vulnerabilities",
		"Establish a regular security update schedule",
		"Define and enforce a package management policy",
	},
	schemas.CategoryInfrastructure: {
		"Apply security best practices to infrastructure-as-code definitions",
		"Make sure no secrets are hard-coded in configuration",
		"Grant resource access following the principle of least privilege",
		"Strengthen the review process for infrastructure code changes",
	},
}

// Conditional general recommendations.
const (
	immediateAction = "**Immediate action**: resolve high severity findings first"
	plannedAction   = "**Planned action**: plan remediation for medium severity findings"
)

// generalRecommendations is always emitted, after the conditional lines.
var generalRecommendations = []string{
	"**Continuous monitoring**: keep automated security scans running on every change",
	"**Team training**: train the team on secure development practices",
	"**Documentation**: document security policies and procedures",
	"**Automation**: integrate security checks into the CI/CD pipeline",
}

// recommendations returns the general recommendation lines for the combined counts.
func recommendations(counts schemas.SeverityCounts) []string {
	var lines []string
	if counts.High > 0 {
		lines = append(lines, immediateAction)
	}
	if counts.Medium > 0 {
		lines = append(lines, plannedAction)
	}
	return append(lines, generalRecommendations...)
}
