// Package results combines the per-category scan results into the totals and
// location groupings the narrative and report stages consume.
package results

import (
	"github.com/xkilldash9x/scanbrief/api/schemas"
)

// LocationGroup is every finding reported against one location path, in input order.
type LocationGroup struct {
	Path     string
	Findings []schemas.Finding
}

// CategorySummary pairs a category's scan result with its location grouping.
// Groups is empty for a failed category.
type CategorySummary struct {
	Result schemas.ScanResult
	Groups []LocationGroup
}

// MostAffected returns the path of the first location group, or "unknown" when
// there are no findings.
func (c CategorySummary) MostAffected() string {
	if len(c.Groups) == 0 {
		return schemas.UnknownValue
	}
	return c.Groups[0].Path
}

// Summary is the aggregate view across all categories.
type Summary struct {
	Counts     schemas.SeverityCounts
	Total      int
	Categories []CategorySummary
}

// Aggregate sums the severity counts of the given results and groups each
// category's findings by location. A failed category contributes zero to every
// count. The category order of the input is preserved.
func Aggregate(scans ...schemas.ScanResult) Summary {
	var s Summary
	for _, scan := range scans {
		cs := CategorySummary{Result: scan}
		if scan.OK() {
			s.Counts = s.Counts.Plus(scan.Counts)
			s.Total += scan.Total()
			cs.Groups = GroupByLocation(scan.Findings)
		}
		s.Categories = append(s.Categories, cs)
	}
	return s
}

// GroupByLocation groups findings by LocationPath. Groups are ordered by the
// first appearance of their path; findings keep their input order.
func GroupByLocation(findings []schemas.Finding) []LocationGroup {
	index := make(map[string]int)
	var groups []LocationGroup
	for _, f := range findings {
		i, ok := index[f.LocationPath]
		if !ok {
			i = len(groups)
			index[f.LocationPath] = i
			groups = append(groups, LocationGroup{Path: f.LocationPath})
		}
		groups[i].Findings = append(groups[i].Findings, f)
	}
	return groups
}
