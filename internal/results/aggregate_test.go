package results

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/scanbrief/api/schemas"
)

// -- Test Helpers and Fixtures --

func finding(sev schemas.Severity, path, rule string) schemas.Finding {
	return schemas.Finding{Severity: sev, LocationPath: path, RuleID: rule, Message: "msg " + rule}
}

// -- Test Cases --

func TestAggregate_SumsBothCategories(t *testing.T) {
	fs := schemas.NewSuccess(schemas.CategoryFilesystem, []schemas.Finding{
		finding(schemas.SeverityHigh, "go.sum", "A"),
		finding(schemas.SeverityMedium, "go.sum", "B"),
		finding(schemas.SeverityLow, "package-lock.json", "C"),
	})
	iac := schemas.NewSuccess(schemas.CategoryInfrastructure, []schemas.Finding{
		finding(schemas.SeverityHigh, "main.tf", "D"),
		finding(schemas.SeverityNone, "main.tf", "E"),
	})

	s := Aggregate(fs, iac)

	assert.Equal(t, schemas.SeverityCounts{High: 2, Medium: 1, Low: 1, None: 1}, s.Counts)
	assert.Equal(t, 5, s.Total)
	require.Len(t, s.Categories, 2)
	assert.Equal(t, schemas.CategoryFilesystem, s.Categories[0].Result.Category)
	assert.Equal(t, schemas.CategoryInfrastructure, s.Categories[1].Result.Category)
}

func TestAggregate_FailureContributesZero(t *testing.T) {
	fs := schemas.NewSuccess(schemas.CategoryFilesystem, []schemas.Finding{
		finding(schemas.SeverityHigh, "a", "A"),
		finding(schemas.SeverityHigh, "a", "B"),
		finding(schemas.SeverityHigh, "a", "C"),
		finding(schemas.SeverityMedium, "b", "D"),
		finding(schemas.SeverityMedium, "b", "E"),
	})
	iac := schemas.NewFailure(schemas.CategoryInfrastructure, schemas.FailureInputUnavailable, "file not found")

	s := Aggregate(fs, iac)

	assert.Equal(t, schemas.SeverityCounts{High: 3, Medium: 2}, s.Counts)
	assert.Equal(t, 5, s.Total)
	require.Len(t, s.Categories, 2)
	cs := s.Categories[1]
	assert.Equal(t, schemas.CategoryInfrastructure, cs.Result.Category)
	assert.Empty(t, cs.Groups)
	assert.Equal(t, "unknown", cs.MostAffected())
}

func TestAggregate_BothMissing(t *testing.T) {
	s := Aggregate(
		schemas.NewFailure(schemas.CategoryFilesystem, schemas.FailureInputUnavailable, "file not found"),
		schemas.NewFailure(schemas.CategoryInfrastructure, schemas.FailureInputUnavailable, "file not found"),
	)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, schemas.SeverityCounts{}, s.Counts)
	assert.Len(t, s.Categories, 2)

	assert.Empty(t, Aggregate().Categories)
}

func TestGroupByLocation_FirstSeenOrder(t *testing.T) {
	in := []schemas.Finding{
		finding(schemas.SeverityLow, "b.tf", "1"),
		finding(schemas.SeverityHigh, "a.tf", "2"),
		finding(schemas.SeverityHigh, "b.tf", "3"),
		finding(schemas.SeverityMedium, "c.tf", "4"),
		finding(schemas.SeverityMedium, "a.tf", "5"),
	}

	groups := GroupByLocation(in)

	expected := []LocationGroup{
		{Path: "b.tf", Findings: []schemas.Finding{in[0], in[2]}},
		{Path: "a.tf", Findings: []schemas.Finding{in[1], in[4]}},
		{Path: "c.tf", Findings: []schemas.Finding{in[3]}},
	}
	if diff := cmp.Diff(expected, groups); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}

	cs := CategorySummary{Groups: groups}
	assert.Equal(t, "b.tf", cs.MostAffected())
}

func TestGroupByLocation_DoesNotAlterCounts(t *testing.T) {
	in := []schemas.Finding{
		finding(schemas.SeverityHigh, "x", "1"),
		finding(schemas.SeverityHigh, "y", "2"),
		finding(schemas.SeverityHigh, "x", "3"),
	}
	total := 0
	for _, g := range GroupByLocation(in) {
		total += len(g.Findings)
	}
	assert.Equal(t, len(in), total)
	assert.Empty(t, GroupByLocation(nil))
}
