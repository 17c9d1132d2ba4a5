package risk

import "github.com/xkilldash9x/scanbrief/api/schemas"

// Classify derives the risk tier from the combined high and medium counts.
// High findings dominate; low findings never raise the tier.
func Classify(high, medium int) schemas.RiskTier {
	switch {
	case high > 0:
		return schemas.RiskDanger
	case medium > 0:
		return schemas.RiskCaution
	default:
		return schemas.RiskHealthy
	}
}

// VerdictFor fails only on high findings. Medium and low findings never fail the build.
func VerdictFor(high int) schemas.Verdict {
	if high > 0 {
		return schemas.VerdictFail
	}
	return schemas.VerdictPass
}

// Assessment bundles the tier and verdict for a set of counts.
type Assessment struct {
	Tier    schemas.RiskTier
	Verdict schemas.Verdict
}

// Assess classifies counts.
func Assess(counts schemas.SeverityCounts) Assessment {
	return Assessment{
		Tier:    Classify(counts.High, counts.Medium),
		Verdict: VerdictFor(counts.High),
	}
}
