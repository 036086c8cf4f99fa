package validation

import "github.com/ncprotocol/ncp/internal/domain"

const (
	scoreCore        = 80
	scorePlus        = 90
	scoreVerified    = 100
	warningPenalty   = 5
	minVerifiedTrust = 7.0
)

// classify walks NONE -> CORE -> PLUS -> VERIFIED-L1 and stops at the first
// unmet prerequisite.
func classify(doc *document, origin originState, o options, c *collector) domain.ComplianceLevel {
	if len(c.blocking) > 0 {
		return domain.LevelNone
	}

	authority := doc.pillar(pillarAuthority)
	signals, _ := arrayField(authority, "external_signals")
	if !isOfficialSemanticType(doc.semanticType) ||
		len(signals) == 0 ||
		!hasLongSummary(doc.pillar(pillarContext)) {
		return domain.LevelCore
	}

	verified, _ := authority["verified"].(bool)
	trust, _ := number(authority["trust_score"])
	identityURL, _ := stringField(doc.pillar(pillarIdentity), "url")
	if !verified ||
		trust < minVerifiedTrust ||
		!isHTTPSURL(identityURL) ||
		!origin.satisfied(o.requireOrigin) {
		return domain.LevelPlus
	}

	return domain.LevelVerifiedL1
}

// score applies the flat warning penalty to the base score of level.
func score(level domain.ComplianceLevel, warnings int) int {
	var base int
	switch level {
	case domain.LevelCore:
		base = scoreCore
	case domain.LevelPlus:
		base = scorePlus
	case domain.LevelVerifiedL1:
		base = scoreVerified
	default:
		return 0
	}
	return max(0, base-warningPenalty*warnings)
}

func status(c *collector) domain.Status {
	switch {
	case len(c.blocking) > 0:
		return domain.StatusFail
	case len(c.warnings) > 0:
		return domain.StatusWarning
	default:
		return domain.StatusPass
	}
}
