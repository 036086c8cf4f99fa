package application

import (
	"fmt"

	"github.com/ncprotocol/ncp/internal/domain"
)

// GateResult is the outcome of a CI quality gate.
type GateResult struct {
	Passed  bool     `json:"passed"`
	Reasons []string `json:"reasons,omitempty"`
}

// CIGate checks a report against CI thresholds. A FAIL status always fails
// the gate; minLevel and minScore are only enforced when set.
func CIGate(report *domain.Report, minLevel domain.ComplianceLevel, minScore int) GateResult {
	r := report.Result
	var reasons []string

	if r.Status == domain.StatusFail {
		reasons = append(reasons, fmt.Sprintf("%d blocking error(s)", len(r.BlockingErrors)))
	}
	if minLevel != "" && !r.ComplianceLevel.AtLeast(minLevel) {
		reasons = append(reasons, fmt.Sprintf("compliance level %s is below %s", r.ComplianceLevel, minLevel))
	}
	if minScore > 0 && r.Score < minScore {
		reasons = append(reasons, fmt.Sprintf("score %d is below minimum %d", r.Score, minScore))
	}

	return GateResult{Passed: len(reasons) == 0, Reasons: reasons}
}
