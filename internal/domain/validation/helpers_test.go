package validation_test

import (
	"testing"

	"github.com/ncprotocol/ncp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDomain = "acme.example"
	// 80 characters.
	testSummary = "Acme builds durable hand-made widgets for workshops, schools and home tinkerers."
)

// validPayload returns a fresh payload that reaches VERIFIED-L1 with no
// warnings when validated against testDomain.
func validPayload() map[string]any {
	return map[string]any{
		"protocol":      "NCP/1.0",
		"semantic_type": "universal",
		"identity": map[string]any{
			"name":        "Acme Widget Store",
			"description": "Hand-made widgets shipped worldwide since 1999.",
			"url":         "https://www.acme.example/widgets",
			"author":      "Acme Editorial",
		},
		"authority": map[string]any{
			"verified":    true,
			"trust_score": 9.5,
			"external_signals": []any{
				map[string]any{"type": "review", "url": "https://reviews.example.org/acme"},
			},
		},
		"entities": map[string]any{
			"primary": []any{"A", "B"},
		},
		"offer": map[string]any{
			"type": "product",
		},
		"context": map[string]any{
			"language":  "en",
			"summary":   testSummary,
			"timestamp": "2026-10-01T12:00:00Z",
		},
	}
}

func pillar(p map[string]any, name string) map[string]any {
	return p[name].(map[string]any)
}

func codes(findings []domain.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Code)
	}
	return out
}

func findCode(t *testing.T, findings []domain.Finding, code string) domain.Finding {
	t.Helper()
	for _, f := range findings {
		if f.Code == code {
			return f
		}
	}
	require.Failf(t, "finding not found", "code %s not in %v", code, codes(findings))
	return domain.Finding{}
}

// assertInvariants checks the relations every result must satisfy.
func assertInvariants(t *testing.T, r *domain.ValidationResult) {
	t.Helper()
	failed := r.Status == domain.StatusFail
	assert.Equal(t, failed, len(r.BlockingErrors) > 0, "FAIL iff blocking errors")
	assert.Equal(t, failed, r.ComplianceLevel == domain.LevelNone, "FAIL iff NONE")
	assert.GreaterOrEqual(t, r.Score, 0)
	assert.LessOrEqual(t, r.Score, 100)
	if r.ComplianceLevel == domain.LevelNone {
		assert.Equal(t, 0, r.Score)
	}
	assert.Equal(t, "1.0", r.NCPVersion)
	for _, f := range r.BlockingErrors {
		assert.Equal(t, domain.SeverityBlocking, f.Severity)
	}
	for _, f := range r.Warnings {
		assert.Equal(t, domain.SeverityWarning, f.Severity)
	}
	for _, f := range r.Recommendations {
		assert.Equal(t, domain.SeverityRecommendation, f.Severity)
	}
}
