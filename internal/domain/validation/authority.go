package validation

const (
	trustScoreMin = 0.0
	trustScoreMax = 10.0
	maxSignals    = 20
)

func validateAuthority(authority map[string]any, c *collector) {
	const base = "$.authority"

	if _, ok := authority["verified"].(bool); !ok {
		c.blockingf(CodeAuthorityVerifiedInvalid, fieldPath(base, "verified"), "authority.verified is required and must be a boolean")
	}

	if score, ok := number(authority["trust_score"]); !ok || score < trustScoreMin || score > trustScoreMax {
		c.blockingf(CodeAuthorityTrustScoreInvalid, fieldPath(base, "trust_score"),
			"authority.trust_score is required and must be a number between %.1f and %.1f", trustScoreMin, trustScoreMax)
	}

	signalsPath := fieldPath(base, "external_signals")
	signals, ok := arrayField(authority, "external_signals")
	switch {
	case !ok:
		c.blockingf(CodeAuthoritySignalsInvalid, signalsPath, "authority.external_signals is required and must be an array")
	case len(signals) == 0:
		c.recommendf(CodeAuthoritySignalsEmpty, signalsPath, "add external signals (reviews, code hosting, registries) to back authority claims")
	case len(signals) > maxSignals:
		c.blockingf(CodeAuthoritySignalsLimit, signalsPath,
			"authority.external_signals allows at most %d entries, got %d", maxSignals, len(signals))
	}

	for i, raw := range signals {
		p := indexPath(signalsPath, i)
		sig, ok := raw.(map[string]any)
		if !ok {
			c.blockingf(CodeAuthoritySignalMalformed, p, "external signal must be an object with type and url")
			continue
		}
		typ, _ := stringField(sig, "type")
		u, _ := stringField(sig, "url")
		if typ == "" || u == "" {
			c.blockingf(CodeAuthoritySignalMalformed, p, "external signal requires non-empty type and url")
			continue
		}
		if !isHTTPSURL(u) {
			c.blockingf(CodeAuthoritySignalURLInvalid, fieldPath(p, "url"), "external signal url must be an absolute https:// URL")
		}
	}

	hintKeys(authority, pillarKeys(pillarAuthority), base, c)
}
