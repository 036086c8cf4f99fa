package validation

const (
	maxLanguageLen = 5
	minSummaryLen  = 50
)

func validateContext(ctx map[string]any, c *collector) {
	const base = "$.context"

	if present(ctx, "timestamp") {
		ts, ok := stringField(ctx, "timestamp")
		if !ok {
			c.blockingf(CodeContextTimestampInvalid, fieldPath(base, "timestamp"), "context.timestamp must be an ISO 8601 date-time string")
		} else if _, ok := parseTimestamp(ts); !ok {
			c.blockingf(CodeContextTimestampInvalid, fieldPath(base, "timestamp"), "context.timestamp %q is not a valid ISO 8601 date-time", ts)
		}
	}

	if present(ctx, "language") {
		if lang, ok := stringField(ctx, "language"); !ok || runeLen(lang) > maxLanguageLen {
			c.blockingf(CodeContextLanguageInvalid, fieldPath(base, "language"),
				"context.language must be a language tag of at most %d characters", maxLanguageLen)
		}
	}

	if !hasLongSummary(ctx) {
		c.warnf(CodeContextSummaryLength, fieldPath(base, "summary"),
			"context.summary should be at least %d characters", minSummaryLen)
	}

	hintKeys(ctx, pillarKeys(pillarContext), base, c)
}

func hasLongSummary(ctx map[string]any) bool {
	s, ok := stringField(ctx, "summary")
	return ok && runeLen(s) >= minSummaryLen
}
