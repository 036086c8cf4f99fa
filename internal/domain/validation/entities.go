package validation

import "strings"

const maxPrimaryEntities = 10

func validateEntities(entities map[string]any, c *collector) {
	const base = "$.entities"
	primaryPath := fieldPath(base, "primary")

	primary, ok := arrayField(entities, "primary")
	switch {
	case !ok || len(primary) == 0:
		c.blockingf(CodeEntitiesPrimaryMissing, primaryPath, "entities.primary is required and must be a non-empty array")
	case len(primary) > maxPrimaryEntities:
		c.blockingf(CodeEntitiesPrimaryLimit, primaryPath,
			"entities.primary allows at most %d entries, got %d", maxPrimaryEntities, len(primary))
	}

	seen := make(map[string]int, len(primary))
	for i, raw := range primary {
		p := indexPath(primaryPath, i)
		s, ok := raw.(string)
		if !ok || strings.TrimSpace(s) == "" {
			c.blockingf(CodeEntitiesPrimaryInvalid, p, "primary entity must be a non-empty string")
			continue
		}
		if first, dup := seen[s]; dup {
			c.blockingf(CodeEntitiesPrimaryDuplicate, p, "primary entity %q duplicates entry %d", s, first)
			continue
		}
		seen[s] = i
	}

	if secondary, _ := arrayField(entities, "secondary"); len(secondary) == 0 {
		c.recommendf(CodeEntitiesSecondaryEmpty, fieldPath(base, "secondary"), "add secondary entities for richer semantic depth")
	}

	hintKeys(entities, pillarKeys(pillarEntities), base, c)
}
