package validation

import (
	"slices"
	"sort"
	"strings"

	"github.com/fatih/camelcase"
)

func rootKeys() []string {
	return []string{"protocol", "semantic_type", pillarIdentity, pillarAuthority, pillarEntities, pillarOffer, pillarContext}
}

func pillarKeys(pillar string) []string {
	switch pillar {
	case pillarIdentity:
		return []string{"name", "description", "url", "image", "author"}
	case pillarAuthority:
		return []string{"verified", "trust_score", "external_signals"}
	case pillarEntities:
		return []string{"primary", "secondary"}
	case pillarOffer:
		return []string{"type", "price", "currency"}
	case pillarContext:
		return []string{"intent", "target_audience", "language", "summary", "timestamp"}
	}
	return nil
}

// hintKeys recommends renaming keys that are a case or separator variant of a
// known protocol key the object does not already carry.
func hintKeys(obj map[string]any, known []string, parent string, c *collector) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if slices.Contains(known, k) {
			continue
		}
		snake := snakeCase(k)
		if snake == k || !slices.Contains(known, snake) {
			continue
		}
		if _, ok := obj[snake]; ok {
			continue
		}
		c.recommendf(CodeKeyNamingVariant, fieldPath(parent, k),
			"key %q is not recognized; protocol keys are snake_case, did you mean %q?", k, snake)
	}
}

func snakeCase(key string) string {
	var parts []string
	for _, w := range camelcase.Split(key) {
		w = strings.Trim(w, "_- ")
		if w == "" {
			continue
		}
		parts = append(parts, strings.ToLower(w))
	}
	return strings.Join(parts, "_")
}
