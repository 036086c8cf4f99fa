package validation

import (
	"regexp"
	"strings"
)

const exactProtocol = "NCP/1.0"

var protocolPattern = regexp.MustCompile(`^NCP/\d+\.\d+$`)

// Pillar names in validation order.
const (
	pillarIdentity  = "identity"
	pillarAuthority = "authority"
	pillarEntities  = "entities"
	pillarOffer     = "offer"
	pillarContext   = "context"
)

func pillarNames() []string {
	return []string{pillarIdentity, pillarAuthority, pillarEntities, pillarOffer, pillarContext}
}

// SemanticTypes returns the official semantic_type values.
func SemanticTypes() []string {
	return []string{"universal", "product", "article", "organization", "service", "person", "event"}
}

func isOfficialSemanticType(s string) bool {
	switch strings.ToLower(s) {
	case "universal", "product", "article", "organization", "service", "person", "event":
		return true
	}
	return false
}

// document is the structurally checked view of a payload.
type document struct {
	semanticType string
	pillars      map[string]map[string]any
	complete     bool
}

func (d *document) pillar(name string) map[string]any {
	return d.pillars[name]
}

// checkStructure runs the structural gate over a non-empty root object.
func checkStructure(root map[string]any, o options, c *collector) *document {
	doc := &document{pillars: make(map[string]map[string]any, 5)}

	switch {
	case !present(root, "protocol"):
		c.blockingf(CodeProtocolMissing, "$.protocol", "protocol is required")
	default:
		p, ok := stringField(root, "protocol")
		switch {
		case !ok:
			c.blockingf(CodeProtocolInvalid, "$.protocol", "protocol must be a string like %q", exactProtocol)
		case o.exactProtocol && p != exactProtocol:
			c.blockingf(CodeProtocolInvalid, "$.protocol", "protocol must be exactly %q, got %q", exactProtocol, p)
		case !protocolPattern.MatchString(p):
			c.blockingf(CodeProtocolInvalid, "$.protocol", "protocol %q must match NCP/<major>.<minor>", p)
		}
	}

	if st, ok := stringField(root, "semantic_type"); !ok {
		c.blockingf(CodeSemanticTypeMissing, "$.semantic_type", "semantic_type is required and must be a string")
	} else {
		doc.semanticType = st
		if !isOfficialSemanticType(st) {
			c.warnf(CodeSemanticTypeUnknown, "$.semantic_type",
				"semantic_type %q is not an official type (%s)", st, strings.Join(SemanticTypes(), ", "))
		}
	}

	missing := 0
	for _, name := range pillarNames() {
		obj, ok := objectField(root, name)
		if !ok {
			missing++
			c.blockingf(CodePillarMissing, fieldPath("$", name), "%s pillar is required and must be an object", name)
			continue
		}
		doc.pillars[name] = obj
	}
	doc.complete = missing == 0

	hintKeys(root, rootKeys(), "$", c)
	return doc
}
