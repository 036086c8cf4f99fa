package validation

const (
	nameMinLen        = 3
	nameMaxLen        = 120
	descriptionMinLen = 10
	descriptionMaxLen = 500
)

func validateIdentity(identity map[string]any, c *collector) {
	const base = "$.identity"

	if name, ok := stringField(identity, "name"); !ok {
		c.blockingf(CodeIdentityNameMissing, fieldPath(base, "name"), "identity.name is required and must be a string")
	} else if n := runeLen(name); n < nameMinLen || n > nameMaxLen {
		c.warnf(CodeIdentityNameLength, fieldPath(base, "name"),
			"identity.name should be %d-%d characters, got %d", nameMinLen, nameMaxLen, n)
	}

	if !present(identity, "description") {
		c.warnf(CodeIdentityDescriptionMissing, fieldPath(base, "description"), "identity.description is recommended")
	} else if desc, ok := stringField(identity, "description"); !ok {
		c.warnf(CodeIdentityDescriptionMissing, fieldPath(base, "description"), "identity.description must be a string")
	} else if n := runeLen(desc); n < descriptionMinLen || n > descriptionMaxLen {
		c.warnf(CodeIdentityDescriptionLength, fieldPath(base, "description"),
			"identity.description should be %d-%d characters, got %d", descriptionMinLen, descriptionMaxLen, n)
	}

	if !present(identity, "url") {
		c.blockingf(CodeIdentityURLMissing, fieldPath(base, "url"), "identity.url is required")
	} else if u, ok := stringField(identity, "url"); !ok || !isHTTPSURL(u) {
		c.blockingf(CodeIdentityURLInvalid, fieldPath(base, "url"), "identity.url must be an absolute https:// URL")
	}

	if present(identity, "image") {
		if img, ok := stringField(identity, "image"); !ok || !isHTTPSURL(img) {
			c.blockingf(CodeIdentityImageInvalid, fieldPath(base, "image"), "identity.image must be an absolute https:// URL")
		}
	}

	if !present(identity, "author") {
		c.warnf(CodeIdentityAuthorMissing, fieldPath(base, "author"), "identity.author is recommended")
	}

	hintKeys(identity, pillarKeys(pillarIdentity), base, c)
}
