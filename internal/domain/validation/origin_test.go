package validation_test

import (
	"testing"

	"github.com/ncprotocol/ncp/internal/domain/validation"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalHost(t *testing.T) {
	tests := map[string]string{
		"":                                 "",
		"   ":                              "",
		"acme.example":                     "acme.example",
		"www.acme.example":                 "acme.example",
		"WWW.Acme.Example":                 "acme.example",
		"acme.example.":                    "acme.example",
		"acme.example:8443":                "acme.example",
		"acme.example/some/page":           "acme.example",
		"https://www.acme.example/widgets": "acme.example",
		"https://shop.acme.example":        "shop.acme.example",
		"http://user@acme.example:80/x?y":  "acme.example",
		"wwwacme.example":                  "wwwacme.example",
	}
	for in, want := range tests {
		assert.Equal(t, want, validation.CanonicalHost(in), "input %q", in)
	}
}

func TestOrigin_SubdomainIsMismatch(t *testing.T) {
	r := validation.Validate(validPayload(), "shop.acme.example")
	findCode(t, r.Warnings, validation.CodeIdentityOriginMismatch)
}

func TestOrigin_SkippedWhenURLInvalid(t *testing.T) {
	p := validPayload()
	pillar(p, "identity")["url"] = "not a url"

	r := validation.Validate(p, "elsewhere.example")

	assert.NotContains(t, codes(r.Warnings), validation.CodeIdentityOriginMismatch)
	assert.Contains(t, codes(r.BlockingErrors), validation.CodeIdentityURLInvalid)
}

func TestOrigin_MismatchDoesNotBlockCore(t *testing.T) {
	p := validPayload()
	pillar(p, "authority")["external_signals"] = []any{}

	r := validation.Validate(p, "elsewhere.example")

	assert.Empty(t, r.BlockingErrors)
	assert.Equal(t, "CORE", string(r.ComplianceLevel))
	assert.Equal(t, 75, r.Score)
}
