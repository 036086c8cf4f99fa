// Package validation checks NCP payloads and classifies their compliance level.
//
// Validate is a pure function: it performs no I/O, keeps no state between
// calls, and is safe to call from any number of goroutines.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ncprotocol/ncp/internal/domain"
)

// Validate checks a decoded payload and returns its compliance report.
// crawledDomain is the host the payload was retrieved from; pass "" when unknown.
func Validate(payload any, crawledDomain string, opts ...Option) *domain.ValidationResult {
	o := newOptions(opts)
	c := newCollector()

	root, ok := payload.(map[string]any)
	if !ok {
		c.blockingf(CodePayloadInvalid, "$", "payload must be a JSON object")
		return build(c, domain.LevelNone)
	}
	if len(root) == 0 {
		c.blockingf(CodePayloadEmpty, "$", "payload must not be empty")
		return build(c, domain.LevelNone)
	}

	doc := checkStructure(root, o, c)
	origin := originUnchecked
	if doc.complete {
		validateIdentity(doc.pillar(pillarIdentity), c)
		validateAuthority(doc.pillar(pillarAuthority), c)
		validateEntities(doc.pillar(pillarEntities), c)
		validateOffer(doc.pillar(pillarOffer), c)
		validateContext(doc.pillar(pillarContext), c)
		origin = checkOrigin(doc.pillar(pillarIdentity), crawledDomain, o, c)
	}

	return build(c, classify(doc, origin, o, c))
}

// ValidateJSON decodes data and validates it. Only malformed JSON is an error.
func ValidateJSON(data []byte, crawledDomain string, opts ...Option) (*domain.ValidationResult, error) {
	payload, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	return Validate(payload, crawledDomain, opts...), nil
}

// ValidateBytes validates an untrusted document. Malformed JSON is reported
// as PAYLOAD_INVALID instead of being returned as an error.
func ValidateBytes(data []byte, crawledDomain string, opts ...Option) *domain.ValidationResult {
	payload, err := decode(data)
	if err != nil {
		c := newCollector()
		c.blockingf(CodePayloadInvalid, "$", "payload is not valid JSON: %v", err)
		return build(c, domain.LevelNone)
	}
	return Validate(payload, crawledDomain, opts...)
}

// decode reads exactly one JSON value. Numbers stay json.Number so
// trust_score is compared without float rounding.
func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the JSON document")
	}
	return payload, nil
}

func build(c *collector, level domain.ComplianceLevel) *domain.ValidationResult {
	return &domain.ValidationResult{
		NCPVersion:      domain.ProtocolVersion,
		Status:          status(c),
		ComplianceLevel: level,
		Score:           score(level, len(c.warnings)),
		BlockingErrors:  c.blocking,
		Warnings:        c.warnings,
		Recommendations: c.recommendations,
	}
}
