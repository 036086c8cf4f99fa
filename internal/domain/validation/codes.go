package validation

import "github.com/ncprotocol/ncp/internal/domain"

// Finding codes emitted by Validate.
const (
	CodePayloadEmpty   = "PAYLOAD_EMPTY"
	CodePayloadInvalid = "PAYLOAD_INVALID"

	CodeProtocolMissing     = "PROTOCOL_MISSING"
	CodeProtocolInvalid     = "PROTOCOL_INVALID"
	CodeSemanticTypeMissing = "SEMANTIC_TYPE_MISSING"
	CodeSemanticTypeUnknown = "SEMANTIC_TYPE_UNKNOWN"
	CodePillarMissing       = "PILLAR_MISSING"
	CodeKeyNamingVariant    = "KEY_NAMING_VARIANT"

	CodeIdentityNameMissing        = "IDENTITY_NAME_MISSING"
	CodeIdentityNameLength         = "IDENTITY_NAME_LENGTH"
	CodeIdentityDescriptionMissing = "IDENTITY_DESCRIPTION_MISSING"
	CodeIdentityDescriptionLength  = "IDENTITY_DESCRIPTION_LENGTH"
	CodeIdentityURLMissing         = "IDENTITY_URL_MISSING"
	CodeIdentityURLInvalid         = "IDENTITY_URL_INVALID"
	CodeIdentityImageInvalid       = "IDENTITY_IMAGE_INVALID"
	CodeIdentityAuthorMissing      = "IDENTITY_AUTHOR_MISSING"
	CodeIdentityOriginMismatch     = "IDENTITY_ORIGIN_MISMATCH"

	CodeAuthorityVerifiedInvalid   = "AUTHORITY_VERIFIED_INVALID"
	CodeAuthorityTrustScoreInvalid = "AUTHORITY_TRUST_SCORE_INVALID"
	CodeAuthoritySignalsInvalid    = "AUTHORITY_SIGNALS_INVALID"
	CodeAuthoritySignalsLimit      = "AUTHORITY_SIGNALS_LIMIT"
	CodeAuthoritySignalsEmpty      = "AUTHORITY_SIGNALS_EMPTY"
	CodeAuthoritySignalMalformed   = "AUTHORITY_SIGNAL_MALFORMED"
	CodeAuthoritySignalURLInvalid  = "AUTHORITY_SIGNAL_URL_INVALID"

	CodeEntitiesPrimaryMissing   = "ENTITIES_PRIMARY_MISSING"
	CodeEntitiesPrimaryLimit     = "ENTITIES_PRIMARY_LIMIT"
	CodeEntitiesPrimaryInvalid   = "ENTITIES_PRIMARY_INVALID"
	CodeEntitiesPrimaryDuplicate = "ENTITIES_PRIMARY_DUPLICATE"
	CodeEntitiesSecondaryEmpty   = "ENTITIES_SECONDARY_EMPTY"

	CodeOfferCurrencyMissing = "OFFER_CURRENCY_MISSING"
	CodeOfferCurrencyInvalid = "OFFER_CURRENCY_INVALID"

	CodeContextTimestampInvalid = "CONTEXT_TIMESTAMP_INVALID"
	CodeContextLanguageInvalid  = "CONTEXT_LANGUAGE_INVALID"
	CodeContextSummaryLength    = "CONTEXT_SUMMARY_LENGTH"
)

// CodeInfo documents a finding code.
type CodeInfo struct {
	Code     string          `json:"code"`
	Severity domain.Severity `json:"severity"`
	Pillar   string          `json:"pillar"`
	Summary  string          `json:"summary"`
}

// Catalog returns every finding code Validate can emit, in pipeline order.
func Catalog() []CodeInfo {
	const (
		b = domain.SeverityBlocking
		w = domain.SeverityWarning
		r = domain.SeverityRecommendation
	)
	return []CodeInfo{
		{CodePayloadEmpty, b, "root", "The payload is an empty object."},
		{CodePayloadInvalid, b, "root", "The payload is not a JSON object."},
		{CodeProtocolMissing, b, "root", "`protocol` is absent."},
		{CodeProtocolInvalid, b, "root", "`protocol` does not match `NCP/<major>.<minor>`."},
		{CodeSemanticTypeMissing, b, "root", "`semantic_type` is absent or not a string."},
		{CodeSemanticTypeUnknown, w, "root", "`semantic_type` is not one of the official types."},
		{CodePillarMissing, b, "root", "A required pillar is absent or not an object."},
		{CodeKeyNamingVariant, r, "any", "A key looks like a camelCase or kebab-case spelling of a protocol key."},
		{CodeIdentityNameMissing, b, "identity", "`identity.name` is absent."},
		{CodeIdentityNameLength, w, "identity", "`identity.name` is outside 3..120 characters."},
		{CodeIdentityDescriptionMissing, w, "identity", "`identity.description` is absent."},
		{CodeIdentityDescriptionLength, w, "identity", "`identity.description` is outside 10..500 characters."},
		{CodeIdentityURLMissing, b, "identity", "`identity.url` is absent."},
		{CodeIdentityURLInvalid, b, "identity", "`identity.url` is not an absolute https URL."},
		{CodeIdentityImageInvalid, b, "identity", "`identity.image` is not an absolute https URL."},
		{CodeIdentityAuthorMissing, w, "identity", "`identity.author` is absent."},
		{CodeIdentityOriginMismatch, w, "identity", "The host of `identity.url` differs from the crawled domain."},
		{CodeAuthorityVerifiedInvalid, b, "authority", "`authority.verified` is absent or not a boolean."},
		{CodeAuthorityTrustScoreInvalid, b, "authority", "`authority.trust_score` is absent, not a number, or outside 0..10."},
		{CodeAuthoritySignalsInvalid, b, "authority", "`authority.external_signals` is absent or not an array."},
		{CodeAuthoritySignalsLimit, b, "authority", "`authority.external_signals` has more than 20 entries."},
		{CodeAuthoritySignalsEmpty, r, "authority", "`authority.external_signals` is empty."},
		{CodeAuthoritySignalMalformed, b, "authority", "An external signal is not an object with `type` and `url`."},
		{CodeAuthoritySignalURLInvalid, b, "authority", "An external signal `url` is not an absolute https URL."},
		{CodeEntitiesPrimaryMissing, b, "entities", "`entities.primary` is absent, not an array, or empty."},
		{CodeEntitiesPrimaryLimit, b, "entities", "`entities.primary` has more than 10 entries."},
		{CodeEntitiesPrimaryInvalid, b, "entities", "An `entities.primary` entry is not a non-empty string."},
		{CodeEntitiesPrimaryDuplicate, b, "entities", "An `entities.primary` entry repeats an earlier one."},
		{CodeEntitiesSecondaryEmpty, r, "entities", "`entities.secondary` is absent or empty."},
		{CodeOfferCurrencyMissing, b, "offer", "`offer.price` is set but `offer.currency` is absent."},
		{CodeOfferCurrencyInvalid, b, "offer", "`offer.currency` is not a 3-letter code."},
		{CodeContextTimestampInvalid, b, "context", "`context.timestamp` is not a valid date-time."},
		{CodeContextLanguageInvalid, b, "context", "`context.language` is longer than 5 characters."},
		{CodeContextSummaryLength, w, "context", "`context.summary` is absent or shorter than 50 characters."},
	}
}

// Lookup returns the catalog entry for code.
func Lookup(code string) (CodeInfo, bool) {
	for _, info := range Catalog() {
		if info.Code == code {
			return info, true
		}
	}
	return CodeInfo{}, false
}
