package validation

const currencyCodeLen = 3

func validateOffer(offer map[string]any, c *collector) {
	const base = "$.offer"

	if present(offer, "price") {
		cur, ok := stringField(offer, "currency")
		switch {
		case !ok:
			c.blockingf(CodeOfferCurrencyMissing, fieldPath(base, "currency"), "offer.currency is required when offer.price is set")
		case runeLen(cur) != currencyCodeLen:
			c.blockingf(CodeOfferCurrencyInvalid, fieldPath(base, "currency"),
				"offer.currency must be a %d-letter ISO 4217 code, got %q", currencyCodeLen, cur)
		}
	}

	hintKeys(offer, pillarKeys(pillarOffer), base, c)
}
