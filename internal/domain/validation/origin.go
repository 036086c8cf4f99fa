package validation

import (
	"net/url"
	"strings"
)

type originState int

const (
	originUnchecked originState = iota
	originDisabled
	originMatched
	originMismatched
)

// satisfied reports whether the origin state allows VERIFIED-L1.
func (s originState) satisfied(requireMatch bool) bool {
	switch s {
	case originMatched, originDisabled:
		return true
	case originUnchecked:
		return !requireMatch
	default:
		return false
	}
}

// checkOrigin compares the host of identity.url with the crawled domain.
func checkOrigin(identity map[string]any, crawledDomain string, o options, c *collector) originState {
	if !o.originCheck {
		return originDisabled
	}

	raw, _ := stringField(identity, "url")
	declared := CanonicalHost(raw)
	crawled := CanonicalHost(crawledDomain)
	if declared == "" || crawled == "" {
		return originUnchecked
	}

	if declared != crawled {
		c.warnf(CodeIdentityOriginMismatch, "$.identity.url",
			"identity.url host %q does not match crawled domain %q", declared, crawled)
		return originMismatched
	}
	return originMatched
}

// CanonicalHost reduces a URL or bare host to a comparable host name:
// lowercased, without port, trailing dot, or a leading "www.".
func CanonicalHost(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "//" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimSuffix(host, ".")
	return strings.TrimPrefix(host, "www.")
}
