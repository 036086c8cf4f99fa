// Package discovery locates an NCP payload for a web page.
//
// A page advertises its payload with
//
//	<meta name="ncp-payload-url" content="https://example.com/ncp.json">
//
// and sites without the tag are expected to serve /.well-known/ncp.json.
package discovery

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// MetaName is the name attribute of the discovery meta tag.
	MetaName = "ncp-payload-url"
	// WellKnownPath is the fallback payload location.
	WellKnownPath = "/.well-known/ncp.json"
)

// ErrNoMetaTag is returned when a document carries no discovery tag.
var ErrNoMetaTag = errors.New("no ncp-payload-url meta tag")

// PayloadURL scans an HTML document for the discovery meta tag and resolves
// its content against base. Scanning stops at </head> or <body>.
func PayloadURL(r io.Reader, base *url.URL) (*url.URL, error) {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("parsing html: %w", err)
			}
			return nil, ErrNoMetaTag

		case html.EndTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Head {
				return nil, ErrNoMetaTag
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch atom.Lookup(name) {
			case atom.Body:
				return nil, ErrNoMetaTag
			case atom.Meta:
				if !hasAttr {
					continue
				}
				if content, ok := metaContent(z); ok {
					return resolve(base, content)
				}
			}
		}
	}
}

func metaContent(z *html.Tokenizer) (string, bool) {
	var name, content string
	for {
		key, val, more := z.TagAttr()
		switch strings.ToLower(string(key)) {
		case "name":
			name = string(val)
		case "content":
			content = string(val)
		}
		if !more {
			break
		}
	}
	if !strings.EqualFold(strings.TrimSpace(name), MetaName) {
		return "", false
	}
	content = strings.TrimSpace(content)
	return content, content != ""
}

func resolve(base *url.URL, ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid %s content %q: %w", MetaName, ref, err)
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%s content %q is not an absolute URL", MetaName, ref)
	}
	return u, nil
}

// WellKnownURL returns the fallback payload URL on the origin of page.
func WellKnownURL(page *url.URL) *url.URL {
	return &url.URL{Scheme: page.Scheme, Host: page.Host, Path: WellKnownPath}
}
