package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ncprotocol/ncp/internal/domain"
	"github.com/ncprotocol/ncp/internal/domain/discovery"
)

const (
	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 3 * time.Second
	// MaxPayloadBytes is the protocol's payload size cap.
	MaxPayloadBytes = 50 * 1024
	// DefaultUserAgent identifies the checker to publishers.
	DefaultUserAgent = "ncp-validator/1.0 (+https://github.com/ncprotocol/ncp)"

	maxRedirects = 1
	maxAttempts  = 2
	// Only the <head> of a page is needed for discovery.
	maxPageBytes = 2 << 20
)

var (
	ErrPayloadTooLarge  = errors.New("payload exceeds 50KB")
	ErrTooManyRedirects = errors.New("stopped after 1 redirect")
	ErrNoPayload        = errors.New("no payload found")
)

// HTTPFetcher implements domain.PayloadSource for http(s) targets.
type HTTPFetcher struct {
	client    *http.Client
	logger    *zap.Logger
	userAgent string
	timeout   time.Duration
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

func WithLogger(l *zap.Logger) Option {
	return func(f *HTTPFetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

func WithTransport(rt http.RoundTripper) Option {
	return func(f *HTTPFetcher) { f.client.Transport = rt }
}

// NewHTTP creates an HTTPFetcher that follows at most one redirect.
func NewHTTP(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client: &http.Client{
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return ErrTooManyRedirects
				}
				return nil
			},
		},
		logger:    zap.NewNop(),
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type response struct {
	body        []byte
	contentType string
	url         *url.URL
}

// Discovery methods.
const (
	MethodDirect    = "direct"
	MethodMetaTag   = "meta"
	MethodWellKnown = "well-known"
)

// Discovery is where a page's payload lives and how it was found.
type Discovery struct {
	PayloadURL    *url.URL
	Method        string
	CrawledDomain string

	// body holds the payload when the target served it directly.
	body []byte
}

// Discover resolves the payload location for target without fetching a
// separate payload document. A JSON response is the payload itself; an HTML
// page is searched for the discovery meta tag, falling back to the site's
// well-known path.
func (f *HTTPFetcher) Discover(ctx context.Context, target string) (*Discovery, error) {
	page, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parsing target: %w", err)
	}
	if page.Scheme != "http" && page.Scheme != "https" || page.Host == "" {
		return nil, fmt.Errorf("target %q must be an absolute http(s) URL", target)
	}
	d := &Discovery{CrawledDomain: page.Hostname()}

	resp, err := f.get(ctx, page, maxPageBytes, false)
	if err != nil {
		return nil, err
	}

	if isJSON(resp) {
		if len(resp.body) > MaxPayloadBytes {
			return nil, fmt.Errorf("%s: %w", resp.url, ErrPayloadTooLarge)
		}
		d.PayloadURL, d.Method, d.body = resp.url, MethodDirect, resp.body
		f.logger.Debug("target served payload directly", zap.String("url", resp.url.String()))
		return d, nil
	}

	payloadURL, err := discovery.PayloadURL(bytes.NewReader(resp.body), resp.url)
	switch {
	case errors.Is(err, discovery.ErrNoMetaTag):
		d.PayloadURL, d.Method = discovery.WellKnownURL(resp.url), MethodWellKnown
		f.logger.Debug("no discovery tag, using well-known path", zap.String("url", d.PayloadURL.String()))
	case err != nil:
		return nil, fmt.Errorf("discovering payload on %s: %w", resp.url, err)
	default:
		d.PayloadURL, d.Method = payloadURL, MethodMetaTag
		f.logger.Debug("discovered payload url", zap.String("url", payloadURL.String()))
	}
	return d, nil
}

// Fetch retrieves the payload for target.
func (f *HTTPFetcher) Fetch(ctx context.Context, target string) (*domain.Fetched, error) {
	d, err := f.Discover(ctx, target)
	if err != nil {
		return nil, err
	}
	if d.Method == MethodDirect {
		return &domain.Fetched{Body: d.body, PayloadURL: d.PayloadURL.String(), CrawledDomain: d.CrawledDomain}, nil
	}

	doc, err := f.get(ctx, d.PayloadURL, MaxPayloadBytes, true)
	if err != nil {
		return nil, err
	}
	return &domain.Fetched{Body: doc.body, PayloadURL: doc.url.String(), CrawledDomain: d.CrawledDomain}, nil
}

// get performs a GET, retrying once when the attempt timed out.
func (f *HTTPFetcher) get(ctx context.Context, u *url.URL, limit int64, strict bool) (*response, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := f.do(ctx, u, limit, strict)
		if err == nil {
			return resp, nil
		}
		if !isTimeout(err) || ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
		f.logger.Warn("request timed out",
			zap.String("url", u.String()),
			zap.Int("attempt", attempt),
			zap.Duration("timeout", f.timeout))
	}
	return nil, lastErr
}

func (f *HTTPFetcher) do(ctx context.Context, u *url.URL, limit int64, strict bool) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("%w at %s (HTTP %d)", ErrNoPayload, u, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching %s: unexpected status %s", u, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u, err)
	}
	if int64(len(body)) > limit {
		if strict {
			return nil, fmt.Errorf("%s: %w", u, ErrPayloadTooLarge)
		}
		body = body[:limit]
	}

	f.logger.Debug("fetched",
		zap.String("url", resp.Request.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	return &response{
		body:        body,
		contentType: resp.Header.Get("Content-Type"),
		url:         resp.Request.URL,
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isJSON(r *response) bool {
	if mt, _, err := mime.ParseMediaType(r.contentType); err == nil {
		if mt == "application/json" || strings.HasSuffix(mt, "+json") {
			return true
		}
		if mt == "text/html" || mt == "application/xhtml+xml" {
			return false
		}
	}
	trimmed := bytes.TrimSpace(r.body)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
