package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ncprotocol/ncp/internal/adapters/outbound/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

const payloadJSON = `{"protocol":"NCP/1.0","semantic_type":"Product"}`

func newServer(t *testing.T, h http.Handler) (*httptest.Server, *fetcher.HTTPFetcher) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	f := fetcher.NewHTTP(
		fetcher.WithTransport(srv.Client().Transport),
		fetcher.WithTimeout(200*time.Millisecond),
	)
	return srv, f
}

func servePayload(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func serveHTML(w http.ResponseWriter, head string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<!doctype html><html><head>" + head + "</head><body>hi</body></html>"))
}

func TestFetch_DirectJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ncp.json", func(w http.ResponseWriter, _ *http.Request) { servePayload(w, payloadJSON) })
	srv, f := newServer(t, mux)

	got, err := f.Fetch(context.Background(), srv.URL+"/ncp.json")
	require.NoError(t, err)
	assert.JSONEq(t, payloadJSON, string(got.Body))
	assert.Equal(t, srv.URL+"/ncp.json", got.PayloadURL)
	assert.Equal(t, "127.0.0.1", got.CrawledDomain)
}

func TestFetch_SniffsJSONWithoutContentType(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/p", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("  " + payloadJSON))
	})
	srv, f := newServer(t, mux)

	got, err := f.Fetch(context.Background(), srv.URL+"/p")
	require.NoError(t, err)
	assert.Contains(t, string(got.Body), "NCP/1.0")
}

func TestFetch_FollowsMetaTag(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/widgets", func(w http.ResponseWriter, _ *http.Request) {
		serveHTML(w, `<meta name="ncp-payload-url" content="/data/ncp.json">`)
	})
	mux.HandleFunc("/data/ncp.json", func(w http.ResponseWriter, _ *http.Request) { servePayload(w, payloadJSON) })
	srv, f := newServer(t, mux)

	got, err := f.Fetch(context.Background(), srv.URL+"/widgets")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/data/ncp.json", got.PayloadURL)
	assert.Equal(t, "127.0.0.1", got.CrawledDomain)
	assert.JSONEq(t, payloadJSON, string(got.Body))
}

func TestFetch_FallsBackToWellKnown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		serveHTML(w, `<title>no tag</title>`)
	})
	mux.HandleFunc("/.well-known/ncp.json", func(w http.ResponseWriter, _ *http.Request) { servePayload(w, payloadJSON) })
	srv, f := newServer(t, mux)

	got, err := f.Fetch(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/.well-known/ncp.json", got.PayloadURL)
}

func TestFetch_NoPayloadAnywhere(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		serveHTML(w, ``)
	})
	srv, f := newServer(t, mux)

	_, err := f.Fetch(context.Background(), srv.URL+"/")
	assert.ErrorIs(t, err, fetcher.ErrNoPayload)
}

func TestFetch_PayloadTooLarge(t *testing.T) {
	big := `{"pad":"` + strings.Repeat("x", fetcher.MaxPayloadBytes) + `"}`
	mux := http.NewServeMux()
	mux.HandleFunc("/direct", func(w http.ResponseWriter, _ *http.Request) { servePayload(w, big) })
	mux.HandleFunc("/page", func(w http.ResponseWriter, _ *http.Request) {
		serveHTML(w, `<meta name="ncp-payload-url" content="/direct">`)
	})
	srv, f := newServer(t, mux)

	_, err := f.Fetch(context.Background(), srv.URL+"/direct")
	assert.ErrorIs(t, err, fetcher.ErrPayloadTooLarge)

	_, err = f.Fetch(context.Background(), srv.URL+"/page")
	assert.ErrorIs(t, err, fetcher.ErrPayloadTooLarge)
}

func TestFetch_PayloadAtLimitAccepted(t *testing.T) {
	prefix, suffix := `{"pad":"`, `"}`
	exact := prefix + strings.Repeat("x", fetcher.MaxPayloadBytes-len(prefix)-len(suffix)) + suffix
	require.Len(t, exact, fetcher.MaxPayloadBytes)

	mux := http.NewServeMux()
	mux.HandleFunc("/ncp.json", func(w http.ResponseWriter, _ *http.Request) { servePayload(w, exact) })
	srv, f := newServer(t, mux)

	got, err := f.Fetch(context.Background(), srv.URL+"/ncp.json")
	require.NoError(t, err)
	assert.Len(t, got.Body, fetcher.MaxPayloadBytes)
}

func TestFetch_Redirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ncp.json", func(w http.ResponseWriter, _ *http.Request) { servePayload(w, payloadJSON) })
	mux.HandleFunc("/once", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ncp.json", http.StatusFound)
	})
	mux.HandleFunc("/twice", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/once", http.StatusFound)
	})
	srv, f := newServer(t, mux)

	got, err := f.Fetch(context.Background(), srv.URL+"/once")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/ncp.json", got.PayloadURL)

	_, err = f.Fetch(context.Background(), srv.URL+"/twice")
	assert.ErrorIs(t, err, fetcher.ErrTooManyRedirects)
}

func TestFetch_RetriesOnceAfterTimeout(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/ncp.json", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		servePayload(w, payloadJSON)
	})
	srv, f := newServer(t, mux)

	got, err := f.Fetch(context.Background(), srv.URL+"/ncp.json")
	require.NoError(t, err)
	assert.JSONEq(t, payloadJSON, string(got.Body))
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_GivesUpAfterSecondTimeout(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/ncp.json", func(_ http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv, f := newServer(t, mux)

	_, err := f.Fetch(context.Background(), srv.URL+"/ncp.json")
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_ServerErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/ncp.json", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv, f := newServer(t, mux)

	_, err := f.Fetch(context.Background(), srv.URL+"/ncp.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, fetcher.ErrNoPayload)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_SendsUserAgent(t *testing.T) {
	var ua atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("/ncp.json", func(w http.ResponseWriter, r *http.Request) {
		ua.Store(r.UserAgent())
		servePayload(w, payloadJSON)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	f := fetcher.NewHTTP(fetcher.WithTransport(srv.Client().Transport), fetcher.WithUserAgent("acme-bot/2"))

	_, err := f.Fetch(context.Background(), srv.URL+"/ncp.json")
	require.NoError(t, err)
	assert.Equal(t, "acme-bot/2", ua.Load())
}

func TestFetch_RejectsNonHTTPTargets(t *testing.T) {
	f := fetcher.NewHTTP()
	for _, target := range []string{"ftp://acme.example/ncp.json", "acme.example", "https://"} {
		_, err := f.Fetch(context.Background(), target)
		assert.Error(t, err, target)
	}
}

func TestDiscover_Methods(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tagged", func(w http.ResponseWriter, _ *http.Request) {
		serveHTML(w, `<meta name="ncp-payload-url" content="https://cdn.acme.example/ncp.json">`)
	})
	mux.HandleFunc("/plain", func(w http.ResponseWriter, _ *http.Request) { serveHTML(w, ``) })
	mux.HandleFunc("/ncp.json", func(w http.ResponseWriter, _ *http.Request) { servePayload(w, payloadJSON) })
	srv, f := newServer(t, mux)

	d, err := f.Discover(context.Background(), srv.URL+"/tagged")
	require.NoError(t, err)
	assert.Equal(t, fetcher.MethodMetaTag, d.Method)
	assert.Equal(t, "https://cdn.acme.example/ncp.json", d.PayloadURL.String())

	d, err = f.Discover(context.Background(), srv.URL+"/plain")
	require.NoError(t, err)
	assert.Equal(t, fetcher.MethodWellKnown, d.Method)
	assert.Equal(t, srv.URL+"/.well-known/ncp.json", d.PayloadURL.String())

	d, err = f.Discover(context.Background(), srv.URL+"/ncp.json")
	require.NoError(t, err)
	assert.Equal(t, fetcher.MethodDirect, d.Method)
	assert.Equal(t, "127.0.0.1", d.CrawledDomain)
}
