package fetcher_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ncprotocol/ncp/internal/adapters/outbound/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ncp.json")
	require.NoError(t, os.WriteFile(path, []byte(payloadJSON), 0o644))

	got, err := fetcher.NewFile().Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, payloadJSON, string(got.Body))
	assert.Equal(t, path, got.PayloadURL)
	assert.Empty(t, got.CrawledDomain)
}

func TestFileSource_Stdin(t *testing.T) {
	src := fetcher.NewFileWithStdin(strings.NewReader(payloadJSON))

	got, err := src.Fetch(context.Background(), fetcher.StdinTarget)
	require.NoError(t, err)
	assert.Equal(t, payloadJSON, string(got.Body))
	assert.Equal(t, "stdin", got.PayloadURL)
}

func TestFileSource_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat(" ", fetcher.MaxPayloadBytes+1)), 0o644))

	_, err := fetcher.NewFile().Fetch(context.Background(), path)
	assert.ErrorIs(t, err, fetcher.ErrPayloadTooLarge)
}

func TestFileSource_Missing(t *testing.T) {
	_, err := fetcher.NewFile().Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
