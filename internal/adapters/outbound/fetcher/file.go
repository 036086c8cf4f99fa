package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ncprotocol/ncp/internal/domain"
)

// StdinTarget reads the payload from standard input.
const StdinTarget = "-"

// FileSource implements domain.PayloadSource for local files.
type FileSource struct {
	stdin io.Reader
}

// NewFile creates a FileSource reading "-" from os.Stdin.
func NewFile() *FileSource {
	return &FileSource{stdin: os.Stdin}
}

// NewFileWithStdin creates a FileSource reading "-" from r.
func NewFileWithStdin(r io.Reader) *FileSource {
	return &FileSource{stdin: r}
}

// Fetch reads the payload at path. Local files carry no crawled domain.
func (s *FileSource) Fetch(_ context.Context, path string) (*domain.Fetched, error) {
	if path == StdinTarget {
		body, err := readCapped(s.stdin, "stdin")
		if err != nil {
			return nil, err
		}
		return &domain.Fetched{Body: body, PayloadURL: "stdin"}, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("opening payload: %w", err)
	}
	defer f.Close()

	body, err := readCapped(f, abs)
	if err != nil {
		return nil, err
	}
	return &domain.Fetched{Body: body, PayloadURL: abs}, nil
}

func readCapped(r io.Reader, name string) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(body) > MaxPayloadBytes {
		return nil, fmt.Errorf("%s: %w", name, ErrPayloadTooLarge)
	}
	return body, nil
}
