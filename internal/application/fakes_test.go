package application_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ncprotocol/ncp/internal/domain"
)

type fakeSource struct {
	mu    sync.Mutex
	docs  map[string]*domain.Fetched
	calls []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{docs: map[string]*domain.Fetched{}}
}

func (f *fakeSource) add(target, body, crawled string) {
	f.docs[target] = &domain.Fetched{Body: []byte(body), PayloadURL: target, CrawledDomain: crawled}
}

func (f *fakeSource) Fetch(_ context.Context, target string) (*domain.Fetched, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, target)
	doc, ok := f.docs[target]
	if !ok {
		return nil, fmt.Errorf("no document for %s", target)
	}
	return doc, nil
}

type fakeConfig struct {
	cfg domain.ProjectConfig
	err error
}

func (f fakeConfig) Load(string) (domain.ProjectConfig, error) { return f.cfg, f.err }

type fakeHistory struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
	saveErr error
}

func (f *fakeHistory) Save(e domain.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeHistory) Load(target string, _ int) ([]domain.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.HistoryEntry
	for _, e := range f.entries {
		if target == "" || e.Target == target {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeGit struct{ hash string }

func (f fakeGit) CommitHash(string) (string, error) {
	if f.hash == "" {
		return "", errors.New("not a repository")
	}
	return f.hash, nil
}
