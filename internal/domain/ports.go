package domain

import "context"

// Fetched is a raw payload document together with its provenance.
type Fetched struct {
	Body []byte
	// PayloadURL is where the payload document was read from (URL or file path).
	PayloadURL string
	// CrawledDomain is the host the payload was discovered on. Empty for local files.
	CrawledDomain string
}

// PayloadSource retrieves a payload document for a target.
type PayloadSource interface {
	Fetch(ctx context.Context, target string) (*Fetched, error)
}

// ConfigLoader loads project configuration from a directory.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// ValidationHistory persists validation runs.
type ValidationHistory interface {
	Save(entry HistoryEntry) error
	// Load returns up to limit runs, oldest first. An empty target matches all
	// runs; limit <= 0 means no limit.
	Load(target string, limit int) ([]HistoryEntry, error)
}

// GitInfo reads version-control metadata for a path.
type GitInfo interface {
	CommitHash(path string) (string, error)
}
