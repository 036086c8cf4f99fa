package cli

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ncprotocol/ncp/internal/adapters/outbound/config"
	"github.com/ncprotocol/ncp/internal/adapters/outbound/fetcher"
	"github.com/ncprotocol/ncp/internal/adapters/outbound/gitinfo"
	"github.com/ncprotocol/ncp/internal/adapters/outbound/history"
	"github.com/ncprotocol/ncp/internal/application"
	"github.com/ncprotocol/ncp/internal/domain"
)

// services wires the outbound adapters for a project directory.
type services struct {
	cfg     domain.ProjectConfig
	svc     *application.ValidateService
	fetcher *fetcher.HTTPFetcher
	close   func()
}

func newServices(logger *zap.Logger, projectPath string, withHistory bool) (*services, error) {
	cfg, err := config.New().Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	web := fetcher.NewHTTP(
		fetcher.WithLogger(logger),
		fetcher.WithUserAgent(cfg.UserAgent),
	)
	opts := []application.ServiceOption{
		application.WithLogger(logger),
		application.WithGitInfo(gitinfo.New()),
	}

	closeFn := func() {}
	if withHistory && cfg.HistoryEnabled() {
		hist, err := history.Open(filepath.Join(projectPath, history.DefaultPath))
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		opts = append(opts, application.WithHistory(hist))
		closeFn = func() { _ = hist.Close() }
	}

	return &services{
		cfg:     cfg,
		svc:     application.NewValidateService(web, fetcher.NewFile(), config.New(), opts...),
		fetcher: web,
		close:   closeFn,
	}, nil
}
