package mcp

import (
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ncprotocol/ncp/internal/adapters/outbound/config"
	"github.com/ncprotocol/ncp/internal/adapters/outbound/fetcher"
	"github.com/ncprotocol/ncp/internal/adapters/outbound/gitinfo"
	"github.com/ncprotocol/ncp/internal/adapters/outbound/history"
	"github.com/ncprotocol/ncp/internal/application"
)

// Version is reported to MCP clients.
var Version = "dev"

// deps bundles what the tool and resource handlers need.
type deps struct {
	svc         *application.ValidateService
	projectPath string
	logger      *zap.Logger
}

// NewNCPMCPServer creates an MCP server with all NCP tools and resources
// registered. projectPath is where .ncp.yaml and the history database live.
// The returned cleanup releases the history database.
func NewNCPMCPServer(projectPath string, logger *zap.Logger) (*server.MCPServer, func()) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []application.ServiceOption{
		application.WithLogger(logger),
		application.WithGitInfo(gitinfo.New()),
	}
	cleanup := func() {}
	if hist, err := history.Open(filepath.Join(projectPath, history.DefaultPath)); err != nil {
		logger.Warn("history unavailable", zap.Error(err))
	} else {
		opts = append(opts, application.WithHistory(hist))
		cleanup = func() { _ = hist.Close() }
	}

	svc := application.NewValidateService(
		fetcher.NewHTTP(fetcher.WithLogger(logger)),
		fetcher.NewFile(),
		config.New(),
		opts...,
	)
	return NewServer(svc, projectPath, logger), cleanup
}

// NewServer registers the NCP tools and resources around svc.
func NewServer(svc *application.ValidateService, projectPath string, logger *zap.Logger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := server.NewMCPServer(
		"ncp",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	d := &deps{svc: svc, projectPath: projectPath, logger: logger}
	registerTools(s, d)
	registerResources(s, d)

	return s
}
