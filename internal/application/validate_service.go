package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ncprotocol/ncp/internal/domain"
	"github.com/ncprotocol/ncp/internal/domain/validation"
)

// batchLimit caps concurrent fetches in ValidateMany.
const batchLimit = 4

// Overrides are per-run switches layered over .ncp.yaml.
type Overrides struct {
	StrictProtocol bool
	NoOriginCheck  bool
	RequireOrigin  bool
}

// ValidateRequest describes one validation run.
type ValidateRequest struct {
	// Target is an http(s) URL or a local file path ("-" for stdin).
	Target string
	// ProjectPath is where .ncp.yaml is read from. Defaults to ".".
	ProjectPath string
	// Domain, when set, replaces the crawled domain for the origin check.
	Domain    string
	Overrides Overrides
	// NoHistory skips recording the run.
	NoHistory bool
}

// BatchItem is the outcome of one target in ValidateMany.
type BatchItem struct {
	Target string
	Report *domain.Report
	Err    error
}

// ValidateService orchestrates the validation pipeline:
// load config → fetch payload → validate → attach provenance → record history.
type ValidateService struct {
	web          domain.PayloadSource
	files        domain.PayloadSource
	configLoader domain.ConfigLoader
	history      domain.ValidationHistory
	git          domain.GitInfo
	logger       *zap.Logger
	now          func() time.Time
}

// ServiceOption configures optional collaborators of ValidateService.
type ServiceOption func(*ValidateService)

func WithHistory(h domain.ValidationHistory) ServiceOption {
	return func(s *ValidateService) { s.history = h }
}

func WithGitInfo(g domain.GitInfo) ServiceOption {
	return func(s *ValidateService) { s.git = g }
}

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *ValidateService) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *ValidateService) { s.now = now }
}

func NewValidateService(
	web domain.PayloadSource,
	files domain.PayloadSource,
	configLoader domain.ConfigLoader,
	opts ...ServiceOption,
) *ValidateService {
	s := &ValidateService{
		web:          web,
		files:        files,
		configLoader: configLoader,
		logger:       zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsRemote reports whether target is fetched over HTTP.
func IsRemote(target string) bool {
	t := strings.ToLower(target)
	return strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://")
}

// Validate fetches and validates a single target.
func (s *ValidateService) Validate(ctx context.Context, req ValidateRequest) (*domain.Report, error) {
	// 0. Load config
	cfg, err := s.loadConfig(req)
	if err != nil {
		return nil, err
	}
	opts, err := Options(cfg, req.Overrides)
	if err != nil {
		return nil, err
	}

	// 1. Fetch
	remote := IsRemote(req.Target)
	src := s.files
	if remote {
		src = s.web
	}
	fetched, err := src.Fetch(ctx, req.Target)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", req.Target, err)
	}

	// 2. Validate
	crawled := firstNonEmpty(req.Domain, fetched.CrawledDomain, cfg.Domain)
	result := validation.ValidateBytes(fetched.Body, crawled, opts...)

	report := &domain.Report{
		Target:        req.Target,
		PayloadURL:    fetched.PayloadURL,
		CrawledDomain: crawled,
		CheckedAt:     s.now(),
		Result:        result,
	}

	// 3. Provenance
	report.CommitHash = s.commitHash(req, fetched, remote)

	s.logger.Info("validated payload",
		zap.String("target", req.Target),
		zap.String("payload_url", fetched.PayloadURL),
		zap.String("crawled_domain", crawled),
		zap.String("status", string(result.Status)),
		zap.String("level", string(result.ComplianceLevel)),
		zap.Int("score", result.Score),
		zap.Int("blocking", len(result.BlockingErrors)),
		zap.Int("warnings", len(result.Warnings)))

	// 4. History
	if !req.NoHistory && cfg.HistoryEnabled() {
		s.record(report, historyTarget(req.Target, fetched, remote))
	}

	return report, nil
}

// ValidatePayload validates an in-memory document without fetching or
// recording history.
func (s *ValidateService) ValidatePayload(body []byte, crawledDomain string, req ValidateRequest) (*domain.Report, error) {
	cfg, err := s.loadConfig(req)
	if err != nil {
		return nil, err
	}
	opts, err := Options(cfg, req.Overrides)
	if err != nil {
		return nil, err
	}

	crawled := firstNonEmpty(req.Domain, crawledDomain, cfg.Domain)
	return &domain.Report{
		Target:        firstNonEmpty(req.Target, "inline"),
		CrawledDomain: crawled,
		CheckedAt:     s.now(),
		Result:        validation.ValidateBytes(body, crawled, opts...),
	}, nil
}

// ValidateMany validates targets concurrently. Results keep input order; a
// failed target does not stop the others.
func (s *ValidateService) ValidateMany(ctx context.Context, base ValidateRequest, targets []string) []BatchItem {
	items := make([]BatchItem, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchLimit)
	for i, target := range targets {
		g.Go(func() error {
			req := base
			req.Target = target
			report, err := s.Validate(gctx, req)
			items[i] = BatchItem{Target: target, Report: report, Err: err}
			if err != nil {
				s.logger.Warn("validation failed", zap.String("target", target), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	return items
}

// History returns recorded runs, oldest first.
func (s *ValidateService) History(target string, limit int) ([]domain.HistoryEntry, error) {
	if s.history == nil {
		return nil, errors.New("history is not configured")
	}
	entries, err := s.history.Load(target, limit)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return entries, nil
}

func (s *ValidateService) loadConfig(req ValidateRequest) (domain.ProjectConfig, error) {
	path := req.ProjectPath
	if path == "" {
		path = "."
	}
	cfg, err := s.configLoader.Load(path)
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Options translates config and per-run overrides into validator options.
func Options(cfg domain.ProjectConfig, ov Overrides) ([]validation.Option, error) {
	originCheck := cfg.OriginCheckEnabled() && !ov.NoOriginCheck
	requireOrigin := cfg.RequireOrigin || ov.RequireOrigin
	if requireOrigin && !originCheck {
		return nil, errors.New("require-origin cannot be combined with a disabled origin check")
	}

	var opts []validation.Option
	if cfg.StrictProtocol || ov.StrictProtocol {
		opts = append(opts, validation.WithExactProtocol())
	}
	if !originCheck {
		opts = append(opts, validation.WithoutOriginCheck())
	}
	if requireOrigin {
		opts = append(opts, validation.WithRequireOrigin())
	}
	return opts, nil
}

func (s *ValidateService) commitHash(req ValidateRequest, fetched *domain.Fetched, remote bool) string {
	if s.git == nil {
		return ""
	}
	path := fetched.PayloadURL
	if remote || req.Target == "-" {
		path = firstNonEmpty(req.ProjectPath, ".")
	}
	hash, err := s.git.CommitHash(path)
	if err != nil {
		s.logger.Debug("no commit hash", zap.String("path", path), zap.Error(err))
		return ""
	}
	return hash
}

func (s *ValidateService) record(report *domain.Report, target string) {
	if s.history == nil {
		return
	}
	entry := domain.HistoryEntry{
		ID:         uuid.NewString(),
		Timestamp:  report.CheckedAt,
		Target:     target,
		CommitHash: report.CommitHash,
		Status:     report.Result.Status,
		Level:      report.Result.ComplianceLevel,
		Score:      report.Result.Score,
	}
	if err := s.history.Save(entry); err != nil {
		s.logger.Warn("could not record history", zap.String("target", target), zap.Error(err))
	}
}

// historyTarget keys local runs by absolute path so the same file recorded
// from different working directories shares a trend.
func historyTarget(target string, fetched *domain.Fetched, remote bool) string {
	if remote || target == "-" {
		return target
	}
	return fetched.PayloadURL
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
