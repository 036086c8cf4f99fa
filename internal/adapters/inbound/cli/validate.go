package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ncprotocol/ncp/internal/adapters/outbound/tui"
	"github.com/ncprotocol/ncp/internal/adapters/outbound/watcher"
	"github.com/ncprotocol/ncp/internal/application"
	"github.com/ncprotocol/ncp/internal/domain"
)

type validateFlags struct {
	projectPath    string
	domain         string
	jsonOutput     bool
	badge          bool
	strictProtocol bool
	noOriginCheck  bool
	requireOrigin  bool
	ciMode         bool
	minLevel       string
	minScore       int
	watch          bool
	noHistory      bool
}

// batchResult is the JSON shape of one target when several are validated.
type batchResult struct {
	Target string                  `json:"target"`
	Report *domain.Report          `json:"report,omitempty"`
	Gate   *application.GateResult `json:"gate,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var f validateFlags

	cmd := &cobra.Command{
		Use:   "validate <url|file|-> [more...]",
		Short: "Validate NCP payloads",
		Long: `Validate one or more NCP payloads and report their compliance level.

A URL is fetched over HTTP: a JSON response is the payload itself, an HTML page
is searched for <meta name="ncp-payload-url">, falling back to
/.well-known/ncp.json. Anything else is read as a local file ("-" for stdin).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.watch && (len(args) != 1 || application.IsRemote(args[0]) || args[0] == "-") {
				return errors.New("--watch needs exactly one local file")
			}
			if f.minLevel != "" && domain.ComplianceLevel(strings.ToUpper(f.minLevel)).Rank() < 0 {
				return fmt.Errorf("unknown --min-level %q (valid: NONE, CORE, PLUS, VERIFIED-L1)", f.minLevel)
			}
			if f.minScore < 0 || f.minScore > 100 {
				return fmt.Errorf("--min-score = %d (must be between 0 and 100)", f.minScore)
			}

			logger := opts.log()
			deps, err := newServices(logger, f.projectPath, !f.noHistory)
			if err != nil {
				return err
			}
			defer deps.close()

			req := application.ValidateRequest{
				ProjectPath: f.projectPath,
				Domain:      f.domain,
				NoHistory:   f.noHistory,
				Overrides: application.Overrides{
					StrictProtocol: f.strictProtocol,
					NoOriginCheck:  f.noOriginCheck,
					RequireOrigin:  f.requireOrigin,
				},
			}
			minLevel, minScore := thresholds(cmd, f, deps.cfg)

			if f.watch {
				return watchFile(cmd, deps.svc, req, args[0], f, logger)
			}

			if len(args) == 1 {
				req.Target = args[0]
				report, err := deps.svc.Validate(cmd.Context(), req)
				if err != nil {
					return fmt.Errorf("validation failed: %w", err)
				}
				if err := renderReport(cmd.OutOrStdout(), report, f); err != nil {
					return err
				}
				if f.ciMode {
					return gateError(report.Target, application.CIGate(report, minLevel, minScore))
				}
				return nil
			}

			return validateBatch(cmd, deps.svc, req, args, f, minLevel, minScore)
		},
	}

	cmd.Flags().StringVar(&f.projectPath, "config-dir", ".", "Directory holding .ncp.yaml and the history database")
	cmd.Flags().StringVar(&f.domain, "domain", "", "Domain to compare identity.url against (overrides the crawled host)")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&f.badge, "badge", false, "Output a shields.io badge URL")
	cmd.Flags().BoolVar(&f.strictProtocol, "strict-protocol", false, "Require protocol to be exactly NCP/1.0")
	cmd.Flags().BoolVar(&f.noOriginCheck, "no-origin-check", false, "Skip the identity.url / domain comparison")
	cmd.Flags().BoolVar(&f.requireOrigin, "require-origin", false, "Only grant VERIFIED-L1 after a positive origin match")
	cmd.Flags().BoolVar(&f.ciMode, "ci", false, "CI mode: exit 1 on FAIL or when below --min-level / --min-score")
	cmd.Flags().StringVar(&f.minLevel, "min-level", "", "Minimum compliance level for CI mode")
	cmd.Flags().IntVar(&f.minScore, "min-score", 0, "Minimum score for CI mode")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "Re-validate a local file whenever it changes")
	cmd.Flags().BoolVar(&f.noHistory, "no-history", false, "Do not record this run")
	cmd.MarkFlagsMutuallyExclusive("json", "badge")
	cmd.MarkFlagsMutuallyExclusive("no-origin-check", "require-origin")

	return cmd
}

// thresholds prefers flags given on the command line over .ncp.yaml, so an
// explicit --min-score 0 or --min-level "" switches a configured gate off.
func thresholds(cmd *cobra.Command, f validateFlags, cfg domain.ProjectConfig) (domain.ComplianceLevel, int) {
	level := cfg.MinLevel
	if cmd.Flags().Changed("min-level") {
		level = domain.ComplianceLevel(strings.ToUpper(f.minLevel))
	}
	score := cfg.MinScore
	if cmd.Flags().Changed("min-score") {
		score = f.minScore
	}
	return level, score
}

func validateBatch(cmd *cobra.Command, svc *application.ValidateService, req application.ValidateRequest, targets []string, f validateFlags, minLevel domain.ComplianceLevel, minScore int) error {
	items := svc.ValidateMany(cmd.Context(), req, targets)

	results := make([]batchResult, len(items))
	var failed []string
	for i, item := range items {
		results[i] = batchResult{Target: item.Target, Report: item.Report}
		if item.Err != nil {
			results[i].Error = item.Err.Error()
			failed = append(failed, item.Target)
			continue
		}
		if f.ciMode {
			gate := application.CIGate(item.Report, minLevel, minScore)
			results[i].Gate = &gate
			if !gate.Passed {
				failed = append(failed, item.Target)
			}
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case f.jsonOutput:
		if err := writeJSON(out, results); err != nil {
			return err
		}
	default:
		for _, r := range results {
			if r.Error != "" {
				fmt.Fprintf(out, "%s: %s\n", r.Target, r.Error)
				continue
			}
			if err := renderReport(out, r.Report, f); err != nil {
				return err
			}
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d target(s) failed: %s", len(failed), len(targets), strings.Join(failed, ", "))
	}
	return nil
}

func watchFile(cmd *cobra.Command, svc *application.ValidateService, req application.ValidateRequest, path string, f validateFlags, logger *zap.Logger) error {
	run := func(ctx context.Context) {
		req.Target = path
		report, err := svc.Validate(ctx, req)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "validation failed: %v\n", err)
			return
		}
		if err := renderReport(cmd.OutOrStdout(), report, f); err != nil {
			logger.Warn("render failed", zap.Error(err))
		}
	}

	ctx := cmd.Context()
	run(ctx)
	return watcher.New(logger, 0).Watch(ctx, path, func(string) { run(ctx) })
}

func renderReport(w io.Writer, report *domain.Report, f validateFlags) error {
	switch {
	case f.jsonOutput:
		return writeJSON(w, report)
	case f.badge:
		_, err := fmt.Fprintln(w, badgeURL(report.Result))
		return err
	default:
		_, err := fmt.Fprint(w, tui.RenderReport(report))
		return err
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// badgeURL builds a shields.io static badge. Dashes and underscores in the
// message are doubled as shields.io requires.
func badgeURL(r *domain.ValidationResult) string {
	msg := fmt.Sprintf("%s %d/100", r.ComplianceLevel, r.Score)
	msg = strings.NewReplacer("-", "--", "_", "__").Replace(msg)
	return fmt.Sprintf("https://img.shields.io/badge/NCP-%s-%s", url.PathEscape(msg), domain.BadgeColor(r.ComplianceLevel))
}

func gateError(target string, gate application.GateResult) error {
	if gate.Passed {
		return nil
	}
	return fmt.Errorf("%s did not pass: %s", target, strings.Join(gate.Reasons, "; "))
}
