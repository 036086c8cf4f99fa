package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ncprotocol/ncp/internal/adapters/outbound/tui"
	"github.com/ncprotocol/ncp/internal/application"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		projectPath string
		limit       int
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "history [target]",
		Short: "Show recorded validation runs",
		Long:  "List past validation runs, oldest first, with the score trend per target.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) > 0 {
				target = args[0]
				// Local runs are recorded by absolute path.
				if !application.IsRemote(target) && target != "-" {
					abs, err := filepath.Abs(target)
					if err != nil {
						return fmt.Errorf("resolving path: %w", err)
					}
					target = abs
				}
			}

			deps, err := newServices(opts.log(), projectPath, true)
			if err != nil {
				return err
			}
			defer deps.close()

			entries, err := deps.svc.History(target, limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "config-dir", ".", "Directory holding .ncp.yaml and the history database")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Show at most this many runs (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
