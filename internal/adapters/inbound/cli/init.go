package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ncprotocol/ncp/internal/adapters/outbound/config"
	"github.com/ncprotocol/ncp/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		domainName     string
		minLevel       string
		minScore       int
		strictProtocol bool
		force          bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .ncp.yaml configuration file",
		Long:  "Create a .ncp.yaml with the publishing domain and CI thresholds for your site.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := domain.ProjectConfig{
				StrictProtocol: strictProtocol,
				Domain:         domainName,
				MinLevel:       domain.ComplianceLevel(strings.ToUpper(minLevel)),
				MinScore:       minScore,
			}
			if _, err := config.Write(absPath, cfg); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&domainName, "domain", "", "Domain the payload is published on")
	cmd.Flags().StringVar(&minLevel, "min-level", string(domain.LevelCore), "Minimum compliance level for CI")
	cmd.Flags().IntVar(&minScore, "min-score", 0, "Minimum score for CI")
	cmd.Flags().BoolVar(&strictProtocol, "strict-protocol", false, "Require protocol to be exactly NCP/1.0")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .ncp.yaml")

	return cmd
}
