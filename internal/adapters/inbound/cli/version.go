package cli

import (
	"fmt"

	"github.com/ncprotocol/ncp/internal/domain"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ncp %s (commit %s, protocol NCP/%s)\n", version, commit, domain.ProtocolVersion)
		},
	}
}
