package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ncprotocol/ncp/internal/adapters/outbound/tui"
	"github.com/ncprotocol/ncp/internal/domain/validation"
)

func newExplainCmd() *cobra.Command {
	var (
		plain bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "explain [code]",
		Short: "Explain finding codes",
		Long:  "Describe a finding code, or list every code the validator can emit when none is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md := tui.CatalogMarkdown(validation.Catalog())
			if len(args) == 1 {
				info, ok := validation.Lookup(strings.ToUpper(args[0]))
				if !ok {
					return fmt.Errorf("unknown code %q (run 'ncp explain' for the full list)", args[0])
				}
				md = tui.CodeMarkdown(info)
			}

			styled := !plain && cmd.OutOrStdout() == os.Stdout
			out, err := tui.RenderMarkdown(md, width, styled)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Disable styling")
	cmd.Flags().IntVar(&width, "width", 100, "Wrap output at this width")

	return cmd
}
