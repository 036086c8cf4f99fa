package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ncprotocol/ncp/internal/adapters/outbound/fetcher"
	"github.com/ncprotocol/ncp/internal/application"
)

func newDiscoverCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		userAgent  string
	)

	cmd := &cobra.Command{
		Use:   "discover <url>",
		Short: "Show where a page publishes its NCP payload",
		Long:  "Resolve the payload URL for a page from its ncp-payload-url meta tag or the /.well-known/ncp.json fallback, without validating it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !application.IsRemote(args[0]) {
				return fmt.Errorf("%q is not an http(s) URL", args[0])
			}

			f := fetcher.NewHTTP(fetcher.WithLogger(opts.log()), fetcher.WithUserAgent(userAgent))
			d, err := f.Discover(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("discovery failed: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"target":         args[0],
					"payload_url":    d.PayloadURL.String(),
					"method":         d.Method,
					"crawled_domain": d.CrawledDomain,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t(%s)\n", d.PayloadURL, d.Method)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "User-Agent header for requests")

	return cmd
}
