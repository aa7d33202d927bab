package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newDomainsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "List domains in the account",
		Long: `List all domains registered in the WEDOS account.

Examples:
  wedosctl domains
  wedosctl domains --output json`,
		Args: cobra.NoArgs,
		RunE: runDomains,
	}
}

func runDomains(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd)
	client, err := newClient(s)
	if err != nil {
		return err
	}

	domains, err := client.ListDomains(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing domains: %w", err)
	}

	return render(cmd.OutOrStdout(), s.Config.Output, domains, func(w io.Writer) {
		printDomainsTable(w, domains)
	})
}
