package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check API connectivity and credentials",
		Long: `Send a WAPI ping to verify that the API is reachable and the
resolved credentials are accepted.

Example:
  wedosctl ping`,
		Args: cobra.NoArgs,
		RunE: runPing,
	}
}

func runPing(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd)
	client, err := newClient(s)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := client.Ping(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s credentials accepted for %s (%s)\n",
		color.GreenString("OK:"), client.User(), time.Since(start).Round(time.Millisecond))
	return nil
}
