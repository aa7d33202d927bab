package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRecordDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <domain> <row-id>",
		Short: "Delete a DNS row by its ID",
		Long: `Delete a DNS row by its numeric ID. Row IDs are shown by
"wedosctl records". The change stays pending until the zone is
committed.

Example:
  wedosctl record delete example.com 1234567 --commit`,
		Args: cobra.ExactArgs(2),
		RunE: runRecordDelete,
	}

	cmd.Flags().Bool("commit", false, "Commit the zone after deleting the row")

	return cmd
}

func runRecordDelete(cmd *cobra.Command, args []string) error {
	domain := args[0]
	rowID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid row id %q", args[1])
	}
	commit, _ := cmd.Flags().GetBool("commit")

	s := settingsFrom(cmd)
	client, err := newClient(s)
	if err != nil {
		return err
	}

	if err := client.DeleteRecord(cmd.Context(), domain, rowID); err != nil {
		return fmt.Errorf("deleting record %d: %w", rowID, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted row %d from %s (pending commit)\n", rowID, domain)

	if commit {
		if err := client.CommitDomain(cmd.Context(), domain); err != nil {
			return fmt.Errorf("committing %s: %w", domain, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Committed zone %s\n", domain)
	}
	return nil
}
