package cli

import (
	"github.com/spf13/cobra"
)

func newRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Add or delete DNS rows",
		Long: `Add and delete individual DNS rows.

Changes stay pending on the WEDOS side until the zone is committed,
either with --commit or with a later "wedosctl commit".`,
	}

	cmd.AddCommand(newRecordAddCommand())
	cmd.AddCommand(newRecordDeleteCommand())

	return cmd
}
