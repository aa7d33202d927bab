package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.bluewillows.net/root/wedosapi/internal/importer"
)

func newImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Bulk-add DNS rows from record-set files",
		Long: `Read record-set files (YAML or TOML) and add every row they define.

A record-set file names the target zone and its rows:

  domain: example.com
  records:
    - name: www
      type: A
      ttl: 300
      data: 192.0.2.10
    - type: MX
      data: "10 mail.example.com"

With --dry-run the rows are listed without touching the API. With
--commit each zone is committed after its rows are added.

Examples:
  wedosctl import zone.yaml
  wedosctl import zone.yaml --dry-run
  wedosctl import staging.toml production.toml --commit`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("commit", false, "Commit each zone after its rows are added")
	cmd.Flags().Bool("dry-run", false, "Parse and list the rows without adding them")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	commit, _ := cmd.Flags().GetBool("commit")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	s := settingsFrom(cmd)

	// Parse everything up front so a bad file aborts before any row is added.
	sets := make([]*importer.RecordSet, 0, len(args))
	for _, path := range args {
		set, err := importer.Load(path)
		if err != nil {
			return err
		}
		sets = append(sets, set)
	}

	if dryRun {
		for _, set := range sets {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows\n", set.Domain, len(set.Records))
			for _, spec := range set.Specs() {
				name := spec.Name
				if name == "" {
					name = "@"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %d %s\n", name, spec.Type, spec.TTL, spec.Data)
			}
		}
		return nil
	}

	client, err := newClient(s)
	if err != nil {
		return err
	}

	for _, set := range sets {
		for _, spec := range set.Specs() {
			if err := client.AddRecord(cmd.Context(), set.Domain, spec); err != nil {
				return fmt.Errorf("%s: adding %s row %q: %w", set.Domain, spec.Type, spec.Name, err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows into %s\n", len(set.Records), set.Domain)

		if commit {
			if err := client.CommitDomain(cmd.Context(), set.Domain); err != nil {
				return fmt.Errorf("committing %s: %w", set.Domain, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Committed zone %s\n", set.Domain)
		}
	}

	return nil
}
