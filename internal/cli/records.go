package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newRecordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records <domain>",
		Short: "List DNS rows for a zone",
		Long: `List all DNS rows for the given zone.

Examples:
  wedosctl records example.com
  wedosctl records example.com --type A`,
		Args: cobra.ExactArgs(1),
		RunE: runRecords,
	}

	cmd.Flags().String("type", "", "Filter rows by record type (A, AAAA, CNAME, MX, TXT, ...)")

	return cmd
}

func runRecords(cmd *cobra.Command, args []string) error {
	domain := args[0]
	typeFilter, _ := cmd.Flags().GetString("type")

	s := settingsFrom(cmd)
	client, err := newClient(s)
	if err != nil {
		return err
	}

	records, err := client.ListRecords(cmd.Context(), domain)
	if err != nil {
		return fmt.Errorf("listing records for %s: %w", domain, err)
	}

	if typeFilter != "" {
		filtered := records[:0]
		for _, r := range records {
			if strings.EqualFold(string(r.Type), typeFilter) {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	return render(cmd.OutOrStdout(), s.Config.Output, records, func(w io.Writer) {
		printRecordsTable(w, records)
	})
}
