package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gitlab.bluewillows.net/root/wedosapi/pkg/wapi"
)

func newRecordAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <domain>",
		Short: "Add a DNS row to a zone",
		Long: `Add a new DNS row to the given zone. The change stays pending until
the zone is committed.

Examples:
  wedosctl record add example.com --type A --name www --data 192.0.2.10
  wedosctl record add example.com --type MX --data "10 mail.example.com" --commit
  wedosctl record add example.com --type TXT --name _dmarc --data "v=DMARC1; p=none"`,
		Args: cobra.ExactArgs(1),
		RunE: runRecordAdd,
	}

	cmd.Flags().String("type", "", "Record type (A, AAAA, CNAME, MX, TXT, ...) [required]")
	cmd.Flags().String("name", "", "Row name (leave empty for the zone apex)")
	cmd.Flags().String("data", "", "Record data (IP address, hostname, text value, ...) [required]")
	cmd.Flags().Int("ttl", 0, fmt.Sprintf("Time-to-live in seconds (default: %d)", wapi.DefaultTTL))
	cmd.Flags().Bool("commit", false, "Commit the zone after adding the row")

	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("data")

	return cmd
}

func runRecordAdd(cmd *cobra.Command, args []string) error {
	domain := args[0]
	recordType, _ := cmd.Flags().GetString("type")
	name, _ := cmd.Flags().GetString("name")
	data, _ := cmd.Flags().GetString("data")
	ttl, _ := cmd.Flags().GetInt("ttl")
	commit, _ := cmd.Flags().GetBool("commit")

	s := settingsFrom(cmd)
	client, err := newClient(s)
	if err != nil {
		return err
	}

	spec := wapi.RecordSpec{
		Name: name,
		TTL:  ttl,
		Type: wapi.RecordType(strings.ToUpper(recordType)),
		Data: data,
	}
	if err := client.AddRecord(cmd.Context(), domain, spec); err != nil {
		return fmt.Errorf("adding record: %w", err)
	}

	fqdn := domain
	if name != "" {
		fqdn = name + "." + domain
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s -> %s (pending commit)\n", spec.Type, fqdn, data)

	if commit {
		if err := client.CommitDomain(cmd.Context(), domain); err != nil {
			return fmt.Errorf("committing %s: %w", domain, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Committed zone %s\n", domain)
	}
	return nil
}
