package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"gitlab.bluewillows.net/root/wedosapi/pkg/wapi"
)

// dumpConcurrency bounds parallel row fetches during a dump. The client
// rate limiter still applies underneath.
const dumpConcurrency = 4

// ZoneDump is one domain together with all of its DNS rows.
type ZoneDump struct {
	Name    string            `json:"name" yaml:"name"`
	Type    wapi.DomainType   `json:"type" yaml:"type"`
	Status  wapi.DomainStatus `json:"status" yaml:"status"`
	Records []wapi.Record     `json:"records" yaml:"records"`
}

func newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [domain...]",
		Short: "Export domains with all their DNS rows",
		Long: `Export domains and every DNS row they contain. Without arguments all
domains in the account are dumped; otherwise only the named ones.

Row lists are fetched concurrently. The output format is json unless
--output yaml is given.

Examples:
  wedosctl dump
  wedosctl dump example.com example.net --output yaml`,
		Args: cobra.ArbitraryArgs,
		RunE: runDump,
	}
}

func runDump(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd)
	client, err := newClient(s)
	if err != nil {
		return err
	}

	domains, err := client.ListDomains(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing domains: %w", err)
	}

	if len(args) > 0 {
		requested := make(map[string]bool, len(args))
		for _, name := range args {
			requested[name] = true
		}
		filtered := domains[:0]
		for _, d := range domains {
			if requested[d.Name] {
				filtered = append(filtered, d)
				delete(requested, d.Name)
			}
		}
		if len(requested) > 0 {
			missing := slices.Sorted(maps.Keys(requested))
			return fmt.Errorf("domains not found in the account: %s", strings.Join(missing, ", "))
		}
		domains = filtered
	}

	dumps := make([]ZoneDump, len(domains))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(dumpConcurrency)
	for i, d := range domains {
		g.Go(func() error {
			records, err := client.ListRecords(ctx, d.Name)
			if err != nil {
				return fmt.Errorf("listing records for %s: %w", d.Name, err)
			}
			dumps[i] = ZoneDump{Name: d.Name, Type: d.Type, Status: d.Status, Records: records}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if s.Config.Output == "yaml" {
		return renderYAML(cmd.OutOrStdout(), dumps)
	}
	return renderJSON(cmd.OutOrStdout(), dumps)
}
