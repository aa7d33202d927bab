package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"gitlab.bluewillows.net/root/wedosapi/pkg/wapi"
)

// render writes v in the configured output format. The table form is
// produced by tableFn; json and yaml marshal v directly.
func render(w io.Writer, format string, v any, tableFn func(io.Writer)) error {
	switch format {
	case "json":
		return renderJSON(w, v)
	case "yaml":
		return renderYAML(w, v)
	default:
		tableFn(w)
		return nil
	}
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// colorStatus renders a domain status, green for active zones.
func colorStatus(status wapi.DomainStatus) string {
	if status.Active() {
		return color.GreenString(string(status))
	}
	return color.RedString(string(status))
}

func printDomainsTable(w io.Writer, domains []wapi.Domain) {
	if len(domains) == 0 {
		fmt.Fprintln(w, "No domains found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "DOMAIN\tTYPE\tSTATUS")
	fmt.Fprintln(tw, "------\t----\t------")
	for _, d := range domains {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, d.Type, colorStatus(d.Status))
	}
	tw.Flush()
}

func printRecordsTable(w io.Writer, records []wapi.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tTTL\tDATA\tCHANGED")
	fmt.Fprintln(tw, "--\t----\t----\t---\t----\t-------")
	for _, r := range records {
		changed := ""
		if !r.Changed.IsZero() {
			changed = r.Changed.Format(time.DateTime)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.Name, r.Type, r.TTL, r.Data, changed)
	}
	tw.Flush()
}
