package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gitlab.bluewillows.net/root/wedosapi/pkg/dnscheck"
)

func newCommitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit <domain>",
		Short: "Apply pending zone changes",
		Long: `Commit pending DNS changes for a zone. WEDOS applies committed
changes asynchronously.

With --verify the command checks afterwards that the zone answers on
the authoritative nameserver. With --verify-type and --verify-data it
instead polls until the given row is visible or the verify timeout
expires.

Examples:
  wedosctl commit example.com
  wedosctl commit example.com --verify
  wedosctl commit example.com --verify-name www --verify-type A --verify-data 192.0.2.10`,
		Args: cobra.ExactArgs(1),
		RunE: runCommit,
	}

	cmd.Flags().Bool("verify", false, "Check the zone on the authoritative nameserver after commit")
	cmd.Flags().String("verify-name", "", "Row name to wait for after commit (empty for the apex)")
	cmd.Flags().String("verify-type", "", "Record type to wait for")
	cmd.Flags().String("verify-data", "", "Record data to wait for")
	cmd.Flags().Duration("verify-timeout", 0, "How long to wait for verification (default from config)")

	return cmd
}

func runCommit(cmd *cobra.Command, args []string) error {
	domain := args[0]
	verify, _ := cmd.Flags().GetBool("verify")
	verifyName, _ := cmd.Flags().GetString("verify-name")
	verifyType, _ := cmd.Flags().GetString("verify-type")
	verifyData, _ := cmd.Flags().GetString("verify-data")
	verifyTimeout, _ := cmd.Flags().GetDuration("verify-timeout")

	waitForRecord := verifyName != "" || verifyType != "" || verifyData != ""
	if waitForRecord && (verifyType == "" || verifyData == "") {
		return errors.New("--verify-type and --verify-data are both required to wait for a row")
	}

	s := settingsFrom(cmd)
	client, err := newClient(s)
	if err != nil {
		return err
	}

	if err := client.CommitDomain(cmd.Context(), domain); err != nil {
		return fmt.Errorf("committing %s: %w", domain, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Committed zone %s\n", domain)

	if !verify && !waitForRecord {
		return nil
	}

	checker := dnscheck.NewChecker(s.Config.VerifyServer, dnscheck.WithLogger(s.Logger))

	if verifyTimeout <= 0 {
		verifyTimeout = s.Config.VerifyTimeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), verifyTimeout)
	defer cancel()

	if !waitForRecord {
		if err := checker.Ping(ctx, domain); err != nil {
			return fmt.Errorf("verifying zone %s on %s: %w", domain, checker.Server(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Zone %s answers on %s\n", domain, checker.Server())
		return nil
	}

	verifyType = strings.ToUpper(verifyType)
	fqdn := domain
	if verifyName != "" {
		fqdn = verifyName + "." + domain
	}
	if err := checker.WaitFor(ctx, fqdn, verifyType, verifyData, 0); err != nil {
		return fmt.Errorf("waiting for %s %s on %s: %w", verifyType, fqdn, checker.Server(), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s is visible on %s\n", verifyType, fqdn, checker.Server())
	return nil
}
