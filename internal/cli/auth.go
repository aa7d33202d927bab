package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gitlab.bluewillows.net/root/wedosapi/internal/credstore"
)

func newAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored WAPI credentials",
		Long: `Manage WAPI credentials in the OS keychain.

Use this command group to store, inspect and remove the login used by
all other commands.`,
	}

	cmd.AddCommand(newAuthLoginCommand())
	cmd.AddCommand(newAuthStatusCommand())
	cmd.AddCommand(newAuthLogoutCommand())

	return cmd
}

func newAuthLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store WAPI credentials in the OS keychain",
		Long: `Store the WAPI login in the OS keychain.

The user is the WEDOS account login (usually an email address); the
secret is the WAPI password configured in the WEDOS customer portal.
The password is prompted without echo; when stdin is not a terminal it
is read from stdin instead.

Example:
  wedosctl auth login --user admin@example.com`,
		Args: cobra.NoArgs,
		RunE: runAuthLogin,
	}

	cmd.Flags().String("user", "", "WAPI account login")

	return cmd
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetString("user")
	user = strings.TrimSpace(user)

	reader := bufio.NewReader(cmd.InOrStdin())

	if user == "" {
		fmt.Fprint(cmd.OutOrStdout(), "WAPI user: ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		user = strings.TrimSpace(line)
	}
	if user == "" {
		return errors.New("user cannot be empty")
	}

	var secret string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(cmd.OutOrStdout(), "WAPI password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		secret = strings.TrimSpace(string(raw))
	} else {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		secret = strings.TrimSpace(line)
	}
	if secret == "" {
		return errors.New("password cannot be empty")
	}

	if err := credStoreFactory().Save(credstore.Credentials{User: user, Secret: secret}); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved credentials for %s\n", user)
	return nil
}

func newAuthStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which credentials are stored",
		Long: `Show whether WAPI credentials are stored in the OS keychain and
whether environment credentials would take precedence.

Example:
  wedosctl auth status`,
		Args: cobra.NoArgs,
		RunE: runAuthStatus,
	}
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if user := os.Getenv(envUser); user != "" && os.Getenv(envSecret) != "" {
		fmt.Fprintf(out, "Environment credentials active for %s (take precedence over the keychain)\n", user)
	}

	creds, err := credStoreFactory().Load()
	switch {
	case err == nil:
		fmt.Fprintf(out, "Logged in as %s\n", creds.User)
	case errors.Is(err, credstore.ErrNotFound):
		fmt.Fprintln(out, "Not logged in.")
	default:
		return fmt.Errorf("reading keychain: %w", err)
	}
	return nil
}

func newAuthLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored WAPI credentials",
		Long: `Remove the WAPI login from the OS keychain.

Example:
  wedosctl auth logout`,
		Args: cobra.NoArgs,
		RunE: runAuthLogout,
	}
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	err := credStoreFactory().Delete()
	if errors.Is(err, credstore.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("removing credentials: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Removed stored credentials.")
	return nil
}
