// Package cli implements the wedosctl command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gitlab.bluewillows.net/root/wedosapi/internal/config"
)

// Settings carries the configuration resolved by the root command and
// shared by every subcommand.
type Settings struct {
	Config  *config.Config
	Logger  *slog.Logger
	Version string
}

type settingsKey struct{}

// settingsFrom returns the settings stored by the root PersistentPreRunE.
func settingsFrom(cmd *cobra.Command) *Settings {
	if s, ok := cmd.Context().Value(settingsKey{}).(*Settings); ok {
		return s
	}
	panic("cli: settings missing from command context")
}

// NewRootCommand builds the wedosctl command tree.
func NewRootCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wedosctl",
		Short: "Manage WEDOS DNS zones from the command line",
		Long: `wedosctl manages DNS zones hosted at WEDOS through the WAPI JSON
interface.

Credentials are resolved from the WEDOS_USER and WEDOS_SECRET environment
variables, the OS keychain (see "wedosctl auth login"), or the config
file, in that order.

Quick start:
  wedosctl auth login                  # Store WAPI credentials
  wedosctl domains                     # List domains in the account
  wedosctl records example.com         # List DNS rows for a zone
  wedosctl record add example.com --type A --name www --data 192.0.2.1
  wedosctl commit example.com          # Apply pending zone changes`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initSettings(cmd, version)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to the config file")
	cmd.PersistentFlags().StringP("output", "o", "", "Output format: table, json or yaml")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	cmd.PersistentFlags().Duration("timeout", 0, "HTTP timeout for API requests")
	cmd.PersistentFlags().Bool("test", false, "Send requests in WAPI test mode")
	cmd.PersistentFlags().String("endpoint", "", "Override the WAPI endpoint URL")
	_ = cmd.PersistentFlags().MarkHidden("endpoint")

	cmd.AddCommand(
		newAuthCommand(),
		newPingCommand(),
		newDomainsCommand(),
		newRecordsCommand(),
		newRecordCommand(),
		newCommitCommand(),
		newDumpCommand(),
		newImportCommand(),
		newMonitorCommand(),
	)

	return cmd
}

// initSettings loads the config file, applies flag overrides, and stores
// the result in the command context.
func initSettings(cmd *cobra.Command, version string) error {
	var (
		fileCfg *config.FileConfig
		err     error
	)
	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		fileCfg, err = config.LoadFile(configPath)
	} else {
		fileCfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := fileCfg.ToConfig()

	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		cfg.Output = strings.ToLower(f.Value.String())
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.LogLevel = strings.ToLower(f.Value.String())
	}
	if f := cmd.Flags().Lookup("log-format"); f != nil && f.Changed {
		cfg.LogFormat = strings.ToLower(f.Value.String())
	}
	if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if f := cmd.Flags().Lookup("test"); f != nil && f.Changed {
		cfg.Test, _ = cmd.Flags().GetBool("test")
	}
	if f := cmd.Flags().Lookup("endpoint"); f != nil && f.Changed {
		cfg.Endpoint = f.Value.String()
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	settings := &Settings{Config: cfg, Logger: logger, Version: version}
	cmd.SetContext(context.WithValue(cmd.Context(), settingsKey{}, settings))
	return nil
}

// Execute runs the root command. Called by main.
func Execute(version string) {
	root := NewRootCommand(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogger builds the CLI logger. Logs go to stderr so that stdout
// stays clean for table, json and yaml output.
func setupLogger(level, format string) *slog.Logger {
	logLevel := parseLogLevel(level)

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	}

	return slog.New(handler)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
