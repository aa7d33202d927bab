package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gitlab.bluewillows.net/root/wedosapi/internal/metrics"
	"gitlab.bluewillows.net/root/wedosapi/internal/monitor"
	"gitlab.bluewillows.net/root/wedosapi/pkg/dnscheck"
)

const shutdownTimeout = 5 * time.Second

func newMonitorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Serve health and metrics endpoints",
		Long: `Run a monitoring server exposing /health, /ready and /metrics.

/ready checks that the WAPI accepts the resolved credentials. When
--zone is given it also checks that the zone answers on the
authoritative nameserver. /metrics exposes Prometheus counters for
the WAPI requests issued by this process.

The server runs until interrupted.

Examples:
  wedosctl monitor
  wedosctl monitor --listen :9090 --zone example.com`,
		Args: cobra.NoArgs,
		RunE: runMonitor,
	}

	cmd.Flags().String("listen", "", "Listen address (defaults to monitor.listen from the config file)")
	cmd.Flags().String("zone", "", "Zone whose authoritative nameserver is checked for readiness")

	return cmd
}

func runMonitor(cmd *cobra.Command, args []string) error {
	listen, _ := cmd.Flags().GetString("listen")
	zone, _ := cmd.Flags().GetString("zone")

	s := settingsFrom(cmd)
	client, err := newClient(s)
	if err != nil {
		return err
	}

	metrics.SetBuildInfo(s.Version, runtime.Version())

	if listen == "" {
		listen = s.Config.MonitorListen
	}

	srv := monitor.New(listen, monitor.WithLogger(s.Logger))
	srv.RegisterChecker("wapi", client.Ping)
	if zone != "" {
		checker := dnscheck.NewChecker(s.Config.VerifyServer, dnscheck.WithLogger(s.Logger))
		srv.RegisterChecker("dns:"+zone, func(ctx context.Context) error {
			return checker.Ping(ctx, zone)
		})
	}

	if err := srv.Start(); err != nil {
		return err
	}

	s.Logger.Info("monitor running",
		slog.String("addr", srv.Addr()),
		slog.String("user", client.User()),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	s.Logger.Info("shutting down monitor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
