package main

import (
	"context"
	"os"

	"codeberg.org/mutker/nvfan/internal/daemon"
	"codeberg.org/mutker/nvfan/internal/logger"
	"codeberg.org/mutker/nvfan/internal/pid"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
)

func newDaemonCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the fan control loop until stopped.",
		Long: `Run the fan control loop. SIGTERM and SIGINT stop the daemon, ` +
			`SIGHUP reloads the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.prepare()
			if err != nil {
				return err
			}

			sigs, stopSignals := daemon.NotifySignals()
			defer stopSignals()

			if err := pid.Write(a.settings.PIDFile); err != nil {
				return err
			}
			defer func() {
				if err := pid.Remove(a.settings.PIDFile); err != nil {
					logger.ErrorWithCode(err).Msg("Failed to remove PID file")
				}
			}()

			d, err := daemon.New(store, a.opener, daemon.Options{RestoreOnExit: a.settings.RestoreOnExit()})
			if err != nil {
				return err
			}

			return serve(cmd.Context(), d, sigs, a.settings.ConfigPath, a.settings.Watch)
		},
	}

	cmd.Flags().Bool("no-restore-on-exit", false, "Leave fans under manual control when the daemon exits")
	cmd.Flags().Bool("watch", false, "Reload when the configuration file changes")

	return cmd
}

// serve runs the loop alongside the signal handler and, if enabled, the
// configuration watcher. Only the loop touches hardware.
func serve(parent context.Context, d *daemon.Daemon, sigs <-chan os.Signal, configPath string, watch bool) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var g run.Group

	g.Add(func() error {
		return d.Run(ctx)
	}, func(error) {
		d.Stop()
	})

	g.Add(func() error {
		return daemon.HandleSignals(ctx, d, sigs)
	}, func(error) {
		cancel()
	})

	if watch {
		g.Add(func() error {
			return daemon.WatchConfig(ctx, configPath, d)
		}, func(error) {
			cancel()
		})
	}

	logger.Info().Str("config", configPath).Bool("watch", watch).Msg("Daemon started")

	return g.Run()
}

func newOnceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Apply the curves once and exit, leaving fans under manual control.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.prepare()
			if err != nil {
				return err
			}

			d, err := daemon.New(store, a.opener, daemon.DefaultOptions())
			if err != nil {
				return err
			}

			return d.RunOnce(cmd.Context())
		},
	}
}
