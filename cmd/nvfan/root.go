package main

import (
	"codeberg.org/mutker/nvfan/internal/config"
	"codeberg.org/mutker/nvfan/internal/errors"
	"codeberg.org/mutker/nvfan/internal/gpu"
	"codeberg.org/mutker/nvfan/internal/logger"
	"github.com/spf13/cobra"
)

// app carries what every command needs once flags are parsed.
type app struct {
	settings *config.Runtime
	opener   gpu.Opener
	geteuid  func() int
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nvfan",
		Short: "Curve based fan control for NVIDIA GPUs.",
		Long: `nvfan drives NVIDIA GPU fans from per-fan temperature curves ` +
			`with hysteresis. Run "nvfan daemon" as a service, or use the ` +
			`other commands to inspect and edit the configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.LoadRuntime(cmd.Flags())
			if err != nil {
				return err
			}
			a.settings = settings

			logger.Init(settings.Debug, settings.Verbose, logger.IsService())
			logger.Debug().Str("config", settings.ConfigPath).Msg("Runtime settings loaded")

			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", config.DefaultPath, "Path to the fan configuration file")
	flags.String("pid-file", config.DefaultPIDFile, "Path to the daemon PID file")
	flags.BoolP("debug", "d", false, "Enable debug logging")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(
		newDaemonCmd(a),
		newOnceCmd(a),
		newStatusCmd(a),
		newRestoreCmd(a),
		newReloadCmd(a),
		newProfileCmd(a),
		newSetCmd(a),
	)

	return cmd
}

func (a *app) requireRoot() error {
	if a.geteuid() != 0 {
		return errors.New().New(errors.ErrNotRoot)
	}

	return nil
}

func (a *app) store() *config.Store {
	return config.NewStore(a.settings.ConfigPath)
}

// prepare checks privileges and makes sure a configuration file exists.
func (a *app) prepare() (*config.Store, error) {
	if err := a.requireRoot(); err != nil {
		return nil, err
	}

	store := a.store()
	if err := store.EnsureDefaults(); err != nil {
		return nil, err
	}

	return store, nil
}

// selector reads the optional --profile flag.
func selector(cmd *cobra.Command) (*gpu.Identity, error) {
	token, _ := cmd.Flags().GetString("profile")
	if token == "" {
		return nil, nil
	}

	id, err := config.ParseSelector(token)
	if err != nil {
		return nil, err
	}

	return &id, nil
}
