package main

import (
	"fmt"
	"syscall"

	"codeberg.org/mutker/nvfan/internal/pid"
	"github.com/spf13/cobra"
)

func newReloadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Ask the running daemon to reload its configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireRoot(); err != nil {
				return err
			}

			if err := pid.Signal(a.settings.PIDFile, syscall.SIGHUP); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Reload requested.")

			return nil
		},
	}
}
