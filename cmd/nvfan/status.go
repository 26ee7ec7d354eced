package main

import (
	"encoding/json"
	"fmt"

	"codeberg.org/mutker/nvfan/internal/errors"
	"codeberg.org/mutker/nvfan/internal/fan"
	"codeberg.org/mutker/nvfan/internal/logger"
	"github.com/spf13/cobra"
)

type statusReport struct {
	PollInterval float64       `json:"poll_interval"`
	Profiles     []fan.Reading `json:"profiles"`
}

func newStatusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print current temperature and fan readings as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.prepare()
			if err != nil {
				return err
			}

			id, err := selector(cmd)
			if err != nil {
				return err
			}

			snap, err := store.Load()
			if err != nil {
				return err
			}

			defs, err := snap.Select(id)
			if err != nil {
				return err
			}

			readings, err := fan.Query(a.opener, defs)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(statusReport{PollInterval: snap.PollInterval, Profiles: readings})
		},
	}

	cmd.Flags().String("profile", "", "Only report gpu:fan")

	return cmd
}

func newRestoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore-auto",
		Short: "Hand fans back to automatic driver control.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.prepare()
			if err != nil {
				return err
			}

			id, err := selector(cmd)
			if err != nil {
				return err
			}

			snap, err := store.Load()
			if err != nil {
				return err
			}

			defs, err := snap.Select(id)
			if err != nil {
				return err
			}

			var errs []error
			for _, result := range fan.RestoreAuto(a.opener, defs) {
				if result.Err != nil {
					logger.ErrorWithCode(result.Err).Str("profile", result.ID.String()).Msg("Failed to restore automatic fan control")
					errs = append(errs, result.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Automatic fan control restored for %s.\n", result.ID)
			}

			return errors.Join(errs...)
		},
	}

	cmd.Flags().String("profile", "", "Only restore gpu:fan")

	return cmd
}
