package main

import (
	"encoding/json"
	"fmt"
	"math"

	"codeberg.org/mutker/nvfan/internal/config"
	"codeberg.org/mutker/nvfan/internal/curve"
	"codeberg.org/mutker/nvfan/internal/errors"
	"github.com/spf13/cobra"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "List, add and remove fan profiles.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print the configuration as JSON.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				snap, err := a.store().Load()
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")

				return enc.Encode(snap)
			},
		},
		&cobra.Command{
			Use:   "add gpu:fan",
			Short: "Add a profile with the default curve.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.edit(cmd, func(snap *config.Snapshot) error {
					id, err := config.ParseSelector(args[0])
					if err != nil {
						return err
					}
					if snap.Find(id) >= 0 {
						return errors.New().WithData(errors.ErrDuplicateProfile, id.String())
					}
					snap.Ensure(id)

					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove gpu:fan",
			Short: "Remove a profile.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.edit(cmd, func(snap *config.Snapshot) error {
					id, err := config.ParseSelector(args[0])
					if err != nil {
						return err
					}
					if !snap.Remove(id) {
						return errors.New().WithData(errors.ErrProfileNotFound, id.String())
					}

					return nil
				})
			},
		},
	)

	return cmd
}

func newSetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change a profile's curve or hysteresis, or the poll interval.",
		Long: `Change configuration values. --curve and --hysteresis apply to the ` +
			`profile named by --profile, or the first profile. A missing profile ` +
			`is created with the default curve.`,
		Example: `  nvfan set --profile 0:1 --curve 40:30,60:50,80:80 --hysteresis 3
  nvfan set --poll-interval 1.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("curve") && !flags.Changed("hysteresis") && !flags.Changed("poll-interval") {
				return errors.New().WithMessage(errors.ErrInvalidArgument,
					"nothing to set: use --curve, --hysteresis or --poll-interval")
			}

			id, err := selector(cmd)
			if err != nil {
				return err
			}

			return a.edit(cmd, func(snap *config.Snapshot) error {
				if flags.Changed("curve") || flags.Changed("hysteresis") {
					target := snap.Profiles[0].ID()
					if id != nil {
						target = *id
					}
					profile := snap.Ensure(target)

					if flags.Changed("curve") {
						s, _ := flags.GetString("curve")
						points, err := curve.Parse(s)
						if err != nil {
							return err
						}
						profile.Curve = points
					}

					if flags.Changed("hysteresis") {
						h, _ := flags.GetFloat64("hysteresis")
						profile.Hysteresis = math.Max(0, h)
					}
				}

				if flags.Changed("poll-interval") {
					interval, _ := flags.GetFloat64("poll-interval")
					snap.PollInterval = config.ClampPollInterval(interval)
				}

				return nil
			})
		},
	}

	cmd.Flags().String("profile", "", "Profile to change as gpu:fan")
	cmd.Flags().String("curve", "", "Curve as temp:speed pairs, e.g. 40:30,60:50,80:80")
	cmd.Flags().Float64("hysteresis", config.DefaultHysteresis, "Minimum speed change before a write")
	cmd.Flags().Float64("poll-interval", config.DefaultPollInterval, "Seconds between polls")

	return cmd
}

// edit loads the configuration, applies change and saves the result.
func (a *app) edit(cmd *cobra.Command, change func(*config.Snapshot) error) error {
	store, err := a.prepare()
	if err != nil {
		return err
	}

	snap, err := store.Load()
	if err != nil {
		return err
	}

	if err := change(&snap); err != nil {
		return err
	}

	if err := store.Save(snap); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration updated: %s\n", store.Path())

	return nil
}
