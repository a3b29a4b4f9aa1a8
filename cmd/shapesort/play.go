package main

import (
	"github.com/plus3/shapesort/frontend"
	"github.com/spf13/cobra"
)

func newPlayCmd(a *app) *cobra.Command {
	opts := frontend.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open the game window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			opts.Logger = a.log
			opts.Seed = a.seedOr()
			game, err := frontend.New(cfg, opts)
			if err != nil {
				return err
			}
			return game.Run()
		},
	}

	cmd.Flags().Float64Var(&opts.Volume, "volume", opts.Volume, "cue volume from 0 (mute) to 1")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "enable the inspector overlay (F1)")
	return cmd
}
