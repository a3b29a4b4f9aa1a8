package main

import (
	"fmt"

	"github.com/plus3/shapesort/sorter"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a level file",
		Long:  "Check a level file and print a summary of its levels. Without an argument the --config file is checked.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.configPath = args[0]
			}
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			name := a.configPath
			if name == "" {
				name = "defaults"
			}
			fmt.Fprintf(out, "%s: ok\n", name)
			for i, l := range cfg.Levels {
				fmt.Fprintf(out, "  level %d: speed %g, spawn every %s, quota %d\n", i+1, l.Speed, l.SpawnInterval(), l.Quota)
			}
			fmt.Fprintf(out, "  baskets: %s\n", basketList(cfg.Baskets))
			return nil
		},
	}
}

func basketList(baskets []sorter.Basket) string {
	var s string
	for i, b := range baskets {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s@(%g,%g)", b.Kind, b.Position.X, b.Position.Y)
	}
	return s
}
