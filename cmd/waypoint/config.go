package main

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
)

const defaultConfigFile = "waypoint.toml"

func configCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init [path]",
			Short: "Write a default configuration file",
			Args:  cobra.MaximumNArgs(1),
			// the file being written need not exist yet
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
			RunE: func(cmd *cobra.Command, args []string) error {
				path := defaultConfigFile
				if g.configPath != "" {
					path = g.configPath
				}
				if len(args) == 1 {
					path = args[0]
				}
				if err := waypoint.WriteDefaultConfig(path); err != nil {
					return err
				}
				success(cmd, "wrote %s", path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return toml.NewEncoder(cmd.OutOrStdout()).Encode(g.cfg)
			},
		},
	)

	return cmd
}
