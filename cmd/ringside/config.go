package main

import (
	"github.com/spf13/cobra"

	"github.com/ringside-tui/ringside/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default boxing config",
	Long: `Print the built-in boxing config as YAML.

Save it as ~/.ringside/configs/boxing.yaml, or pass it with --config, to tune
fighters, the ring, rounds and the CPU.

Examples:
  ringside config > ~/.ringside/configs/boxing.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(config.GetDefaultYAML("boxing"))
		return err
	},
}
