package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/brickwell/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would start with, after --config and
--difficulty are applied. The output is valid input for --config.

Examples:
  brickwell config > my.yaml
  brickwell config --difficulty hard
  brickwell config --defaults`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the embedded default file instead")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagDefaults {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	data, err := yaml.Marshal(gameConfig)
	if err != nil {
		return fmt.Errorf("config: cannot encode: %w", err)
	}
	_, err = out.Write(data)
	return err
}
