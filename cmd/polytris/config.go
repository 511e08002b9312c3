package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/polytris/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration polytris would play with, as YAML, preceded by
a comment naming where it was loaded from.

Search order:
  1. --config <path>
  2. ~/.polytris/config.yaml
  3. ./configs/polytris.yaml
  4. built-in defaults

The output is a valid config file: redirect it to start customizing.

Examples:
  polytris config
  polytris config --difficulty hard
  polytris config > ~/.polytris/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		cfg.Difficulty.Preset = preset
	}

	out := cmd.OutOrStdout()

	// Untouched defaults are printed as shipped, comments included.
	if source == "embedded" && flagDifficulty == "" {
		fmt.Fprintf(out, "# source: %s\n", source)
		_, err = out.Write(config.DefaultYAML())
		return err
	}

	// The preset is recorded but not applied: the speed section stays the
	// base curve so the output can be loaded again unchanged.
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "# source: %s\n", source)
	_, err = out.Write(data)
	return err
}
