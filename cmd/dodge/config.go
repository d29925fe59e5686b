package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/games/dodge"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the dodge configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective config as YAML",
	Long: `Print the configuration a game would run with, after the search path
(--config, ~/.arcade/configs/dodge.yaml, ./configs/dodge.yaml, built-in)
and the difficulty preset are applied. The output is a valid config file.

Examples:
  dodge config dump > ~/.arcade/configs/dodge.yaml
  dodge config dump --difficulty hard
  dodge config dump --defaults`,
	Args: cobra.NoArgs,
	RunE: runConfigDump,
}

func init() {
	configDumpCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults instead")
	configCmd.AddCommand(configDumpCmd)
}

func runConfigDump(_ *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := dodge.LoadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
