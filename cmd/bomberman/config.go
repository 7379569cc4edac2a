package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomberman/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings as YAML",
	Long: `Print the settings the game would run with, after the config search
and the command-line flags are applied.

Config search order:
  1. --config path
  2. ~/.bomberman/config.yaml
  3. ./configs/bomberman.yaml
  4. built-in defaults

Examples:
  bomberman config > ~/.bomberman/config.yaml
  bomberman config --config ./my-bomberman.yaml --fps 20`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	settings, source, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	data, err := config.Marshal(settings)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("# source: %s\n", source)
	fmt.Print(string(data))
}
