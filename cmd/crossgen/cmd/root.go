package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const version = "0.1.0"

var (
	cfgFile   string
	verbosity int
)

// fileConfig holds the defaults read from --config / $HOME/.crossgen.yaml.
// It is host-shell configuration for the CLI, not core state: the generate
// and stats subcommands consult it only when their own flags are unset.
type fileConfig struct {
	WordlistPath string `yaml:"wordlist_path"`
	GridRows     int    `yaml:"grid_rows"`
	GridCols     int    `yaml:"grid_cols"`
	Symmetry     string `yaml:"symmetry"`
}

var config fileConfig

var rootCmd = &cobra.Command{
	Use:   "crossgen",
	Short: "Crossword puzzle generator CLI",
	Long: `crossgen is a command-line tool for generating, validating, and converting crossword puzzles.

It uses constraint satisfaction to fill grids with words from a rated word list
and exports to json, .puz, and ipuz formats.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.crossgen.yaml)")
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "verbosity level (0=errors only, 1=info, 2=debug)")
}

func initConfig() {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		path = filepath.Join(home, ".crossgen.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if cfgFile != "" {
			fmt.Fprintf(os.Stderr, "warning: could not read config file %s: %v\n", path, err)
		}
		return
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not parse config file %s: %v\n", path, err)
		return
	}

	if verbosity > 0 {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", path)
	}
	if verbosity > 0 {
		fmt.Fprintf(os.Stderr, "Verbosity level: %d\n", verbosity)
	}
}
