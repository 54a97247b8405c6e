// rise is a two-player vertical platformer for the terminal: climb the rising
// ladder of platforms and outlast the other player.
//
// Usage:
//
//	rise play               - Pick colors and play on this terminal
//	rise sim                - Run a headless round with random input
//	rise history            - Show recent rounds and wins per color
//	rise serve              - Start SSH server for remote hot-seat play
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible rounds
//	--db <path>            - Set database path (default: ~/.rise/rounds.db)
//	--config <path>        - Load a YAML or TOML config file
//	--difficulty <preset>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rise/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rise",
	Short: "Rise - a two-player climbing race in your terminal",
	Long: `Rise is a two-player vertical platformer. The world scrolls down,
faster every level; jump from platform to platform, dodge spikes and
cannon fire, and stay on screen longer than your opponent.

Available commands:
  play     - Local two-player game
  sim      - Headless simulation with random input
  history  - Recent rounds and wins per color
  serve    - SSH server for remote hot-seat play

Examples:
  rise play
  rise play --difficulty hard
  rise sim --seed 42 --ticks 3600
  rise history --limit 10
  rise serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rise/rounds.db", "Path to rounds database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the game config and applies the difficulty preset.
func loadConfig() (config.RiseConfig, config.DifficultyPreset, error) {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return config.RiseConfig{}, "", err
	}

	cfg, err := config.LoadRise(flagConfig)
	if err != nil {
		return cfg, preset, err
	}

	config.ApplyRisePreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, preset, err
	}
	return cfg, preset, nil
}

// difficultyName returns the preset name recorded with rounds.
func difficultyName(preset config.DifficultyPreset) string {
	if preset == "" {
		return string(config.DifficultyNormal)
	}
	return string(preset)
}
