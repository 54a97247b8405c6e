package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rise/internal/core"
	"github.com/vovakirdan/rise/internal/platform/tui"
	"github.com/vovakirdan/rise/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a local two-player game",
	Long: `Pick a color for each player, then race up the platforms.

Controls:
  P1: A / D move, W jump      (A/D also pick the color)
  P2: Left / Right move, Up jump  (arrows also pick the color)
  Enter       - Start round / play again
  Tab         - Round history (in the color picker)
  R/Space     - Play again (after a round)
  B/Esc       - Back to the color picker
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Slower scroll, fewer hazards
  normal - Config values as loaded
  hard   - Faster scroll, more spikes and cannons
  fixed  - No level progression

Examples:
  rise play
  rise play --difficulty easy
  rise play --seed 42 --config ./my-rise.toml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, preset, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// The terminal belongs to the game, so logs only go to a file when asked for
	var logger *log.Logger
	if flagLogFile != "" {
		f, fileErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if fileErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", fileErr)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "rise",
			Level:           log.DebugLevel,
		})
	}

	// Open round storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open rounds database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:      store,
		Difficulty: difficultyName(preset),
		Logger:     logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
