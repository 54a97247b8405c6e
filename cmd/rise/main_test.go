package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rise/internal/games/rise"
	"github.com/vovakirdan/rise/internal/storage"
)

// withFlags points the commands at a fresh database and restores the flags afterwards.
func withFlags(t *testing.T) string {
	t.Helper()
	fps, seed := flagFPS, flagSeed
	db, cfg, difficulty, colors, roundID := flagDBPath, flagConfig, flagDifficulty, flagColors, flagRoundID
	ticks, rounds, limit, save, clr := flagTicks, flagRounds, flagLimit, flagSave, flagClear
	t.Cleanup(func() {
		flagFPS, flagSeed = fps, seed
		flagDBPath, flagConfig, flagDifficulty, flagColors, flagRoundID = db, cfg, difficulty, colors, roundID
		flagTicks, flagRounds, flagLimit, flagSave, flagClear = ticks, rounds, limit, save, clr
	})

	dbPath := filepath.Join(t.TempDir(), "rounds.db")
	flagFPS, flagSeed = 60, 1
	flagDBPath, flagConfig, flagDifficulty = dbPath, "", ""
	flagColors, flagRoundID = "red,blue", ""
	flagTicks, flagRounds, flagLimit = 10, 1, 10
	flagSave, flagClear = false, false
	return dbPath
}

func TestRunSimReturnsStartError(t *testing.T) {
	dbPath := withFlags(t)
	flagColors = "red,blue,green"
	flagSave = true

	err := runSim(nil, nil)
	if !errors.Is(err, rise.ErrTooManyPlayers) {
		t.Fatalf("runSim() error = %v, expected %v", err, rise.ErrTooManyPlayers)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("reopening the database failed: %v", err)
	}
	defer store.Close()
	if rounds, _ := store.RecentRounds(10); len(rounds) != 0 {
		t.Errorf("saved %d rounds, expected none", len(rounds))
	}
}

func TestRunSimCutOffRounds(t *testing.T) {
	withFlags(t)
	flagRounds = 3

	if err := runSim(nil, nil); err != nil {
		t.Errorf("runSim() error = %v, expected nil", err)
	}
}

func TestHistoryByRoundID(t *testing.T) {
	dbPath := withFlags(t)

	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	_, err = store.SaveRound(storage.RoundRecord{
		RoundID:    "round-1",
		Winner:     "red",
		Colors:     []string{"red", "blue"},
		ElapsedMS:  12340,
		Seed:       42,
		Difficulty: "hard",
	})
	store.Close()
	if err != nil {
		t.Fatalf("SaveRound failed: %v", err)
	}

	tests := []struct {
		name    string
		id      string
		want    []string
		wantErr bool
	}{
		{"list", "", []string{"Recent Rounds", "red wins", "round-1"}, false},
		{"single", "round-1", []string{"Round round-1", "red wins", "Seed:    42", "--seed 42 --difficulty hard"}, false},
		{"missing", "round-2", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagRoundID = tt.id
			var buf bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetOut(&buf)

			err := runHistory(cmd, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("runHistory() error = %v, expected error %v", err, tt.wantErr)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output does not contain %q:\n%s", w, buf.String())
				}
			}
		})
	}
}
