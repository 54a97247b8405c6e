package storage

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/rise/internal/core"
	"github.com/vovakirdan/rise/internal/games/rise"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveRoundAssignsUUID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRound(RoundRecord{Winner: "red", Colors: []string{"red", "blue"}, ElapsedMS: 1500})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveRound() id = %d, expected positive", id)
	}

	recent, err := store.RecentRounds(1)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("RecentRounds() returned %d rounds, expected 1", len(recent))
	}
	if _, err := uuid.Parse(recent[0].RoundID); err != nil {
		t.Errorf("RoundID %q is not a UUID: %v", recent[0].RoundID, err)
	}
	if !slices.Equal(recent[0].Colors, []string{"red", "blue"}) {
		t.Errorf("Colors = %v, expected [red blue]", recent[0].Colors)
	}
	if recent[0].Elapsed() != 1500*time.Millisecond {
		t.Errorf("Elapsed = %v, expected 1.5s", recent[0].Elapsed())
	}
}

func TestSaveRoundRejectsDuplicateID(t *testing.T) {
	store := openTestStore(t)
	rec := RoundRecord{RoundID: uuid.NewString(), Colors: []string{"red"}}

	if _, err := store.SaveRound(rec); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if _, err := store.SaveRound(rec); err == nil {
		t.Error("SaveRound() with a duplicate round ID should fail")
	}
	if _, err := store.SaveRound(RoundRecord{}); err == nil {
		t.Error("SaveRound() without players should fail")
	}
}

func TestRecentRoundsOrder(t *testing.T) {
	store := openTestStore(t)
	for i, winner := range []string{"red", "blue", "green"} {
		if _, err := store.SaveRound(RoundRecord{Winner: winner, Colors: []string{winner}, ElapsedMS: int64(i)}); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	recent, err := store.RecentRounds(2)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentRounds(2) returned %d rounds", len(recent))
	}
	if recent[0].Winner != "green" || recent[1].Winner != "blue" {
		t.Errorf("RecentRounds order = %s, %s, expected green, blue", recent[0].Winner, recent[1].Winner)
	}
}

func TestWinsByColorAndLongest(t *testing.T) {
	store := openTestStore(t)
	records := []RoundRecord{
		{Winner: "red", Colors: []string{"red", "blue"}, ElapsedMS: 5000},
		{Winner: "red", Colors: []string{"red", "blue"}, ElapsedMS: 9000},
		{Winner: "blue", Colors: []string{"red", "blue"}, ElapsedMS: 3000},
		{Tie: true, Colors: []string{"red", "blue"}, ElapsedMS: 12000},
	}
	for _, rec := range records {
		if _, err := store.SaveRound(rec); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	wins, err := store.WinsByColor()
	if err != nil {
		t.Fatalf("WinsByColor() failed: %v", err)
	}
	if wins["red"] != 2 || wins["blue"] != 1 || len(wins) != 2 {
		t.Errorf("WinsByColor() = %v, expected red:2 blue:1", wins)
	}

	longest, err := store.LongestRound()
	if err != nil {
		t.Fatalf("LongestRound() failed: %v", err)
	}
	if longest == nil || longest.ElapsedMS != 12000 || !longest.Tie {
		t.Errorf("LongestRound() = %+v, expected the 12s tie", longest)
	}
	if longest.Outcome() != "Tie" {
		t.Errorf("Outcome() = %q, expected %q", longest.Outcome(), "Tie")
	}

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Rounds != 4 || stats.Ties != 1 {
		t.Errorf("GetStats() = %+v, expected 4 rounds and 1 tie", stats)
	}
	if stats.AvgElapsed != 7250*time.Millisecond {
		t.Errorf("AvgElapsed = %v, expected 7.25s", stats.AvgElapsed)
	}
}

func TestEmptyStore(t *testing.T) {
	store := openTestStore(t)

	longest, err := store.LongestRound()
	if err != nil || longest != nil {
		t.Errorf("LongestRound() on empty store = %v, %v, expected nil, nil", longest, err)
	}
	found, err := store.RoundByID("missing")
	if err != nil || found != nil {
		t.Errorf("RoundByID() on empty store = %v, %v, expected nil, nil", found, err)
	}
	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Rounds != 0 {
		t.Errorf("GetStats().Rounds = %d, expected 0", stats.Rounds)
	}
}

func TestRoundByIDAndClear(t *testing.T) {
	store := openTestStore(t)
	roundID := uuid.NewString()
	if _, err := store.SaveRound(RoundRecord{RoundID: roundID, Winner: "purple", Colors: []string{"purple", "yellow"}, Seed: 99, Difficulty: "hard"}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}

	rec, err := store.RoundByID(roundID)
	if err != nil {
		t.Fatalf("RoundByID() failed: %v", err)
	}
	if rec == nil || rec.Seed != 99 || rec.Difficulty != "hard" || rec.Outcome() != "purple wins" {
		t.Errorf("RoundByID() = %+v, expected the saved round", rec)
	}

	if err := store.ClearRounds(); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}
	recent, err := store.RecentRounds(10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("RecentRounds() after clear returned %d rounds", len(recent))
	}
}

func TestFromResult(t *testing.T) {
	players := []rise.Player{
		{ID: core.Player1, Color: core.ColorRed},
		{ID: core.Player2, Color: core.ColorBlue},
	}

	win := rise.DecideWinner([]rise.Player{
		{ID: core.Player1, Y: 200, Color: core.ColorRed},
		{ID: core.Player2, Y: 100, Color: core.ColorBlue},
	}, 2500*time.Millisecond)
	rec := FromResult(win, players, 7, "normal")
	if rec.Winner != "blue" || rec.Tie || rec.ElapsedMS != 2500 {
		t.Errorf("FromResult(win) = %+v, expected blue winning after 2500ms", rec)
	}
	if !slices.Equal(rec.Colors, []string{"red", "blue"}) || rec.Seed != 7 || rec.Difficulty != "normal" {
		t.Errorf("FromResult(win) = %+v, expected colors, seed and difficulty carried over", rec)
	}

	tie := rise.Result{Tie: true, Winners: []core.PlayerID{1, 2}, Colors: []core.Color{core.ColorRed, core.ColorBlue}}
	if rec := FromResult(tie, players, 0, ""); rec.Winner != "" || !rec.Tie {
		t.Errorf("FromResult(tie) = %+v, expected no winner", rec)
	}
}
