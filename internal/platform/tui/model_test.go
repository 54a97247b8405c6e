package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rise/internal/config"
	"github.com/vovakirdan/rise/internal/core"
	"github.com/vovakirdan/rise/internal/games/rise"
	"github.com/vovakirdan/rise/internal/storage"
)

func testOptions(clock core.Clock) Options {
	return Options{
		Config: config.DefaultRiseConfig(),
		Runtime: core.RuntimeConfig{
			ScreenW:  80,
			ScreenH:  24,
			TickRate: 60,
			Seed:     1,
		},
		Difficulty: "normal",
		Clock:      clock,
	}
}

func newTestGame(t *testing.T, opts Options) GameModel {
	t.Helper()
	m, err := NewGameModel(opts, []core.Color{core.ColorRed, core.ColorBlue})
	if err != nil {
		t.Fatalf("NewGameModel failed: %v", err)
	}
	return m
}

func sendGame(m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(GameModel), cmd
}

func TestGameModelTicksFollowClock(t *testing.T) {
	clock := core.NewManualClock(time.Unix(1000, 0))
	m := newTestGame(t, testOptions(clock))

	clock.Advance(50 * time.Millisecond)
	m, _ = sendGame(m, TickMsg{Time: clock.Now(), Gen: m.gen + 1})
	if m.Round().Tick() != 0 {
		t.Errorf("tick from another game ran %d steps", m.Round().Tick())
	}

	m, cmd := sendGame(m, TickMsg{Time: clock.Now(), Gen: m.gen})
	if got := m.Round().Tick(); got != 3 {
		t.Errorf("round tick after 50ms = %d, expected 3", got)
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}

func TestGameModelHeldKeyMovesPlayer(t *testing.T) {
	clock := core.NewManualClock(time.Unix(1000, 0))
	m := newTestGame(t, testOptions(clock))
	startX := m.Round().Players()[0].X

	m, _ = sendGame(m, runeKey("d"))
	clock.Advance(20 * time.Millisecond)
	m, _ = sendGame(m, TickMsg{Time: clock.Now(), Gen: m.gen})

	if got := m.Round().Players()[0].X; got <= startX {
		t.Errorf("P1 X = %v after holding d, expected more than %v", got, startX)
	}
	if got := m.Round().Players()[1].X; got != m.opts.Config.Player.SpawnX[1] {
		t.Errorf("P2 X = %v, expected to stay at spawn", got)
	}
}

func TestGameModelSavesFinishedRoundOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "rounds.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	clock := core.NewManualClock(time.Unix(1000, 0))
	opts := testOptions(clock)
	opts.Store = store
	// Spawning below the fall line ends the round on the first tick.
	opts.Config.Player.SpawnY = opts.Config.Field.Height + opts.Config.Round.FallMargin + 100
	m := newTestGame(t, opts)

	tick := func() {
		clock.Advance(20 * time.Millisecond)
		m, _ = sendGame(m, TickMsg{Time: clock.Now(), Gen: m.gen})
	}

	tick()
	tick()
	if m.Round().Phase() != rise.PhaseOver {
		t.Fatalf("phase = %v, expected over", m.Round().Phase())
	}
	if !strings.Contains(m.View(), "Tie!") {
		t.Error("view should show the tie")
	}

	rounds, err := store.RecentRounds(10)
	if err != nil {
		t.Fatalf("RecentRounds failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("saved %d rounds, expected 1", len(rounds))
	}
	if !rounds[0].Tie || rounds[0].Difficulty != "normal" || rounds[0].Seed != 1 {
		t.Errorf("saved round = %+v, expected a normal tie with seed 1", rounds[0])
	}

	m, _ = sendGame(m, runeKey("r"))
	if m.Round().Phase() != rise.PhaseRunning {
		t.Fatalf("phase after r = %v, expected running", m.Round().Phase())
	}
	tick()
	if rounds, _ = store.RecentRounds(10); len(rounds) != 2 {
		t.Errorf("saved %d rounds after the rematch, expected 2", len(rounds))
	}

	m, _ = sendGame(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.Round().Phase() != rise.PhaseRunning {
		t.Errorf("phase after space = %v, expected running", m.Round().Phase())
	}
}

func TestGameModelDirectionPressReleasesOpposite(t *testing.T) {
	clock := core.NewManualClock(time.Unix(1000, 0))
	m := newTestGame(t, testOptions(clock))

	m, _ = sendGame(m, runeKey("a"))
	m, _ = sendGame(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = sendGame(m, runeKey("d"))

	held := m.keys.State(clock.Now())
	tests := []struct {
		key  string
		held bool
	}{
		{"a", false},
		{"d", true},
		{"left", true},
	}
	for _, tt := range tests {
		if held.Held(tt.key) != tt.held {
			t.Errorf("Held(%s) = %v, expected %v", tt.key, held.Held(tt.key), tt.held)
		}
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	clock := core.NewManualClock(time.Unix(1000, 0))

	m, _ := sendGame(newTestGame(t, testOptions(clock)), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc should return to the color picker")
	}
	clock.Advance(time.Second)
	if m, cmd := sendGame(m, TickMsg{Time: clock.Now(), Gen: m.gen}); cmd != nil || m.Round().Tick() != 0 {
		t.Error("a game that went back should stop ticking")
	}

	m, cmd := sendGame(newTestGame(t, testOptions(clock)), runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting game should render nothing")
	}
}

func TestSessionFlow(t *testing.T) {
	clock := core.NewManualClock(time.Unix(1000, 0))
	s := NewSessionModel(testOptions(clock))

	send := func(msg tea.Msg) tea.Cmd {
		updated, cmd := s.Update(msg)
		s = updated.(SessionModel)
		return cmd
	}

	send(runeKey("d")) // P1 picks orange
	if cmd := send(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Error("starting a game should start the tick loop")
	}
	if s.state != stateGame {
		t.Fatalf("state = %v, expected game", s.state)
	}
	if got := s.game.Colors()[0]; got != core.ColorOrange {
		t.Errorf("P1 color = %v, expected orange", got)
	}

	send(runeKey("b"))
	if s.state != stateMenu {
		t.Fatalf("state after b = %v, expected menu", s.state)
	}
	if got := s.menu.Colors()[0]; got != core.ColorOrange {
		t.Errorf("menu forgot P1 color, got %v", got)
	}

	send(tea.KeyMsg{Type: tea.KeyTab})
	if s.state != stateHistory {
		t.Fatalf("state after tab = %v, expected history", s.state)
	}
	send(tea.KeyMsg{Type: tea.KeyEsc})
	if s.state != stateMenu {
		t.Fatalf("state after esc = %v, expected menu", s.state)
	}

	if cmd := send(runeKey("q")); cmd == nil {
		t.Error("q in the menu should quit")
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v, expected nil", s.Err())
	}
}

func TestSessionReportsStartError(t *testing.T) {
	opts := testOptions(core.NewManualClock(time.Unix(0, 0)))
	opts.Config.Physics.SlowFactor = 0
	s := NewSessionModel(opts)

	updated, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = updated.(SessionModel)
	if s.Err() == nil || cmd == nil {
		t.Error("an invalid config should end the session with an error")
	}
}
