package tui

import (
	"io"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rise/internal/config"
	"github.com/vovakirdan/rise/internal/core"
	"github.com/vovakirdan/rise/internal/games/rise"
	"github.com/vovakirdan/rise/internal/storage"
)

// Options configures the game and session models.
type Options struct {
	Config     config.RiseConfig
	Runtime    core.RuntimeConfig
	Store      *storage.Store // Optional; rounds are not recorded without it
	Difficulty string         // Recorded with each round
	Clock      core.Clock     // Defaults to the system clock
	Logger     *log.Logger    // Defaults to a discarding logger
	HoldWindow time.Duration  // Key hold window; see KeyHold
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = core.SystemClock{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

var gameGen atomic.Uint64

// GameModel is the Bubble Tea model for one local hot-seat game: a sequence of
// rounds with the same colors until the players go back or quit.
type GameModel struct {
	opts     Options
	gen      uint64
	colors   []core.Color
	round    *rise.Round
	driver   *rise.Driver
	renderer *rise.Renderer
	screen   *core.Screen
	keys     *KeyHold
	mapper   *KeyMapper

	saved      bool // Whether the current round has been recorded
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game for colors and starts its first round.
// A zero seed picks a fresh one from the clock for every game.
func NewGameModel(opts Options, colors []core.Color) (GameModel, error) {
	opts = opts.withDefaults()
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}

	round, err := rise.NewRound(opts.Config, opts.Runtime.Seed)
	if err != nil {
		return GameModel{}, err
	}
	driver := rise.NewDriver(round, opts.Clock, opts.Runtime.TickDuration())
	if err := driver.Start(colors); err != nil {
		return GameModel{}, err
	}

	opts.Logger.Debug("round started", "seed", round.Seed(), "colors", colors)

	return GameModel{
		opts:     opts,
		gen:      gameGen.Add(1),
		colors:   colors,
		round:    round,
		driver:   driver,
		renderer: rise.NewRenderer(opts.Config),
		screen:   core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		keys:     NewKeyHold(opts.HoldWindow),
		mapper:   NewKeyMapper(),
	}, nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen || m.quitting || m.backToMenu {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Movement keys only feed the hold tracker;
// they take effect on the next tick. A direction press releases the player's
// other direction at once.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.mapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	over := m.round.Phase() == rise.PhaseOver
	switch {
	case action == core.ActionBack:
		m.backToMenu = true
		return m, nil
	case action == core.ActionRestart && over, action == core.ActionConfirm && over:
		if err := m.restart(); err != nil {
			m.opts.Logger.Error("cannot restart round", "err", err)
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	key := msg.String()
	m.keys.Press(key, m.opts.Clock.Now())
	if opp := oppositeKey(m.round.Players(), key); opp != "" {
		m.keys.Release(opp)
	}
	return m, nil
}

// oppositeKey returns the key for the other direction of the player bound to key,
// or "" when key is not a direction key.
func oppositeKey(players []rise.Player, key string) string {
	for _, p := range players {
		switch key {
		case p.Keys.Left:
			return p.Keys.Right
		case p.Keys.Right:
			return p.Keys.Left
		}
	}
	return ""
}

// restart starts the next round with the same colors. The random source carries
// on, so a game is reproducible from its seed.
func (m *GameModel) restart() error {
	m.driver.Reset()
	m.keys.Reset()
	m.saved = false
	if err := m.driver.Start(m.colors); err != nil {
		return err
	}
	m.opts.Logger.Debug("round restarted", "seed", m.round.Seed())
	return nil
}

// handleTick samples the held keys, brings the simulation up to date and records
// a finished round once.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	held := m.keys.State(m.opts.Clock.Now())
	m.driver.Update(rise.InputFor(m.round.Players(), held))

	if m.round.Phase() == rise.PhaseOver && !m.saved {
		m.saveRound()
		m.saved = true
	}

	return m, tickCmd(m.opts.Runtime.TickRate, m.gen)
}

// saveRound records the finished round. Failures are logged and the game goes on.
func (m GameModel) saveRound() {
	res, ok := m.round.Result()
	if !ok {
		return
	}
	m.opts.Logger.Info("round over", "result", res.Text, "lasted", rise.FormatElapsed(res.Elapsed))
	if m.opts.Store == nil {
		return
	}
	rec := storage.FromResult(res, m.round.Players(), m.round.Seed(), m.opts.Difficulty)
	if _, err := m.opts.Store.SaveRound(rec); err != nil {
		m.opts.Logger.Warn("cannot save round", "err", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.renderer.Render(m.screen, m.round.Snapshot())
	view := RenderScreen(m.screen)
	if m.round.Phase() == rise.PhaseOver {
		view += "\n" + centerText("R: Play again  |  B: Change colors  |  Q: Quit", m.screen.Width())
	}
	return view
}

// Round returns the round being played.
func (m GameModel) Round() *rise.Round { return m.round }

// Colors returns the players' colors.
func (m GameModel) Colors() []core.Color { return m.colors }

// IsQuitting returns true if user requested to quit.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the players asked to pick colors again.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

type sessionState int

const (
	stateMenu sessionState = iota
	stateGame
	stateHistory
)

// SessionModel strings the screens of one terminal session together:
// color picker, game and history.
type SessionModel struct {
	opts    Options
	state   sessionState
	menu    MenuModel
	game    GameModel
	history HistoryModel
	width   int
	height  int
	err     error
}

// NewSessionModel creates a session that opens on the color picker.
func NewSessionModel(opts Options) SessionModel {
	opts = opts.withDefaults()
	return SessionModel{
		opts:   opts,
		state:  stateMenu,
		menu:   NewMenuModel(opts.Runtime.ScreenW, opts.Runtime.ScreenH, nil),
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update routes msg to the active screen and handles screen transitions.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH = size.Width, size.Height
	}

	switch m.state {
	case stateMenu:
		return m.updateMenu(msg)
	case stateGame:
		return m.updateGame(msg)
	case stateHistory:
		return m.updateHistory(msg)
	}
	return m, nil
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.menu.Update(msg)
	m.menu = updated.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		return m, tea.Quit

	case m.menu.WantsHistory():
		m.history = NewHistoryModel(m.opts.Store, m.width, m.height)
		m.state = stateHistory
		return m, nil

	case m.menu.Started():
		game, err := NewGameModel(m.opts, m.menu.Colors())
		if err != nil {
			m.err = err
			m.opts.Logger.Error("cannot start game", "err", err)
			return m, tea.Quit
		}
		m.game = game
		m.state = stateGame
		return m, m.game.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.game.Update(msg)
	m.game = updated.(GameModel)

	switch {
	case m.game.IsQuitting():
		return m, tea.Quit
	case m.game.BackToMenu():
		m.menu = NewMenuModel(m.width, m.height, m.game.Colors())
		m.state = stateMenu
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.history.Update(msg)
	m.history = updated.(HistoryModel)

	switch {
	case m.history.IsQuitting():
		return m, tea.Quit
	case m.history.IsGoingBack():
		m.menu = NewMenuModel(m.width, m.height, m.menu.Colors())
		m.state = stateMenu
		return m, nil
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	switch m.state {
	case stateGame:
		return m.game.View()
	case stateHistory:
		return m.history.View()
	}
	return m.menu.View()
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error { return m.err }

// Run starts a local session on the current terminal.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if s, ok := final.(SessionModel); ok {
		return s.Err()
	}
	return nil
}
