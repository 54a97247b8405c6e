package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rise/internal/core"
	"github.com/vovakirdan/rise/internal/games/rise"
	"github.com/vovakirdan/rise/internal/storage"
)

// maxHistoryRounds is the number of recent rounds loaded into the table.
const maxHistoryRounds = 100

// HistoryKeyMap defines the key bindings for the history view.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Reload key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Reload, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Reload},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing finished rounds.
type HistoryModel struct {
	store     *storage.Store
	rounds    []storage.RoundRecord
	wins      map[string]int
	longest   *storage.RoundRecord
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a history view and loads the rounds from store.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with columns sized to the terminal.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Result", Width: 14},
		{Title: "Players", Width: 16},
		{Title: "Lasted", Width: 9},
		{Title: "Mode", Width: 8},
		{Title: "Date", Width: 13},
	}

	// Give spare width to the players column
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := m.width - 6 - used; spare > 0 {
		columns[2].Width += min(spare, 20)
	}

	height := m.height - 10 // Title, summary, help and borders
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads rounds and aggregates from the store.
func (m *HistoryModel) load() {
	m.rounds, m.wins, m.longest, m.loadErr = nil, nil, nil, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	if m.rounds, m.loadErr = m.store.RecentRounds(maxHistoryRounds); m.loadErr == nil {
		if m.wins, m.loadErr = m.store.WinsByColor(); m.loadErr == nil {
			m.longest, m.loadErr = m.store.LongestRound()
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded rounds.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		mode := r.Difficulty
		if mode == "" {
			mode = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.Outcome(),
			strings.Join(r.Colors, " vs "),
			rise.FormatElapsed(r.Elapsed()),
			mode,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history view.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("ROUND HISTORY", m.width)))
	b.WriteString("\n\n")

	b.WriteString(m.renderSummary())
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSummary renders wins per color and the longest round.
func (m HistoryModel) renderSummary() string {
	if len(m.wins) == 0 && m.longest == nil {
		return ""
	}

	colors := make([]string, 0, len(m.wins))
	for c := range m.wins {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool {
		if m.wins[colors[i]] != m.wins[colors[j]] {
			return m.wins[colors[i]] > m.wins[colors[j]]
		}
		return colors[i] < colors[j]
	})

	parts := make([]string, 0, len(colors))
	for _, name := range colors {
		label := fmt.Sprintf("%s %d", name, m.wins[name])
		if c, err := core.ParseColor(name); err == nil {
			label = StyleFor(c).Render(label)
		}
		parts = append(parts, label)
	}

	line := "Wins: " + strings.Join(parts, "  ")
	if m.longest != nil {
		line += fmt.Sprintf("   Longest: %s (%s)", rise.FormatElapsed(m.longest.Elapsed()), m.longest.Outcome())
	}
	return line
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("History is unavailable.\nThe rounds database could not be opened.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load history:\n" + m.loadErr.Error())
	case len(m.rounds) == 0:
		return emptyStyle.Render("No rounds recorded yet.\nFinish a round to start the history!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the color picker.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}
