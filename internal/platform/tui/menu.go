package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rise/internal/core"
)

// MenuModel is the Bubble Tea model for the start screen where both players pick a color.
// Two players can never hold the same color: cycling skips the color the other holds.
type MenuModel struct {
	picks     [2]int // Index into core.PlayerColors per player
	width     int
	height    int
	keyMapper *KeyMapper
	quitting  bool
	started   bool
	history   bool
}

// NewMenuModel creates a color picker with the given starting colors.
// Invalid or clashing colors fall back to red and blue.
func NewMenuModel(width, height int, colors []core.Color) MenuModel {
	m := MenuModel{
		picks:     [2]int{0, 4},
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	if len(colors) == 2 && colors[0] != colors[1] {
		a, b := colorIndex(colors[0]), colorIndex(colors[1])
		if a >= 0 && b >= 0 {
			m.picks = [2]int{a, b}
		}
	}
	return m
}

func colorIndex(c core.Color) int {
	for i, pc := range core.PlayerColors {
		if pc == c {
			return i
		}
	}
	return -1
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for color selection.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
	case MenuActionP1Prev:
		m.cycle(0, -1)
	case MenuActionP1Next:
		m.cycle(0, 1)
	case MenuActionP2Prev:
		m.cycle(1, -1)
	case MenuActionP2Next:
		m.cycle(1, 1)
	case MenuActionSelect:
		m.started = true
	case MenuActionHistory:
		m.history = true
	}
	return m, nil
}

// cycle moves player's pick by dir, skipping the other player's color.
func (m *MenuModel) cycle(player, dir int) {
	n := len(core.PlayerColors)
	other := m.picks[1-player]
	next := m.picks[player]
	for {
		next = ((next+dir)%n + n) % n
		if next != other {
			break
		}
	}
	m.picks[player] = next
}

// Colors returns the chosen colors in player order.
func (m MenuModel) Colors() []core.Color {
	return []core.Color{core.PlayerColors[m.picks[0]], core.PlayerColors[m.picks[1]]}
}

// Started reports whether the players confirmed their colors.
func (m MenuModel) Started() bool { return m.started }

// WantsHistory reports whether the history view was requested.
func (m MenuModel) WantsHistory() bool { return m.history }

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool { return m.quitting }

// View renders the color picker.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render("  R I S E  ")))
	b.WriteString("\n\n")
	b.WriteString(centerText("Climb faster than the world rises. Last one standing wins.", m.width))
	b.WriteString("\n\n")

	for player := range 2 {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderPicker(player)))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText("P1: A/D pick, W jump   |   P2: arrows pick, Up jump", m.width))
	b.WriteString("\n")
	b.WriteString(centerText("Enter: Start  |  Tab: History  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// renderPicker draws one player's row of swatches with the current pick marked.
func (m MenuModel) renderPicker(player int) string {
	parts := make([]string, 0, len(core.PlayerColors)+1)
	parts = append(parts, fmt.Sprintf("P%d", player+1))
	for i, c := range core.PlayerColors {
		label := " " + c.Title() + " "
		style := StyleFor(c)
		switch i {
		case m.picks[player]:
			label = "[" + c.Title() + "]"
			style = style.Bold(true).Underline(true)
		case m.picks[1-player]:
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, " ")
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
