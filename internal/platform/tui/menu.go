package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickwell/internal/registry"
)

// MenuItemKind tells what selecting a menu item does.
type MenuItemKind int

const (
	MenuPlay       MenuItemKind = iota // Start the game in GameID
	MenuScoreboard                     // Open the hall of fame
	MenuQuit                           // Leave
)

// MenuItem represents a selectable line in the menu.
type MenuItem struct {
	Kind   MenuItemKind
	GameID string
	Title  string
}

// menuItems lists the registered games followed by the fixed entries.
func menuItems() []MenuItem {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+2)
	for _, g := range games {
		items = append(items, MenuItem{Kind: MenuPlay, GameID: g.ID, Title: g.Title})
	}
	return append(items,
		MenuItem{Kind: MenuScoreboard, Title: "Hall of Fame"},
		MenuItem{Kind: MenuQuit, Title: "Quit"},
	)
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	env    Env
	items  []MenuItem
	cursor int
	width  int
	height int
	best   int // top hall of fame score, 0 when empty
	keys   MenuKeyMap
	help   help.Model

	quitting bool
	selected *MenuItem
}

// NewMenuModel creates a new menu model.
func NewMenuModel(env Env) MenuModel {
	h := help.New()
	h.ShowAll = false

	m := MenuModel{
		env:    env,
		items:  menuItems(),
		width:  env.Runtime.ScreenW,
		height: env.Runtime.ScreenH,
		keys:   DefaultMenuKeyMap(),
		help:   h,
	}
	if env.Leaderboard != nil {
		if b, err := env.Leaderboard.Board(); err == nil {
			m.best = b.Best()
		}
	}
	return m
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
		m.env.Runtime.ScreenW = msg.Width
		m.env.Runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Scores):
		m.selected = &MenuItem{Kind: MenuScoreboard}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Select):
		item := m.items[m.cursor]
		m.selected = &item
		if item.Kind == MenuQuit {
			m.quitting = true
		}
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	r := m.env.renderer()
	titleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := r.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("B R I C K W E L L"), m.width))
	b.WriteString("\n\n")

	sub := "Hello, " + m.env.playerName()
	if m.best > 0 {
		sub += fmt.Sprintf("  |  Best: %d", m.best)
	}
	b.WriteString(centerText(dimStyle.Render(sub), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title + "  "
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen item, or nil if none.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Env returns the environment with the screen size seen last.
func (m MenuModel) Env() Env {
	return m.env
}

// centerText centers text within given width. Styled text is measured by
// its visible width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Env             Env
	WantsScoreboard bool
	Quit            bool
}

func (m MenuModel) result() MenuResult {
	res := MenuResult{Env: m.env}
	switch {
	case m.quitting || m.selected == nil:
		res.Quit = true
	case m.selected.Kind == MenuScoreboard:
		res.WantsScoreboard = true
	default:
		res.GameID = m.selected.GameID
	}
	return res
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(env Env) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(env), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Env: env}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Env: env, Quit: true}, nil
	}
	return m.result(), nil
}
