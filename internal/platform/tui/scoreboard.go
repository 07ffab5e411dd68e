package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickwell/internal/leaderboard"
	"github.com/vovakirdan/brickwell/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the stats sidebar
	sidebarWidth       = 24 // Width of the stats sidebar
	maxRuns            = 50 // Max recent runs to load
)

// ScoreboardView selects the table shown on the scoreboard.
type ScoreboardView int

const (
	ViewHallOfFame ScoreboardView = iota // Top ten names from the leaderboard file
	ViewRecentRuns                       // Latest runs from the database
)

func (v ScoreboardView) String() string {
	if v == ViewRecentRuns {
		return "RECENT RUNS"
	}
	return "HALL OF FAME"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right"),
			key.WithHelp("tab", "fame/runs"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	env   Env
	view  ScoreboardView
	board []leaderboard.Record
	runs  []storage.RunRecord
	stats *storage.RunStats
	err   error // last load failure, shown instead of the table

	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(env Env) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		env:         env,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       env.Runtime.ScreenW,
		height:      env.Runtime.ScreenH,
		showSidebar: env.Store != nil && env.Runtime.ScreenW >= minWidthForSidebar,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load reads the leaderboard file and the database.
func (m *ScoreboardModel) load() {
	m.err = nil
	m.board, m.runs, m.stats = nil, nil, nil

	if m.env.Leaderboard != nil {
		b, err := m.env.Leaderboard.Board()
		if err != nil {
			m.err = err
		} else {
			m.board = b.Records()
		}
	}

	if m.env.Store != nil {
		runs, err := m.env.Store.RecentRuns(maxRuns)
		if err != nil {
			m.err = err
		}
		m.runs = runs

		stats, err := m.env.Store.Stats()
		if err == nil {
			m.stats = stats
		}
	}
}

func (m *ScoreboardModel) columns(width int) []table.Column {
	if m.view == ViewRecentRuns {
		return []table.Column{
			{Title: "Player", Width: leaderboard.MaxNameLen},
			{Title: "Score", Width: 8},
			{Title: "Lvl", Width: 4},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: max(width-44, 12)},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Name", Width: leaderboard.MaxNameLen},
		{Title: "Date", Width: max(width-36, 12)},
	}
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}

	t := table.New(
		table.WithColumns(m.columns(tableWidth)),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
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

// tableRows formats the rows of the current view.
func (m *ScoreboardModel) tableRows() []table.Row {
	if m.view == ViewRecentRuns {
		rows := make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			lvl := strconv.Itoa(r.Level)
			if r.Cleared {
				lvl += "*"
			}
			rows[i] = table.Row{
				r.Player,
				strconv.Itoa(r.Score),
				lvl,
				formatDuration(r.Duration),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows
	}

	rows := make([]table.Row, len(m.board))
	for i, r := range m.board {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(r.Score),
			r.Name,
			r.Time.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// updateTableRows updates the table with the current view.
func (m *ScoreboardModel) updateTableRows() {
	m.table.SetRows(m.tableRows())
	m.table.GotoTop()
}

func (m *ScoreboardModel) switchView() {
	if m.view == ViewHallOfFame && m.env.Store != nil {
		m.view = ViewRecentRuns
	} else {
		m.view = ViewHallOfFame
	}
	m.table = m.createTable()
	m.updateTableRows()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			m.switchView()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.env.Store != nil && m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	r := m.env.renderer()
	var b strings.Builder

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText(m.view.String(), m.width)))
	b.WriteString("\n\n")

	tableStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content))
	} else {
		b.WriteString(content)
	}

	b.WriteString("\n")
	helpStyle := r.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar shows the totals of the run history.
func (m ScoreboardModel) renderSidebar() string {
	r := m.env.renderer()
	style := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Stats\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	st := m.stats
	if st == nil {
		st = &storage.RunStats{}
	}
	fmt.Fprintf(&sb, "Runs:     %d\n", st.Runs)
	fmt.Fprintf(&sb, "Cleared:  %d\n", st.Cleared)
	fmt.Fprintf(&sb, "Best:     %d\n", st.HighScore)
	fmt.Fprintf(&sb, "Average:  %.0f\n", st.AvgScore)
	fmt.Fprintf(&sb, "Level:    %d\n", st.BestLevel)
	if !st.LastPlayed.IsZero() {
		fmt.Fprintf(&sb, "Last:     %s", st.LastPlayed.Format("Jan 02"))
	}

	return style.Render(sb.String())
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := m.env.renderer().NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Cannot load scores:\n" + m.err.Error())
	}
	if len(m.table.Rows()) == 0 {
		if m.view == ViewRecentRuns {
			return emptyStyle.Render("No runs recorded yet.")
		}
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// formatDuration renders d as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(env Env) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(env), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
