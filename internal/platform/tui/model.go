package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickwell/internal/core"
	"github.com/vovakirdan/brickwell/internal/leaderboard"
	"github.com/vovakirdan/brickwell/internal/registry"
	"github.com/vovakirdan/brickwell/internal/storage"
)

// helpRows is the space under the game screen for the key help.
const helpRows = 1

// resizer is implemented by games that can change screen size mid-game.
type resizer interface {
	Resize(w, h int)
}

// nameEntry asks for a name after a score that makes the hall of fame.
type nameEntry struct {
	active bool
	input  textinput.Model
	score  int
	rank   int
}

func newNameEntry(player string, score, rank int) nameEntry {
	ti := textinput.New()
	ti.Placeholder = leaderboard.GuestName
	ti.CharLimit = leaderboard.MaxNameLen
	ti.Width = leaderboard.MaxNameLen + 1
	ti.Prompt = "> "
	ti.SetValue(player)
	ti.Focus()
	return nameEntry{active: true, input: ti, score: score, rank: rank}
}

// GameModel is the Bubble Tea model for running one game. When the game
// ends it records the run and, for a hall of fame score, asks for a name.
type GameModel struct {
	game       registry.Game
	env        Env
	screen     *core.Screen
	renderer   *ScreenRenderer
	keys       GameKeyMap
	help       help.Model
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	startedAt  time.Time
	now        func() time.Time

	recorded bool // run saved for the current game over
	rank     int  // hall of fame place of the last game, 0 for none
	entry    nameEntry
	status   string // last save error or confirmation

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game.
func NewGameModel(game registry.Game, env Env) GameModel {
	cfg := env.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.ShowAll = false

	return GameModel{
		game:       game,
		env:        env,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 0)),
		renderer:   NewScreenRenderer(env.renderer()),
		keys:       DefaultGameKeyMap(),
		help:       h,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		now:        time.Now,
	}
}

func (m GameModel) gameRuntime() core.RuntimeConfig {
	rt := m.config
	rt.ScreenH = max(rt.ScreenH-helpRows, 0)
	return rt
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.gameRuntime())
	return tea.Batch(tickCmd(m.config.TickRate), textinput.Blink)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.entry.active {
			return m.handleNameKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.entry.active {
		var cmd tea.Cmd
		m.entry.input, cmd = m.entry.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input during play.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, tea.Quit
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleNameKey feeds the name prompt. Enter submits, Esc skips.
func (m GameModel) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m = m.submitName(m.entry.input.Value())
		return m, nil
	case tea.KeyEsc:
		m.entry.active = false
		return m, nil
	}

	var cmd tea.Cmd
	m.entry.input, cmd = m.entry.input.Update(msg)
	return m, cmd
}

// handleResize keeps the game going when it can adapt, otherwise restarts it.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	rt := m.gameRuntime()
	m.screen.Resize(rt.ScreenW, rt.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(rt.ScreenW, rt.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(rt)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.entry.active {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = m.now().UnixNano()
		m.game.Reset(m.gameRuntime())
		m.gameState = m.game.State()
		m.recorded = false
		m.rank = 0
		m.status = ""
		m.startedAt = time.Time{}
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if m.startedAt.IsZero() {
		m.startedAt = m.now()
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A game that failed to start was never played.
	if m.gameState.GameOver && !m.gameState.Error && !m.recorded {
		m = m.finishGame()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// finishGame saves the run and opens the name prompt for a hall of fame score.
func (m GameModel) finishGame() GameModel {
	m.recorded = true
	now := m.now()

	if m.env.Store != nil {
		_, err := m.env.Store.SaveRun(storage.RunRecord{
			Session:   m.env.Session,
			Player:    leaderboard.NormalizeName(m.env.Player),
			Score:     m.gameState.Score,
			Level:     m.gameState.Level,
			Cleared:   m.gameState.Won,
			Duration:  now.Sub(m.startedAt),
			CreatedAt: now,
		})
		if err != nil {
			m.status = fmt.Sprintf("run not saved: %v", err)
		}
	}

	if m.env.Leaderboard == nil || m.gameState.Score <= 0 {
		return m
	}
	board, err := m.env.Leaderboard.Board()
	if err != nil {
		m.status = fmt.Sprintf("hall of fame unavailable: %v", err)
		return m
	}
	if rank := board.Rank(m.gameState.Score); rank > 0 {
		m.entry = newNameEntry(m.env.Player, m.gameState.Score, rank)
	}
	return m
}

func (m GameModel) submitName(name string) GameModel {
	m.entry.active = false
	rank, err := m.env.Leaderboard.Submit(leaderboard.NewRecord(m.entry.score, name, m.now()))
	switch {
	case err != nil:
		m.status = fmt.Sprintf("score not saved: %v", err)
	case rank > 0:
		m.rank = rank
		m.status = fmt.Sprintf("Hall of fame: #%d", rank)
	}
	return m
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.entry.active {
		return m.nameEntryView()
	}

	m.game.Render(m.screen)
	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.status
	}
	return m.renderer.Render(m.screen) + "\n" + footer
}

func (m GameModel) nameEntryView() string {
	r := m.env.renderer()
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
		Render(fmt.Sprintf("NEW HIGH SCORE  #%d", m.entry.rank))
	score := r.NewStyle().Foreground(lipgloss.Color("241")).
		Render(fmt.Sprintf("Score: %d   Level: %d", m.entry.score, m.gameState.Level))
	hint := r.NewStyle().Foreground(lipgloss.Color("241")).Render("enter: save  esc: skip")

	panel := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("57")).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Center, title, score, "", "Your name:", m.entry.input.View(), "", hint))

	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, panel)
}

// ShortHelp lets the model itself be shown in a help view.
func (m GameModel) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

// Rank returns the hall of fame place of the last finished game, 0 for none.
func (m GameModel) Rank() int {
	return m.rank
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one game and returns when the
// player quits or goes back to the menu.
func Run(game registry.Game, env Env) (backToMenu bool, err error) {
	p := tea.NewProgram(NewGameModel(game, env), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
