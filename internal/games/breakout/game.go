// Package breakout runs a brickwell campaign on top of the simulation in
// internal/sim: it loads the config and level files, feeds actions into the
// current level, handles lost rounds, level changes and game over, and draws
// the result into a core.Screen.
package breakout

import (
	"fmt"

	"github.com/vovakirdan/brickwell/internal/config"
	"github.com/vovakirdan/brickwell/internal/core"
	"github.com/vovakirdan/brickwell/internal/levels"
	"github.com/vovakirdan/brickwell/internal/registry"
	"github.com/vovakirdan/brickwell/internal/sim"
)

// Game states
const (
	StateServe    = "serve"    // Ball parked on the paddle, waiting for launch
	StatePlaying  = "playing"  // Ball in play
	StatePaused   = "paused"   // Game paused
	StateGameOver = "gameover" // No lives left
	StateWin      = "win"      // Campaign cleared
	StateError    = "error"    // Config or level files unusable
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Play through the levels once, win at the end
	ModeEndless                  // Start over after the last level, faster each lap
)

var (
	configPath       string
	levelsDir        string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLevelsDir makes new games load their campaign from dir instead of the
// built-in levels. An empty dir restores the built-in campaign.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game implements the brickwell game flow.
type Game struct {
	mode GameMode

	// Fixed config and campaign, used instead of the search path when set.
	fixedCfg      *config.BrickwellConfig
	fixedCampaign *levels.Campaign

	runtime    core.RuntimeConfig
	cfg        config.BrickwellConfig
	tuning     sim.Tuning
	difficulty *config.DifficultyManager
	campaign   *levels.Campaign

	stats *sim.Stats
	notes *sim.Notifier
	rng   *sim.RNG
	level *sim.Level

	state      string
	levelIndex int // index into the campaign
	cycle      int // completed laps in endless mode
	err        error

	view           viewport
	screenTooSmall bool
}

// New creates a campaign game that loads its config and levels on Reset.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates an endless game that loads its config and levels on Reset.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewWith creates a game that always plays campaign with cfg, ignoring the
// package-level config path, preset and levels dir.
func NewWith(mode GameMode, cfg config.BrickwellConfig, campaign *levels.Campaign) *Game {
	return &Game{mode: mode, fixedCfg: &cfg, fixedCampaign: campaign}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "brickwell_endless"
	}
	return "brickwell"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Brickwell (Endless)"
	}
	return "Brickwell"
}

// Err returns the reason the game is in StateError, or nil.
func (g *Game) Err() error {
	return g.err
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.err = nil

	cfg, cfgErr := g.loadConfig()
	g.cfg = cfg
	g.tuning = TuningFromConfig(g.cfg)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.view = newViewport(g.cfg)
	g.screenTooSmall = runtime.ScreenW < g.view.minWidth() || runtime.ScreenH < g.view.minHeight()

	g.stats = sim.NewStats(StatsConfigFromConfig(g.cfg))
	g.notes = sim.NewNotifier()
	g.rng = sim.NewRNG(runtime.Seed)
	g.levelIndex = 0
	g.cycle = 0
	g.level = nil

	if cfgErr != nil {
		g.fail(cfgErr)
		return
	}

	campaign, err := g.loadCampaign()
	if err != nil {
		g.fail(err)
		return
	}
	g.campaign = campaign

	if err := g.loadLevel(); err != nil {
		g.fail(err)
		return
	}
	g.state = StateServe
}

// Resize adapts to a new screen size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.screenTooSmall = w < g.view.minWidth() || h < g.view.minHeight()
}

// loadConfig returns the config for a new game. On error it still returns
// the defaults so the error screen has a layout to draw in.
func (g *Game) loadConfig() (config.BrickwellConfig, error) {
	if g.fixedCfg != nil {
		return *g.fixedCfg, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return config.DefaultBrickwellConfig(), err
	}
	config.ApplyPreset(&cfg, difficultyPreset)
	return cfg, nil
}

func (g *Game) loadCampaign() (*levels.Campaign, error) {
	if g.fixedCampaign != nil {
		if g.fixedCampaign.Len() == 0 {
			return nil, levels.ErrEmptyCampaign
		}
		return g.fixedCampaign, nil
	}

	d := LevelDefaults(g.cfg)
	if levelsDir != "" {
		return levels.LoadDir(config.ExpandHome(levelsDir), d)
	}
	return levels.Builtin(d)
}

// levelTuning returns the tuning for the given number of levels cleared so
// far, with the ball speeds raised by the difficulty ramp.
func (g *Game) levelTuning(cleared int) sim.Tuning {
	t := g.tuning
	factor := g.difficulty.Speed(1, cleared)
	t.ServeVelocity = t.ServeVelocity.Scale(factor)
	for i, v := range t.MultiballVelocities {
		t.MultiballVelocities[i] = v.Scale(factor)
	}
	return t
}

func (g *Game) loadLevel() error {
	spec, ok := g.campaign.Level(g.levelIndex)
	if !ok {
		return fmt.Errorf("breakout: no level %d in campaign", g.levelIndex+1)
	}

	level, err := sim.NewLevel(spec, g.levelTuning(g.stats.Level), g.stats, g.rng, g.notes)
	if err != nil {
		return fmt.Errorf("breakout: level %q: %w", spec.Name, err)
	}
	g.level = level

	if spec.Name != "" {
		g.notes.Push(fmt.Sprintf("Level %d: %s", g.stats.Level+1, spec.Name))
	}
	return nil
}

func (g *Game) fail(err error) {
	g.err = err
	g.state = StateError
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall || g.state == StateError {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.over() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		switch g.state {
		case StatePaused:
			g.state = g.runningState()
		case StateServe, StatePlaying:
			g.state = StatePaused
		}
	}

	if g.state == StatePaused || g.over() {
		return core.StepResult{State: g.State()}
	}

	g.notes.Tick()

	if _, err := g.level.Tick(actionFor(in, g.level.Serving())); err != nil {
		g.fail(err)
		return core.StepResult{State: g.State()}
	}

	switch {
	case g.level.Cleared():
		g.nextLevel()
	case g.level.RoundOver():
		g.loseRound()
	default:
		g.state = g.runningState()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) runningState() string {
	if g.level != nil && g.level.Serving() {
		return StateServe
	}
	return StatePlaying
}

func (g *Game) over() bool {
	return g.state == StateGameOver || g.state == StateWin
}

// actionFor picks the one action a level consumes this frame. Launch only
// matters while serving; opposite directions cancel out.
func actionFor(in core.InputFrame, serving bool) sim.Action {
	left, right := in.Has(core.ActionLeft), in.Has(core.ActionRight)
	switch {
	case serving && in.Has(core.ActionLaunch):
		return sim.ActionLaunch
	case !serving && in.Has(core.ActionFire):
		return sim.ActionFire
	case left && !right:
		return sim.ActionLeft
	case right && !left:
		return sim.ActionRight
	default:
		return sim.ActionNone
	}
}

// loseRound takes a life for the dropped ball and either serves again or
// ends the game.
func (g *Game) loseRound() {
	g.stats.LoseLife()
	if !g.stats.HasLives() {
		g.state = StateGameOver
		return
	}

	g.level.ResetRound()
	g.notes.Push(fmt.Sprintf("Ball lost, %d lives left", g.stats.Lives()))
	g.state = StateServe
}

// nextLevel moves on after a cleared board. The campaign is won after its
// last level; endless mode starts another lap.
func (g *Game) nextLevel() {
	g.stats.NextLevel()
	g.levelIndex++
	if g.levelIndex >= g.campaign.Len() {
		if g.mode != ModeEndless {
			g.state = StateWin
			return
		}
		g.levelIndex = 0
		g.cycle++
	}

	g.stats.ResetLevelStats()
	g.stats.ResetTimers()
	g.notes.Reset()
	if err := g.loadLevel(); err != nil {
		g.fail(err)
		return
	}
	g.state = StateServe
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	gs := core.GameState{
		GameOver: g.over() || g.state == StateError,
		Error:    g.state == StateError,
		Won:      g.state == StateWin,
		Paused:   g.state == StatePaused,
	}
	if g.stats != nil {
		gs.Score = g.stats.Score
		gs.Level = g.stats.Level + 1
		gs.Lives = max(g.stats.Lives(), 0)
		if g.state == StateWin {
			gs.Level = g.stats.Level
		}
	}
	return gs
}

// Register the games with the registry
func init() {
	registry.Register("brickwell", func() registry.Game {
		return New()
	})
	registry.Register("brickwell_endless", func() registry.Game {
		return NewEndless()
	})
}
