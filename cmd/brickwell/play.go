package main

import (
	"errors"
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickwell/internal/config"
	"github.com/vovakirdan/brickwell/internal/core"
	"github.com/vovakirdan/brickwell/internal/games/breakout"
	"github.com/vovakirdan/brickwell/internal/leaderboard"
	"github.com/vovakirdan/brickwell/internal/platform/tui"
	"github.com/vovakirdan/brickwell/internal/registry"
	"github.com/vovakirdan/brickwell/internal/storage"
)

var (
	flagEndless bool
	flagPlayer  string
)

// errNoTerminal is returned when an interactive command runs without a TTY.
var errNoTerminal = errors.New("stdout is not a terminal")

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start a game in the terminal.

Controls:
  Left/Right, A/D - Move the paddle
  Space           - Launch the ball
  C               - Fire missiles
  P/Esc           - Pause
  R               - Restart (after game over)
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - More lives, longer paddle, slower ball
  normal - Ball speed ramps up from 20% over the campaign
  hard   - Fewer lives, shorter paddle, faster ball
  fixed  - No speed ramp

Examples:
  brickwell play
  brickwell play --endless
  brickwell play --difficulty hard --seed 42
  brickwell play --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagEndless, "endless", false, "Loop the campaign, faster each lap")
	cmd.Flags().StringVar(&flagPlayer, "name", "", "Name offered for the hall of fame (default: login name)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	id := breakout.New().ID()
	if flagEndless {
		id = breakout.NewEndless().ID()
	}
	game, err := registry.Create(id)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	env, cleanup := newEnv()
	defer cleanup()

	if _, err := tui.Run(game, env); err != nil {
		return fmt.Errorf("cannot run game: %w", err)
	}
	if g, ok := game.(*breakout.Game); ok && g.Err() != nil {
		return g.Err()
	}
	return nil
}

// runtimeConfig reads the terminal size and the timing flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = tickRate()
	cfg.Seed = flagSeed
	return cfg
}

// newEnv opens the run history and the hall of fame. A database that cannot
// be opened is logged and play goes on without it.
func newEnv() (tui.Env, func()) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "path", flagDBPath, "error", err)
		store = nil
	}

	board := leaderboard.Open(config.ExpandHome(flagLeaderboard))
	env := tui.NewEnv(store, board, playerName(), runtimeConfig())
	logger.Debug("session", "id", env.Session, "player", env.Player)

	return env, func() {
		if store != nil {
			store.Close()
		}
	}
}

// playerName returns --name, or the login name.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}
