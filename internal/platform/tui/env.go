package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/vovakirdan/brickwell/internal/core"
	"github.com/vovakirdan/brickwell/internal/leaderboard"
	"github.com/vovakirdan/brickwell/internal/storage"
)

// Env is what the screens of one player share.
type Env struct {
	Store       *storage.Store    // run history, may be nil
	Leaderboard *leaderboard.File // hall of fame, may be nil
	Player      string            // name offered when a score makes the hall of fame
	Session     string            // groups the runs of one sitting
	Runtime     core.RuntimeConfig

	// Renderer styles the output. Nil means the process terminal; SSH
	// sessions pass one bound to the session so colors match the client.
	Renderer *lipgloss.Renderer
}

// NewEnv creates an Env with a fresh session id.
func NewEnv(store *storage.Store, board *leaderboard.File, player string, rt core.RuntimeConfig) Env {
	return Env{
		Store:       store,
		Leaderboard: board,
		Player:      player,
		Session:     uuid.NewString(),
		Runtime:     rt,
	}
}

func (e Env) renderer() *lipgloss.Renderer {
	if e.Renderer != nil {
		return e.Renderer
	}
	return lipgloss.DefaultRenderer()
}

func (e Env) playerName() string {
	return leaderboard.NormalizeName(e.Player)
}
