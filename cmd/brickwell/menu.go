package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickwell/internal/platform/tui"
	"github.com/vovakirdan/brickwell/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start brickwell with the main menu",
	Long: `Start brickwell in interactive menu mode.

Pick the campaign or endless mode, or open the hall of fame. After a game
ends, B brings you back to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Hall of fame
  Q            - Quit

Examples:
  brickwell menu
  brickwell menu --fps 60
  brickwell menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagPlayer, "name", "", "Name offered for the hall of fame (default: login name)")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	env, cleanup := newEnv()
	defer cleanup()

	for {
		res, err := tui.RunMenu(env)
		if err != nil {
			return err
		}
		env = res.Env

		switch {
		case res.Quit:
			return nil

		case res.WantsScoreboard:
			goBack, err := tui.RunScoreboard(env)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case res.GameID != "":
			game, err := registry.Create(res.GameID)
			if err != nil {
				return fmt.Errorf("cannot create game: %w", err)
			}

			// Fresh seed for each game unless one was given.
			env.Runtime.Seed = flagSeed

			backToMenu, err := tui.Run(game, env)
			if err != nil {
				return fmt.Errorf("cannot run game: %w", err)
			}
			if !backToMenu {
				return nil
			}
		}
	}
}
