// brickwell is a brick-breaking arcade game for the terminal.
//
// Usage:
//
//	brickwell                - Play the campaign (same as "brickwell play")
//	brickwell play           - Play the campaign, or --endless
//	brickwell menu           - Main menu with the hall of fame
//	brickwell levels         - List the campaign levels
//	brickwell scores         - Show the hall of fame and run statistics
//	brickwell serve          - Start SSH server for remote play
//	brickwell config         - Print the effective configuration
//
// Global flags:
//
//	--config <path>      - Custom config YAML
//	--difficulty <name>  - easy, normal, hard or fixed
//	--levels <dir>       - Load the campaign from dir instead of the built-in one
//	--db <path>          - Run history database (default: ~/.brickwell/runs.db)
//	--leaderboard <path> - Hall of fame file (default: ~/.brickwell/leaderboard.txt)
//	--fps <rate>         - Tick rate (default: from config, 30)
//	--seed <value>       - RNG seed for reproducible gameplay
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickwell/internal/config"
	"github.com/vovakirdan/brickwell/internal/games/breakout"
)

var (
	// Global flags
	flagConfig      string
	flagDifficulty  string
	flagLevelsDir   string
	flagDBPath      string
	flagLeaderboard string
	flagFPS         int
	flagSeed        int64
	flagLogLevel    string
)

var (
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "brickwell",
	})

	// gameConfig is the configuration after --config and --difficulty.
	gameConfig config.BrickwellConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brickwell",
	Short: "Brickwell - break bricks in your terminal",
	Long: `Brickwell is a brick-breaking arcade game for the terminal.

Bounce the ball off the paddle, clear every breakable block of a level to
move on, and catch the power-ups that fall from broken blocks.

Available commands:
  play     - Play the campaign (default)
  menu     - Main menu with the hall of fame
  levels   - List the campaign levels
  scores   - Show the hall of fame and run statistics
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  brickwell
  brickwell play --endless
  brickwell --difficulty hard
  brickwell --levels ./my-levels
  brickwell serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runPlay,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevelsDir, "levels", "", "Directory with index.txt and level files")
	pf.StringVar(&flagDBPath, "db", "~/.brickwell/runs.db", "Path to run history database")
	pf.StringVar(&flagLeaderboard, "leaderboard", "~/.brickwell/leaderboard.txt", "Path to hall of fame file")
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate (0 = gameplay.tick_rate from config)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// setup validates the global flags and hands them to the game package so a
// bad config fails before any screen opens.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	logger.SetLevel(level)

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, preset)
	gameConfig = cfg

	breakout.SetConfigPath(flagConfig)
	breakout.SetDifficultyPreset(flagDifficulty)
	breakout.SetLevelsDir(flagLevelsDir)

	logger.Debug("config loaded", "path", flagConfig, "difficulty", preset, "levels", flagLevelsDir)
	return nil
}

// tickRate returns --fps, or the configured rate when the flag is unset.
func tickRate() int {
	if flagFPS > 0 {
		return flagFPS
	}
	return gameConfig.Gameplay.TickRate
}
