package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickwell/internal/config"
	"github.com/vovakirdan/brickwell/internal/leaderboard"
	"github.com/vovakirdan/brickwell/internal/platform/tui"
	"github.com/vovakirdan/brickwell/internal/storage"
)

var (
	flagInteractive bool
	flagRecent      int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the hall of fame and run statistics",
	Long: `Display the hall of fame and totals from the run history.

Examples:
  brickwell scores
  brickwell scores --recent 5
  brickwell scores -i`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a table")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list the latest N runs")
}

func runScores(cmd *cobra.Command, _ []string) error {
	if flagInteractive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errNoTerminal
		}
		env, cleanup := newEnv()
		defer cleanup()
		_, err := tui.RunScoreboard(env)
		return err
	}

	out := cmd.OutOrStdout()

	board, err := leaderboard.Load(config.ExpandHome(flagLeaderboard))
	if err != nil {
		return err
	}
	printBoard(out, board)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "path", flagDBPath, "error", err)
		return nil
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	printStats(out, stats)

	if flagRecent > 0 {
		runs, err := store.RecentRuns(flagRecent)
		if err != nil {
			return err
		}
		printRuns(out, runs)
	}
	return nil
}

func printBoard(out io.Writer, board *leaderboard.Board) {
	fmt.Fprintln(out, "Hall of Fame")
	fmt.Fprintln(out)

	if board.Len() == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'brickwell' to set the first high score!")
		return
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %-*s  %s\n", "Rank", "Score", leaderboard.MaxNameLen, "Name", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-*s  %s\n", "----", "-----", leaderboard.MaxNameLen, "----", "----")
	for i, r := range board.Records() {
		fmt.Fprintf(out, "  %-4d  %-10d  %-*s  %s\n", i+1, r.Score, leaderboard.MaxNameLen, r.Name, r.Time.Format("2006-01-02 15:04"))
	}
}

func printStats(out io.Writer, st *storage.RunStats) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run history")
	fmt.Fprintln(out)
	if st.Runs == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return
	}
	fmt.Fprintf(out, "  Runs:        %d\n", st.Runs)
	fmt.Fprintf(out, "  Cleared:     %d\n", st.Cleared)
	fmt.Fprintf(out, "  Best score:  %d\n", st.HighScore)
	fmt.Fprintf(out, "  Average:     %.0f\n", st.AvgScore)
	fmt.Fprintf(out, "  Best level:  %d\n", st.BestLevel)
	fmt.Fprintf(out, "  Last played: %s\n", st.LastPlayed.Format("2006-01-02 15:04"))
}

func printRuns(out io.Writer, runs []storage.RunRecord) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-*s  %-8s  %-5s  %-8s  %s\n", leaderboard.MaxNameLen, "Player", "Score", "Level", "Time", "Date")
	for _, r := range runs {
		lvl := fmt.Sprint(r.Level)
		if r.Cleared {
			lvl += "*"
		}
		fmt.Fprintf(out, "  %-*s  %-8d  %-5s  %-8s  %s\n",
			leaderboard.MaxNameLen, r.Player, r.Score, lvl, r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
