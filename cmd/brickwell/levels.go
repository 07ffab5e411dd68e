package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickwell/internal/config"
	"github.com/vovakirdan/brickwell/internal/games/breakout"
	"github.com/vovakirdan/brickwell/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long: `Shows the levels of the campaign in play order with their block counts.
Uses the built-in campaign, or the directory given with --levels.

Examples:
  brickwell levels
  brickwell levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) error {
	d := breakout.LevelDefaults(gameConfig)

	source := "built-in"
	var (
		campaign *levels.Campaign
		err      error
	)
	if flagLevelsDir != "" {
		source = flagLevelsDir
		campaign, err = levels.LoadDir(config.ExpandHome(flagLevelsDir), d)
	} else {
		campaign, err = levels.Builtin(d)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Campaign (%s): %d levels\n\n", source, campaign.Len())

	// Calculate column widths
	maxNameLen := len("Name")
	for _, spec := range campaign.Levels {
		maxNameLen = max(maxNameLen, len(spec.Name))
	}

	fmt.Fprintf(out, "  %-3s  %-*s  %6s  %s\n", "#", maxNameLen, "Name", "Blocks", "File")
	fmt.Fprintf(out, "  %-3s  %-*s  %6s  %s\n", "--", maxNameLen, "----", "------", "----")
	for i, spec := range campaign.Levels {
		file := ""
		if i < len(campaign.Files) {
			file = campaign.Files[i]
		}
		fmt.Fprintf(out, "  %-3d  %-*s  %6d  %s\n", i+1, maxNameLen, spec.Name, levels.BlockCount(spec), file)
	}
	return nil
}
