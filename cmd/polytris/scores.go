package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/polytris/internal/config"
	"github.com/vovakirdan/polytris/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a difficulty mode",
	Long: `Display the top high scores for a difficulty mode. Without an argument
the mode from --difficulty (or the config file) is shown.

Examples:
  polytris scores
  polytris scores hard
  polytris scores easy --limit 25
  polytris scores fixed --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	var mode config.DifficultyPreset
	if len(args) == 1 {
		p, err := config.ParsePreset(args[0])
		if err != nil {
			return err
		}
		mode = p
	} else {
		_, p, err := loadConfig()
		if err != nil {
			return err
		}
		mode = p
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := store.ClearScores(string(mode)); err != nil {
			return err
		}
		logger.Info("scores cleared", "mode", mode)
		fmt.Fprintf(out, "Cleared %s scores.\n", mode)
		return nil
	}

	scores, err := store.TopScores(string(mode), flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", mode.Title())

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'polytris play --difficulty %s' to set the first high score!\n", mode)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %-5s  %s\n", "Rank", "Score", "Level", "Lines", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %-5s  %s\n", "----", "-----", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %-5d  %-5d  %s\n",
			i+1, e.Score, e.Level, e.Lines, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(string(mode))
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  Games: %d  Average: %.0f  Lines: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalLines)
	}
	return nil
}
