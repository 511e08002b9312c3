package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/polytris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty picker menu",
	Long: `Start polytris in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a difficulty.
Quitting a game (Q) returns you to the menu. After game over, press R to
play again at the same difficulty or Q to go back and pick another.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  polytris menu
  polytris menu --fps 30
  polytris menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	scores := scoreStore(store)
	rc := runtimeConfig()
	first := true

	for {
		menuResult, err := tui.RunMenu(scores, rc, preset)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}

		// Update config with any size changes
		rc = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(scores, rc.ScreenW, rc.ScreenH, preset)
			if sbErr != nil {
				return fmt.Errorf("scoreboard: %w", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		// Remember the pick for the next round
		preset = menuResult.Preset

		// A fixed --seed only applies to the first game
		if !first || flagSeed == 0 {
			rc.Seed = time.Now().UnixNano()
		}
		first = false

		if err := playGame(withPreset(cfg, preset), store, rc); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			logger.Error("game failed", "err", err)
		}
	}
}
