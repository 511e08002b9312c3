package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/polytris/internal/config"
	"github.com/vovakirdan/polytris/internal/core"
	"github.com/vovakirdan/polytris/internal/games/polytris"
	"github.com/vovakirdan/polytris/internal/platform/tui"
	"github.com/vovakirdan/polytris/internal/sound"
	"github.com/vovakirdan/polytris/internal/storage"
)

// ttyPath is where the bell is rung. Opening it separately keeps the
// notifier's handle its own to close.
const ttyPath = "/dev/tty"

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game right away.

Controls:
  Left/A, Right/D  - Move
  Down/S           - Soft drop
  Space/Up/W       - Hard drop
  X / Z            - Rotate clockwise / counterclockwise
  C                - Hold
  P/Esc            - Pause
  R                - Restart
  Ctrl+S           - Screenshot
  ?                - All keys
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start, gentle speedup
  normal - The configured speed curve
  hard   - Faster start, steeper speedup
  fixed  - No speedup, stays at the initial speed

Examples:
  polytris play
  polytris play --difficulty hard
  polytris play --seed 42 --fps 30
  polytris play --config ./wide-field.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := playGame(withPreset(cfg, preset), store, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// playGame runs one game session until the player quits.
func playGame(cfg config.Config, store *storage.Store, rc core.RuntimeConfig) error {
	notifier := openNotifier(cfg.Sound)
	defer func() {
		if err := notifier.Close(); err != nil {
			logger.Warn("cannot close sound output", "err", err)
		}
	}()

	game := polytris.New(cfg, polytris.WithLogger(logger))
	return tui.Run(game, scoreStore(store), rc,
		tui.WithNotifier(notifier),
		tui.WithLogger(logger),
	)
}

// openNotifier returns a bell on the controlling terminal, or a silent
// notifier when sound is off or no terminal can be opened.
func openNotifier(sc config.SoundConfig) sound.Notifier {
	if !sc.Enabled || sc.Volume == 0 {
		return sound.Nop{}
	}

	tty, err := os.OpenFile(ttyPath, os.O_WRONLY, 0)
	if err != nil {
		logger.Warn("sound disabled", "tty", ttyPath, "err", err)
		return sound.Nop{}
	}

	bell, err := sound.NewBell(tty, sc.Volume, sound.WithLogger(logger))
	if err != nil {
		tty.Close()
		logger.Warn("sound disabled", "err", err)
		return sound.Nop{}
	}
	return bell
}
