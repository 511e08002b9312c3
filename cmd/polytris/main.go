// polytris is a falling-polyomino puzzle game for the terminal. Pieces are
// random connected shapes of 4 to 8 cells instead of the classic seven
// tetrominoes.
//
// Usage:
//
//	polytris play            - Play a game
//	polytris menu            - Start menu to pick a difficulty
//	polytris scores [mode]   - Show high scores for a difficulty mode
//	polytris config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.polytris/scores.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error
//
// Every flag can also be set through a POLYTRIS_* environment variable
// (POLYTRIS_LOG_LEVEL for --log-level), optionally from a .env file.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/polytris/internal/config"
	"github.com/vovakirdan/polytris/internal/core"
	"github.com/vovakirdan/polytris/internal/platform/tui"
	"github.com/vovakirdan/polytris/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

// logger is set up before any command runs.
var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

// envPrefix prefixes environment variables that back the global flags.
const envPrefix = "POLYTRIS_"

var globalFlags = []string{"fps", "seed", "db", "config", "difficulty", "log-file", "log-level"}

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "polytris",
	Short: "Polytris - falling polyominoes in your terminal",
	Long: `Polytris is a falling-block puzzle game for the terminal. Every piece
is a freshly generated polyomino of 4 to 8 cells: no holes, always
connected, never the same seven shapes.

Available commands:
  play     - Play a game directly
  menu     - Interactive difficulty picker
  scores   - View high scores
  config   - Print the effective configuration

Examples:
  polytris play
  polytris play --difficulty hard --seed 42
  polytris menu
  polytris scores hard
  polytris config > ~/.polytris/config.yaml`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: no logging)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// envName returns the environment variable backing a flag.
func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// applyEnv fills flags the user did not set from POLYTRIS_* variables.
func applyEnv(cmd *cobra.Command) error {
	flags := cmd.Flags()
	for _, name := range globalFlags {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := os.LookupEnv(envName(name))
		if !ok || v == "" {
			continue
		}
		if err := flags.Set(name, v); err != nil {
			return fmt.Errorf("invalid %s: %w", envName(name), err)
		}
	}
	return nil
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := applyEnv(cmd); err != nil {
		return err
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	return setupLogger()
}

// setupLogger points the logger at --log-file. The terminal belongs to the
// TUI, so without a log file nothing is logged.
func setupLogger() error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	if flagLogFile == "" {
		return nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "polytris",
		Level:           level,
	})
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// loadConfig reads the configuration and resolves the difficulty preset:
// --difficulty wins over the preset in the file.
func loadConfig() (config.Config, config.DifficultyPreset, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}

	name := string(cfg.Difficulty.Preset)
	if flagDifficulty != "" {
		name = flagDifficulty
	}
	preset, err := config.ParsePreset(name)
	if err != nil {
		return config.Config{}, "", err
	}

	logger.Debug("config loaded", "source", source, "preset", preset)
	return cfg, preset, nil
}

// withPreset returns a copy of cfg with the preset's speed curve applied.
func withPreset(cfg config.Config, preset config.DifficultyPreset) config.Config {
	cfg.Palette = append([]string(nil), cfg.Palette...)
	config.ApplyPreset(&cfg, preset)
	return cfg
}

// openStore opens the score database. Play works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}

// scoreStore converts a possibly nil store without producing a non-nil
// interface holding a nil pointer.
func scoreStore(s *storage.Store) tui.ScoreStore {
	if s == nil {
		return nil
	}
	return s
}

// runtimeConfig builds the runtime config from flags and terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
