package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/polytris/internal/core"
	"github.com/vovakirdan/polytris/internal/sound"
	"github.com/vovakirdan/polytris/internal/storage"
)

// Game is what the platform needs from a tick-driven game.
type Game interface {
	ID() string
	Title() string
	Mode() string
	Reset(cfg core.RuntimeConfig)
	Resize(w, h int)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	Cues() []sound.Cue
}

// ScoreStore is the score persistence used by the TUI. *storage.Store
// implements it.
type ScoreStore interface {
	SaveScore(e storage.ScoreEntry) (int64, error)
	HighScore(mode string) (int, error)
	TopScores(mode string, limit int) ([]storage.ScoreEntry, error)
	Stats(mode string) (*storage.ModeStats, error)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game          Game
	screen        *core.Screen
	store         ScoreStore
	notifier      sound.Notifier
	logger        *log.Logger
	screenshotDir string
	config        core.RuntimeConfig
	keys          KeyMap
	help          help.Model
	inputFrame    core.InputFrame
	gameState     core.GameState
	best          int
	quitting      bool
	scoreSaved    bool // Whether score has been saved for current game over
}

// Option configures a Model.
type Option func(*Model)

// WithNotifier plays the game's sound cues through n.
func WithNotifier(n sound.Notifier) Option {
	return func(m *Model) {
		if n != nil {
			m.notifier = n
		}
	}
}

// WithLogger sets the logger for platform events.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithScreenshotDir overrides where ctrl+s writes screenshots.
func WithScreenshotDir(dir string) Option {
	return func(m *Model) {
		m.screenshotDir = dir
	}
}

// NewModel creates a new Bubble Tea model for the given game. store may be
// nil, in which case scores are not kept.
func NewModel(game Game, store ScoreStore, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:      store,
		notifier:   sound.Nop{},
		logger:     log.New(io.Discard),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.screenshotDir == "" {
		m.screenshotDir = defaultScreenshotDir()
	}

	if store != nil {
		if best, err := store.HighScore(game.Mode()); err != nil {
			m.logger.Warn("cannot load high score", "mode", game.Mode(), "err", err)
		} else {
			m.best = best
		}
	}
	return m
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".polytris", "screenshots")
	}
	return filepath.Join(home, ".polytris", "screenshots")
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	m.logger.Info("game started", "game", m.game.Title(), "mode", m.game.Mode(), "seed", m.config.Seed)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// gameConfig is the runtime config as the game sees it: the footer rows
// are not part of its screen.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-m.footerHeight(), 1)
	return cfg
}

// footerHeight is one line of short help, or the tallest full help column.
func (m Model) footerHeight() int {
	if !m.help.ShowAll {
		return 1
	}
	h := 1
	for _, col := range m.keys.FullHelp() {
		h = max(h, len(col))
	}
	return h
}

// layout resizes the screen buffer and the game to the current window.
func (m *Model) layout() {
	gc := m.gameConfig()
	m.screen.Resize(gc.ScreenW, gc.ScreenH)
	m.game.Resize(gc.ScreenW, gc.ScreenH)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	if action := m.keys.Action(msg); action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize adapts the layout; the running game is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.layout()
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	m.gameState = result.State

	for _, cue := range m.game.Cues() {
		m.notifier.Play(cue)
	}

	switch {
	case m.gameState.GameOver && !m.scoreSaved:
		m.saveScore()
		m.scoreSaved = true
	case !m.gameState.GameOver:
		// A restart starts a new game that needs its own save
		m.scoreSaved = false
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished game. Failures are logged; play goes on.
func (m *Model) saveScore() {
	s := m.gameState
	if s.Score > m.best {
		m.best = s.Score
	}
	if m.store == nil || s.Score <= 0 {
		return
	}

	entry := storage.ScoreEntry{
		GameID: m.game.ID(),
		Mode:   m.game.Mode(),
		Score:  s.Score,
		Level:  s.Level,
		Lines:  s.Lines,
	}
	if _, err := m.store.SaveScore(entry); err != nil {
		m.logger.Warn("cannot save score", "score", s.Score, "err", err)
		return
	}
	m.logger.Info("score saved", "mode", entry.Mode, "score", entry.Score, "level", entry.Level)
}

// saveScreenshot saves the current screen to a text file and returns its
// path.
func (m *Model) saveScreenshot() string {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", m.screenshotDir, "err", err)
		return ""
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(m.screenshotDir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot write screenshot", "path", path, "err", err)
		return ""
	}
	m.logger.Info("screenshot saved", "path", path)
	return path
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.footer()))
	return b.String()
}

func (m Model) footer() string {
	best := fmt.Sprintf("best %d  ", m.best)
	m.help.Width = max(m.config.ScreenW-len(best), 0)
	return best + m.help.View(m.keys)
}

// Run starts the Bubble Tea program with the given model.
func Run(game Game, store ScoreStore, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
