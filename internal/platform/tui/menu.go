package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/polytris/internal/config"
	"github.com/vovakirdan/polytris/internal/core"
)

// menuKind says what selecting a menu item does.
type menuKind int

const (
	menuPlay menuKind = iota
	menuScores
	menuQuit
)

// MenuItem represents a selectable line in the start menu.
type MenuItem struct {
	Title  string
	Hint   string
	Preset config.DifficultyPreset // Set for play items
	kind   menuKind
}

var presetHints = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "slower start, gentle speedup",
	config.DifficultyNormal: "the standard curve",
	config.DifficultyHard:   "fast start, steep speedup",
	config.DifficultyFixed:  "speed never changes",
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items          []MenuItem
	best           map[config.DifficultyPreset]int
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	quitting       bool
	selected       *MenuItem // Set when user picks a difficulty
	openScoreboard bool      // True if user asked for the scoreboard
}

// NewMenuModel creates a new menu model with the cursor on the given
// preset. store may be nil.
func NewMenuModel(store ScoreStore, cfg core.RuntimeConfig, current config.DifficultyPreset) MenuModel {
	items := make([]MenuItem, 0, len(config.Presets)+2)
	best := make(map[config.DifficultyPreset]int, len(config.Presets))
	cursor := 0

	for i, p := range config.Presets {
		if p == current {
			cursor = i
		}
		items = append(items, MenuItem{
			Title:  "Play " + p.Title(),
			Hint:   presetHints[p],
			Preset: p,
			kind:   menuPlay,
		})
		if store != nil {
			if score, err := store.HighScore(string(p)); err == nil {
				best[p] = score
			}
		}
	}
	items = append(items,
		MenuItem{Title: "High Scores", Hint: "tab", kind: menuScores},
		MenuItem{Title: "Quit", Hint: "q", kind: menuQuit},
	)

	return MenuModel{
		items:  items,
		best:   best,
		cursor: cursor,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		item := m.items[m.cursor]
		switch item.kind {
		case menuPlay:
			m.selected = &item
		case menuScores:
			m.openScoreboard = true
		case menuQuit:
			m.quitting = true
		}
		return m, tea.Quit

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("P O L Y T R I S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a difficulty", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		label := fmt.Sprintf("%-14s", item.Title)
		if item.kind == menuPlay {
			label += fmt.Sprintf(" best %6d", m.best[item.Preset])
		} else {
			label += strings.Repeat(" ", 12)
		}

		if i == m.cursor {
			label = menuSelectedStyle.Render("> " + label)
		} else {
			label = "  " + label
		}
		b.WriteString(centerText(label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render(m.items[m.cursor].Hint), m.width))
	b.WriteString("\n\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Width is measured without
// ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Preset          config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result converts the final menu state into a MenuResult.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.config}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Preset = m.Selected().Preset
	default:
		result.Quit = true
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store ScoreStore, cfg core.RuntimeConfig, current config.DifficultyPreset) (MenuResult, error) {
	model := NewMenuModel(store, cfg, current)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
