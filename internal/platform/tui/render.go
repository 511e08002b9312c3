package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/polytris/internal/core"
)

// styleKey identifies a foreground/background pair.
type styleKey struct {
	fg, bg core.Color
}

// styleCache builds lipgloss styles lazily. Screens use few distinct pairs
// (palette, frame, text), so the cache stays small.
type styleCache map[styleKey]lipgloss.Style

func (c styleCache) get(fg, bg core.Color) lipgloss.Style {
	k := styleKey{fg, bg}
	if st, ok := c[k]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if !fg.IsDefault() {
		st = st.Foreground(lipgloss.Color(fg))
	}
	if !bg.IsDefault() {
		st = st.Background(lipgloss.Color(bg))
	}
	c[k] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	styles := styleCache{}
	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Fg.IsDefault() && start.Bg.IsDefault() {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.get(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
