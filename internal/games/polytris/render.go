package polytris

import (
	"fmt"

	"github.com/vovakirdan/polytris/internal/core"
	"github.com/vovakirdan/polytris/internal/engine"
	"github.com/vovakirdan/polytris/internal/field"
	"github.com/vovakirdan/polytris/internal/piece"
)

// Field cells are drawn as half blocks: each terminal row shows two field
// rows, the upper one as the foreground of '▀' and the lower one as its
// background. A terminal cell is about twice as tall as it is wide, so
// every field cell comes out square.
const (
	upperHalf = '▀'
	lowerHalf = '▄'

	panelGap   = 2  // Columns between the field box and the side panel
	panelWidth = 14 // Minimum side panel width
	statsLines = 6  // Title, blank, score, level, lines, blank
)

const (
	colorEmpty = core.ColorFieldShadow
	colorGhost = core.Color("240")
	colorFrame = core.ColorGray
	colorLabel = core.ColorCyan
	colorValue = core.ColorWhite
	colorAlert = core.ColorYellow
)

// halfRows returns how many terminal rows n field rows occupy.
func halfRows(n int) int {
	return (n + 1) / 2
}

// layoutSize returns the screen size needed to draw the game.
func layoutSize(fieldW, fieldH, maxPiece int) (int, int) {
	boxW, boxH := fieldW+2, halfRows(fieldH)+2
	panelW := max(panelWidth, maxPiece)
	panelH := statsLines + 3*(1+halfRows(maxPiece))
	return boxW + panelGap + panelW, max(boxH, panelH)
}

// Render draws the current game state into the provided screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.Snapshot()
	fw, fh := g.cfg.Field.Width, g.cfg.Field.Height
	lw, lh := layoutSize(fw, fh, g.cfg.Pieces.MaxSize)
	ox := (dst.Width() - lw) / 2
	oy := (dst.Height() - lh) / 2

	box := core.NewRect(ox, oy, fw+2, halfRows(fh)+2)
	dst.DrawBoxColored(box, colorFrame)
	g.drawField(dst, box.Inset(1), snap)
	g.drawPanel(dst, box.Right()+panelGap, oy, snap.State)

	switch {
	case snap.State.GameOver:
		drawOverlay(dst, box, colorAlert, "GAME OVER",
			fmt.Sprintf("Score %d", snap.State.Score), "r restart  q quit")
	case snap.State.Paused:
		drawOverlay(dst, box, colorAlert, "PAUSED", "p resume")
	}
}

// cellColors flattens grid, ghost and active piece into one color per field
// cell.
func (g *Game) cellColors(snap Snapshot) [][]core.Color {
	s := snap.State
	colors := make([][]core.Color, s.Grid.Height())
	for y, row := range s.Grid {
		colors[y] = make([]core.Color, len(row))
		for x, c := range row {
			colors[y][x] = g.cellColor(c)
		}
	}

	paint := func(p *piece.Piece, color func(piece.Block) core.Color) {
		if p == nil {
			return
		}
		for _, b := range p.Blocks {
			x, y := p.Pos.X+b.X, p.Pos.Y+b.Y
			if y >= 0 && y < len(colors) && x >= 0 && x < len(colors[y]) {
				colors[y][x] = color(b)
			}
		}
	}
	if !s.GameOver {
		paint(snap.Ghost, func(piece.Block) core.Color { return colorGhost })
	}
	paint(s.Active, func(b piece.Block) core.Color { return g.paletteColor(b.Color) })
	return colors
}

func (g *Game) cellColor(c field.Cell) core.Color {
	if !c.Filled {
		return colorEmpty
	}
	return g.paletteColor(c.Color)
}

func (g *Game) paletteColor(idx uint8) core.Color {
	if int(idx) < len(g.palette) {
		return g.palette[idx]
	}
	return core.ColorWhite
}

func (g *Game) drawField(dst *core.Screen, area core.Rect, snap Snapshot) {
	colors := g.cellColors(snap)
	for r := 0; r < area.H; r++ {
		top, bottom := 2*r, 2*r+1
		for x := 0; x < area.W; x++ {
			fg := colors[top][x]
			bg := core.ColorDefault
			if bottom < len(colors) {
				bg = colors[bottom][x]
			}
			dst.SetColored(area.X+x, area.Y+r, upperHalf, fg, bg)
		}
	}
}

func (g *Game) drawPanel(dst *core.Screen, x, y int, s engine.State) {
	dst.DrawTextColored(x, y, "POLYTRIS", colorAlert)
	stat := func(row int, label string, value int) {
		dst.DrawTextColored(x, y+row, label, colorLabel)
		dst.DrawTextColored(x+6, y+row, fmt.Sprintf("%d", value), colorValue)
	}
	stat(2, "Score", s.Score)
	stat(3, "Level", s.Level)
	stat(4, "Lines", s.Lines)

	row := y + statsLines
	step := 1 + halfRows(g.cfg.Pieces.MaxSize)
	g.drawPreview(dst, x, row, "Next", s.Next)
	g.drawPreview(dst, x, row+step, "Then", s.NextNext)
	g.drawPreview(dst, x, row+2*step, "Hold", s.Hold)
}

// drawPreview draws a piece's local frame in half blocks under a label.
func (g *Game) drawPreview(dst *core.Screen, x, y int, label string, p *piece.Piece) {
	dst.DrawTextColored(x, y, label, colorLabel)
	if p == nil {
		dst.DrawTextColored(x+len(label)+1, y, "-", core.ColorGray)
		return
	}

	mask := p.Mask()
	color := g.paletteColor(p.Color())
	for r := 0; r < halfRows(p.Size); r++ {
		for col := 0; col < p.Size; col++ {
			top := mask[2*r][col]
			bottom := 2*r+1 < p.Size && mask[2*r+1][col]
			dst.SetCell(x+col, y+1+r, previewCell(top, bottom, color))
		}
	}
}

func previewCell(top, bottom bool, color core.Color) core.Cell {
	switch {
	case top && bottom:
		return core.Cell{Rune: upperHalf, Fg: color, Bg: color}
	case top:
		return core.Cell{Rune: upperHalf, Fg: color}
	case bottom:
		return core.Cell{Rune: lowerHalf, Fg: color}
	default:
		return core.Cell{Rune: ' '}
	}
}

// drawOverlay centers a small message panel over the field box.
func drawOverlay(dst *core.Screen, box core.Rect, fg core.Color, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w = min(w+4, box.W-2)
	h := len(lines) + 2
	cx, cy := box.Center()
	panel := core.NewRect(cx-w/2, cy-h/2, w, h)

	dst.FillRect(panel, core.Cell{Rune: ' ', Bg: core.ColorBlack})
	dst.DrawBoxColored(panel, fg)
	for i, l := range lines {
		lx := panel.X + (panel.W-len([]rune(l)))/2
		dst.DrawTextColored(lx, panel.Y+1+i, l, fg)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	lw, lh := layoutSize(g.cfg.Field.Width, g.cfg.Field.Height, g.cfg.Pieces.MaxSize)
	cy := dst.Height() / 2
	dst.DrawTextCentered(cy-1, "Window too small!")
	dst.DrawTextCentered(cy, fmt.Sprintf("Need %dx%d, have %dx%d", lw, lh, dst.Width(), dst.Height()))
}
