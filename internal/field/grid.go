// Package field implements the playfield occupancy matrix and the placement,
// locking and line-clear primitives the engine is built on.
//
// Every operation that changes cells returns a new Grid; a Grid referenced by
// a published snapshot is never written to.
package field

import (
	"strings"

	"github.com/vovakirdan/polytris/internal/piece"
)

// Cell is a single field cell: empty, or occupied with a palette color.
type Cell struct {
	Filled bool  // Whether the cell is occupied
	Color  uint8 // Valid only when Filled is true
}

// Occupied returns a filled cell with the given palette index.
func Occupied(color uint8) Cell {
	return Cell{Filled: true, Color: color}
}

// Grid is HEIGHT rows of WIDTH cells. Row 0 is the top of the field.
type Grid [][]Cell

// Empty creates a w×h grid of empty cells.
func Empty(w, h int) Grid {
	g := make(Grid, h)
	for y := range g {
		g[y] = make([]Cell, w)
	}
	return g
}

// Width returns the number of columns.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return len(g)
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	for y, row := range g {
		c[y] = make([]Cell, len(row))
		copy(c[y], row)
	}
	return c
}

// At returns the cell at (x, y). Out-of-bounds coordinates read as empty.
func (g Grid) At(x, y int) Cell {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return Cell{}
	}
	return g[y][x]
}

// RowFull reports whether every cell in row y is occupied.
func (g Grid) RowFull(y int) bool {
	for _, c := range g[y] {
		if !c.Filled {
			return false
		}
	}
	return true
}

// FilledCount returns the number of occupied cells.
func (g Grid) FilledCount() int {
	n := 0
	for _, row := range g {
		for _, c := range row {
			if c.Filled {
				n++
			}
		}
	}
	return n
}

// CanPlace reports whether p, offset by (dx, dy), fits in the grid.
// Blocks must stay within [0, width) horizontally and above the floor.
// Blocks above the top edge (y < 0) are always allowed so pieces can
// overhang the visible field while spawning.
func CanPlace(g Grid, p piece.Piece, dx, dy int) bool {
	w, h := g.Width(), g.Height()
	for _, b := range p.Blocks {
		x := p.Pos.X + b.X + dx
		y := p.Pos.Y + b.Y + dy

		if x < 0 || x >= w || y >= h {
			return false
		}
		if y < 0 {
			continue
		}
		if g[y][x].Filled {
			return false
		}
	}
	return true
}

// Lock returns a copy of g with p's blocks written into it.
// Blocks above the top edge are dropped.
func Lock(g Grid, p piece.Piece) Grid {
	out := g.Clone()
	w, h := out.Width(), out.Height()
	for _, c := range p.Cells() {
		if c.Y < 0 || c.Y >= h || c.X < 0 || c.X >= w {
			continue
		}
		out[c.Y][c.X] = Occupied(p.Color())
	}
	return out
}

// ClearLines removes every complete row, keeping the rest in order, and
// refills the top with empty rows. Returns the new grid and the number of
// rows removed.
func ClearLines(g Grid) (Grid, int) {
	h, w := g.Height(), g.Width()
	kept := make(Grid, 0, h)
	for y := range g {
		if g.RowFull(y) {
			continue
		}
		row := make([]Cell, w)
		copy(row, g[y])
		kept = append(kept, row)
	}

	cleared := h - len(kept)
	out := make(Grid, 0, h)
	for range cleared {
		out = append(out, make([]Cell, w))
	}
	out = append(out, kept...)
	return out, cleared
}

// String renders the grid as ASCII ('#' filled, '.' empty), one line per row.
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.Height() * (g.Width() + 1))
	for y, row := range g {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			if c.Filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
