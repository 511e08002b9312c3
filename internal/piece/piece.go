// Package piece defines the polyomino value types shared by the shape
// generator, the field grid and the game engine.
package piece

import (
	"fmt"
	"sort"
	"strings"
)

// Coord is an integer position. Y increases downward.
type Coord struct {
	X int
	Y int
}

// Add returns c offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Block is one filled cell of a piece in the piece's local size×size frame.
type Block struct {
	X     int
	Y     int
	Color uint8 // Palette index
}

// Piece is a polyomino: a set of uniformly colored blocks inside a
// Size×Size bounding box, anchored at Pos in field coordinates.
//
// Pieces are values. Every transformation returns a new Piece with its own
// block slice, so a Piece held by one snapshot is never changed by another.
type Piece struct {
	Blocks []Block
	Size   int
	Pos    Coord
}

// Color returns the palette index shared by all blocks.
// Returns 0 for a piece without blocks.
func (p Piece) Color() uint8 {
	if len(p.Blocks) == 0 {
		return 0
	}
	return p.Blocks[0].Color
}

// Translate returns the piece moved by (dx, dy).
func (p Piece) Translate(dx, dy int) Piece {
	return Piece{
		Blocks: p.cloneBlocks(),
		Size:   p.Size,
		Pos:    p.Pos.Add(dx, dy),
	}
}

// At returns the piece re-anchored at pos with its blocks unchanged.
func (p Piece) At(pos Coord) Piece {
	return Piece{
		Blocks: p.cloneBlocks(),
		Size:   p.Size,
		Pos:    pos,
	}
}

// RotateCW returns the piece rotated a quarter turn clockwise about its
// local frame: (x, y) -> (size-1-y, x). The anchor is unchanged.
func (p Piece) RotateCW() Piece {
	blocks := make([]Block, len(p.Blocks))
	for i, b := range p.Blocks {
		blocks[i] = Block{X: p.Size - 1 - b.Y, Y: b.X, Color: b.Color}
	}
	return Piece{Blocks: blocks, Size: p.Size, Pos: p.Pos}
}

// RotateCCW returns the piece rotated a quarter turn counter-clockwise:
// (x, y) -> (y, size-1-x).
func (p Piece) RotateCCW() Piece {
	blocks := make([]Block, len(p.Blocks))
	for i, b := range p.Blocks {
		blocks[i] = Block{X: b.Y, Y: p.Size - 1 - b.X, Color: b.Color}
	}
	return Piece{Blocks: blocks, Size: p.Size, Pos: p.Pos}
}

// Cells returns the absolute field coordinates of every block.
func (p Piece) Cells() []Coord {
	cells := make([]Coord, len(p.Blocks))
	for i, b := range p.Blocks {
		cells[i] = Coord{X: p.Pos.X + b.X, Y: p.Pos.Y + b.Y}
	}
	return cells
}

// Local returns the local block coordinates in row-major order.
// Useful for comparing block sets regardless of slice order.
func (p Piece) Local() []Coord {
	coords := make([]Coord, len(p.Blocks))
	for i, b := range p.Blocks {
		coords[i] = Coord{X: b.X, Y: b.Y}
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
	return coords
}

// Mask returns the piece's local frame as a Size×Size occupancy matrix.
func (p Piece) Mask() [][]bool {
	mask := make([][]bool, p.Size)
	for y := range mask {
		mask[y] = make([]bool, p.Size)
	}
	for _, b := range p.Blocks {
		if b.X >= 0 && b.X < p.Size && b.Y >= 0 && b.Y < p.Size {
			mask[b.Y][b.X] = true
		}
	}
	return mask
}

// String draws the local frame with '#' for blocks and '.' for empty cells.
func (p Piece) String() string {
	var sb strings.Builder
	for y, row := range p.Mask() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, filled := range row {
			if filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// FromMask builds an unplaced piece from an occupancy matrix.
// All blocks get the given color; Size is the matrix height.
func FromMask(mask [][]bool, color uint8) Piece {
	var blocks []Block
	for y, row := range mask {
		for x, filled := range row {
			if filled {
				blocks = append(blocks, Block{X: x, Y: y, Color: color})
			}
		}
	}
	return Piece{Blocks: blocks, Size: len(mask)}
}

func (p Piece) cloneBlocks() []Block {
	if p.Blocks == nil {
		return nil
	}
	blocks := make([]Block, len(p.Blocks))
	copy(blocks, p.Blocks)
	return blocks
}
