package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/polytris/internal/piece"
)

const (
	testW = 20
	testH = 40
)

func square(size int, color uint8) piece.Piece {
	mask := make([][]bool, size)
	for y := range mask {
		mask[y] = make([]bool, size)
	}
	mask[0][0], mask[0][1], mask[1][0], mask[1][1] = true, true, true, true
	return piece.FromMask(mask, color)
}

func TestEmpty(t *testing.T) {
	g := Empty(testW, testH)

	assert.Equal(t, testW, g.Width())
	assert.Equal(t, testH, g.Height())
	assert.Zero(t, g.FilledCount())
}

func TestCanPlaceBounds(t *testing.T) {
	g := Empty(testW, testH)
	p := square(4, 1)

	tests := []struct {
		name     string
		pos      piece.Coord
		expected bool
	}{
		{"inside", piece.Coord{X: 5, Y: 5}, true},
		{"left wall", piece.Coord{X: -1, Y: 5}, false},
		{"touching left wall", piece.Coord{X: 0, Y: 5}, true},
		{"right wall", piece.Coord{X: testW - 1, Y: 5}, false},
		{"touching right wall", piece.Coord{X: testW - 2, Y: 5}, true},
		{"below floor", piece.Coord{X: 5, Y: testH - 1}, false},
		{"resting on floor", piece.Coord{X: 5, Y: testH - 2}, true},
		{"overhang above top", piece.Coord{X: 5, Y: -3}, true},
		{"partially above top", piece.Coord{X: 5, Y: -1}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CanPlace(g, p.At(tc.pos), 0, 0))
		})
	}
}

func TestCanPlaceOccupied(t *testing.T) {
	g := Empty(testW, testH)
	g[10][6] = Occupied(2)
	p := square(4, 1).At(piece.Coord{X: 5, Y: 9})

	assert.False(t, CanPlace(g, p, 0, 0))
	assert.True(t, CanPlace(g, p, 2, 0))
	assert.False(t, CanPlace(g, p, 0, 0), "probe must not modify grid")
}

func TestCanPlaceOffsetEqualsTranslate(t *testing.T) {
	g := Empty(testW, testH)
	g[39][0] = Occupied(1)
	g[20][10] = Occupied(1)
	g[21][11] = Occupied(1)
	p := square(5, 3).At(piece.Coord{X: 8, Y: 18})

	for dx := -10; dx <= 12; dx++ {
		for dy := -20; dy <= 22; dy++ {
			want := CanPlace(g, p.Translate(dx, dy), 0, 0)
			got := CanPlace(g, p, dx, dy)
			if got != want {
				t.Fatalf("CanPlace offset (%d,%d) = %v, translated = %v", dx, dy, got, want)
			}
		}
	}
}

func TestLock(t *testing.T) {
	g := Empty(testW, testH)
	p := square(4, 7).At(piece.Coord{X: 3, Y: -1})

	locked := Lock(g, p)

	assert.Zero(t, g.FilledCount(), "source grid must be untouched")
	assert.Equal(t, 2, locked.FilledCount(), "blocks above the top edge are skipped")
	assert.Equal(t, Occupied(7), locked.At(3, 0))
	assert.Equal(t, Occupied(7), locked.At(4, 0))
}

func TestClearLinesBottomRow(t *testing.T) {
	g := Empty(testW, testH)
	for x := range testW {
		if x != 4 && x != 5 {
			g[testH-1][x] = Occupied(1)
		}
	}
	g[testH-2][0] = Occupied(5)
	g[testH-2][7] = Occupied(6)
	secondFromBottom := append([]Cell(nil), g[testH-2]...)

	// A horizontal domino that fills the gap in the bottom row.
	domino := piece.FromMask([][]bool{
		{true, true, false, false},
		{false, false, false, false},
		{false, false, false, false},
		{false, false, false, false},
	}, 2).At(piece.Coord{X: 4, Y: testH - 1})
	require.True(t, CanPlace(g, domino, 0, 0))

	cleared, n := ClearLines(Lock(g, domino))

	assert.Equal(t, 1, n)
	assert.Equal(t, testH, cleared.Height())
	assert.Equal(t, secondFromBottom, []Cell(cleared[testH-1]))
	for x := range testW {
		assert.False(t, cleared[0][x].Filled, "new top row must be empty")
	}
}

func TestClearLinesMultiple(t *testing.T) {
	g := Empty(4, 5)
	for x := range 4 {
		g[1][x] = Occupied(1)
		g[3][x] = Occupied(1)
	}
	g[2][1] = Occupied(3)
	g[4][2] = Occupied(4)

	out, n := ClearLines(g)

	assert.Equal(t, 2, n)
	assert.Equal(t, "....\n....\n....\n.#..\n..#.", out.String())
	assert.Equal(t, Occupied(3), out.At(1, 3))
}

func TestClearLinesNone(t *testing.T) {
	g := Empty(4, 4)
	g[3][0] = Occupied(1)

	out, n := ClearLines(g)

	assert.Zero(t, n)
	assert.Equal(t, g.String(), out.String())
}
