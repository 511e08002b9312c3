package shape

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/polytris/internal/field"
	"github.com/vovakirdan/polytris/internal/piece"
)

func newTestGenerator(seed int64) *Generator {
	return New(DefaultParams(), rand.New(rand.NewSource(seed)))
}

func TestGenerateInvariants(t *testing.T) {
	g := newTestGenerator(12345)

	for size := 4; size <= 8; size++ {
		lo, hi := FillRange(size)
		for i := 0; i < 40; i++ {
			p := g.Generate(size)

			require.Equal(t, size, p.Size)
			m := Mask(p.Mask())
			assert.True(t, Connected(m), "size %d piece not connected:\n%s", size, p)
			assert.False(t, HasHoles(m), "size %d piece has holes:\n%s", size, p)
			assert.GreaterOrEqual(t, len(p.Blocks), lo)
			assert.LessOrEqual(t, len(p.Blocks), hi)

			seen := make(map[piece.Coord]bool)
			for _, b := range p.Blocks {
				c := piece.Coord{X: b.X, Y: b.Y}
				assert.False(t, seen[c], "duplicate block %v", c)
				seen[c] = true
				assert.True(t, b.X >= 0 && b.X < size && b.Y >= 0 && b.Y < size)
				assert.Equal(t, p.Color(), b.Color, "blocks must share one color")
			}
			assert.Less(t, int(p.Color()), DefaultParams().PaletteSize)
		}
	}
	assert.Zero(t, g.Fallbacks(), "every piece should come from an accepted walk")
}

func TestGrowProducesValidShapes(t *testing.T) {
	g := newTestGenerator(1)

	for size := 4; size <= 8; size++ {
		_, hi := FillRange(size)
		accepted := 0
		distinct := make(map[string]bool)
		for i := 0; i < 2000; i++ {
			m := g.grow(size)
			filled := m.Count()
			require.GreaterOrEqual(t, filled, 1, "size %d walk left the frame empty", size)
			require.LessOrEqual(t, filled, hi, "size %d walk overshot the fill range", size)
			if Valid(m) {
				accepted++
				distinct[fmt.Sprint(m)] = true
			}
		}
		assert.Positive(t, accepted, "size %d: no walk passed validation", size)
		assert.Greater(t, len(distinct), 1, "size %d: accepted walks are all the same shape", size)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := newTestGenerator(99)
	b := newTestGenerator(99)

	for i := 0; i < 20; i++ {
		pa, pb := a.Next(), b.Next()
		assert.Equal(t, pa, pb)
	}
	assert.Zero(t, a.Fallbacks())
}

func TestGenerateFallback(t *testing.T) {
	p := DefaultParams()
	p.MaxAttempts = 0
	g := New(p, rand.New(rand.NewSource(1)))

	for size := 4; size <= 8; size++ {
		pc := g.Generate(size)
		assert.Equal(t, Fallback(size), Mask(pc.Mask()))
		assert.True(t, Valid(Mask(pc.Mask())), "fallback for size %d must be valid", size)
	}
	assert.Equal(t, 5, g.Fallbacks())
}

func TestPickSizeWeights(t *testing.T) {
	g := newTestGenerator(7)
	counts := make(map[int]int)

	for i := 0; i < 15000; i++ {
		size := g.PickSize()
		require.GreaterOrEqual(t, size, 4)
		require.LessOrEqual(t, size, 8)
		counts[size]++
	}

	// Expected ratio 5:4:3:2:1.
	for k := 4; k < 8; k++ {
		assert.Greater(t, counts[k], counts[k+1], "size %d should be more likely than %d", k, k+1)
	}
}

func TestPickSizeSingle(t *testing.T) {
	p := DefaultParams()
	p.MinSize, p.MaxSize = 6, 6
	g := New(p, rand.New(rand.NewSource(1)))

	for i := 0; i < 10; i++ {
		assert.Equal(t, 6, g.PickSize())
	}
}

func TestSpawnFitsEmptyField(t *testing.T) {
	g := newTestGenerator(2024)
	grid := field.Empty(20, 40)

	for size := 4; size <= 8; size++ {
		pos := SpawnPos(20, size)
		assert.Equal(t, piece.Coord{X: 10 - size/2, Y: 0}, pos)

		p := g.Generate(size).At(pos)
		assert.True(t, field.CanPlace(grid, p, 0, 0), "size %d spawn must fit", size)
	}
}

func TestNextAnchorsAtSpawn(t *testing.T) {
	g := newTestGenerator(5)

	for i := 0; i < 10; i++ {
		p := g.Next()
		assert.Equal(t, SpawnPos(20, p.Size), p.Pos)
	}
}
