// Package shape synthesizes random polyominoes for the game.
//
// A shape is grown by a biased random walk inside an n×n frame, then checked
// with two flood fills (connectivity and no enclosed holes). Rejected shapes
// are thrown away and regrown from a fresh seed; after MaxAttempts rejections
// a deterministic fallback shape is used instead.
package shape

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/polytris/internal/piece"
)

// Params configures the generator.
type Params struct {
	MinSize     int // Smallest bounding box side
	MaxSize     int // Largest bounding box side
	FieldWidth  int // Used to compute the spawn anchor
	PaletteSize int // Number of palette colors to draw from
	MaxAttempts int // Regrow budget per piece before falling back; 0 always falls back

	RecentWindow int     // Number of most recently added cells treated as "recent"
	RecentBias   float64 // Probability of growing from a recent cell
	MomentumBias float64 // Probability of reusing the last successful direction
	BranchChance float64 // Probability of an extra adjacent cell after a step
	WalkBudget   int     // Walk attempts per target cell
}

// DefaultParams returns the standard generator tuning for a 20-wide field.
func DefaultParams() Params {
	return Params{
		MinSize:      4,
		MaxSize:      8,
		FieldWidth:   20,
		PaletteSize:  12,
		MaxAttempts:  2000,
		RecentWindow: 3,
		RecentBias:   0.8,
		MomentumBias: 0.6,
		BranchChance: 0.1,
		WalkBudget:   10,
	}
}

// stepCumulative holds cumulative probabilities for step lengths 1..4.
var stepCumulative = [4]float64{0.3, 0.6, 0.85, 1.0}

// Generator produces validated pieces. Not safe for concurrent use.
type Generator struct {
	p         Params
	rng       *rand.Rand
	logger    *log.Logger
	fallbacks int
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used to report fallback shapes.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// New creates a generator drawing randomness from rng.
func New(p Params, rng *rand.Rand, opts ...Option) *Generator {
	if p.PaletteSize <= 0 {
		p.PaletteSize = 1
	}
	if p.RecentWindow <= 0 {
		p.RecentWindow = 1
	}
	if p.WalkBudget <= 0 {
		p.WalkBudget = 1
	}
	if p.MaxAttempts < 0 {
		p.MaxAttempts = 0
	}
	g := &Generator{p: p, rng: rng}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fallbacks returns how many pieces were produced by the fallback shape.
func (g *Generator) Fallbacks() int {
	return g.fallbacks
}

// Next picks a size, generates a piece and anchors it at the spawn position.
func (g *Generator) Next() piece.Piece {
	size := g.PickSize()
	p := g.Generate(size)
	return p.At(SpawnPos(g.p.FieldWidth, size))
}

// PickSize draws a bounding box size from [MinSize, MaxSize] with weight
// (MaxSize-MinSize+1) - (k-MinSize), so smaller sizes are more likely.
func (g *Generator) PickSize() int {
	lo, hi := g.p.MinSize, g.p.MaxSize
	if hi <= lo {
		return lo
	}
	span := hi - lo + 1
	total := span * (span + 1) / 2

	r := g.rng.Intn(total)
	for k := lo; k <= hi; k++ {
		r -= span - (k - lo)
		if r < 0 {
			return k
		}
	}
	return hi
}

// Generate returns an unplaced piece with a size×size frame. The result is
// always one connected component with no holes and a filled count inside
// FillRange(size).
func (g *Generator) Generate(size int) piece.Piece {
	if size < 1 {
		size = 1
	}

	for range g.p.MaxAttempts {
		m := g.grow(size)
		if Valid(m) {
			return g.finish(m)
		}
	}

	g.fallbacks++
	if g.logger != nil {
		g.logger.Warn("shape generation exhausted attempts, using fallback",
			"size", size,
			"attempts", g.p.MaxAttempts,
		)
	}
	return g.finish(Fallback(size))
}

// finish colors the mask with one palette entry.
func (g *Generator) finish(m Mask) piece.Piece {
	color := uint8(g.rng.Intn(g.p.PaletteSize))
	return piece.FromMask(m, color)
}

// grow runs one random walk and returns the resulting mask, valid or not.
func (g *Generator) grow(size int) Mask {
	m := NewMask(size)
	lo, hi := FillRange(size)
	target := lo + g.rng.Intn(hi-lo+1)

	x, y := g.rng.Intn(size), g.rng.Intn(size)
	m[y][x] = true
	cells := []cell{{x, y}}
	lastDir := -1

	budget := target * g.p.WalkBudget
	for attempts := 0; len(cells) < target && attempts < budget; attempts++ {
		from := g.pickFrontier(cells)

		dir := lastDir
		if dir < 0 || g.rng.Float64() >= g.p.MomentumBias {
			dir = g.rng.Intn(len(neighbors))
		}
		step := g.stepLength()

		nx := from.x + neighbors[dir].x*step
		ny := from.y + neighbors[dir].y*step
		if !inFrame(size, nx, ny) || m[ny][nx] {
			lastDir = -1
			continue
		}

		m[ny][nx] = true
		cells = append(cells, cell{nx, ny})
		lastDir = dir

		if g.rng.Float64() < g.p.BranchChance && len(cells) < target {
			b := neighbors[g.rng.Intn(len(neighbors))]
			bx, by := nx+b.x, ny+b.y
			if inFrame(size, bx, by) && !m[by][bx] {
				m[by][bx] = true
				cells = append(cells, cell{bx, by})
			}
		}
	}
	return m
}

// pickFrontier chooses the cell to grow from: usually one of the last few
// added, otherwise any filled cell.
func (g *Generator) pickFrontier(cells []cell) cell {
	if g.rng.Float64() < g.p.RecentBias {
		idx := len(cells) - 1 - g.rng.Intn(g.p.RecentWindow)
		if idx < 0 {
			idx = 0
		}
		return cells[idx]
	}
	return cells[g.rng.Intn(len(cells))]
}

func (g *Generator) stepLength() int {
	r := g.rng.Float64()
	for i, c := range stepCumulative {
		if r < c {
			return i + 1
		}
	}
	return len(stepCumulative)
}

func inFrame(size, x, y int) bool {
	return x >= 0 && y >= 0 && x < size && y < size
}

// SpawnPos returns the spawn anchor for a piece of the given size:
// horizontally centered, top row.
func SpawnPos(fieldWidth, size int) piece.Coord {
	return piece.Coord{X: fieldWidth/2 - size/2, Y: 0}
}
