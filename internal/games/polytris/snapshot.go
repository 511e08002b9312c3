package polytris

import (
	"time"

	"github.com/vovakirdan/polytris/internal/engine"
	"github.com/vovakirdan/polytris/internal/piece"
)

// Snapshot is a read-only view of the game for renderers and tests.
// The engine state inside is immutable; holding on to it is safe.
type Snapshot struct {
	Tick  uint64
	State engine.State
	Ghost *piece.Piece // nil when there is no active piece

	GravityEpoch    uint64        // 0 while no clock runs
	GravityInterval time.Duration // 0 while no clock runs
	Fallbacks       int           // Pieces produced by the fallback shape
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:  g.tick,
		State: g.state,
	}
	if g.eng != nil {
		if ghost, ok := g.eng.Ghost(g.state); ok {
			snap.Ghost = &ghost
		}
	}
	if g.gravity != nil {
		snap.GravityEpoch = g.gravity.epoch
		snap.GravityInterval = g.gravity.interval
	}
	if g.gen != nil {
		snap.Fallbacks = g.gen.Fallbacks()
	}
	return snap
}
