// Package engine implements the game rules as pure transitions over an
// immutable State snapshot.
//
// Every operation takes the current State and returns a Result. A blocked or
// meaningless operation (moving into a wall, rotating with no free kick,
// swapping hold into an occupied spot) returns Applied=false together with
// the unchanged input, so callers never need to compare snapshots to learn
// whether something happened.
package engine

import (
	"github.com/vovakirdan/polytris/internal/field"
	"github.com/vovakirdan/polytris/internal/piece"
)

// State is one snapshot of a game. Snapshots are never modified after they
// are returned; transitions build a new State that may share unchanged
// pieces and grids with the previous one.
type State struct {
	Grid     field.Grid
	Active   *piece.Piece // nil only after game over
	Next     *piece.Piece
	NextNext *piece.Piece
	Hold     *piece.Piece // nil until the first hold

	Score int
	Level int // Starts at 1, never decreases
	Lines int // Total lines cleared

	GameOver bool
	Paused   bool
}

// Running reports whether moves are currently accepted.
func (s State) Running() bool {
	return s.Active != nil && !s.GameOver && !s.Paused
}

// LockEvent describes one lock-and-advance step.
type LockEvent struct {
	LinesCleared int
	ScoreDelta   int
	PrevLevel    int
	Level        int
	GameOver     bool // Set when the new active piece could not spawn
	Dropped      int  // Rows fallen during a hard drop
}

// LeveledUp reports whether the lock raised the level.
func (e LockEvent) LeveledUp() bool {
	return e.Level > e.PrevLevel
}

// Result is the outcome of a transition.
type Result struct {
	State   State
	Applied bool
	Lock    *LockEvent // Non-nil when the active piece was locked
}

// Unchanged reports whether the operation was rejected.
func (r Result) Unchanged() bool {
	return !r.Applied
}

// PieceSource supplies freshly generated pieces already anchored at their
// spawn position.
type PieceSource interface {
	Next() piece.Piece
}

func unchanged(s State) Result {
	return Result{State: s}
}

func applied(s State) Result {
	return Result{State: s, Applied: true}
}

func ptr(p piece.Piece) *piece.Piece {
	return &p
}
