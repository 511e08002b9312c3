package engine

import (
	"github.com/vovakirdan/polytris/internal/field"
	"github.com/vovakirdan/polytris/internal/piece"
)

// Scoring constants.
const (
	PlacementBonus = 10
	LevelEveryN    = 3 // Lines cleared in one lock per level gained
)

// lineClearTable holds the base bonus for 0..4 lines cleared at once.
var lineClearTable = [...]int{0, 100, 400, 900, 1600}

// kickOffsets is the horizontal offset search order for rotations.
var kickOffsets = [...]int{0, 1, -1, 2, -2}

// Engine binds the field dimensions and the piece source. It holds no game
// state of its own; all state lives in the State values it transforms.
type Engine struct {
	width  int
	height int
	source PieceSource
}

// New creates an engine for a width×height field drawing pieces from src.
func New(width, height int, src PieceSource) *Engine {
	return &Engine{width: width, height: height, source: src}
}

// Width returns the field width.
func (e *Engine) Width() int { return e.width }

// Height returns the field height.
func (e *Engine) Height() int { return e.height }

// NewState creates the initial state: an empty field, three queued pieces,
// no hold, score 0 and level 1.
func (e *Engine) NewState() State {
	return State{
		Grid:     field.Empty(e.width, e.height),
		Active:   ptr(e.source.Next()),
		Next:     ptr(e.source.Next()),
		NextNext: ptr(e.source.Next()),
		Level:    1,
	}
}

// Reset discards the given state and returns a brand new one. It is
// accepted in every state, including game over.
func (e *Engine) Reset() State {
	return e.NewState()
}

// LineClearBonus returns the base bonus for clearing n lines at once,
// before the level multiplier.
func LineClearBonus(n int) int {
	if n < 0 {
		return 0
	}
	if n < len(lineClearTable) {
		return lineClearTable[n]
	}
	return n * 1000
}

// ScoreDelta returns the score earned by one lock clearing n lines at level.
func ScoreDelta(n, level int) int {
	return PlacementBonus + LineClearBonus(n)*level
}

// MoveLeft shifts the active piece one column left.
func (e *Engine) MoveLeft(s State) Result {
	return e.shift(s, -1)
}

// MoveRight shifts the active piece one column right.
func (e *Engine) MoveRight(s State) Result {
	return e.shift(s, 1)
}

func (e *Engine) shift(s State, dx int) Result {
	if !s.Running() || !field.CanPlace(s.Grid, *s.Active, dx, 0) {
		return unchanged(s)
	}
	s.Active = ptr(s.Active.Translate(dx, 0))
	return applied(s)
}

// MoveDown moves the active piece one row down, or locks it when it is
// resting on the floor or on the stack.
func (e *Engine) MoveDown(s State) Result {
	if !s.Running() {
		return unchanged(s)
	}
	if field.CanPlace(s.Grid, *s.Active, 0, 1) {
		s.Active = ptr(s.Active.Translate(0, 1))
		return applied(s)
	}
	return e.lockAndAdvance(s, 0)
}

// HardDrop drops the active piece to its resting row and locks it.
func (e *Engine) HardDrop(s State) Result {
	if !s.Running() {
		return unchanged(s)
	}
	dy := dropDistance(s.Grid, *s.Active)
	if dy > 0 {
		s.Active = ptr(s.Active.Translate(0, dy))
	}
	return e.lockAndAdvance(s, dy)
}

// RotateClockwise rotates the active piece a quarter turn clockwise, trying
// horizontal kicks of +1, -1, +2, -2 when the plain rotation is blocked.
func (e *Engine) RotateClockwise(s State) Result {
	if !s.Running() {
		return unchanged(s)
	}
	return rotate(s, s.Active.RotateCW())
}

// RotateCounterClockwise is RotateClockwise in the other direction.
func (e *Engine) RotateCounterClockwise(s State) Result {
	if !s.Running() {
		return unchanged(s)
	}
	return rotate(s, s.Active.RotateCCW())
}

func rotate(s State, rotated piece.Piece) Result {
	for _, dx := range kickOffsets {
		if field.CanPlace(s.Grid, rotated, dx, 0) {
			s.Active = ptr(rotated.Translate(dx, 0))
			return applied(s)
		}
	}
	return unchanged(s)
}

// Hold stores the active piece. With an empty hold slot the queue advances;
// otherwise the held piece is swapped in at the active piece's position,
// provided it fits there.
func (e *Engine) Hold(s State) Result {
	if !s.Running() {
		return unchanged(s)
	}

	if s.Hold != nil {
		candidate := s.Hold.At(s.Active.Pos)
		if !field.CanPlace(s.Grid, candidate, 0, 0) {
			return unchanged(s)
		}
		s.Hold, s.Active = s.Active, &candidate
		return applied(s)
	}

	s.Hold = s.Active
	s.Active, s.Next, s.NextNext = s.Next, s.NextNext, ptr(e.source.Next())
	return applied(s)
}

// TogglePause flips the paused flag. It has no guards; callers decide
// whether pausing makes sense after game over.
func (e *Engine) TogglePause(s State) Result {
	s.Paused = !s.Paused
	return applied(s)
}

// Ghost returns the active piece moved down to where a hard drop would put
// it. The second value is false when there is no active piece.
func (e *Engine) Ghost(s State) (piece.Piece, bool) {
	if s.Active == nil {
		return piece.Piece{}, false
	}
	return s.Active.Translate(0, dropDistance(s.Grid, *s.Active)), true
}

// lockAndAdvance writes the active piece into the grid, clears lines, scores
// and advances the piece queue.
func (e *Engine) lockAndAdvance(s State, dropped int) Result {
	grid := field.Lock(s.Grid, *s.Active)
	grid, lines := field.ClearLines(grid)

	ev := &LockEvent{
		LinesCleared: lines,
		ScoreDelta:   ScoreDelta(lines, s.Level),
		PrevLevel:    s.Level,
		Dropped:      dropped,
	}

	s.Grid = grid
	s.Score += ev.ScoreDelta
	s.Lines += lines
	s.Level += lines / LevelEveryN
	ev.Level = s.Level

	s.Active, s.Next, s.NextNext = s.Next, s.NextNext, ptr(e.source.Next())
	if s.Active == nil || !field.CanPlace(grid, *s.Active, 0, 0) {
		s.GameOver = true
		ev.GameOver = true
	}

	return Result{State: s, Applied: true, Lock: ev}
}

// dropDistance returns how many rows p can fall before resting.
func dropDistance(g field.Grid, p piece.Piece) int {
	if len(p.Blocks) == 0 {
		return 0
	}
	dy := 0
	for field.CanPlace(g, p, 0, dy+1) {
		dy++
	}
	return dy
}
