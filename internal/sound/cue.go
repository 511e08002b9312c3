// Package sound turns engine results into audio cues and plays them.
package sound

import (
	"fmt"

	"github.com/vovakirdan/polytris/internal/engine"
)

// Kind identifies a cue.
type Kind int

const (
	KindMove Kind = iota
	KindDrop
	KindLock
	KindClear
	KindLevelUp
	KindGameOver
	KindError
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindDrop:
		return "drop"
	case KindLock:
		return "lock"
	case KindClear:
		return "clear"
	case KindLevelUp:
		return "levelup"
	case KindGameOver:
		return "gameover"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Cue is one sound to play. Lines is set for KindClear only.
type Cue struct {
	Kind  Kind
	Lines int
}

func (c Cue) String() string {
	if c.Kind == KindClear {
		return fmt.Sprintf("clear(%d)", c.Lines)
	}
	return c.Kind.String()
}

// Loudness returns the relative loudness of the cue in (0, 1].
// Chords for bigger clears are louder.
func (c Cue) Loudness() float64 {
	switch c.Kind {
	case KindMove:
		return 0.1
	case KindDrop:
		return 0.4
	case KindLock:
		return 0.3
	case KindError:
		return 0.5
	case KindClear:
		return min(0.5+0.1*float64(c.Lines), 0.9)
	case KindLevelUp:
		return 0.9
	case KindGameOver:
		return 1
	default:
		return 0
	}
}

// Op is the kind of engine call that produced a result.
type Op int

const (
	OpGravity Op = iota // Clock-driven fall, never cues by itself
	OpMove              // Left, right or soft drop
	OpRotate
	OpHardDrop
	OpHold
)

// Select chooses the cues for one engine call. Applied moves and rotations
// get a move cue; a rejected hold gets an error cue. Lock events are read
// directly from the result, so the number of cleared lines never has to be
// guessed from the score.
func Select(op Op, res engine.Result) []Cue {
	var cues []Cue

	switch op {
	case OpMove, OpRotate:
		if res.Applied && res.Lock == nil {
			cues = append(cues, Cue{Kind: KindMove})
		}
	case OpHardDrop:
		if res.Applied {
			cues = append(cues, Cue{Kind: KindDrop})
		}
	case OpHold:
		if res.Applied {
			cues = append(cues, Cue{Kind: KindMove})
		} else if res.State.Running() {
			cues = append(cues, Cue{Kind: KindError})
		}
	}

	ev := res.Lock
	if ev == nil {
		return cues
	}

	if ev.LinesCleared > 0 {
		cues = append(cues, Cue{Kind: KindClear, Lines: ev.LinesCleared})
	}
	cues = append(cues, Cue{Kind: KindLock})
	if ev.LeveledUp() {
		cues = append(cues, Cue{Kind: KindLevelUp})
	}
	if ev.GameOver {
		cues = append(cues, Cue{Kind: KindGameOver})
	}
	return cues
}
