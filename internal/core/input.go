package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // ←, A - move left
	ActionRight            // →, D - move right
	ActionDown             // ↓, S - soft drop one row
	ActionDrop             // Space, ↑, W - hard drop
	ActionRotateCW         // X - rotate clockwise
	ActionRotateCCW        // Z - rotate counter-clockwise
	ActionHold             // C, Shift+Tab - hold piece
	ActionPause            // P, Escape - pause/unpause game
	ActionRestart          // R - restart, also after game over
	ActionQuit             // Q, Ctrl+C - exit
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionDown:      "Down",
	ActionDrop:      "Drop",
	ActionRotateCW:  "RotateCW",
	ActionRotateCCW: "RotateCCW",
	ActionHold:      "Hold",
	ActionPause:     "Pause",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame holds the actions triggered during one simulation tick, in the
// order they arrived. Order matters for a falling-piece game: "rotate then
// drop" and "drop then rotate" land differently.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{}
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set appends an action to this frame. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Actions returns the triggered actions in arrival order.
func (f InputFrame) Actions() []Action {
	return f.actions
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
}
