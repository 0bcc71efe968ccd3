package core

// Action represents a semantic input, abstracted from physical keys and mouse buttons.
type Action int

const (
	ActionNone  Action = iota
	ActionLeft         // Left arrow, A - nudge the pointer left
	ActionRight        // Right arrow, D - nudge the pointer right
	ActionClick        // Mouse button, Space, Enter - start, restart or connect
	ActionQuit         // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionClick:
		return "Click"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the input delivered between two ticks.
// Pointer moves are absolute and only the latest one matters.
type InputFrame struct {
	Actions map[Action]bool

	PointerX   float64 // Latest pointer x in field coordinates
	HasPointer bool    // Whether PointerX was set this frame
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// MovePointer records an absolute pointer position in field coordinates.
func (f *InputFrame) MovePointer(x float64) {
	f.PointerX = x
	f.HasPointer = true
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.PointerX = 0
	f.HasPointer = false
}
