package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // h, a, Left arrow - move the drop cursor left
	ActionRight          // l, d, Right arrow - move the drop cursor right
	ActionDrop           // Space, Enter, Down - drop at the cursor
	ActionColumn         // 1-9, mouse click - drop into Input.Column
	ActionRestart        // R - start a new game
	ActionHelp           // ? - toggle the key help
	ActionQuit           // Q, Ctrl+C - exit
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
	case ActionDrop:
		return "Drop"
	case ActionColumn:
		return "Column"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is one input event.
type Input struct {
	Action Action
	// Column is the zero-based target of ActionColumn, -1 otherwise.
	Column int
}

// InputFrame collects the input received between two ticks, in arrival
// order. Games apply every entry in turn.
type InputFrame struct {
	Inputs []Input
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Push appends an action.
func (f *InputFrame) Push(a Action) {
	f.Inputs = append(f.Inputs, Input{Action: a, Column: -1})
}

// PushColumn appends a direct column choice (digit key or mouse click).
func (f *InputFrame) PushColumn(col int) {
	f.Inputs = append(f.Inputs, Input{Action: ActionColumn, Column: col})
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, in := range f.Inputs {
		if in.Action == a {
			return true
		}
	}
	return false
}

// Len returns the number of queued inputs.
func (f InputFrame) Len() int {
	return len(f.Inputs)
}

// Empty reports whether nothing was triggered this frame.
func (f InputFrame) Empty() bool {
	return len(f.Inputs) == 0
}

// Clear resets all input for the next frame, keeping the backing array.
func (f *InputFrame) Clear() {
	f.Inputs = f.Inputs[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	if f.Inputs == nil {
		return InputFrame{}
	}
	return InputFrame{Inputs: append([]Input(nil), f.Inputs...)}
}
