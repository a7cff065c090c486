// Package input turns key presses into a per-frame snapshot of held actions.
package input

// Binding is a named player action.
type Binding int

const (
	MoveForward Binding = iota
	MoveBack
	StrafeLeft
	StrafeRight
	TurnLeft
	TurnRight
	Action

	numBindings
)

var bindingNames = [numBindings]string{
	MoveForward: "MoveForward",
	MoveBack:    "MoveBack",
	StrafeLeft:  "StrafeLeft",
	StrafeRight: "StrafeRight",
	TurnLeft:    "TurnLeft",
	TurnRight:   "TurnRight",
	Action:      "Action",
}

// AllBindings lists every binding in declaration order.
func AllBindings() []Binding {
	out := make([]Binding, numBindings)
	for i := range out {
		out[i] = Binding(i)
	}
	return out
}

// Valid reports whether b is one of the declared bindings.
func (b Binding) Valid() bool {
	return b >= 0 && b < numBindings
}

// String returns the binding name.
func (b Binding) String() string {
	if !b.Valid() {
		return "Unknown"
	}
	return bindingNames[b]
}

// ParseBinding looks a binding up by name.
func ParseBinding(name string) (Binding, bool) {
	for i, n := range bindingNames {
		if n == name {
			return Binding(i), true
		}
	}
	return 0, false
}
