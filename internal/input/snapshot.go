package input

// Source reports whether a binding is held this frame.
type Source interface {
	IsDown(b Binding) bool
}

// Snapshot is the held state of every binding for one frame. The zero value
// has nothing held.
type Snapshot struct {
	held [numBindings]bool
}

// NewSnapshot returns a snapshot with the given bindings held.
func NewSnapshot(held ...Binding) Snapshot {
	var s Snapshot
	for _, b := range held {
		s.Set(b, true)
	}
	return s
}

// Set marks b as held or released. Unknown bindings are ignored.
func (s *Snapshot) Set(b Binding, down bool) {
	if b.Valid() {
		s.held[b] = down
	}
}

// IsDown reports whether b is held. Unknown bindings are never held.
func (s Snapshot) IsDown(b Binding) bool {
	return b.Valid() && s.held[b]
}

// Any reports whether any binding is held.
func (s Snapshot) Any() bool {
	for _, h := range s.held {
		if h {
			return true
		}
	}
	return false
}

// Held lists the held bindings in declaration order.
func (s Snapshot) Held() []Binding {
	var out []Binding
	for i, h := range s.held {
		if h {
			out = append(out, Binding(i))
		}
	}
	return out
}
