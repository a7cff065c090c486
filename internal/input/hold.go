package input

// HoldTracker converts discrete key presses into held state. Terminals send
// no key-up events, only auto-repeat presses, so a binding counts as held for
// a fixed number of frames after its most recent press.
type HoldTracker struct {
	frames    int
	remaining [numBindings]int
}

// NewHoldTracker creates a tracker that holds each press for frames frames.
// Values below 1 are treated as 1.
func NewHoldTracker(frames int) *HoldTracker {
	return &HoldTracker{frames: max(frames, 1)}
}

// Press records a press of b. Unknown bindings are ignored.
func (h *HoldTracker) Press(b Binding) {
	if b.Valid() {
		h.remaining[b] = h.frames
	}
}

// Release clears b immediately.
func (h *HoldTracker) Release(b Binding) {
	if b.Valid() {
		h.remaining[b] = 0
	}
}

// Reset releases everything.
func (h *HoldTracker) Reset() {
	h.remaining = [numBindings]int{}
}

// Frame returns the held state for the current frame and ages every press by
// one frame.
func (h *HoldTracker) Frame() Snapshot {
	var s Snapshot
	for i := range h.remaining {
		if h.remaining[i] > 0 {
			s.held[i] = true
			h.remaining[i]--
		}
	}
	return s
}
