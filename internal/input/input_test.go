package input

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestSnapshotDefaultsToReleased(t *testing.T) {
	var s Snapshot
	for _, b := range AllBindings() {
		if s.IsDown(b) {
			t.Errorf("%v held in zero snapshot", b)
		}
	}
	if s.Any() {
		t.Error("zero snapshot reports Any")
	}
	if s.IsDown(Binding(99)) || s.IsDown(Binding(-1)) {
		t.Error("unknown bindings must read as released")
	}
}

func TestSnapshotSet(t *testing.T) {
	s := NewSnapshot(TurnLeft, MoveForward)
	if !s.IsDown(TurnLeft) || !s.IsDown(MoveForward) || s.IsDown(MoveBack) {
		t.Errorf("held = %v", s.Held())
	}
	s.Set(TurnLeft, false)
	s.Set(Binding(42), true) // ignored
	if got, want := s.Held(), []Binding{MoveForward}; !reflect.DeepEqual(got, want) {
		t.Errorf("Held = %v, want %v", got, want)
	}
}

func TestBindingNames(t *testing.T) {
	for _, b := range AllBindings() {
		got, ok := ParseBinding(b.String())
		if !ok || got != b {
			t.Errorf("ParseBinding(%q) = %v,%v", b.String(), got, ok)
		}
	}
	if _, ok := ParseBinding("Jump"); ok {
		t.Error("ParseBinding accepted an unknown name")
	}
	if Binding(77).String() != "Unknown" {
		t.Error("invalid binding should stringify as Unknown")
	}
	if len(AllBindings()) != 7 {
		t.Errorf("expected 7 bindings, got %d", len(AllBindings()))
	}
}

func TestHoldTracker(t *testing.T) {
	h := NewHoldTracker(2)
	h.Press(MoveForward)

	if s := h.Frame(); !s.IsDown(MoveForward) {
		t.Fatal("press not held on first frame")
	}
	if s := h.Frame(); !s.IsDown(MoveForward) {
		t.Fatal("press not held on second frame")
	}
	if s := h.Frame(); s.IsDown(MoveForward) {
		t.Fatal("press still held after hold window")
	}

	h.Press(TurnLeft)
	h.Frame()
	h.Press(TurnLeft) // key repeat extends the hold
	h.Frame()
	if s := h.Frame(); !s.IsDown(TurnLeft) {
		t.Error("repeat press should extend the hold")
	}

	h.Press(StrafeLeft)
	h.Release(StrafeLeft)
	if h.Frame().IsDown(StrafeLeft) {
		t.Error("released binding still held")
	}

	h.Press(Action)
	h.Reset()
	if h.Frame().Any() {
		t.Error("Reset left bindings held")
	}
}

func TestHoldTrackerMinimumFrames(t *testing.T) {
	h := NewHoldTracker(0)
	h.Press(Action)
	if !h.Frame().IsDown(Action) {
		t.Error("a press must be held for at least one frame")
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Binding
		quit bool
	}{
		{"letters", "wasdqe ", []Binding{MoveForward, StrafeLeft, MoveBack, StrafeRight, TurnLeft, TurnRight, Action}, false},
		{"upper case", "WD", []Binding{MoveForward, StrafeRight}, false},
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Binding{MoveForward, MoveBack, TurnRight, TurnLeft}, false},
		{"application arrows", "\x1bOA", []Binding{MoveForward}, false},
		{"ctrl-c", "w\x03s", []Binding{MoveForward}, true},
		{"lone esc", "\x1b", nil, true},
		{"unmapped", "xyz1", nil, false},
		{"alt+w is not quit", "\x1bw", nil, false},
		{"esc inside a chunk", "w\x1b", []Binding{MoveForward}, false},
		{"split arrow head", "\x1b[", nil, false},
		{"shift+up", "\x1b[1;2A", []Binding{MoveForward}, false},
		{"ctrl+left then d", "\x1b[1;5Dd", []Binding{TurnLeft, StrafeRight}, false},
		{"function key skipped", "\x1b[15~s", []Binding{MoveBack}, false},
		{"double esc", "\x1b\x1b", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := ParseBytes([]byte(tt.in))
			if !reflect.DeepEqual(got, tt.want) || quit != tt.quit {
				t.Errorf("ParseBytes(%q) = %v,%v want %v,%v", tt.in, got, quit, tt.want, tt.quit)
			}
		})
	}
}

func TestFromKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Binding
		ok   bool
		quit bool
	}{
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), MoveForward, true, false},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), TurnLeft, true, false},
		{"rune e", tcell.NewEventKey(tcell.KeyRune, 'E', tcell.ModNone), TurnRight, true, false},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), Action, true, false},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), 0, false, true},
		{"unmapped", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok, quit := FromKeyEvent(tt.ev)
			if ok != tt.ok || quit != tt.quit || (ok && b != tt.want) {
				t.Errorf("FromKeyEvent = %v,%v,%v want %v,%v,%v", b, ok, quit, tt.want, tt.ok, tt.quit)
			}
		})
	}
}
