package input

import (
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Default key bindings: W/Up, S/Down, A, D, Q/Left, E/Right, Space.
var runeBindings = map[rune]Binding{
	'w': MoveForward,
	's': MoveBack,
	'a': StrafeLeft,
	'd': StrafeRight,
	'q': TurnLeft,
	'e': TurnRight,
	' ': Action,
}

var keyBindings = map[tcell.Key]Binding{
	tcell.KeyUp:    MoveForward,
	tcell.KeyDown:  MoveBack,
	tcell.KeyLeft:  TurnLeft,
	tcell.KeyRight: TurnRight,
}

// FromKeyEvent maps a tcell key event to a binding. quit is true for Esc and
// Ctrl-C.
func FromKeyEvent(ev *tcell.EventKey) (b Binding, ok, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, false, true
	case tcell.KeyRune:
		b, ok = runeBindings[unicode.ToLower(ev.Rune())]
		return b, ok, false
	}
	b, ok = keyBindings[ev.Key()]
	return b, ok, false
}

// ParseBytes converts raw terminal input into bindings, as read from an SSH
// channel. Handles the letter keys, arrow key escape sequences, Esc and
// Ctrl-C. quit is true for Ctrl-C or a chunk holding only Esc; bindings after
// Ctrl-C are dropped. Other escape sequences (Alt+key, function keys) are
// skipped, and modified arrows count as plain arrows.
func ParseBytes(data []byte) (bindings []Binding, quit bool) {
	if len(data) == 1 && data[0] == 0x1b {
		return nil, true
	}
	i := 0
	for i < len(data) {
		if data[i] == 0x1b {
			final, n := escapeSequence(data[i:])
			if b, ok := arrowBindings[final]; ok {
				bindings = append(bindings, b)
			}
			i += n
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if r == 3 { // Ctrl-C
			return bindings, true
		}
		if b, ok := runeBindings[unicode.ToLower(r)]; ok {
			bindings = append(bindings, b)
		}
		i += size
	}
	return bindings, false
}

// Final bytes of the cursor key sequences ESC [ A and ESC O A.
var arrowBindings = map[byte]Binding{
	'A': MoveForward,
	'B': MoveBack,
	'C': TurnRight,
	'D': TurnLeft,
}

// escapeSequence measures the escape sequence at the start of data, which
// begins with ESC. For CSI and SS3 sequences it returns the final byte; for
// anything else (Alt+key) final is 0. A sequence cut off by the end of data
// consumes the rest of it.
func escapeSequence(data []byte) (final byte, n int) {
	if len(data) < 2 {
		return 0, len(data)
	}
	switch data[1] {
	case '[':
		// Parameter and intermediate bytes run up to a final byte in 0x40..0x7e.
		for j := 2; j < len(data); j++ {
			if data[j] >= 0x40 && data[j] <= 0x7e {
				return data[j], j + 1
			}
			if data[j] < 0x20 || data[j] > 0x3f {
				return 0, j
			}
		}
		return 0, len(data)
	case 'O':
		if len(data) < 3 {
			return 0, len(data)
		}
		return data[2], 3
	case 0x1b:
		return 0, 1
	}
	_, size := utf8.DecodeRune(data[1:])
	return 0, 1 + size
}
