package headlessterm

import "fmt"

// ModifierState tracks which modifier keys are currently held, derived
// from Scan Code Set 1 make/break codes.
type ModifierState struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// scanCode is a Set-1 scancode with the release bit (0x80) stripped.
type scanCode byte

// Set-1 scancodes for the keys the encoder treats specially. Ordinary
// letters/digits live at 0x02-0x35 in the standard PC/AT layout; a US-QWERTY
// codepoint table covers those.
const (
	scLeftShift  scanCode = 0x2A
	scRightShift scanCode = 0x36
	scLeftCtrl   scanCode = 0x1D
	scLeftAlt    scanCode = 0x38
	scEnter      scanCode = 0x1C
	scBackspace  scanCode = 0x0E
	scTab        scanCode = 0x0F
	scEscape     scanCode = 0x01
	scUp         scanCode = 0x48
	scDown       scanCode = 0x50
	scLeft       scanCode = 0x4B
	scRight      scanCode = 0x4D
	scHome       scanCode = 0x47
	scEnd        scanCode = 0x4F
	scPageUp     scanCode = 0x49
	scPageDown   scanCode = 0x51
	scInsert     scanCode = 0x52
	scDelete     scanCode = 0x53
	scF1         scanCode = 0x3B
	scF8         scanCode = 0x42
)

// usQwertySet1 maps a Set-1 make-code to its unshifted/shifted rune pair
// for the ordinary alphanumeric and punctuation keys. Only entries needed
// to print a character are listed; navigation and modifier keys are
// handled separately in HandleKeyboard.
var usQwertySet1 = map[scanCode][2]rune{
	0x02: {'1', '!'}, 0x03: {'2', '@'}, 0x04: {'3', '#'}, 0x05: {'4', '$'},
	0x06: {'5', '%'}, 0x07: {'6', '^'}, 0x08: {'7', '&'}, 0x09: {'8', '*'},
	0x0A: {'9', '('}, 0x0B: {'0', ')'}, 0x0C: {'-', '_'}, 0x0D: {'=', '+'},
	0x10: {'q', 'Q'}, 0x11: {'w', 'W'}, 0x12: {'e', 'E'}, 0x13: {'r', 'R'},
	0x14: {'t', 'T'}, 0x15: {'y', 'Y'}, 0x16: {'u', 'U'}, 0x17: {'i', 'I'},
	0x18: {'o', 'O'}, 0x19: {'p', 'P'}, 0x1A: {'[', '{'}, 0x1B: {']', '}'},
	0x1E: {'a', 'A'}, 0x1F: {'s', 'S'}, 0x20: {'d', 'D'}, 0x21: {'f', 'F'},
	0x22: {'g', 'G'}, 0x23: {'h', 'H'}, 0x24: {'j', 'J'}, 0x25: {'k', 'K'},
	0x26: {'l', 'L'}, 0x27: {';', ':'}, 0x28: {'\'', '"'}, 0x29: {'`', '~'},
	0x2B: {'\\', '|'},
	0x2C: {'z', 'Z'}, 0x2D: {'x', 'X'}, 0x2E: {'c', 'C'}, 0x2F: {'v', 'V'},
	0x30: {'b', 'B'}, 0x31: {'n', 'N'}, 0x32: {'m', 'M'}, 0x33: {',', '<'},
	0x34: {'.', '>'}, 0x35: {'/', '?'},
	0x39: {' ', ' '},
}

// SetScrollSpeed sets how many lines Ctrl+Shift+Up/Down scroll the
// viewport, and Ctrl+Shift+PgUp/PgDn scroll by scrollSpeed*rows. Defaults
// to 1.
func (t *Terminal) SetScrollSpeed(lines int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if lines <= 0 {
		lines = 1
	}
	t.scrollSpeed = lines
}

// HandleKeyboard translates one Set-1 scancode byte into a PTY byte
// sequence, updates modifier tracking, intercepts the reserved shortcuts
// (Ctrl+Shift+F1..F8 theme select, Ctrl+Shift+Up/Down/PgUp/PgDn scroll),
// and writes everything else to the installed ResponseProvider (the PTY
// writer). Release codes (bit 0x80 set) only update modifier state; they
// never emit bytes.
func (t *Terminal) HandleKeyboard(code byte) {
	released := code&0x80 != 0
	sc := scanCode(code &^ 0x80)

	switch sc {
	case scLeftShift, scRightShift:
		t.encoderModifiers.Shift = !released
		return
	case scLeftCtrl:
		t.encoderModifiers.Ctrl = !released
		return
	case scLeftAlt:
		t.encoderModifiers.Alt = !released
		return
	}

	if released {
		return
	}

	mods := t.encoderModifiers

	if mods.Ctrl && mods.Shift {
		if data, handled := t.interceptShortcut(sc); handled {
			if data != nil {
				t.logf("intercepted shortcut for scancode 0x%02x, not forwarded to pty", code)
			}
			return
		}
	}

	data := t.encodeScanCode(sc, mods)
	if data == nil {
		return
	}
	t.writeResponseString(string(data))
}

// interceptShortcut handles the reserved Ctrl+Shift combinations that are
// consumed by the engine rather than forwarded to the PTY.
func (t *Terminal) interceptShortcut(sc scanCode) (data []byte, handled bool) {
	if sc >= scF1 && sc <= scF8 {
		t.SetColorScheme(int(sc - scF1))
		return nil, true
	}
	switch sc {
	case scUp:
		t.ScrollViewport(t.scrollSpeed)
		return nil, true
	case scDown:
		t.ScrollViewport(-t.scrollSpeed)
		return nil, true
	case scPageUp:
		t.ScrollViewport(t.scrollSpeed * t.rows)
		return nil, true
	case scPageDown:
		t.ScrollViewport(-t.scrollSpeed * t.rows)
		return nil, true
	}
	return nil, false
}

// encodeScanCode produces the ANSI byte sequence for a non-modifier,
// non-shortcut scancode, honoring DECCKM for the cursor keys.
func (t *Terminal) encodeScanCode(sc scanCode, mods ModifierState) []byte {
	appCursor := t.HasMode(ModeCursorKeys)

	switch sc {
	case scUp:
		if appCursor {
			return []byte("\x1bOA")
		}
		return []byte("\x1b[A")
	case scDown:
		if appCursor {
			return []byte("\x1bOB")
		}
		return []byte("\x1b[B")
	case scRight:
		if appCursor {
			return []byte("\x1bOC")
		}
		return []byte("\x1b[C")
	case scLeft:
		if appCursor {
			return []byte("\x1bOD")
		}
		return []byte("\x1b[D")
	case scHome:
		return []byte("\x1b[H")
	case scEnd:
		return []byte("\x1b[F")
	case scPageUp:
		return []byte("\x1b[5~")
	case scPageDown:
		return []byte("\x1b[6~")
	case scInsert:
		return []byte("\x1b[2~")
	case scDelete:
		return []byte("\x1b[3~")
	case scEnter:
		return []byte{'\r'}
	case scBackspace:
		return []byte{0x7f}
	case scTab:
		if mods.Shift {
			return []byte("\x1b[Z")
		}
		return []byte{'\t'}
	case scEscape:
		return []byte{0x1b}
	}

	if sc >= scF1 && sc <= scF8 {
		return fKeySequence(sc)
	}

	pair, ok := usQwertySet1[sc]
	if !ok {
		return nil
	}
	lower := pair[0]

	if mods.Ctrl && lower >= 'a' && lower <= 'z' {
		return []byte{byte(lower - 'a' + 1)}
	}
	if mods.Ctrl && lower == ' ' {
		return []byte{0}
	}

	ch := lower
	if mods.Shift {
		ch = pair[1]
	}

	if mods.Alt {
		return []byte{0x1b, byte(ch)}
	}

	return []byte(string(ch))
}

func fKeySequence(sc scanCode) []byte {
	switch sc {
	case 0x3B:
		return []byte("\x1bOP")
	case 0x3C:
		return []byte("\x1bOQ")
	case 0x3D:
		return []byte("\x1bOR")
	case 0x3E:
		return []byte("\x1bOS")
	case 0x3F:
		return []byte("\x1b[15~")
	case 0x40:
		return []byte("\x1b[17~")
	case 0x41:
		return []byte("\x1b[18~")
	case scF8:
		return []byte("\x1b[19~")
	}
	return nil
}

// --- Mouse encoding ---

// MouseButton identifies which physical button a mouse event concerns.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
)

// MouseEvent is one reportable mouse action.
type MouseEvent struct {
	Kind   MouseEventKind
	Button MouseButton
	X, Y   int // 0-based cell coordinates
	Lines  int // scroll delta, MouseScroll only
}

// MouseEventKind discriminates MouseEvent.Kind.
type MouseEventKind int

const (
	MouseMove MouseEventKind = iota
	MousePress
	MouseRelease
	MouseScroll
)

// MouseEncoder formats MouseEvent values as xterm mouse reports,
// honoring whichever reporting/encoding modes are currently active.
type MouseEncoder struct{}

// HandleMouse encodes event per the active mouse mode (X10/normal,
// button-event, any-event; SGR vs. legacy/UTF-8 coordinate encoding) and
// writes the report to the PTY writer. Events are silently dropped if no
// mouse reporting mode is enabled, matching xterm's behavior.
func (t *Terminal) HandleMouse(event MouseEvent) {
	if !t.HasMode(ModeReportMouseClicks) && !t.HasMode(ModeReportCellMouseMotion) && !t.HasMode(ModeReportAllMouseMotion) {
		return
	}
	if event.Kind == MouseMove && !t.HasMode(ModeReportCellMouseMotion) && !t.HasMode(ModeReportAllMouseMotion) {
		return
	}

	cb := mouseButtonCode(event)
	x, y := event.X+1, event.Y+1

	if t.HasMode(ModeSGRMouse) {
		final := byte('M')
		if event.Kind == MouseRelease {
			final = 'm'
		}
		t.writeResponseString(fmt.Sprintf("\x1b[<%d;%d;%d%c", cb, x, y, final))
		return
	}

	if event.Kind == MouseRelease {
		cb = 3
	}
	t.writeResponseString(fmt.Sprintf("\x1b[M%c%c%c", cb+32, x+32, y+32))
}

func mouseButtonCode(event MouseEvent) int {
	base := int(event.Button)
	switch event.Kind {
	case MouseScroll:
		if event.Lines < 0 {
			return 64
		}
		return 65
	case MouseMove:
		return base + 32
	default:
		return base
	}
}
