package headlessterm

import "testing"

func TestScrollViewportClampedToScrollbackLen(t *testing.T) {
	term := New(nil, WithSize(3, 10), WithScrollback(NewMemoryScrollback(100)))

	for i := 0; i < 10; i++ {
		term.WriteString("line\r\n")
	}

	max := term.primaryBuffer.ScrollbackLen()

	term.ScrollViewport(max + 50)
	if term.scrollViewOffset != max {
		t.Errorf("expected offset clamped to %d, got %d", max, term.scrollViewOffset)
	}

	term.ScrollViewport(-(max + 50))
	if term.scrollViewOffset != 0 {
		t.Errorf("expected offset clamped to 0, got %d", term.scrollViewOffset)
	}
}

func TestScrollViewportMarksBufferDirty(t *testing.T) {
	term := New(nil, WithSize(3, 10), WithScrollback(NewMemoryScrollback(100)))
	term.WriteString("line\r\n")
	term.activeBuffer.ClearAllDirty()

	term.ScrollViewport(1)

	if !term.activeBuffer.HasDirty() {
		t.Errorf("expected ScrollViewport to mark the buffer dirty for repaint")
	}
}
