package headlessterm

import "image/color"

// DrawTarget is the pixel surface the Renderer composites onto: a frame
// buffer, a GPU texture upload target, an image.RGBA, whatever the host
// process backs it with. Size is queried once per Flush so a host can
// resize its backing surface out from under the engine between flushes.
type DrawTarget interface {
	// Size returns the target's pixel dimensions.
	Size() (width, height int)

	// DrawPixel sets the color of one pixel. The Renderer only passes
	// coordinates inside the bounds reported by Size.
	DrawPixel(x, y int, c color.RGBA)
}

// SetFontManager installs the FontManager used to rasterize glyphs and
// resets the glyph cache, since previously cached rasterizations were
// produced by a different manager (or none) and are no longer valid.
//
// The first time a FontManager is installed against a display supplied to
// New, cell dimensions are computed once — rows/cols := display pixel
// size / (advance, line-height) — and locked for the engine's lifetime
// (see Resize). Installing a different FontManager later only resets the
// glyph cache and marks a full repaint; it does not re-derive the grid
// size, matching the spec's "a new engine must be constructed" rule for
// display-size changes.
func (t *Terminal) SetFontManager(fm FontManager) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fontManager = fm
	if t.glyphCache == nil {
		t.glyphCache = NewGlyphCache(0)
	} else {
		t.glyphCache.Reset()
	}

	if t.drawTarget != nil && !t.sizeLocked {
		advance, lineHeight := fm.CellSize()
		width, height := t.drawTarget.Size()
		if advance > 0 && lineHeight > 0 && width > 0 && height > 0 {
			cols, rows := width/advance, height/lineHeight
			if cols > 0 && rows > 0 {
				t.resizeLocked(rows, cols)
			}
		}
		t.sizeLocked = true
	}

	t.activeBuffer.MarkAllDirty()
}

// SetAutoFlush controls whether Flush runs automatically after every
// Write/Input call. Disabled by default; hosts driving their own render
// loop should leave it off and call Flush explicitly.
func (t *Terminal) SetAutoFlush(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.autoFlush = enabled
}

// Flush composites every dirty cell onto the installed DrawTarget using
// the installed FontManager, then clears the dirty set. It is a no-op if
// either is missing, and idempotent: calling it twice with no intervening
// writes draws nothing the second time, since ClearAllDirty leaves
// nothing dirty to redraw.
func (t *Terminal) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.flushLocked()
}

func (t *Terminal) flushLocked() {
	if t.fontManager == nil || t.drawTarget == nil {
		return
	}
	if !t.activeBuffer.HasDirty() {
		return
	}

	if t.glyphCache == nil {
		t.glyphCache = NewGlyphCache(0)
	}

	cellW, cellH := t.fontManager.CellSize()
	targetW, targetH := t.drawTarget.Size()

	rowCache := make(map[int][]Cell)
	for _, pos := range t.activeBuffer.DirtyCells() {
		rowCells, ok := rowCache[pos.Row]
		if !ok {
			rowCells = t.viewRowCells(pos.Row)
			rowCache[pos.Row] = rowCells
		}
		if pos.Col < 0 || pos.Col >= len(rowCells) {
			continue
		}
		cell := &rowCells[pos.Col]

		x0 := pos.Col * cellW
		y0 := pos.Row * cellH
		if x0 >= targetW || y0 >= targetH {
			continue
		}

		fg := t.resolveColor(cell.Fg, true)
		bg := t.resolveColor(cell.Bg, false)
		if cell.HasFlag(CellFlagReverse) {
			fg, bg = bg, fg
		}
		if cell.HasFlag(CellFlagDim) {
			fg = dimColor(fg)
		}

		for py := 0; py < cellH && y0+py < targetH; py++ {
			for px := 0; px < cellW && x0+px < targetW; px++ {
				t.drawTarget.DrawPixel(x0+px, y0+py, bg)
			}
		}

		if ch := cell.Char; ch != 0 && ch != ' ' && !cell.IsWideSpacer() {
			glyph := t.glyphCache.Get(t.fontManager, ch, cell.HasFlag(CellFlagBold), cell.HasFlag(CellFlagItalic))
			drawGlyph(t.drawTarget, glyph, x0, y0, fg, targetW, targetH)
		}

		if t.cursorVisibleAt(pos.Row, pos.Col) {
			drawCursorCell(t.drawTarget, x0, y0, cellW, cellH, fg, targetW, targetH)
		}
	}

	t.activeBuffer.ClearAllDirty()
}

func (t *Terminal) cursorVisibleAt(row, col int) bool {
	return t.scrollViewOffset == 0 && t.cursor.Visible && t.cursor.Row == row && t.cursor.Col == col
}

func dimColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.66),
		G: uint8(float64(c.G) * 0.66),
		B: uint8(float64(c.B) * 0.66),
		A: c.A,
	}
}

func drawGlyph(d DrawTarget, g *Glyph, x0, y0 int, fg color.RGBA, targetW, targetH int) {
	if g == nil || len(g.Alpha) == 0 {
		return
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			a := g.Alpha[y*g.Width+x]
			if a == 0 {
				continue
			}
			px, py := x0+g.OffsetX+x, y0+g.OffsetY+y
			if px < 0 || py < 0 || px >= targetW || py >= targetH {
				continue
			}
			c := fg
			c.A = a
			d.DrawPixel(px, py, c)
		}
	}
}

func drawCursorCell(d DrawTarget, x0, y0, cellW, cellH int, fg color.RGBA, targetW, targetH int) {
	inverted := color.RGBA{R: 255 - fg.R, G: 255 - fg.G, B: 255 - fg.B, A: 255}
	for py := 0; py < cellH && y0+py < targetH; py++ {
		for px := 0; px < cellW && x0+px < targetW; px++ {
			d.DrawPixel(x0+px, y0+py, inverted)
		}
	}
}
