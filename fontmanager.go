package headlessterm

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph is a rasterized character: an 8-bit alpha coverage mask plus the
// offset from a cell's top-left corner at which it should be composited.
type Glyph struct {
	Width, Height int
	OffsetX       int
	OffsetY       int
	Alpha         []byte // row-major, Width*Height bytes, 0 = transparent
}

// FontManager rasterizes codepoints into Glyphs and reports the fixed
// cell size every Glyph is drawn against. Implementations are expected to
// be safe for concurrent use only insofar as the engine itself serializes
// calls into it (see the Terminal/Engine single-owner model).
type FontManager interface {
	// CellSize returns the pixel dimensions of one terminal cell.
	CellSize() (width, height int)

	// Rasterize returns the Glyph for r in the given style. Implementations
	// should cache nothing themselves; GlyphCache sits in front of a
	// FontManager for that.
	Rasterize(r rune, bold, italic bool) *Glyph
}

// faceFontManager adapts a golang.org/x/image/font.Face to FontManager,
// generalizing the compositing math the teacher's now-removed standalone
// screenshot renderer used to perform inline (cell size from face metrics,
// baseline from Ascent) behind the pluggable interface the renderer consumes.
type faceFontManager struct {
	regular font.Face
	bold    font.Face // falls back to regular if nil
	cellW   int
	cellH   int
}

// NewFaceFontManager builds a FontManager from one or two font.Face values
// (load them with LoadFont/LoadFontFromBytes). boldFace may be nil, in
// which case bold text is rasterized with the regular face.
func NewFaceFontManager(regular, boldFace font.Face) FontManager {
	metrics := regular.Metrics()
	adv, _ := regular.GlyphAdvance('M')
	cellW := adv.Ceil()
	if cellW == 0 {
		cellW = 7
	}
	cellH := metrics.Height.Ceil()
	if cellH == 0 {
		cellH = 13
	}
	return &faceFontManager{regular: regular, bold: boldFace, cellW: cellW, cellH: cellH}
}

// NewBasicFontManager returns a zero-configuration FontManager backed by
// basicfont.Face7x13, a reasonable default when no face is supplied.
func NewBasicFontManager() FontManager {
	return NewFaceFontManager(basicfont.Face7x13, nil)
}

func (f *faceFontManager) CellSize() (int, int) { return f.cellW, f.cellH }

func (f *faceFontManager) Rasterize(r rune, bold, italic bool) *Glyph {
	face := f.regular
	if bold && f.bold != nil {
		face = f.bold
	}

	if r == 0 || r == ' ' {
		return &Glyph{Width: f.cellW, Height: f.cellH}
	}

	img := image.NewAlpha(image.Rect(0, 0, f.cellW, f.cellH))
	metrics := face.Metrics()
	baseline := metrics.Ascent.Ceil()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, baseline),
	}
	d.DrawString(string(r))

	return &Glyph{Width: f.cellW, Height: f.cellH, Alpha: img.Pix}
}
