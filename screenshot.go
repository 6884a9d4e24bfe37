package headlessterm

import (
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// FontFinder locates font files by name (useful for avoiding font library dependencies).
type FontFinder interface {
	// Find returns the filesystem path to a font file matching the given name.
	Find(name string) (string, error)
}

// ImageDrawTarget is a DrawTarget backed by an in-memory image.RGBA. It is
// the bridge between the cell-based render pipeline (SetFontManager/Flush)
// and tooling that wants a plain image: screenshots, golden-file comparisons,
// PNG export. Construct one at the pixel size to render, pass it to New as
// the display, then call Flush and read Image().
type ImageDrawTarget struct {
	img *image.RGBA
}

// NewImageDrawTarget allocates a width x height ImageDrawTarget, initialized
// fully transparent; the first Flush paints every cell's background before
// any foreground, so the initial color is overwritten before it is ever
// read back.
func NewImageDrawTarget(width, height int) *ImageDrawTarget {
	return &ImageDrawTarget{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Size implements DrawTarget.
func (d *ImageDrawTarget) Size() (width, height int) {
	b := d.img.Bounds()
	return b.Dx(), b.Dy()
}

// DrawPixel implements DrawTarget.
func (d *ImageDrawTarget) DrawPixel(x, y int, c color.RGBA) {
	d.img.SetRGBA(x, y, c)
}

// Image returns the underlying image.RGBA. Pixels reflect whatever cells
// were dirty as of the most recent Flush.
func (d *ImageDrawTarget) Image() *image.RGBA { return d.img }

// LoadFont loads a TrueType or OpenType font from a file path, for use with
// NewFaceFontManager.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadFontFromReader(f, size)
}

// LoadFontFromReader loads a TrueType or OpenType font from an io.Reader.
func LoadFontFromReader(r io.Reader, size float64) (font.Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return LoadFontFromBytes(data, size)
}

// LoadFontFromBytes loads a TrueType or OpenType font from raw bytes.
func LoadFontFromBytes(data []byte, size float64) (font.Face, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	return face, nil
}

// LoadFontByName resolves name to a file path via finder and loads it at the
// given point size, returning ok=false (rather than an error) if the finder
// can't locate it or the file fails to parse — callers typically want to
// fall back to NewBasicFontManager rather than abort construction.
func LoadFontByName(finder FontFinder, name string, size float64) (face font.Face, ok bool) {
	if finder == nil || name == "" {
		return nil, false
	}
	path, err := finder.Find(name)
	if err != nil {
		return nil, false
	}
	loaded, err := LoadFont(path, size)
	if err != nil {
		return nil, false
	}
	return loaded, true
}
