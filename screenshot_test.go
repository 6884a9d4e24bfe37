package headlessterm

import (
	"errors"
	"testing"
)

func TestImageDrawTargetFlushPaintsBackground(t *testing.T) {
	fm := NewBasicFontManager()
	cellW, cellH := fm.CellSize()

	target := NewImageDrawTarget(10*cellW, cellH)
	term := New(target, WithSize(1, 10))
	term.SetFontManager(fm)
	term.SetColorScheme(1)

	term.WriteString("A")
	term.Flush()

	img := target.Image()
	bounds := img.Bounds()
	if bounds.Dx() != 10*cellW || bounds.Dy() != cellH {
		t.Fatalf("expected a %dx%d image, got %dx%d", 10*cellW, cellH, bounds.Dx(), bounds.Dy())
	}

	corner := img.RGBAAt(bounds.Dx()-1, bounds.Dy()-1)
	want := Themes[1].Background
	if corner != want {
		t.Errorf("expected background fill to reflect the active theme %+v in an untouched cell, got %+v", want, corner)
	}
}

func TestLoadFontByNameFallsBackOnMissingFont(t *testing.T) {
	if _, ok := LoadFontByName(nil, "whatever", 14); ok {
		t.Error("expected a nil FontFinder to fail, not succeed")
	}
	if _, ok := LoadFontByName(missingFontFinder{}, "whatever", 14); ok {
		t.Error("expected a FontFinder that can't find the font to fail")
	}
}

type missingFontFinder struct{}

func (missingFontFinder) Find(name string) (string, error) {
	return "", errors.New("font not found")
}
