package headlessterm

import "image/color"

// Palette bundles a full 256-color table with the semantic default
// foreground/background/cursor colors that make up one selectable color
// scheme. A Terminal always has an active Palette: either one of the
// built-in Themes or a caller-supplied custom override.
type Palette struct {
	Name       string
	Colors     [256]color.RGBA
	Foreground color.RGBA
	Background color.RGBA
	Cursor     color.RGBA
}

// defaultPaletteValue builds the Palette equivalent of DefaultPalette /
// DefaultForeground / DefaultBackground / DefaultCursorColor.
func defaultPaletteValue() Palette {
	return Palette{
		Name:       "default",
		Colors:     DefaultPalette,
		Foreground: DefaultForeground,
		Background: DefaultBackground,
		Cursor:     DefaultCursorColor,
	}
}

// paletteFromCube builds a Palette from sixteen base ANSI colors, reusing
// DefaultPalette's 216-color cube and 24-step grayscale ramp (indices
// 16-255 are scheme-independent in xterm and every pack theme observed).
func paletteFromCube(name string, ansi16 [16]color.RGBA, fg, bg, cursor color.RGBA) Palette {
	p := Palette{Name: name, Foreground: fg, Background: bg, Cursor: cursor}
	copy(p.Colors[:16], ansi16[:])
	copy(p.Colors[16:], DefaultPalette[16:])
	return p
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

// Themes is the built-in, selectable color scheme list. Index 0 is always
// the teacher's original DefaultPalette; crow-black and magpie are modeled on
// javanhut-RavenTerminal's named themes, converted from that renderer's
// normalized float RGBA values to 24-bit color.RGBA, and the last is
// catppuccin-mocha (a popular published palette RavenTerminal also ships).
var Themes = []Palette{
	defaultPaletteValue(),
	paletteFromCube("crow-black",
		[16]color.RGBA{
			rgb(0x0d, 0x0d, 0x0d), rgb(0xcc, 0x66, 0x66), rgb(0x99, 0xcc, 0x99), rgb(0xd8, 0xd8, 0x8f),
			rgb(0x66, 0x99, 0xcc), rgb(0xcc, 0x99, 0xcc), rgb(0x66, 0xcc, 0xcc), rgb(0xd3, 0xd3, 0xd3),
			rgb(0x4d, 0x4d, 0x4d), rgb(0xf2, 0x77, 0x77), rgb(0xa6, 0xe2, 0x2e), rgb(0xff, 0xd7, 0x5f),
			rgb(0x5f, 0x9f, 0xff), rgb(0xe2, 0x77, 0xe2), rgb(0x77, 0xe2, 0xe2), rgb(0xff, 0xff, 0xff),
		},
		rgb(0xd3, 0xd3, 0xd3), rgb(0x0d, 0x0d, 0x0d), rgb(0xd3, 0xd3, 0xd3),
	),
	paletteFromCube("magpie",
		[16]color.RGBA{
			rgb(0x1a, 0x1a, 0x1a), rgb(0xb0, 0x3a, 0x3a), rgb(0x4a, 0x8a, 0x4a), rgb(0xb0, 0xa0, 0x3a),
			rgb(0x3a, 0x5a, 0xa0), rgb(0x8a, 0x3a, 0xa0), rgb(0x3a, 0x9a, 0xa0), rgb(0xd0, 0xd0, 0xd0),
			rgb(0x50, 0x50, 0x50), rgb(0xd0, 0x5a, 0x5a), rgb(0x6a, 0xb0, 0x6a), rgb(0xd0, 0xc0, 0x5a),
			rgb(0x5a, 0x7a, 0xc0), rgb(0xb0, 0x5a, 0xc0), rgb(0x5a, 0xc0, 0xc0), rgb(0xf0, 0xf0, 0xf0),
		},
		rgb(0xd0, 0xd0, 0xd0), rgb(0x1a, 0x1a, 0x1a), rgb(0xf0, 0xf0, 0xf0),
	),
	paletteFromCube("catppuccin-mocha",
		[16]color.RGBA{
			rgb(0x45, 0x47, 0x5a), rgb(0xf3, 0x8b, 0xa8), rgb(0xa6, 0xe3, 0xa1), rgb(0xf9, 0xe2, 0xaf),
			rgb(0x89, 0xb4, 0xfa), rgb(0xf5, 0xc2, 0xe7), rgb(0x94, 0xe2, 0xd5), rgb(0xba, 0xc2, 0xde),
			rgb(0x58, 0x5b, 0x70), rgb(0xeb, 0xa0, 0xac), rgb(0xa6, 0xe3, 0xa1), rgb(0xf9, 0xe2, 0xaf),
			rgb(0x89, 0xb4, 0xfa), rgb(0xf5, 0xc2, 0xe7), rgb(0x94, 0xe2, 0xd5), rgb(0xa6, 0xad, 0xc8),
		},
		rgb(0xcd, 0xd6, 0xf4), rgb(0x1e, 0x1e, 0x2e), rgb(0xf5, 0xe0, 0xdc),
	),
}

// ThemeNames returns the selectable names in Themes order.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, p := range Themes {
		names[i] = p.Name
	}
	return names
}

// SetColorScheme selects a built-in theme by index, clearing any custom
// override previously installed with SetCustomColorScheme. An
// out-of-range index is ignored.
func (t *Terminal) SetColorScheme(idx int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if idx < 0 || idx >= len(Themes) {
		return
	}
	p := Themes[idx]
	t.activePalette = &p
	t.activeBuffer.MarkAllDirty()
}

// SetCustomColorScheme installs a caller-provided palette as the active
// color scheme, overriding any built-in theme selection.
func (t *Terminal) SetCustomColorScheme(p Palette) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.activePalette = &p
	t.activeBuffer.MarkAllDirty()
}

// ColorScheme returns the currently active palette.
func (t *Terminal) ColorScheme() Palette {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.activePalette != nil {
		return *t.activePalette
	}
	return defaultPaletteValue()
}

// resolveColor converts a color.Color (possibly nil, an *IndexedColor, or
// an *NamedColor) to a concrete RGBA using the terminal's active palette.
// An OSC 4 override installed via SetColor takes precedence over both the
// active palette and DefaultPalette, so a set survives a later theme switch.
func (t *Terminal) resolveColor(c color.Color, fg bool) color.RGBA {
	if ic, ok := c.(*IndexedColor); ok && ic.Index >= 0 && ic.Index < 256 {
		if override, ok := t.colors[ic.Index]; ok {
			return resolveDefaultColor(override, fg)
		}
	}

	p := t.activePalette
	if p == nil {
		return resolveDefaultColor(c, fg)
	}

	if c == nil {
		if fg {
			return p.Foreground
		}
		return p.Background
	}

	switch v := c.(type) {
	case color.RGBA:
		return v
	case *IndexedColor:
		if v.Index >= 0 && v.Index < 256 {
			return p.Colors[v.Index]
		}
		if fg {
			return p.Foreground
		}
		return p.Background
	case *NamedColor:
		return t.resolveNamedColor(v.Name, fg)
	default:
		r, g, b, a := c.RGBA()
		return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
	}
}

// resolveNamedColor resolves a NamedColor semantic index against the
// terminal's active palette, honoring any OSC 4 override for the base
// 16 ANSI slots the same way resolveColor does for indexed colors.
func (t *Terminal) resolveNamedColor(name int, fg bool) color.RGBA {
	if name >= 0 && name < 16 {
		if override, ok := t.colors[name]; ok {
			return resolveDefaultColor(override, fg)
		}
	}

	p := t.activePalette
	if p == nil {
		return resolveNamedColor(name, fg)
	}

	switch {
	case name >= 0 && name < 16:
		return p.Colors[name]
	case name == NamedColorForeground:
		return p.Foreground
	case name == NamedColorBackground:
		return p.Background
	case name == NamedColorCursor:
		return p.Cursor
	case name >= NamedColorDimBlack && name <= NamedColorDimWhite:
		base := p.Colors[name-NamedColorDimBlack]
		return color.RGBA{
			R: uint8(float64(base.R) * 0.66),
			G: uint8(float64(base.G) * 0.66),
			B: uint8(float64(base.B) * 0.66),
			A: 255,
		}
	case name == NamedColorBrightForeground:
		return p.Colors[15]
	case name == NamedColorDimForeground:
		return color.RGBA{
			R: uint8(float64(p.Foreground.R) * 0.66),
			G: uint8(float64(p.Foreground.G) * 0.66),
			B: uint8(float64(p.Foreground.B) * 0.66),
			A: 255,
		}
	default:
		if fg {
			return p.Foreground
		}
		return p.Background
	}
}
