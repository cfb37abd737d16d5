package pie

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

var (
	// ColorWhite is the default tint (no color modification).
	ColorWhite = Color{1, 1, 1, 1}
	// ColorBlack is opaque black, used for label text.
	ColorBlack = Color{0, 0, 0, 1}
)

// namedColors covers the handful of CSS keywords hosts commonly send.
var namedColors = map[string]Color{
	"white":       ColorWhite,
	"black":       ColorBlack,
	"transparent": {},
}

// ParseColor parses "#rgb", "#rrggbb" or one of the keywords white, black and
// transparent. The returned color is opaque unless the keyword says otherwise.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("pie: parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// MustParseColor is like ParseColor but panics on error. Intended for
// package-level constants.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// WithAlpha returns a copy of c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a point or offset in pie space: origin at the chart center, Y
// pointing down.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle with Y pointing down. Edges count as
// inside.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// BlendMode selects how a node composites onto what is below it.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over
	BlendAdd                     // lighter, for highlight overlays
	BlendNone                    // copy, ignoring what is below
)

// EbitenBlend maps b onto ebiten's blend presets.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendNone:
		return ebiten.BlendCopy
	}
	return ebiten.BlendSourceOver
}

// NodeType selects which kind-specific Node fields are drawn.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // slice groups and the chart surface
	NodeTypeMesh                      // wedges, strokes and tooltip boxes
	NodeTypeText                      // labels
	NodeTypeImage                     // caller-owned images such as the FPS overlay
)

// EventType names the pointer events a Scene dispatches.
type EventType uint8

const (
	EventPointerDown EventType = iota
	EventPointerUp
	EventPointerMove  // no button held
	EventClick        // press and release over the same node
	EventPointerEnter // pointer arrived over a node
	EventPointerLeave // pointer left a node
)

type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// KeyModifiers is a bit set of modifier keys held during a pointer event.
// Ctrl or Meta on a slice click extends the selection.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// TextAlign positions a label horizontally relative to its node origin.
type TextAlign uint8

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)
