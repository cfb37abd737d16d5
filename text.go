package pie

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font wraps Ebitengine's text/v2 face for TrueType rendering and measurement.
type Font struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
	ascent float64
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("pie: failed to parse TTF data: %w", err)
	}
	return newFont(source, size), nil
}

func newFont(source *text.GoTextFaceSource, size float64) *Font {
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &Font{
		face:   face,
		source: source,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
		ascent: m.HAscent,
	}
}

var (
	defaultSourceOnce sync.Once
	defaultSource     *text.GoTextFaceSource
	defaultSourceErr  error
)

// DefaultFont returns the Go Regular face at the given size. The parsed font
// source is shared by every call.
func DefaultFont(size float64) (*Font, error) {
	defaultSourceOnce.Do(func() {
		defaultSource, defaultSourceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	if defaultSourceErr != nil {
		return nil, fmt.Errorf("pie: failed to parse default font: %w", defaultSourceErr)
	}
	return newFont(defaultSource, size), nil
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Ascent returns the distance from the top of a line to its baseline.
func (f *Font) Ascent() float64 {
	return f.ascent
}

// Size returns the font size in pixels (the CSS em).
func (f *Font) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *Font) Face() *text.GoTextFace {
	return f.face
}

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content string
	Font    *Font
	Align   TextAlign
	Color   Color

	// Baseline places the node origin on the first line's baseline instead
	// of the top of the text box, the way SVG positions <text>.
	Baseline bool

	layoutDirty bool
	measuredW   float64
	measuredH   float64

	// rendered is the cached raster of Content; re-rendered when dirty.
	rendered      *ebiten.Image
	renderedDirty bool
}

// SetContent replaces the text and invalidates the cached layout.
func (tb *TextBlock) SetContent(s string) {
	if tb.Content == s {
		return
	}
	tb.Content = s
	tb.Invalidate()
}

// Invalidate forces re-measurement and re-rasterization. Call it after
// changing Font, Color or Content directly.
func (tb *TextBlock) Invalidate() {
	tb.layoutDirty = true
}

// Measure returns the width and height of the laid-out text.
func (tb *TextBlock) Measure() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// layout recomputes measured dimensions if dirty.
func (tb *TextBlock) layout() {
	if !tb.layoutDirty {
		return
	}
	tb.layoutDirty = false
	tb.renderedDirty = true
	if tb.Font == nil || tb.Content == "" {
		tb.measuredW, tb.measuredH = 0, 0
		return
	}
	tb.measuredW, tb.measuredH = tb.Font.MeasureString(tb.Content)
}

// origin returns the local offset of the text box's top-left corner relative
// to the node origin, honoring Align and Baseline.
func (tb *TextBlock) origin() (x, y float64) {
	tb.layout()
	switch tb.Align {
	case TextAlignCenter:
		x = -tb.measuredW / 2
	case TextAlignRight:
		x = -tb.measuredW
	}
	if tb.Baseline && tb.Font != nil {
		y = -tb.Font.Ascent()
	}
	return x, y
}

// bounds returns the local-space box covered by the text.
func (tb *TextBlock) bounds() Rect {
	x, y := tb.origin()
	return Rect{X: x, Y: y, Width: tb.measuredW, Height: tb.measuredH}
}

// image rasterizes the text into its cached image when the content changed.
// Must run on the draw goroutine.
func (tb *TextBlock) image() *ebiten.Image {
	tb.layout()
	if tb.measuredW == 0 || tb.measuredH == 0 {
		return nil
	}
	if !tb.renderedDirty && tb.rendered != nil {
		return tb.rendered
	}
	tb.renderedDirty = false

	w := int(tb.measuredW) + 1
	h := int(tb.measuredH) + 1
	if tb.rendered != nil {
		b := tb.rendered.Bounds()
		if b.Dx() != w || b.Dy() != h {
			tb.rendered.Deallocate()
			tb.rendered = ebiten.NewImage(w, h)
		} else {
			tb.rendered.Clear()
		}
	} else {
		tb.rendered = ebiten.NewImage(w, h)
	}

	op := &text.DrawOptions{}
	op.ColorScale.ScaleWithColor(tb.Color.toRGBA())
	op.LineSpacing = tb.Font.lh
	text.Draw(tb.rendered, tb.Content, tb.Font.face, op)
	return tb.rendered
}

// release frees the cached raster.
func (tb *TextBlock) release() {
	if tb.rendered != nil {
		tb.rendered.Deallocate()
		tb.rendered = nil
	}
}

// SetText replaces a text node's content. No-op on other node types.
func (n *Node) SetText(s string) {
	if n.TextBlock != nil {
		n.TextBlock.SetContent(s)
	}
}
