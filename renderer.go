package pie

import (
	"fmt"
	"math"
)

// labelValueAlpha is the fill opacity of a label's value line.
const labelValueAlpha = 0.7

// Label line offsets from the anchor, in ems (the label font size).
const (
	categoryLineEm = -0.4
	valueLineEm    = 0.7
)

// fallbackSliceColor is used when the palette returned an unparseable color.
var fallbackSliceColor = Color{0.5, 0.5, 0.5, 1}

// RenderedSlice ties the nodes drawn for one slice back to its layout and
// record. Every node's UserData holds the *RenderedSlice.
type RenderedSlice struct {
	Slice LayoutSlice

	// Node groups the wedge and its rim. The wedge's alpha is the slice
	// opacity; the rim always draws at full strength.
	Node  *Node
	Wedge *Node
	Rim   *Node

	// Label is the category line; ValueLabel is the value line, or nil
	// when the slice is too narrow.
	Label      *Node
	ValueLabel *Node

	arc         Arc
	strokeWidth float64
}

// Record returns the data record the slice was drawn from.
func (rs *RenderedSlice) Record() SliceRecord {
	return rs.Slice.Data
}

// SliceRenderer owns the surface container and redraws it from scratch on
// every Render.
type SliceRenderer struct {
	surface *Node
	wedges  *Node
	labels  *Node
	camera  *Camera
	font    *Font

	stroke      Color
	strokeWidth float64
	labelColor  Color
	minSpan     float64

	arc    Arc
	slices []*RenderedSlice
}

// NewSliceRenderer attaches the renderer's layers under surface. camera is
// re-centered on every Render; font may be nil, in which case labels are
// created but draw nothing.
func NewSliceRenderer(surface *Node, camera *Camera, font *Font, cfg Config) (*SliceRenderer, error) {
	stroke, err := ParseColor(cfg.StrokeColor)
	if err != nil {
		return nil, Wrap(ErrCodeInvalidConfig, err, "stroke_color")
	}
	labelColor, err := ParseColor(cfg.LabelColor)
	if err != nil {
		return nil, Wrap(ErrCodeInvalidConfig, err, "label_color")
	}

	surface.Interactable = true
	r := &SliceRenderer{
		surface:     surface,
		wedges:      NewContainer("wedges"),
		labels:      NewContainer("labels"),
		camera:      camera,
		font:        font,
		stroke:      stroke,
		strokeWidth: cfg.StrokeWidth,
		labelColor:  labelColor,
		minSpan:     cfg.ValueLabelMinSpan,
	}
	r.wedges.Interactable = true
	surface.AddChild(r.wedges)
	surface.AddChild(r.labels)
	return r, nil
}

// Surface returns the container the renderer draws into.
func (r *SliceRenderer) Surface() *Node {
	return r.surface
}

// Slices returns the slices drawn by the last Render.
func (r *SliceRenderer) Slices() []*RenderedSlice {
	return r.slices
}

// Arc returns the wedge radii used by the last Render.
func (r *SliceRenderer) Arc() Arc {
	return r.arc
}

// Clear disposes every slice and label node.
func (r *SliceRenderer) Clear() {
	r.wedges.DisposeChildren()
	r.labels.DisposeChildren()
	r.slices = nil
}

// Render clears the previous drawing, centers the origin in the viewport and
// draws one wedge and one label per slice at its final angles.
func (r *SliceRenderer) Render(vp Viewport, slices []LayoutSlice) []*RenderedSlice {
	r.Clear()

	if r.camera != nil {
		r.camera.X, r.camera.Y = 0, 0
		r.camera.SetViewport(Rect{Width: vp.Width, Height: vp.Height})
	}
	r.arc = RadiiForViewport(vp)
	labelRadius := LabelRadius(r.arc.OuterRadius)

	em := 0.0
	if r.font != nil {
		em = r.font.Size()
	}

	r.slices = make([]*RenderedSlice, 0, len(slices))
	for _, s := range slices {
		rs := &RenderedSlice{Slice: s, arc: r.arc, strokeWidth: r.strokeWidth}

		rs.Node = NewContainer(fmt.Sprintf("slice-%d", s.Index))
		rs.Node.Interactable = true
		rs.Node.UserData = rs

		fill, err := ParseColor(s.Data.Color)
		if err != nil {
			fill = fallbackSliceColor
		}
		rs.Wedge = NewPolygon("wedge", nil)
		rs.Wedge.Color = fill
		rs.Wedge.Interactable = true
		rs.Wedge.UserData = rs

		rs.Rim = NewStroke("rim", nil, r.strokeWidth)
		rs.Rim.Color = r.stroke
		rs.Rim.UserData = rs

		rs.Node.AddChild(rs.Wedge)
		rs.Node.AddChild(rs.Rim)
		r.wedges.AddChild(rs.Node)
		r.SetArcAngles(rs, s.StartAngle, s.EndAngle)

		anchor := LabelAnchor(s, labelRadius)
		rs.Label = r.newLabel("label", s.Data.Category, anchor.X, anchor.Y+categoryLineEm*em)
		rs.Label.UserData = rs
		r.labels.AddChild(rs.Label)

		if showValueLabel(s, r.minSpan) {
			rs.ValueLabel = r.newLabel("value", FormatValue(s.Data.Value), anchor.X, anchor.Y+valueLineEm*em)
			rs.ValueLabel.Alpha = labelValueAlpha
			rs.ValueLabel.UserData = rs
			r.labels.AddChild(rs.ValueLabel)
		}

		r.slices = append(r.slices, rs)
	}
	return r.slices
}

func (r *SliceRenderer) newLabel(name, content string, x, y float64) *Node {
	n := NewText(name, content, r.font)
	n.TextBlock.Align = TextAlignCenter
	n.TextBlock.Baseline = true
	n.TextBlock.Color = r.labelColor
	n.SetPosition(x, y)
	return n
}

// SetArcAngles rebuilds one slice's wedge, rim and hit area for the given
// angles. The slice's layout data is not changed.
func (r *SliceRenderer) SetArcAngles(rs *RenderedSlice, start, end float64) {
	if rs.Wedge == nil || rs.Wedge.IsDisposed() {
		return
	}
	pts := rs.arc.Points(start, end)
	SetPolygonPoints(rs.Wedge, pts)
	rs.Wedge.HitShape = HitWedge{
		InnerRadius: rs.arc.InnerRadius,
		OuterRadius: rs.arc.OuterRadius,
		StartAngle:  start,
		EndAngle:    end,
	}

	rim := pts
	if rs.arc.InnerRadius <= 0 && math.Abs(end-start) >= FullTurn-arcEpsilon {
		rim = pts[1:] // a full disc has no radial edge
	}
	SetStrokePoints(rs.Rim, rim, rs.strokeWidth)
}

// SetOpacity sets the slice's fill opacity.
func (rs *RenderedSlice) SetOpacity(a float64) {
	rs.Wedge.SetAlpha(a)
}

// Opacity returns the slice's fill opacity.
func (rs *RenderedSlice) Opacity() float64 {
	return rs.Wedge.Alpha
}
