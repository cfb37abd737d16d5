package host

import (
	"github.com/phanxgames/pie"
)

const (
	tooltipLayer   = 200
	tooltipPadding = 6
	tooltipSwatch  = 8
	tooltipOffset  = 12
)

// TooltipService draws tooltips as an overlay in the visual's own scene. The
// overlay follows the pointer while it is over a slice's wedge and flips to
// the other side of it when it would run past the viewport edge.
type TooltipService struct {
	font  *pie.Font
	scene *pie.Scene

	box    *pie.Node
	panel  *pie.Node
	border *pie.Node
	lines  *pie.Node

	Background pie.Color
	Border     pie.Color
	TextColor  pie.Color

	current pie.SelectionID
	items   []pie.TooltipItem

	// panel size as of the last setItems
	w, h float64
}

// NewTooltipService adds a hidden overlay under scene's root.
func NewTooltipService(scene *pie.Scene, font *pie.Font) *TooltipService {
	t := &TooltipService{
		font:       font,
		scene:      scene,
		box:        pie.NewContainer("tooltip"),
		panel:      pie.NewPolygon("tooltip-panel", nil),
		border:     pie.NewStroke("tooltip-border", nil, 1),
		lines:      pie.NewContainer("tooltip-lines"),
		Background: pie.Color{R: 1, G: 1, B: 1, A: 0.95},
		Border:     pie.Color{R: 0.6, G: 0.6, B: 0.6, A: 1},
		TextColor:  pie.ColorBlack,
	}
	t.box.RenderLayer = tooltipLayer
	t.box.Visible = false
	t.box.AddChild(t.panel)
	t.box.AddChild(t.border)
	t.box.AddChild(t.lines)
	scene.Root().AddChild(t.box)
	return t
}

// AddTooltip binds hover handlers to every target's wedge. With reselect, a
// tooltip already showing for an identity among targets is refreshed with
// the new data instead of being hidden.
func (t *TooltipService) AddTooltip(
	targets []*pie.RenderedSlice,
	data func(pie.SliceRecord) []pie.TooltipItem,
	identity func(pie.SliceRecord) pie.SelectionID,
	reselect bool,
) {
	for _, rs := range targets {
		rec := rs.Record()
		rs.Wedge.OnPointerEnter = func(ctx pie.PointerContext) {
			t.Show(identity(rec), data(rec), ctx.GlobalX, ctx.GlobalY)
		}
		rs.Wedge.OnPointerMove = func(ctx pie.PointerContext) {
			t.moveTo(ctx.GlobalX, ctx.GlobalY)
		}
		rs.Wedge.OnPointerLeave = func(pie.PointerContext) {
			t.Hide()
		}
	}

	if !t.Visible() {
		return
	}
	if reselect && t.current != nil {
		for _, rs := range targets {
			rec := rs.Record()
			if id := identity(rec); id != nil && id.Equals(t.current) {
				t.setItems(data(rec))
				return
			}
		}
	}
	t.Hide()
}

// Show displays items at world position (x, y) for the given identity.
func (t *TooltipService) Show(id pie.SelectionID, items []pie.TooltipItem, x, y float64) {
	t.current = id
	t.setItems(items)
	t.moveTo(x, y)
	t.box.Visible = true
}

// Hide removes the tooltip from view.
func (t *TooltipService) Hide() {
	t.box.Visible = false
	t.current = nil
	t.items = nil
}

// Visible reports whether the tooltip is showing.
func (t *TooltipService) Visible() bool {
	return t.box.Visible
}

// Items returns the lines currently shown.
func (t *TooltipService) Items() []pie.TooltipItem {
	return t.items
}

// Node returns the overlay's root node.
func (t *TooltipService) Node() *pie.Node {
	return t.box
}

func (t *TooltipService) moveTo(x, y float64) {
	bx, by := x+tooltipOffset, y+tooltipOffset
	cam := t.scene.Camera()
	if vp := cam.Viewport; vp.Width > 0 && vp.Height > 0 {
		sx, sy := cam.WorldToScreen(bx+t.w, by+t.h)
		if sx > vp.X+vp.Width {
			bx = x - tooltipOffset - t.w
		}
		if sy > vp.Y+vp.Height {
			by = y - tooltipOffset - t.h
		}
	}
	t.box.SetPosition(bx, by)
}

func (t *TooltipService) setItems(items []pie.TooltipItem) {
	t.items = items
	t.lines.DisposeChildren()

	lh := float64(tooltipSwatch)
	if t.font != nil {
		lh = max(lh, t.font.LineHeight())
	}
	textX := float64(tooltipPadding*2 + tooltipSwatch)
	width := 0.0
	for i, item := range items {
		y := float64(tooltipPadding) + float64(i)*lh

		sw := pie.NewPolygon("swatch", rect(tooltipPadding, y+(lh-tooltipSwatch)/2, tooltipSwatch, tooltipSwatch))
		if c, err := pie.ParseColor(item.Color); err == nil {
			sw.Color = c
		}
		t.lines.AddChild(sw)

		label := item.Value
		if item.DisplayName != "" {
			label = item.DisplayName + ": " + item.Value
		}
		txt := pie.NewText("line", label, t.font)
		txt.TextBlock.Color = t.TextColor
		txt.SetPosition(textX, y)
		t.lines.AddChild(txt)
		w, _ := txt.TextBlock.Measure()
		width = max(width, w)
	}

	t.w = textX + width + tooltipPadding
	t.h = float64(tooltipPadding*2) + float64(len(items))*lh
	pie.SetPolygonPoints(t.panel, rect(0, 0, t.w, t.h))
	t.panel.Color = t.Background
	pie.SetStrokePoints(t.border, rect(0, 0, t.w, t.h), 1)
	t.border.Color = t.Border
}

func rect(x, y, w, h float64) []pie.Vec2 {
	return []pie.Vec2{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
}
