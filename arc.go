package pie

import (
	"math"
	"strconv"
	"strings"
)

const (
	// ValueLabelMinSpan is the angular span a slice must exceed before its
	// value line is drawn under the category.
	ValueLabelMinSpan = 0.25

	// labelRadiusFactor places labels inside the slice body, short of the rim.
	labelRadiusFactor = 0.8

	// maxArcStep is the largest angle covered by one flattened arc segment.
	maxArcStep = math.Pi / 90

	arcEpsilon = 1e-12
)

// Viewport is the size of the host surface in pixels.
type Viewport struct {
	Width, Height float64
}

// Arc describes the radii of pie wedges. Angles passed to its methods are
// in radians, 0 at 12 o'clock, increasing clockwise.
type Arc struct {
	InnerRadius float64
	OuterRadius float64
}

// RadiiForViewport returns the full-pie arc that fits the viewport with a
// one pixel inset.
func RadiiForViewport(vp Viewport) Arc {
	outer := math.Min(vp.Width, vp.Height)/2 - 1
	if outer < 0 {
		outer = 0
	}
	return Arc{OuterRadius: outer}
}

// LabelRadius returns the radius labels are anchored on for a pie of the
// given outer radius.
func LabelRadius(outer float64) float64 {
	return outer * labelRadiusFactor
}

// pointAt returns the point at radius r and angle a.
func pointAt(r, a float64) Vec2 {
	sin, cos := math.Sincos(a)
	return Vec2{X: r * sin, Y: -r * cos}
}

// Centroid returns the midpoint of the wedge: the point at the mid-angle,
// halfway between the radii.
func (a Arc) Centroid(start, end float64) Vec2 {
	return pointAt((a.InnerRadius+a.OuterRadius)/2, (start+end)/2)
}

// LabelAnchor returns where a slice's label is centered: the point at the
// slice's mid-angle on labelRadius.
func LabelAnchor(s LayoutSlice, labelRadius float64) Vec2 {
	return Arc{InnerRadius: labelRadius, OuterRadius: labelRadius}.Centroid(s.StartAngle, s.EndAngle)
}

// ShowValueLabel reports whether a slice is wide enough for its value line.
func ShowValueLabel(s LayoutSlice) bool {
	return showValueLabel(s, ValueLabelMinSpan)
}

func showValueLabel(s LayoutSlice, minSpan float64) bool {
	return s.Span() > minSpan
}

// arcSteps returns how many segments flatten a sweep of da radians.
func arcSteps(da float64) int {
	return max(1, int(math.Ceil(math.Abs(da)/maxArcStep)))
}

// Points flattens the wedge between start and end into a closed polygon.
// For a full pie (InnerRadius 0) the first point is the center and the rest
// trace the rim, so the polygon is star-shaped around its first point. For a
// ring the outer rim is traced forward and the inner rim backward.
func (a Arc) Points(start, end float64) []Vec2 {
	da := end - start
	if math.Abs(da) > FullTurn {
		end = start + math.Copysign(FullTurn, da)
		da = end - start
	}
	n := arcSteps(da)
	pts := make([]Vec2, 0, 2*(n+1)+1)
	if a.InnerRadius <= 0 {
		pts = append(pts, Vec2{})
	}
	for i := 0; i <= n; i++ {
		pts = append(pts, pointAt(a.OuterRadius, start+da*float64(i)/float64(n)))
	}
	if a.InnerRadius > 0 {
		for i := n; i >= 0; i-- {
			pts = append(pts, pointAt(a.InnerRadius, start+da*float64(i)/float64(n)))
		}
	}
	return pts
}

// Path returns the SVG path data for the wedge, following d3's arc
// generator: a full turn becomes two half circles, a zero outer radius a
// single point.
func (a Arc) Path(start, end float64) string {
	var b strings.Builder
	r0, r1 := a.InnerRadius, a.OuterRadius
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	if r1 <= arcEpsilon {
		return "M0,0Z"
	}
	da := math.Abs(end - start)
	cw := 1
	if end < start {
		cw = 0
	}

	if da > FullTurn-arcEpsilon {
		p := pointAt(r1, start)
		q := pointAt(r1, start+math.Pi)
		writeCmd(&b, 'M', p.X, p.Y)
		writeArc(&b, r1, 1, cw, q)
		writeArc(&b, r1, 1, cw, p)
		if r0 > arcEpsilon {
			p = pointAt(r0, start)
			q = pointAt(r0, start+math.Pi)
			writeCmd(&b, 'M', p.X, p.Y)
			writeArc(&b, r0, 1, 1-cw, q)
			writeArc(&b, r0, 1, 1-cw, p)
		}
		b.WriteByte('Z')
		return b.String()
	}

	large := 0
	if da >= math.Pi {
		large = 1
	}
	p0 := pointAt(r1, start)
	writeCmd(&b, 'M', p0.X, p0.Y)
	if da > arcEpsilon {
		writeArc(&b, r1, large, cw, pointAt(r1, end))
	}
	if r0 > arcEpsilon {
		p1 := pointAt(r0, end)
		writeCmd(&b, 'L', p1.X, p1.Y)
		if da > arcEpsilon {
			writeArc(&b, r0, large, 1-cw, pointAt(r0, start))
		}
	} else {
		writeCmd(&b, 'L', 0, 0)
	}
	b.WriteByte('Z')
	return b.String()
}

func writeCmd(b *strings.Builder, cmd byte, x, y float64) {
	b.WriteByte(cmd)
	b.WriteString(svgNum(x))
	b.WriteByte(',')
	b.WriteString(svgNum(y))
}

func writeArc(b *strings.Builder, r float64, large, sweep int, to Vec2) {
	b.WriteByte('A')
	b.WriteString(svgNum(r))
	b.WriteByte(',')
	b.WriteString(svgNum(r))
	b.WriteString(",0,")
	b.WriteString(strconv.Itoa(large))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(sweep))
	b.WriteByte(',')
	b.WriteString(svgNum(to.X))
	b.WriteByte(',')
	b.WriteString(svgNum(to.Y))
}

// svgNum formats a coordinate with at most three decimals and no "-0".
func svgNum(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// HitWedge is an exact hit area for a pie wedge in local coordinates
// centered on the pie's origin. Wedges wider than a half turn are not
// convex, so the test is done in polar form.
type HitWedge struct {
	InnerRadius, OuterRadius float64
	StartAngle, EndAngle     float64
}

// Contains reports whether (x, y) lies inside the wedge.
func (w HitWedge) Contains(x, y float64) bool {
	r := math.Hypot(x, y)
	if r > w.OuterRadius || r < w.InnerRadius {
		return false
	}
	start, end := w.StartAngle, w.EndAngle
	if end < start {
		start, end = end, start
	}
	if end-start >= FullTurn {
		return true
	}
	if end-start <= 0 {
		return false
	}
	a := math.Atan2(x, -y) // 0 at 12 o'clock, clockwise
	rel := math.Mod(a-start, FullTurn)
	if rel < 0 {
		rel += FullTurn
	}
	return rel <= end-start
}
