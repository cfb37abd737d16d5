package pie

import "math"

// Camera controls the view into the scene: position, zoom, and viewport.
// The camera's world position is drawn at the center of its viewport, so a
// camera at (0, 0) gives the SVG-style viewBox [-w/2, -h/2, w, h].
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64

	// last inputs the cached matrices were computed from
	lastX, lastY, lastZoom float64
	lastViewport           Rect
	valid                  bool
}

// NewCamera creates a camera centered on the world origin.
func NewCamera(viewport Rect) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport}
}

// SetViewport resizes the camera's screen rectangle.
func (c *Camera) SetViewport(viewport Rect) {
	c.Viewport = viewport
}

// computeViewMatrix returns the world-to-screen matrix, recomputing it when
// any camera field changed since the last call.
func (c *Camera) computeViewMatrix() [6]float64 {
	if c.valid && c.X == c.lastX && c.Y == c.lastY && c.Zoom == c.lastZoom && c.Viewport == c.lastViewport {
		return c.viewMatrix
	}
	c.valid = true
	c.lastX, c.lastY, c.lastZoom, c.lastViewport = c.X, c.Y, c.Zoom, c.Viewport

	z := c.Zoom
	if z == 0 {
		z = 1
	}
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2

	// Translate(cx,cy) * Scale(z) * Translate(-X,-Y)
	c.viewMatrix = [6]float64{z, 0, 0, z, cx - z*c.X, cy - z*c.Y}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the camera's visible area in world space.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	x0, y0 := transformPoint(c.invViewMatrix, c.Viewport.X, c.Viewport.Y)
	x1, y1 := transformPoint(c.invViewMatrix, c.Viewport.X+c.Viewport.Width, c.Viewport.Y+c.Viewport.Height)
	return Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// nodeDimensions returns the local-space size of a node's visual, used by
// hit testing when no HitShape is set.
func nodeDimensions(n *Node) (w, h float64) {
	switch n.Type {
	case NodeTypeImage:
		if n.customImage != nil {
			b := n.customImage.Bounds()
			return float64(b.Dx()), float64(b.Dy())
		}
	case NodeTypeMesh:
		b := n.MeshBounds()
		return b.Width, b.Height
	case NodeTypeText:
		if n.TextBlock != nil {
			return n.TextBlock.Measure()
		}
	}
	return 0, 0
}
