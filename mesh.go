package pie

import (
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// transformVertices writes src mapped through m into dst, multiplying each
// vertex color by tint. Output colors are premultiplied, matching
// ColorScaleModePremultipliedAlpha in submitMesh.
func transformVertices(src, dst []ebiten.Vertex, m [6]float64, tint Color) {
	a := float32(tint.A)
	r, g, b := float32(tint.R)*a, float32(tint.G)*a, float32(tint.B)*a
	for i, v := range src {
		x, y := transformPoint(m, float64(v.DstX), float64(v.DstY))
		v.DstX, v.DstY = float32(x), float32(y)
		v.ColorR *= r
		v.ColorG *= g
		v.ColorB *= b
		v.ColorA *= a
		dst[i] = v
	}
}

func computeMeshAABB(verts []ebiten.Vertex) Rect {
	if len(verts) == 0 {
		return Rect{}
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := minX, maxX
	for _, v := range verts {
		x, y := float64(v.DstX), float64(v.DstY)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ensureTransformedVerts returns n's screen-space vertex buffer sized to
// its mesh. The buffer only grows, so a redrawn wedge reuses it.
func ensureTransformedVerts(n *Node) []ebiten.Vertex {
	if cap(n.transformedVerts) < len(n.Vertices) {
		n.transformedVerts = make([]ebiten.Vertex, len(n.Vertices))
	}
	n.transformedVerts = n.transformedVerts[:len(n.Vertices)]
	return n.transformedVerts
}

// InvalidateMeshAABB must be called after editing Vertices in place.
func (n *Node) InvalidateMeshAABB() {
	n.meshAABBDirty = true
}

// MeshBounds returns the local bounding box of a mesh node's vertices.
func (n *Node) MeshBounds() Rect {
	if n.meshAABBDirty {
		n.meshAABB = computeMeshAABB(n.Vertices)
		n.meshAABBDirty = false
	}
	return n.meshAABB
}

var (
	whitePixelOnce  sync.Once
	whitePixelImage *ebiten.Image
)

// whitePixel returns a lazily-initialized 1x1 white image. Untextured meshes
// sample its center and get their color from vertex tint.
func whitePixel() *ebiten.Image {
	whitePixelOnce.Do(func() {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	})
	return whitePixelImage
}

// NewPolygon creates an untextured mesh filling the polygon described by
// points. The first point is used as the fan hub, so the polygon must be
// star-shaped around it (true of any pie wedge whose first point is the
// center).
func NewPolygon(name string, points []Vec2) *Node {
	verts, inds := buildPolygonFan(points)
	return NewMesh(name, whitePixel(), verts, inds)
}

// SetPolygonPoints replaces a polygon mesh's outline, reusing its buffers.
func SetPolygonPoints(n *Node, points []Vec2) {
	verts, inds := buildPolygonFan(points)
	setMeshData(n, verts, inds)
}

// NewStroke creates an untextured mesh outlining the closed polygon described
// by points with a band of the given width centered on each edge.
func NewStroke(name string, points []Vec2, width float64) *Node {
	verts, inds := buildStroke(points, width)
	return NewMesh(name, whitePixel(), verts, inds)
}

// SetStrokePoints replaces a stroke mesh's outline, reusing its buffers.
func SetStrokePoints(n *Node, points []Vec2, width float64) {
	verts, inds := buildStroke(points, width)
	setMeshData(n, verts, inds)
}

func setMeshData(n *Node, verts []ebiten.Vertex, inds []uint16) {
	if cap(n.Vertices) >= len(verts) {
		n.Vertices = n.Vertices[:len(verts)]
		copy(n.Vertices, verts)
	} else {
		n.Vertices = verts
	}
	if cap(n.Indices) >= len(inds) {
		n.Indices = n.Indices[:len(inds)]
		copy(n.Indices, inds)
	} else {
		n.Indices = inds
	}
	n.InvalidateMeshAABB()
}

func solidVertex(x, y float64) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: 0.5, SrcY: 0.5,
		ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
	}
}

// buildPolygonFan triangulates points as a fan around points[0].
func buildPolygonFan(points []Vec2) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}
	verts := make([]ebiten.Vertex, n)
	inds := make([]uint16, (n-2)*3)
	for i, p := range points {
		verts[i] = solidVertex(p.X, p.Y)
	}
	for i := 0; i < n-2; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16(i + 2)
	}
	return verts, inds
}

// buildStroke emits one quad per edge of the closed polygon. Joins are left
// open; at one pixel wide the gaps are not visible.
func buildStroke(points []Vec2, width float64) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 2 || width <= 0 {
		return nil, nil
	}
	half := width / 2
	verts := make([]ebiten.Vertex, 0, n*4)
	inds := make([]uint16, 0, n*6)
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		base := uint16(len(verts))
		verts = append(verts,
			solidVertex(a.X+nx, a.Y+ny),
			solidVertex(b.X+nx, b.Y+ny),
			solidVertex(b.X-nx, b.Y-ny),
			solidVertex(a.X-nx, a.Y-ny),
		)
		inds = append(inds, base, base+1, base+2, base, base+2, base+3)
	}
	return verts, inds
}
