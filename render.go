package pie

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandImage CommandType = iota // DrawImage of a caller-owned image
	CommandMesh                     // DrawTriangles, used for wedges and strokes
	CommandText                     // DrawImage of a label's cached raster
)

// RenderCommand is one draw call collected from the scene graph. Transform
// maps the node's local space straight to screen pixels.
type RenderCommand struct {
	Type        CommandType
	Transform   [6]float64
	Color       Color
	BlendMode   BlendMode
	RenderLayer uint8

	// treeOrder is the position in depth-first draw order and breaks ties
	// within a layer.
	treeOrder int

	// Mesh vertices are already in screen space with the tint applied.
	meshVerts []ebiten.Vertex
	meshInds  []uint16
	meshImage *ebiten.Image

	image *ebiten.Image
	text  *TextBlock
}

// traverse collects commands for n and its visible subtree, children in
// ZIndex order. World transforms must already be current.
func (s *Scene) traverse(n *Node, view [6]float64, treeOrder *int) {
	if !n.Visible {
		return
	}
	if s.debug {
		s.debugCheckChildCount(n)
	}
	if n.Renderable {
		if cmd, ok := s.command(n, view); ok {
			*treeOrder++
			cmd.treeOrder = *treeOrder
			s.commands = append(s.commands, cmd)
		}
	}
	if len(n.children) == 0 {
		return
	}
	if !n.childrenSorted {
		s.rebuildSortedChildren(n)
	}
	children := n.children
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		s.traverse(child, view, treeOrder)
	}
}

// command builds the draw call for n. Fully transparent nodes and nodes
// with nothing to draw yield ok == false.
func (s *Scene) command(n *Node, view [6]float64) (cmd RenderCommand, ok bool) {
	tint := n.Color.WithAlpha(n.Color.A * n.worldAlpha)
	if tint.A <= 0 {
		return cmd, false
	}
	cmd = RenderCommand{
		Transform:   multiplyAffine(view, n.worldTransform),
		Color:       tint,
		BlendMode:   n.BlendMode,
		RenderLayer: n.RenderLayer,
	}

	switch n.Type {
	case NodeTypeMesh:
		if len(n.Vertices) == 0 || len(n.Indices) == 0 {
			return cmd, false
		}
		cmd.Type = CommandMesh
		cmd.meshVerts = ensureTransformedVerts(n)
		transformVertices(n.Vertices, cmd.meshVerts, cmd.Transform, tint)
		cmd.meshInds = n.Indices
		cmd.meshImage = n.MeshImage
		cmd.Color = Color{} // baked into the vertices
	case NodeTypeImage:
		if n.customImage == nil {
			return cmd, false
		}
		cmd.Type = CommandImage
		cmd.image = n.customImage
	case NodeTypeText:
		tb := n.TextBlock
		if tb == nil || tb.Font == nil || tb.Content == "" {
			return cmd, false
		}
		ox, oy := tb.origin()
		cmd.Type = CommandText
		cmd.Transform = multiplyAffine(cmd.Transform, [6]float64{1, 0, 0, 1, ox, oy})
		cmd.text = tb
	default:
		return cmd, false
	}
	return cmd, true
}

// rebuildSortedChildren refreshes n's ZIndex-ordered child list. Siblings
// with equal ZIndex keep insertion order.
func (s *Scene) rebuildSortedChildren(n *Node) {
	n.sortedChildren = append(n.sortedChildren[:0], n.children...)
	slices.SortStableFunc(n.sortedChildren, func(a, b *Node) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
	n.childrenSorted = true
}

// sortCommands orders commands by RenderLayer, then by tree order, so the
// hover overlay layer always lands above the chart.
func (s *Scene) sortCommands() {
	slices.SortStableFunc(s.commands, func(a, b RenderCommand) int {
		if c := cmp.Compare(a.RenderLayer, b.RenderLayer); c != 0 {
			return c
		}
		return cmp.Compare(a.treeOrder, b.treeOrder)
	})
}

// submitCommands draws every command to target in order.
func (s *Scene) submitCommands(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandMesh:
			submitMesh(target, cmd)
		case CommandImage:
			submitImage(target, cmd.image, cmd, &op)
		case CommandText:
			if img := cmd.text.image(); img != nil {
				submitImage(target, img, cmd, &op)
			}
		}
	}
}

func submitImage(target, img *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	op.GeoM = commandGeoM(cmd)
	op.ColorScale.Reset()
	op.ColorScale.ScaleWithColor(cmd.Color.toRGBA())
	op.Blend = cmd.BlendMode.EbitenBlend()
	target.DrawImage(img, op)
}

func submitMesh(target *ebiten.Image, cmd *RenderCommand) {
	if cmd.meshImage == nil {
		return
	}
	op := ebiten.DrawTrianglesOptions{
		Blend:          cmd.BlendMode.EbitenBlend(),
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		AntiAlias:      true,
	}
	target.DrawTriangles(cmd.meshVerts, cmd.meshInds, cmd.meshImage, &op)
}

func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	t := cmd.Transform
	var m ebiten.GeoM
	m.SetElement(0, 0, t[0])
	m.SetElement(1, 0, t[1])
	m.SetElement(0, 1, t[2])
	m.SetElement(1, 1, t[3])
	m.SetElement(0, 2, t[4])
	m.SetElement(1, 2, t[5])
	return m
}
