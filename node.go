package pie

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape tests a point in the node's local space. Slices use HitWedge so a
// pointer in the wedge's bounding box but outside its angle span misses.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext describes a pointer event delivered to a node.
type PointerContext struct {
	Node     *Node
	UserData any

	// GlobalX/Y are world coordinates, LocalX/Y the node's own space and
	// ScreenX/Y the raw viewport position.
	GlobalX, GlobalY float64
	LocalX, LocalY   float64
	ScreenX, ScreenY float64

	Button    MouseButton
	Modifiers KeyModifiers
}

// ClickContext describes a click. Clicks bubble from the hit node up
// through its ancestors and finally to scene-level handlers; any callback can
// end that walk with StopPropagation.
type ClickContext struct {
	Node     *Node
	UserData any

	GlobalX, GlobalY float64
	LocalX, LocalY   float64

	Button    MouseButton
	Modifiers KeyModifiers

	stopped *bool
}

// StopPropagation prevents ancestors and scene-level handlers from seeing
// this click.
func (c ClickContext) StopPropagation() {
	if c.stopped != nil {
		*c.stopped = true
	}
}

// Stopped reports whether a callback already called StopPropagation.
func (c ClickContext) Stopped() bool {
	return c.stopped != nil && *c.stopped
}

// Scenes are driven from the ebiten game loop only.
var lastNodeID uint32

// Node is one element of a chart's scene graph: the surface container, a
// slice group, its wedge mesh or a label. All kinds share this struct and
// Type selects which of the kind-specific fields are meaningful.
type Node struct {
	ID   uint32
	Name string
	Type NodeType

	Parent   *Node
	children []*Node

	// Local transform. Rotation is in radians, the pivot in local units.
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	PivotX, PivotY float64

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	Alpha        float64
	Visible      bool
	Renderable   bool
	Interactable bool

	ZIndex      int
	RenderLayer uint8

	// UserData carries the slice index for wedge nodes.
	UserData any

	BlendMode BlendMode
	Color     Color

	// NodeTypeImage
	customImage *ebiten.Image

	// NodeTypeMesh
	Vertices         []ebiten.Vertex
	Indices          []uint16
	MeshImage        *ebiten.Image
	transformedVerts []ebiten.Vertex
	meshAABB         Rect
	meshAABBDirty    bool

	// NodeTypeText
	TextBlock *TextBlock

	HitShape HitShape

	// OnUpdate runs once per Scene.Update with the frame delta in seconds.
	OnUpdate func(dt float64)

	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnPointerMove  func(PointerContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)
	OnClick        func(ClickContext)

	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
}

func newNode(name string, typ NodeType) *Node {
	lastNodeID++
	return &Node{
		ID:             lastNodeID,
		Name:           name,
		Type:           typ,
		ScaleX:         1,
		ScaleY:         1,
		Alpha:          1,
		Color:          ColorWhite,
		Visible:        true,
		Renderable:     true,
		transformDirty: true,
		childrenSorted: true,
	}
}

// NewContainer creates a node that only groups and positions its children.
func NewContainer(name string) *Node {
	return newNode(name, NodeTypeContainer)
}

// NewMesh creates a node drawn with DrawTriangles using img as the source
// texture. NewPolygon supplies a white pixel for flat-colored shapes.
func NewMesh(name string, img *ebiten.Image, vertices []ebiten.Vertex, indices []uint16) *Node {
	n := newNode(name, NodeTypeMesh)
	n.MeshImage = img
	n.Vertices = vertices
	n.Indices = indices
	n.meshAABBDirty = true
	return n
}

// NewText creates a text node. Font may be nil; such a node measures as
// empty and draws nothing.
func NewText(name string, content string, font *Font) *Node {
	n := newNode(name, NodeTypeText)
	n.TextBlock = &TextBlock{
		Content:     content,
		Font:        font,
		Color:       ColorWhite,
		layoutDirty: true,
	}
	return n
}

// NewImage creates a node that draws a caller-owned image at its origin.
// The caller may redraw into img at any time.
func NewImage(name string, img *ebiten.Image) *Node {
	n := newNode(name, NodeTypeImage)
	n.customImage = img
	return n
}

// Image returns the image drawn by a NodeTypeImage node, or nil.
func (n *Node) Image() *ebiten.Image {
	return n.customImage
}

// AddChild attaches child as the last child of n, detaching it from any
// previous parent. It panics on a nil child or when child is n or one of
// its ancestors.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("pie: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	for p := n; p != nil; p = p.Parent {
		if p == child {
			panic("pie: adding child would create a cycle")
		}
	}
	if child.Parent != nil {
		child.Parent.unlink(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	child.markSubtreeDirty()
}

// RemoveChild detaches child from n. It panics if n is not child's parent.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("pie: child's parent is not this node")
	}
	n.unlink(child)
	child.Parent = nil
	n.childrenSorted = false
	child.markSubtreeDirty()
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// DisposeChildren disposes every child of n and leaves n empty. The
// renderer calls it on the surface before each redraw.
func (n *Node) DisposeChildren() {
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	clear(n.children)
	n.children = n.children[:0]
	n.sortedChildren = n.sortedChildren[:0]
	n.childrenSorted = true
}

// Children returns n's children in insertion order. Callers must not modify
// the slice.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex sets the draw and hit-test order among siblings.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// Dispose detaches n and releases it along with its whole subtree. Disposing
// twice is a no-op.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	if n.TextBlock != nil {
		n.TextBlock.release()
	}
	*n = Node{Name: n.Name, Type: n.Type, disposed: true}
}

// IsDisposed reports whether n has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// unlink drops child from n.children, keeping sibling order. child.Parent
// is left for the caller.
func (n *Node) unlink(child *Node) {
	for i, c := range n.children {
		if c != child {
			continue
		}
		last := len(n.children) - 1
		copy(n.children[i:], n.children[i+1:])
		n.children[last] = nil
		n.children = n.children[:last]
		return
	}
}

func (n *Node) markSubtreeDirty() {
	n.transformDirty = true
	for _, child := range n.children {
		child.markSubtreeDirty()
	}
}
