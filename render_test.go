package pie

import (
	"testing"
)

func triangle(name string) *Node {
	return NewPolygon(name, []Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}})
}

// --- Command emission ---

func TestSinglePolygonEmitsOneMeshCommand(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(triangle("t"))

	s.buildCommands()

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	if s.commands[0].Type != CommandMesh {
		t.Errorf("Type = %d, want CommandMesh", s.commands[0].Type)
	}
}

func TestContainerEmitsNothing(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(NewContainer("c"))
	s.buildCommands()
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestSkippedNodes(t *testing.T) {
	tests := []struct {
		name  string
		setup func(root *Node)
	}{
		{"invisible", func(root *Node) {
			n := triangle("t")
			n.Visible = false
			root.AddChild(n)
		}},
		{"invisible subtree", func(root *Node) {
			parent := NewContainer("parent")
			parent.Visible = false
			parent.AddChild(triangle("t"))
			root.AddChild(parent)
		}},
		{"not renderable", func(root *Node) {
			n := triangle("t")
			n.Renderable = false
			root.AddChild(n)
		}},
		{"zero alpha", func(root *Node) {
			n := triangle("t")
			n.Alpha = 0
			root.AddChild(n)
		}},
		{"empty mesh", func(root *Node) {
			root.AddChild(NewPolygon("empty", nil))
		}},
		{"text without font", func(root *Node) {
			root.AddChild(NewText("t", "hello", nil))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			tt.setup(s.Root())
			s.buildCommands()
			if len(s.commands) != 0 {
				t.Errorf("commands = %d, want 0", len(s.commands))
			}
		})
	}
}

func TestNonRenderableStillTraversesChildren(t *testing.T) {
	s := NewScene()
	parent := triangle("parent")
	parent.Renderable = false
	parent.AddChild(triangle("child"))
	s.Root().AddChild(parent)

	s.buildCommands()
	if len(s.commands) != 1 {
		t.Errorf("commands = %d, want 1 (child only)", len(s.commands))
	}
}

// --- Transforms ---

func TestMeshCommandUsesViewTimesWorld(t *testing.T) {
	s := NewScene()
	s.Camera().SetViewport(Rect{Width: 200, Height: 100})
	n := triangle("t")
	n.SetPosition(5, 5)
	s.Root().AddChild(n)

	s.buildCommands()

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	v := s.commands[0].meshVerts[0]
	// World (5,5) lands at screen (105,55) with the origin centered.
	if !approxEqual(float64(v.DstX), 105, 1e-4) || !approxEqual(float64(v.DstY), 55, 1e-4) {
		t.Errorf("vertex 0 = (%v,%v), want (105,55)", v.DstX, v.DstY)
	}
	// The node's own world transform stays free of the view.
	if n.worldTransform[4] != 5 || n.worldTransform[5] != 5 {
		t.Errorf("world translation = (%v,%v), want (5,5)", n.worldTransform[4], n.worldTransform[5])
	}
}

func TestMeshCommandBakesWorldAlpha(t *testing.T) {
	s := NewScene()
	group := NewContainer("g")
	group.Alpha = 0.5
	n := triangle("t")
	n.Color = Color{1, 0, 0, 1}
	group.AddChild(n)
	s.Root().AddChild(group)

	s.buildCommands()

	v := s.commands[0].meshVerts[0]
	if !approxEqual(float64(v.ColorA), 0.5, 1e-6) || !approxEqual(float64(v.ColorR), 0.5, 1e-6) {
		t.Errorf("vertex color = (%v,_,_,%v), want premultiplied (0.5,_,_,0.5)", v.ColorR, v.ColorA)
	}
}

func TestTextCommandIncludesOrigin(t *testing.T) {
	font, err := DefaultFont(10)
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()
	n := NewText("label", "Apples", font)
	n.TextBlock.Align = TextAlignCenter
	n.TextBlock.Baseline = true
	s.Root().AddChild(n)

	s.buildCommands()

	if len(s.commands) != 1 || s.commands[0].Type != CommandText {
		t.Fatalf("commands = %+v, want one text command", s.commands)
	}
	w, _ := n.TextBlock.Measure()
	tr := s.commands[0].Transform
	if !approxEqual(tr[4], -w/2, 1e-6) {
		t.Errorf("tx = %v, want %v", tr[4], -w/2)
	}
	if !approxEqual(tr[5], -font.Ascent(), 1e-6) {
		t.Errorf("ty = %v, want %v", tr[5], -font.Ascent())
	}
}

// --- Ordering ---

func TestTreeOrderFollowsChildren(t *testing.T) {
	s := NewScene()
	a, b, c := triangle("a"), triangle("b"), triangle("c")
	s.Root().AddChild(a)
	s.Root().AddChild(b)
	s.Root().AddChild(c)

	s.buildCommands()
	s.sortCommands()

	for i := 1; i < len(s.commands); i++ {
		if s.commands[i-1].treeOrder >= s.commands[i].treeOrder {
			t.Errorf("command %d out of tree order", i)
		}
	}
}

func TestZIndexReordersSiblings(t *testing.T) {
	s := NewScene()
	back := triangle("back")
	front := triangle("front")
	front.Color = Color{1, 0, 0, 1}
	s.Root().AddChild(front)
	s.Root().AddChild(back)
	front.SetZIndex(1)

	s.buildCommands()
	s.sortCommands()

	if len(s.commands) != 2 {
		t.Fatalf("commands = %d, want 2", len(s.commands))
	}
	if s.commands[1].meshVerts[0].ColorG != 0 {
		t.Error("higher ZIndex should draw last")
	}
}

func TestRenderLayerSortsFirst(t *testing.T) {
	s := NewScene()
	overlay := triangle("overlay")
	overlay.RenderLayer = 200
	s.Root().AddChild(overlay)
	s.Root().AddChild(triangle("a"))
	s.Root().AddChild(triangle("b"))

	s.buildCommands()
	s.sortCommands()

	last := s.commands[len(s.commands)-1]
	if last.RenderLayer != 200 {
		t.Errorf("last command layer = %d, want 200", last.RenderLayer)
	}
	if s.commands[0].treeOrder > s.commands[1].treeOrder {
		t.Error("same-layer commands should keep tree order")
	}
}

func TestSortCommandsStable(t *testing.T) {
	s := NewScene()
	layers := []uint8{3, 1, 2, 1, 3, 0, 2, 1}
	for i, l := range layers {
		s.commands = append(s.commands, RenderCommand{RenderLayer: l, treeOrder: i})
	}
	s.sortCommands()
	for i := 1; i < len(s.commands); i++ {
		a, b := s.commands[i-1], s.commands[i]
		if a.RenderLayer > b.RenderLayer || (a.RenderLayer == b.RenderLayer && a.treeOrder > b.treeOrder) {
			t.Fatalf("not sorted at %d: %+v then %+v", i, a, b)
		}
	}
}

func TestCommandGeoM(t *testing.T) {
	cmd := RenderCommand{Transform: [6]float64{2, 0, 0, 3, 10, 20}}
	g := commandGeoM(&cmd)
	x, y := g.Apply(1, 1)
	if !approxEqual(x, 12, 1e-9) || !approxEqual(y, 23, 1e-9) {
		t.Errorf("Apply(1,1) = (%v,%v), want (12,23)", x, y)
	}
}
