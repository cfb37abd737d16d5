package pie

import (
	"math"
	"testing"
)

// pump feeds every queued synthetic event through the pointer state machine,
// one per frame, without reading the real mouse.
func pump(s *Scene) {
	for s.PendingInjections() > 0 {
		updateWorldTransform(s.root, identityTransform, 1.0, false)
		s.processInjectedInput()
	}
}

func square(name string, x, y, size float64) *Node {
	n := NewPolygon(name, []Vec2{{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size}})
	n.SetPosition(x, y)
	n.Interactable = true
	return n
}

func TestHitShapes(t *testing.T) {
	tests := []struct {
		name  string
		shape HitShape
		x, y  float64
		want  bool
	}{
		{"rect inside", HitRect{Width: 10, Height: 10}, 5, 5, true},
		{"rect edge", HitRect{Width: 10, Height: 10}, 10, 10, true},
		{"rect outside", HitRect{Width: 10, Height: 10}, 11, 5, false},
		{"rect offset", HitRect{X: -5, Y: -5, Width: 10, Height: 10}, -4, 4, true},
		{"wedge inside", HitWedge{OuterRadius: 5, EndAngle: math.Pi / 2}, 2, -2, true},
		{"wedge outside span", HitWedge{OuterRadius: 5, EndAngle: math.Pi / 2}, -2, -2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitTestTopmostWins(t *testing.T) {
	s := NewScene()
	bottom := square("bottom", 0, 0, 50)
	top := square("top", 25, 25, 50)
	s.Root().AddChild(bottom)
	s.Root().AddChild(top)
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if got := s.HitTest(30, 30); got != top {
		t.Errorf("HitTest(30,30) = %v, want top", got)
	}
	if got := s.HitTest(10, 10); got != bottom {
		t.Errorf("HitTest(10,10) = %v, want bottom", got)
	}
	if got := s.HitTest(200, 200); got != nil {
		t.Errorf("HitTest(200,200) = %v, want nil", got)
	}
}

func TestHitTestRequiresInteractableAncestors(t *testing.T) {
	s := NewScene()
	group := NewContainer("group")
	n := square("n", 0, 0, 10)
	group.AddChild(n)
	s.Root().AddChild(group)
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if got := s.HitTest(5, 5); got != nil {
		t.Error("non-interactable parent should hide its subtree")
	}
	group.Interactable = true
	if got := s.HitTest(5, 5); got != n {
		t.Error("interactable parent should expose its child")
	}
}

func TestHitTestSkipsInvisible(t *testing.T) {
	s := NewScene()
	n := square("n", 0, 0, 10)
	n.Visible = false
	s.Root().AddChild(n)
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	if s.HitTest(5, 5) != nil {
		t.Error("invisible node should not be hit")
	}
}

func TestHitTestUsesHitShapeOverBounds(t *testing.T) {
	s := NewScene()
	n := square("n", 0, 0, 10)
	n.HitShape = HitWedge{OuterRadius: 2, StartAngle: math.Pi / 2, EndAngle: math.Pi}
	s.Root().AddChild(n)
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.HitTest(8, 8) != nil {
		t.Error("HitShape should replace mesh bounds")
	}
	if s.HitTest(0.5, 0.5) != n {
		t.Error("point inside HitShape should hit")
	}
}

func TestHitTestThroughCamera(t *testing.T) {
	s := NewScene()
	s.Camera().SetViewport(Rect{Width: 200, Height: 100})
	n := square("n", -5, -5, 10)
	s.Root().AddChild(n)

	clicked := false
	n.OnClick = func(ClickContext) { clicked = true }
	// Screen center is the world origin.
	s.InjectClick(100, 50)
	pump(s)
	if !clicked {
		t.Error("click at screen center should hit the node at the world origin")
	}
}

func TestClickFiresOnRelease(t *testing.T) {
	s := NewScene()
	n := square("n", 0, 0, 10)
	s.Root().AddChild(n)
	var got ClickContext
	count := 0
	n.OnClick = func(ctx ClickContext) { count++; got = ctx }

	s.InjectPress(5, 5)
	pump(s)
	if count != 0 {
		t.Fatal("click should not fire on press")
	}
	s.InjectRelease(5, 5)
	pump(s)
	if count != 1 {
		t.Fatalf("clicks = %d, want 1", count)
	}
	if got.Node != n || got.LocalX != 5 || got.LocalY != 5 {
		t.Errorf("ctx = %+v, want node n at local (5,5)", got)
	}
}

func TestClickCancelledWhenReleasedElsewhere(t *testing.T) {
	s := NewScene()
	n := square("n", 0, 0, 10)
	s.Root().AddChild(n)
	count := 0
	n.OnClick = func(ClickContext) { count++ }

	s.InjectPress(5, 5)
	s.InjectRelease(50, 50)
	pump(s)
	if count != 0 {
		t.Errorf("clicks = %d, want 0", count)
	}
}

func TestClickBubblesToAncestorsThenScene(t *testing.T) {
	s := NewScene()
	group := NewContainer("group")
	group.Interactable = true
	n := square("n", 0, 0, 10)
	group.AddChild(n)
	s.Root().AddChild(group)

	var order []string
	n.OnClick = func(ClickContext) { order = append(order, "node") }
	group.OnClick = func(ClickContext) { order = append(order, "group") }
	s.OnClick(func(ClickContext) { order = append(order, "scene") })

	s.InjectClick(5, 5)
	pump(s)

	want := []string{"node", "group", "scene"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestStopPropagationKeepsBackgroundHandlersQuiet(t *testing.T) {
	s := NewScene()
	group := NewContainer("group")
	group.Interactable = true
	n := square("n", 0, 0, 10)
	group.AddChild(n)
	s.Root().AddChild(group)

	groupClicks, sceneClicks := 0, 0
	group.OnClick = func(ctx ClickContext) {
		groupClicks++
		ctx.StopPropagation()
	}
	s.OnClick(func(ClickContext) { sceneClicks++ })

	s.InjectClick(5, 5)
	pump(s)
	if groupClicks != 1 || sceneClicks != 0 {
		t.Errorf("group/scene clicks = %d/%d, want 1/0", groupClicks, sceneClicks)
	}

	// A background click reaches the scene with no node.
	var bg ClickContext
	s.OnClick(func(ctx ClickContext) { bg = ctx })
	s.InjectClick(100, 100)
	pump(s)
	if sceneClicks != 1 {
		t.Errorf("scene clicks after background click = %d, want 1", sceneClicks)
	}
	if bg.Node != nil {
		t.Errorf("background click Node = %v, want nil", bg.Node)
	}
}

func TestClickModifiersDelivered(t *testing.T) {
	s := NewScene()
	n := square("n", 0, 0, 10)
	s.Root().AddChild(n)
	var mods KeyModifiers
	n.OnClick = func(ctx ClickContext) { mods = ctx.Modifiers }

	s.InjectClickWithModifiers(5, 5, ModCtrl)
	pump(s)
	if mods&ModCtrl == 0 {
		t.Errorf("Modifiers = %v, want ModCtrl", mods)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	s := NewScene()
	count := 0
	h := s.OnClick(func(ClickContext) { count++ })
	s.InjectClick(1, 1)
	pump(s)
	h.Remove()
	s.InjectClick(1, 1)
	pump(s)
	if count != 1 {
		t.Errorf("clicks = %d, want 1", count)
	}
	// Removing twice is harmless.
	h.Remove()
	CallbackHandle{}.Remove()
}

func TestEnterLeave(t *testing.T) {
	s := NewScene()
	a := square("a", 0, 0, 10)
	b := square("b", 20, 0, 10)
	s.Root().AddChild(a)
	s.Root().AddChild(b)

	var events []string
	a.OnPointerEnter = func(PointerContext) { events = append(events, "enter a") }
	a.OnPointerLeave = func(PointerContext) { events = append(events, "leave a") }
	b.OnPointerEnter = func(PointerContext) { events = append(events, "enter b") }
	b.OnPointerMove = func(PointerContext) { events = append(events, "move b") }

	s.InjectMove(5, 5)
	s.InjectMove(25, 5)
	s.InjectMove(26, 5)
	pump(s)

	want := []string{"enter a", "leave a", "enter b", "move b", "move b"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}

func TestDisposedHoverNodeForgotten(t *testing.T) {
	s := NewScene()
	a := square("a", 0, 0, 10)
	s.Root().AddChild(a)
	leaves := 0
	a.OnPointerLeave = func(PointerContext) { leaves++ }

	s.InjectMove(5, 5)
	pump(s)
	a.Dispose()

	replacement := square("b", 0, 0, 10)
	entered := false
	replacement.OnPointerEnter = func(PointerContext) { entered = true }
	s.Root().AddChild(replacement)

	s.InjectMove(6, 5)
	pump(s)
	if leaves != 0 {
		t.Error("disposed node should not receive leave")
	}
	if !entered {
		t.Error("replacement under the pointer should receive enter")
	}
}

func TestScenePointerHandlersRunBeforeNode(t *testing.T) {
	s := NewScene()
	n := square("n", 0, 0, 10)
	s.Root().AddChild(n)
	var order []string
	s.OnPointerDown(func(PointerContext) { order = append(order, "scene") })
	n.OnPointerDown = func(PointerContext) { order = append(order, "node") }

	s.InjectPress(5, 5)
	pump(s)
	if len(order) != 2 || order[0] != "scene" || order[1] != "node" {
		t.Errorf("order = %v, want [scene node]", order)
	}
}
