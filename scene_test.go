package pie

import "testing"

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.root == nil {
		t.Fatal("root should not be nil")
	}
	if s.root.Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.root.Name, "root")
	}
	if s.root.Type != NodeTypeContainer {
		t.Errorf("root.Type = %d, want NodeTypeContainer", s.root.Type)
	}
	if !s.root.Interactable {
		t.Error("root should be interactable")
	}
	if s.Camera() == nil || s.Camera().Zoom != 1 {
		t.Error("scene should start with a unit-zoom camera")
	}
	if s.Logger() == nil {
		t.Error("scene should start with a logger")
	}
}

func TestSceneRoot(t *testing.T) {
	s := NewScene()
	if s.Root() != s.root {
		t.Error("Root() should return the internal root node")
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	if !s.debug || !globalDebug {
		t.Error("debug should be true")
	}
	s.SetDebugMode(false)
	if s.debug || globalDebug {
		t.Error("debug should be false")
	}
}

func TestSceneSetLoggerNil(t *testing.T) {
	s := NewScene()
	s.SetLogger(nil)
	if s.Logger() == nil {
		t.Error("nil logger should fall back to the default")
	}
}

func TestSceneResize(t *testing.T) {
	s := NewScene()
	s.Resize(320, 240)
	vp := s.Camera().Viewport
	if vp.Width != 320 || vp.Height != 240 {
		t.Errorf("viewport = %v, want 320x240", vp)
	}
}

func TestSceneStepRunsOnUpdate(t *testing.T) {
	s := NewScene()
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	s.Root().AddChild(parent)

	var got []float64
	parent.OnUpdate = func(dt float64) { got = append(got, dt) }
	child.OnUpdate = func(dt float64) { got = append(got, dt*10) }

	s.step(0.5)
	if len(got) != 2 || got[0] != 0.5 || got[1] != 5 {
		t.Errorf("OnUpdate calls = %v, want [0.5 5]", got)
	}
	if s.Frame() != 1 {
		t.Errorf("Frame = %d, want 1", s.Frame())
	}
}

func TestSceneStepToleratesDisposeInOnUpdate(t *testing.T) {
	s := NewScene()
	a := NewContainer("a")
	b := NewContainer("b")
	s.Root().AddChild(a)
	s.Root().AddChild(b)
	a.OnUpdate = func(float64) { b.Dispose() }
	b.OnUpdate = func(float64) { t.Error("disposed node should not update") }

	s.step(1.0 / 60)
	if s.Root().NumChildren() != 1 {
		t.Errorf("children = %d, want 1", s.Root().NumChildren())
	}
}

func TestSceneStepRefreshesTransformsBeforeUpdate(t *testing.T) {
	s := NewScene()
	n := NewContainer("n")
	n.SetPosition(7, 0)
	s.Root().AddChild(n)
	var wx float64
	n.OnUpdate = func(float64) { wx, _ = n.LocalToWorld(0, 0) }

	s.step(1.0 / 60)
	if wx != 7 {
		t.Errorf("world x during OnUpdate = %v, want 7", wx)
	}
}
