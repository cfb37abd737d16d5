package pie

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HitRect is an axis-aligned hit area in local coordinates, edges included.
type HitRect struct {
	X, Y, Width, Height float64
}

func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

type pointerState struct {
	seen         bool
	down         bool
	lastX, lastY float64
	button       MouseButton // button held since the press

	pressed *Node // hit at press time; a click needs the release over it too
	hovered *Node // target of the last enter
}

type handler[C any] struct {
	id uint32
	fn func(C)
}

// handlerRegistry holds scene-level callbacks. Pointer handlers are indexed
// by EventType; the EventClick slot stays empty since clicks carry their own
// context type.
type handlerRegistry struct {
	pointer [EventPointerLeave + 1][]handler[PointerContext]
	click   []handler[ClickContext]
	nextID  uint32
}

// CallbackHandle removes a scene-level callback registered with one of the
// Scene.On* methods.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters the callback. Removing twice, or a zero handle, is a
// no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if h.event == EventClick {
		h.reg.click = dropHandler(h.reg.click, h.id)
		return
	}
	h.reg.pointer[h.event] = dropHandler(h.reg.pointer[h.event], h.id)
}

func dropHandler[C any](list []handler[C], id uint32) []handler[C] {
	for i := range list {
		if list[i].id != id {
			continue
		}
		last := len(list) - 1
		copy(list[i:], list[i+1:])
		list[last] = handler[C]{}
		return list[:last]
	}
	return list
}

func (r *handlerRegistry) onPointer(event EventType, fn func(PointerContext)) CallbackHandle {
	r.nextID++
	r.pointer[event] = append(r.pointer[event], handler[PointerContext]{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

// OnPointerDown registers fn for every button press, over a node or not.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.handlers.onPointer(EventPointerDown, fn)
}

func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.handlers.onPointer(EventPointerUp, fn)
}

// OnPointerMove registers fn for pointer motion while no button is held.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.handlers.onPointer(EventPointerMove, fn)
}

// OnPointerEnter registers fn for the pointer arriving over a node.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.handlers.onPointer(EventPointerEnter, fn)
}

// OnPointerLeave registers fn for the pointer leaving a node, whether to
// another node or to the background.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.handlers.onPointer(EventPointerLeave, fn)
}

// OnClick registers a scene-level click callback. It runs after the clicked
// node and its ancestors, and only if none of them stopped propagation.
// Clicks on empty space reach it with a nil Node.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	r := &s.handlers
	r.nextID++
	r.click = append(r.click, handler[ClickContext]{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: EventClick}
}

// hits reports whether the local point is inside n. HitShape wins over the
// node's drawn bounds; containers without a HitShape never hit.
func hits(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	switch n.Type {
	case NodeTypeMesh:
		return n.MeshBounds().Contains(lx, ly)
	case NodeTypeText:
		return n.TextBlock != nil && n.TextBlock.bounds().Contains(lx, ly)
	case NodeTypeImage:
		w, h := nodeDimensions(n)
		return HitRect{Width: w, Height: h}.Contains(lx, ly)
	}
	return false
}

// collectInteractable appends hit candidates under n in draw order. A
// hidden or non-interactable node hides its whole subtree.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	if len(n.children) == 0 {
		return buf
	}
	if !n.childrenSorted {
		s.rebuildSortedChildren(n)
	}
	children := n.children
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// HitTest returns the topmost interactable node at the world point, or nil
// when the point is over the background.
func (s *Scene) HitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if hits(n, lx, ly) {
			return n
		}
	}
	return nil
}

var modifierKeys = [...]struct {
	key ebiten.Key
	mod KeyModifiers
}{
	{ebiten.KeyShift, ModShift},
	{ebiten.KeyControl, ModCtrl},
	{ebiten.KeyAlt, ModAlt},
	{ebiten.KeyMeta, ModMeta},
}

var pointerButtons = [...]struct {
	eb  ebiten.MouseButton
	btn MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// processInput feeds one pointer sample per frame through the state machine.
// A queued synthetic event replaces the real mouse for that frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	var mods KeyModifiers
	for _, m := range modifierKeys {
		if ebiten.IsKeyPressed(m.key) {
			mods |= m.mod
		}
	}
	pressed, button := false, MouseButtonLeft
	for _, b := range pointerButtons {
		if ebiten.IsMouseButtonPressed(b.eb) {
			pressed, button = true, b.btn
			break
		}
	}
	mx, my := ebiten.CursorPosition()
	s.processPointer(float64(mx), float64(my), pressed, button, mods)
}

// processPointer advances the pointer state machine by one screen-space
// sample: enter/leave first, then press, release with click, or hover move.
func (s *Scene) processPointer(sx, sy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointer
	ev := pointerEvent{sx: sx, sy: sy, button: button, mods: mods}
	ev.wx, ev.wy = s.camera.ScreenToWorld(sx, sy)

	target := s.HitTest(ev.wx, ev.wy)
	if ps.hovered != nil && ps.hovered.IsDisposed() {
		ps.hovered = nil
	}
	if ps.pressed != nil && ps.pressed.IsDisposed() {
		ps.pressed = nil
	}

	if target != ps.hovered {
		if ps.hovered != nil {
			s.firePointer(EventPointerLeave, ps.hovered, ev)
		}
		if target != nil {
			s.firePointer(EventPointerEnter, target, ev)
		}
		ps.hovered = target
	}

	moved := !ps.seen || sx != ps.lastX || sy != ps.lastY
	ps.seen = true
	ps.lastX, ps.lastY = sx, sy

	switch {
	case pressed && !ps.down:
		ps.down, ps.button, ps.pressed = true, button, target
		s.firePointer(EventPointerDown, target, ev)
	case !pressed && ps.down:
		ev.button = ps.button
		if target == ps.pressed {
			s.fireClick(target, ev)
		}
		s.firePointer(EventPointerUp, target, ev)
		ps.down, ps.pressed = false, nil
	case !pressed && moved:
		s.firePointer(EventPointerMove, target, ev)
	}
}

// pointerEvent is one pointer sample in both screen and world space.
type pointerEvent struct {
	sx, sy float64
	wx, wy float64
	button MouseButton
	mods   KeyModifiers
}

func (n *Node) pointerCallback(event EventType) func(PointerContext) {
	switch event {
	case EventPointerDown:
		return n.OnPointerDown
	case EventPointerUp:
		return n.OnPointerUp
	case EventPointerMove:
		return n.OnPointerMove
	case EventPointerEnter:
		return n.OnPointerEnter
	case EventPointerLeave:
		return n.OnPointerLeave
	}
	return nil
}

// firePointer runs scene-level handlers first, then the node's own callback.
func (s *Scene) firePointer(event EventType, node *Node, ev pointerEvent) {
	ctx := PointerContext{
		Node:    node,
		GlobalX: ev.wx, GlobalY: ev.wy,
		ScreenX: ev.sx, ScreenY: ev.sy,
		Button:    ev.button,
		Modifiers: ev.mods,
	}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(ev.wx, ev.wy)
		ctx.UserData = node.UserData
	}
	for _, h := range s.handlers.pointer[event] {
		h.fn(ctx)
	}
	if node == nil {
		return
	}
	if fn := node.pointerCallback(event); fn != nil {
		fn(ctx)
	}
}

// fireClick delivers a click to node, then bubbles it through node's
// ancestors and finally the scene-level handlers until a callback stops it.
func (s *Scene) fireClick(node *Node, ev pointerEvent) {
	stopped := false
	ctx := ClickContext{
		Node:    node,
		GlobalX: ev.wx, GlobalY: ev.wy,
		Button:    ev.button,
		Modifiers: ev.mods,
		stopped:   &stopped,
	}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(ev.wx, ev.wy)
		ctx.UserData = node.UserData
	}
	for n := node; n != nil && !stopped; n = n.Parent {
		if n.OnClick != nil {
			n.OnClick(ctx)
		}
	}
	for _, h := range s.handlers.click {
		if stopped {
			return
		}
		h.fn(ctx)
	}
}
