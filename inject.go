package pie

// syntheticPointerEvent is a single injected pointer sample in screen
// coordinates, converted to world coordinates through the camera exactly like
// real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	button           MouseButton
	mods             KeyModifiers
}

// InjectPress queues a left-button press at the given screen coordinates.
// Each queued event is consumed by one frame's input processing.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y, pressed: true, button: MouseButtonLeft,
	})
}

// InjectRelease queues a left-button release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y, button: MouseButtonLeft,
	})
}

// InjectMove queues a hover move (no button held) at the given screen
// coordinates.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectClickWithModifiers(x, y, 0)
}

// InjectClickWithModifiers is InjectClick with modifier keys held, e.g.
// ModCtrl for multi-select.
func (s *Scene) InjectClickWithModifiers(x, y float64, mods KeyModifiers) {
	s.InjectButtonClick(x, y, MouseButtonLeft, mods)
}

// InjectButtonClick queues a press and release of button at the given
// screen coordinates.
func (s *Scene) InjectButtonClick(x, y float64, button MouseButton, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue,
		syntheticPointerEvent{screenX: x, screenY: y, pressed: true, button: button, mods: mods},
		syntheticPointerEvent{screenX: x, screenY: y, button: button, mods: mods},
	)
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed, in which
// case real mouse input is skipped for the frame.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processPointer(evt.screenX, evt.screenY, evt.pressed, evt.button, evt.mods)
	return true
}
