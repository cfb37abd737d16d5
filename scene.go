package pie

import (
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, the camera, input
// state, and render buffers. All methods must be called from the Ebitengine
// update/draw goroutine.
type Scene struct {
	root   *Node
	camera *Camera
	logger *log.Logger
	debug  bool

	// ClearColor fills the screen before each Draw. Nil leaves the screen as is.
	ClearColor *Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// Render state
	commands []RenderCommand

	// Input state
	handlers    handlerRegistry
	pointer     pointerState
	hitBuf      []*Node
	injectQueue []syntheticPointerEvent

	screenshotQueue []string
	testRunner      *TestRunner
	frame           uint64
}

// NewScene creates a new scene with a pre-created root container and a
// camera centered on the world origin.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:          root,
		camera:        NewCamera(Rect{}),
		logger:        log.Default(),
		ScreenshotDir: "screenshots",
		commands:      make([]RenderCommand, 0, defaultCommandCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Camera returns the scene's camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetLogger replaces the logger used for debug stats and screenshot errors.
func (s *Scene) SetLogger(l *log.Logger) {
	s.logger = loggerOrDefault(l)
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *log.Logger {
	return s.logger
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and per-frame timings are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// Resize sets the camera viewport to the given screen size.
func (s *Scene) Resize(width, height float64) {
	s.camera.SetViewport(Rect{Width: width, Height: height})
}

// Frame returns the number of completed Update calls.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// Update refreshes world transforms, runs OnUpdate callbacks, advances the
// test runner, and processes input.
func (s *Scene) Update() {
	s.step(1.0 / float64(ebiten.TPS()))
}

func (s *Scene) step(dt float64) {
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	runOnUpdate(s.root, dt)
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.frame++
}

// runOnUpdate calls OnUpdate depth-first. Callbacks may dispose nodes, so the
// child list is snapshotted by index and re-checked.
func runOnUpdate(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for i := 0; i < len(n.children); i++ {
		runOnUpdate(n.children[i], dt)
	}
}

// Draw traverses the scene tree, emits render commands, sorts them, and
// submits them to the given screen image.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor != nil {
		screen.Fill(s.ClearColor.toRGBA())
	}

	vp := s.camera.Viewport
	target := screen
	if vp.Width > 0 && vp.Height > 0 {
		target = screen.SubImage(image.Rect(
			int(vp.X), int(vp.Y),
			int(vp.X+vp.Width), int(vp.Y+vp.Height),
		)).(*ebiten.Image)
	} else {
		b := screen.Bounds()
		s.camera.SetViewport(Rect{Width: float64(b.Dx()), Height: float64(b.Dy())})
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.buildCommands()

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.sortCommands()

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submitCommands(target)

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// buildCommands refreshes world transforms and re-emits the command list
// through the camera's view matrix.
func (s *Scene) buildCommands() {
	s.commands = s.commands[:0]
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	treeOrder := 0
	s.traverse(s.root, s.camera.computeViewMatrix(), &treeOrder)
}
