package pie

import (
	"github.com/charmbracelet/log"
)

// ConstructorOptions are handed to NewVisual once.
type ConstructorOptions struct {
	Host  Host
	Scene *Scene

	// Config defaults to DefaultConfig when nil.
	Config *Config
	// Logger defaults to the scene's logger when nil.
	Logger *log.Logger
	// Font overrides the default label font.
	Font *Font
}

// UpdateOptions carry the data and size for one redraw.
type UpdateOptions struct {
	DataViews []DataView
	Viewport  Viewport
}

// VisualInterface is the host-facing contract of a visual.
type VisualInterface interface {
	Update(opts UpdateOptions) error
}

var _ VisualInterface = (*Visual)(nil)

// Visual is the pie chart. It owns a surface container under the scene root
// and redraws it on every Update. All methods must be called from the
// goroutine that runs the scene.
type Visual struct {
	host   Host
	scene  *Scene
	cfg    Config
	logger *log.Logger

	surface     *Node
	renderer    *SliceRenderer
	interaction *InteractionController
	animation   *AnimationController

	vm  ViewModel
	seq uint64
}

// NewVisual builds the visual's surface and controllers.
func NewVisual(opts ConstructorOptions) (*Visual, error) {
	if opts.Host == nil {
		return nil, NewError(ErrCodeInvalidConfig, "host is required")
	}
	cfg := DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scene := opts.Scene
	if scene == nil {
		scene = NewScene()
	}
	logger := opts.Logger
	if logger == nil {
		logger = scene.Logger()
	} else {
		scene.SetLogger(logger)
	}
	if cfg.Debug {
		scene.SetDebugMode(true)
	}

	bg, err := ParseColor(cfg.Background)
	if err != nil {
		return nil, Wrap(ErrCodeInvalidConfig, err, "background")
	}
	scene.ClearColor = &bg

	font := opts.Font
	if font == nil {
		font, err = DefaultFont(cfg.LabelFontSize)
		if err != nil {
			return nil, Wrap(ErrCodeInvalidConfig, err, "label font")
		}
	}

	v := &Visual{
		host:    opts.Host,
		scene:   scene,
		cfg:     cfg,
		logger:  logger,
		surface: NewContainer("pie"),
	}
	v.renderer, err = NewSliceRenderer(v.surface, scene.Camera(), font, cfg)
	if err != nil {
		return nil, err
	}
	v.interaction = NewInteractionController(opts.Host.SelectionManager(), opts.Host.TooltipService(), cfg, logger)
	v.animation = NewAnimationController(v.renderer)

	v.surface.OnUpdate = v.Tick
	scene.Root().AddChild(v.surface)
	scene.OnClick(func(ctx ClickContext) {
		if ctx.Button == MouseButtonLeft {
			v.interaction.ClearSelection()
		}
	})
	return v, nil
}

// Update rebuilds the view model and redraws the chart. When the host's
// palette or identity builder fails the error is returned and the previous
// drawing stays on screen.
func (v *Visual) Update(opts UpdateOptions) error {
	vm, err := BuildViewModel(opts.DataViews, v.host.Palette(), v.host.SelectionIDBuilder())
	if err != nil {
		v.logger.Error("update failed", "err", err)
		return err
	}
	v.seq++
	v.vm = vm

	slices := Layout(vm.DataPoints)
	rendered := v.renderer.Render(opts.Viewport, slices)
	v.animation.Animate(rendered, v.cfg.EntryDuration)
	v.interaction.Attach(rendered, v.seq)

	v.logger.Debug("update", "seq", v.seq, "slices", len(rendered),
		"width", opts.Viewport.Width, "height", opts.Viewport.Height)
	return nil
}

// Tick applies selection results that have arrived and advances the entry
// sweep. The scene calls it every frame through the surface's OnUpdate.
func (v *Visual) Tick(dt float64) {
	v.interaction.Poll()
	if v.animation.Running() {
		v.animation.Update(float32(dt))
	}
}

// Scene returns the scene the visual draws into.
func (v *Visual) Scene() *Scene { return v.scene }

// Surface returns the visual's root container.
func (v *Visual) Surface() *Node { return v.surface }

// Config returns the settings the visual was built with.
func (v *Visual) Config() Config { return v.cfg }

// ViewModel returns the view model of the last successful Update.
func (v *Visual) ViewModel() ViewModel { return v.vm }

// Slices returns the slices drawn by the last successful Update.
func (v *Visual) Slices() []*RenderedSlice { return v.renderer.Slices() }

// Interaction returns the selection controller.
func (v *Visual) Interaction() *InteractionController { return v.interaction }

// Animation returns the entry sweep controller.
func (v *Visual) Animation() *AnimationController { return v.animation }

// Seq returns the number of successful updates.
func (v *Visual) Seq() uint64 { return v.seq }
