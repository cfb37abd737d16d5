package pie

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int

	// Resizable lets the user resize the window; the scene camera follows.
	Resizable bool

	// OnUpdate runs once per tick after Scene.Update. Returning an error
	// stops the game loop.
	OnUpdate func() error

	// OnResize runs when the window size changes, before the next Update.
	OnResize func(width, height int)
}

// Run opens a window and drives the scene until the window closes or
// OnUpdate returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	scene.Resize(float64(cfg.Width), float64(cfg.Height))
	return ebiten.RunGame(&game{scene: scene, cfg: cfg, w: cfg.Width, h: cfg.Height})
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	cfg   RunConfig
	w, h  int
}

func (g *game) Update() error {
	g.scene.Update()
	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.scene.Resize(float64(g.w), float64(g.h))
		if g.cfg.OnResize != nil {
			g.cfg.OnResize(g.w, g.h)
		}
	}
	return outsideWidth, outsideHeight
}
