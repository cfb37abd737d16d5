package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/pie"
	"github.com/phanxgames/pie/host"
)

func newShowCmd() *cobra.Command {
	var (
		width, height int
		script        string
		delay         bool
	)
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Open a window with the interactive chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)

			ds, err := LoadDataset(args[0])
			if err != nil {
				return err
			}

			scene := pie.NewScene()
			scene.SetLogger(logger)
			font, err := pie.DefaultFont(cfg.LabelFontSize)
			if err != nil {
				return err
			}
			var selOpts []host.SelectionOption
			if delay {
				selOpts = append(selOpts, host.WithDelay(150*time.Millisecond))
			}
			h, err := host.New(scene, host.Options{Palette: cfg.Palette, Font: font, Selection: selOpts})
			if err != nil {
				return err
			}
			v, err := pie.NewVisual(pie.ConstructorOptions{
				Host: h, Scene: scene, Config: &cfg, Logger: logger, Font: font,
			})
			if err != nil {
				return err
			}
			var runner *pie.TestRunner
			if script != "" {
				data, err := os.ReadFile(script)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				if runner, err = pie.LoadTestScript(data); err != nil {
					return err
				}
				scene.SetTestRunner(runner)
			}

			views := []pie.DataView{ds.DataView()}
			update := func(w, h int) {
				err := v.Update(pie.UpdateOptions{
					DataViews: views,
					Viewport:  pie.Viewport{Width: float64(w), Height: float64(h)},
				})
				if err != nil {
					logger.Error("update", "err", err)
				}
			}
			update(width, height)

			doneFrames := 0

			return pie.Run(scene, pie.RunConfig{
				Title:     "piechart - " + args[0],
				Width:     width,
				Height:    height,
				Resizable: true,
				OnResize:  update,
				OnUpdate: func() error {
					// Give the last screenshot a draw to flush in.
					if runner != nil && runner.Done() {
						if doneFrames++; doneFrames > 2 {
							return ebiten.Termination
						}
					}
					return nil
				},
			})
		},
	}
	cmd.Flags().IntVar(&width, "width", 640, "window width")
	cmd.Flags().IntVar(&height, "height", 480, "window height")
	cmd.Flags().StringVar(&script, "script", "", "JSON test script to replay, taking screenshots")
	cmd.Flags().BoolVar(&delay, "async-selection", false, "deliver selection results asynchronously")
	return cmd
}
