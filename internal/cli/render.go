package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/pie"
	"github.com/phanxgames/pie/host"
)

// buildViewModel runs a dataset through the view model builder with a fresh
// palette, the way a visual would on its first update.
func buildViewModel(ds Dataset, cfg pie.Config) (pie.ViewModel, error) {
	palette, err := host.NewPalette(cfg.Palette)
	if err != nil {
		return pie.ViewModel{}, err
	}
	return pie.BuildViewModel([]pie.DataView{ds.DataView()}, palette, host.NewIDBuilder())
}

func newSVGCmd() *cobra.Command {
	var (
		output        string
		width, height float64
	)
	cmd := &cobra.Command{
		Use:   "svg <file>",
		Short: "Write the chart as an SVG document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)
			prog := newProgress(logger)

			ds, err := LoadDataset(args[0])
			if err != nil {
				return err
			}
			logger.Debug("loaded dataset", "file", args[0], "rows", len(ds.Rows))

			vm, err := buildViewModel(ds, cfg)
			if err != nil {
				return err
			}
			doc := pie.RenderSVG(vm, pie.Viewport{Width: width, Height: height}, cfg)

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(output, doc, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			prog.done(fmt.Sprintf("Wrote %s", output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().Float64Var(&width, "width", 400, "viewport width")
	cmd.Flags().Float64Var(&height, "height", 400, "viewport height")
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config <file>",
		Short: "Write the default configuration as TOML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pie.WriteConfig(args[0], pie.DefaultConfig()); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("wrote config", "path", args[0])
			return nil
		},
	}
}
