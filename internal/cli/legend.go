package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/phanxgames/pie"
)

func newLegendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "legend <file>",
		Short: "Print the chart's legend with colors and shares",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := LoadDataset(args[0])
			if err != nil {
				return err
			}
			vm, err := buildViewModel(ds, configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			writeLegend(cmd.OutOrStdout(), ds.CategoryName, vm)
			return nil
		},
	}
}

// writeLegend prints one line per slice: a swatch in the slice's color, the
// category, the formatted value and its share of the full turn.
func writeLegend(w io.Writer, title string, vm pie.ViewModel) {
	slices := pie.Layout(vm.DataPoints)

	width := 0
	for _, s := range slices {
		width = max(width, lipgloss.Width(s.Data.Category))
	}

	fmt.Fprintln(w, styleTitle.Render(title))
	for _, s := range slices {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Data.Color)).Render(iconSwatch)
		name := s.Data.Category + strings.Repeat(" ", width-lipgloss.Width(s.Data.Category))
		share := 100 * s.Span() / pie.FullTurn
		line := fmt.Sprintf("%s %s  %s  %s",
			swatch, name,
			styleNumber.Render(pie.FormatValue(s.Data.Value)),
			styleDim.Render(fmt.Sprintf("%.1f%%", share)))
		if s.Data.Missing {
			line += " " + styleMissing.Render("(missing)")
		}
		fmt.Fprintln(w, line)
	}
}
