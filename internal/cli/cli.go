// Package cli implements the piechart command-line interface.
//
// Commands:
//   - show: open a window with the interactive chart
//   - svg: write the chart as an SVG document
//   - legend: print a colored legend to the terminal
//   - serve: render posted rows to SVG over HTTP
//
// Every command reads rows from a CSV file with a category,value header or
// from a JSON array of {"category": ..., "value": ...} objects.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/pie"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version shown by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:           "piechart",
		Short:         "piechart draws category/value data as a pie chart",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pie.LoadConfig(configPath)
			if err != nil {
				return err
			}
			level := cfg.Level()
			if verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), pie.NewLogger(cmd.ErrOrStderr(), level))
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("piechart %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "TOML config file")

	root.AddCommand(newShowCmd())
	root.AddCommand(newSVGCmd())
	root.AddCommand(newLegendCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newConfigCmd())
	return root
}

// defaultConfigPath is piechart.toml in the working directory, or the value
// of PIE_CONFIG.
func defaultConfigPath() string {
	if p := os.Getenv(pie.EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return "piechart.toml"
}

func withConfig(ctx context.Context, cfg pie.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext returns the loaded config, or the defaults.
func configFromContext(ctx context.Context) pie.Config {
	if cfg, ok := ctx.Value(configKey).(pie.Config); ok {
		return cfg
	}
	return pie.DefaultConfig()
}
