package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/pie"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeSales(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte("Region,Sales\nNorth,10\nSouth,30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSVGCommandStdout(t *testing.T) {
	out, _, err := run(t, "svg", "--width", "200", "--height", "100", writeSales(t))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "<svg") || !strings.Contains(out, `viewBox="0 0 200 100"`) {
		t.Errorf("stdout = %q", out)
	}
}

func TestSVGCommandFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "chart.svg")
	out, stderr, err := run(t, "svg", "-o", dest, writeSales(t))
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	if !strings.Contains(stderr, "Wrote "+dest) {
		t.Errorf("stderr = %q", stderr)
	}
	doc, err := os.ReadFile(dest)
	if err != nil || !bytes.HasPrefix(doc, []byte("<svg")) {
		t.Errorf("file = %q, err %v", doc, err)
	}
}

func TestLegendCommand(t *testing.T) {
	out, _, err := run(t, "legend", writeSales(t))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Region") || !strings.Contains(out, "75.0%") {
		t.Errorf("stdout = %q", out)
	}
}

func TestCommandErrors(t *testing.T) {
	if _, _, err := run(t, "svg"); err == nil {
		t.Error("svg without a file should fail")
	}
	if _, _, err := run(t, "legend", filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("missing data file should fail")
	}
	t.Setenv("PIE_SOLID_OPACITY", "7")
	if _, _, err := run(t, "legend", writeSales(t)); !pie.Is(err, pie.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestInitConfigCommand(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "piechart.toml")
	if _, _, err := run(t, "init-config", dest); err != nil {
		t.Fatal(err)
	}
	cfg, err := pie.LoadConfig(dest)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TransparentOpacity != pie.DefaultConfig().TransparentOpacity {
		t.Errorf("round trip cfg = %+v", cfg)
	}
}

func TestVerboseFlag(t *testing.T) {
	_, stderr, err := run(t, "-v", "svg", "-o", filepath.Join(t.TempDir(), "c.svg"), writeSales(t))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "loaded dataset") {
		t.Errorf("debug line missing from %q", stderr)
	}
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	if loggerFromContext(ctx) != log.Default() {
		t.Error("empty context should give the default logger")
	}
	if configFromContext(ctx).SolidOpacity != pie.DefaultConfig().SolidOpacity {
		t.Error("empty context should give the default config")
	}
	l := log.New(&bytes.Buffer{})
	if loggerFromContext(withLogger(ctx, l)) != l {
		t.Error("logger not stored")
	}
}
