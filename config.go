package pie

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. PIE_TRANSPARENT_OPACITY.
const EnvPrefix = "PIE"

// Config holds the visual's presentation settings.
type Config struct {
	// SolidOpacity is the alpha of selected slices and of every slice when
	// nothing is selected.
	SolidOpacity float64 `toml:"solid_opacity" envconfig:"SOLID_OPACITY"`
	// TransparentOpacity is the alpha of unselected slices while a
	// selection exists.
	TransparentOpacity float64 `toml:"transparent_opacity" envconfig:"TRANSPARENT_OPACITY"`

	// EntryDuration is the length of the entry sweep; 0 disables it.
	EntryDuration time.Duration `toml:"entry_duration" envconfig:"ENTRY_DURATION"`

	// ValueLabelMinSpan is the span in radians a slice must exceed to show
	// its value line.
	ValueLabelMinSpan float64 `toml:"value_label_min_span" envconfig:"VALUE_LABEL_MIN_SPAN"`

	StrokeColor   string  `toml:"stroke_color" envconfig:"STROKE_COLOR"`
	StrokeWidth   float64 `toml:"stroke_width" envconfig:"STROKE_WIDTH"`
	LabelColor    string  `toml:"label_color" envconfig:"LABEL_COLOR"`
	LabelFontSize float64 `toml:"label_font_size" envconfig:"LABEL_FONT_SIZE"`
	Background    string  `toml:"background" envconfig:"BACKGROUND"`

	// Palette, when set, replaces the generated palette with these colors,
	// assigned to categories in order of first appearance.
	Palette []string `toml:"palette" envconfig:"PALETTE"`

	Debug    bool   `toml:"debug" envconfig:"DEBUG"`
	LogLevel string `toml:"log_level" envconfig:"LOG_LEVEL"`
}

// DefaultConfig returns the stock settings: opacity 1 and 0.5, a ten second
// entry sweep, white one pixel strokes and 10px black labels.
func DefaultConfig() Config {
	return Config{
		SolidOpacity:       1,
		TransparentOpacity: 0.5,
		EntryDuration:      10 * time.Second,
		ValueLabelMinSpan:  ValueLabelMinSpan,
		StrokeColor:        "white",
		StrokeWidth:        1,
		LabelColor:         "black",
		LabelFontSize:      10,
		Background:         "white",
		LogLevel:           "info",
	}
}

// LoadConfig starts from DefaultConfig, decodes the TOML file at path over
// it (a missing file is not an error, an empty path skips the file), then
// applies PIE_* environment overrides and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, Wrap(ErrCodeInvalidConfig, err, "read %s", path)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, Wrap(ErrCodeInvalidConfig, err, "environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and parses every color.
func (c Config) Validate() error {
	if c.SolidOpacity < 0 || c.SolidOpacity > 1 {
		return NewError(ErrCodeInvalidConfig, "solid_opacity %v out of [0,1]", c.SolidOpacity)
	}
	if c.TransparentOpacity < 0 || c.TransparentOpacity > 1 {
		return NewError(ErrCodeInvalidConfig, "transparent_opacity %v out of [0,1]", c.TransparentOpacity)
	}
	if c.EntryDuration < 0 {
		return NewError(ErrCodeInvalidConfig, "entry_duration %v is negative", c.EntryDuration)
	}
	if c.ValueLabelMinSpan < 0 {
		return NewError(ErrCodeInvalidConfig, "value_label_min_span %v is negative", c.ValueLabelMinSpan)
	}
	if c.StrokeWidth < 0 {
		return NewError(ErrCodeInvalidConfig, "stroke_width %v is negative", c.StrokeWidth)
	}
	if c.LabelFontSize <= 0 {
		return NewError(ErrCodeInvalidConfig, "label_font_size %v must be positive", c.LabelFontSize)
	}
	for _, f := range []struct{ name, value string }{
		{"stroke_color", c.StrokeColor},
		{"label_color", c.LabelColor},
		{"background", c.Background},
	} {
		if _, err := ParseColor(f.value); err != nil {
			return Wrap(ErrCodeInvalidConfig, err, "%s", f.name)
		}
	}
	for i, v := range c.Palette {
		if _, err := ParseColor(v); err != nil {
			return Wrap(ErrCodeInvalidConfig, err, "palette[%d]", i)
		}
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "log_level")
	}
	return nil
}

// Level returns the parsed log level, or info when LogLevel is invalid.
// Debug forces debug level.
func (c Config) Level() log.Level {
	if c.Debug {
		return log.DebugLevel
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// WriteConfig encodes cfg as TOML to path.
func WriteConfig(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
