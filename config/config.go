// Package config loads renderer settings from TOML files.
//
// A configuration file looks like:
//
//	zoom = 1.25
//	cache_capacity = 512
//
//	[colors]
//	background = "#ffffff"
//	selection = "#3465a4"
//	cursor = "#000000"
//	erase = "#ffffff"
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/gridcell"
)

var (
	// ErrInvalidColor is returned for colors that are not hex triplets.
	ErrInvalidColor = errors.New("config: invalid color")

	// ErrInvalidZoom is returned for zoom factors that are not finite and positive.
	ErrInvalidZoom = errors.New("config: zoom must be finite and positive")

	// ErrInvalidCapacity is returned for a negative cache capacity.
	ErrInvalidCapacity = errors.New("config: cache capacity must not be negative")
)

// Colors holds hex color strings ("#rrggbb" or "#rgb").
type Colors struct {
	Background string `toml:"background"`
	Selection  string `toml:"selection"`
	Cursor     string `toml:"cursor"`
	Erase      string `toml:"erase"`
}

// Config is the file form of the renderer options.
type Config struct {
	Zoom float64 `toml:"zoom"`

	// CacheCapacity is the per-shard surface cache size; 0 selects the
	// default.
	CacheCapacity int    `toml:"cache_capacity"`
	Colors        Colors `toml:"colors"`
}

// Default returns the configuration matching gridcell's built-in defaults.
func Default() Config {
	return Config{
		Zoom: 1,
		Colors: Colors{
			Background: "#ffffff",
			Selection:  "#3366cc",
			Cursor:     "#000000",
			Erase:      "#ffffff",
		},
	}
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("config: parse %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("config: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads and validates the file at path. Keys missing from the file
// keep their Default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return parse(path, data)
}

// Parse decodes and validates TOML data.
func Parse(data []byte) (Config, error) {
	return parse("<data>", data)
}

func parse(source string, data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		pe := &ParseError{Path: source, Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return Config{}, pe
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes c as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks every field.
func (c Config) Validate() error {
	if !(c.Zoom > 0) || math.IsInf(c.Zoom, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidZoom, c.Zoom)
	}
	if c.CacheCapacity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, c.CacheCapacity)
	}
	for _, f := range c.Colors.fields() {
		if _, err := parseColor(f.value); err != nil {
			return fmt.Errorf("colors.%s: %w", f.name, err)
		}
	}
	return nil
}

type colorField struct {
	name  string
	value string
}

func (c Colors) fields() []colorField {
	return []colorField{
		{"background", c.Background},
		{"selection", c.Selection},
		{"cursor", c.Cursor},
		{"erase", c.Erase},
	}
}

func parseColor(s string) (gg.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return gg.RGBA{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	c = c.Clamped()
	return gg.RGB(c.R, c.G, c.B), nil
}

// Options converts c into renderer options. c must be valid.
func (c Config) Options() []gridcell.Option {
	opts := []gridcell.Option{gridcell.WithZoom(c.Zoom)}
	if c.CacheCapacity > 0 {
		opts = append(opts, gridcell.WithCacheCapacity(c.CacheCapacity))
	}
	add := func(s string, opt func(gg.RGBA) gridcell.Option) {
		if col, err := parseColor(s); err == nil {
			opts = append(opts, opt(col))
		}
	}
	add(c.Colors.Background, gridcell.WithBackground)
	add(c.Colors.Selection, gridcell.WithSelectionColor)
	add(c.Colors.Cursor, gridcell.WithCursorColor)
	add(c.Colors.Erase, gridcell.WithEraseColor)
	return opts
}
