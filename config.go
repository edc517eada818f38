package patternlock

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

const (
	// DefaultHitRadius is the detection radius in normalized units.
	DefaultHitRadius = 15.0
	// DefaultDotRadius is the drawn radius of a grid point in normalized units.
	DefaultDotRadius = 6.0
)

// Config holds construction parameters for a Lock. Label, ResetLabel, DotRadius
// and Theme are presentational and ignored by the gesture logic.
type Config struct {
	Grid       Grid
	HitRadius  float64
	DotRadius  float64
	Label      string
	ResetLabel string
	Theme      Theme
}

// DefaultConfig returns the 3x3 grid with a hit radius of 15.
func DefaultConfig() Config {
	return Config{
		Grid:      DefaultGrid(),
		HitRadius: DefaultHitRadius,
		DotRadius: DefaultDotRadius,
		Theme:     DefaultTheme(),
	}
}

// Validate checks the grid and radii.
func (c Config) Validate() error {
	if _, err := NewGrid(c.Grid...); err != nil {
		return err
	}
	if !(c.HitRadius > 0) || math.IsInf(c.HitRadius, 0) {
		return &ConfigError{Field: "hit radius", Err: fmt.Errorf("%w: %v", ErrInvalidRadius, c.HitRadius)}
	}
	if c.DotRadius < 0 || math.IsNaN(c.DotRadius) || math.IsInf(c.DotRadius, 0) {
		return &ConfigError{Field: "dot radius", Err: fmt.Errorf("%w: %v", ErrInvalidRadius, c.DotRadius)}
	}
	return nil
}

// --- Theme ---

// Theme holds the colors used by the renderers.
type Theme struct {
	Background Color
	Dot        Color
	ActiveDot  Color
	Line       Color
	DragLine   Color
	Label      Color
	// LineWidth is the stroke width in normalized units.
	LineWidth float64
}

// DefaultTheme returns a light-on-dark theme.
func DefaultTheme() Theme {
	return Theme{
		Background: Color{R: 0.137, G: 0.118, B: 0.176, A: 1},
		Dot:        Color{R: 0.78, G: 0.78, B: 0.82, A: 1},
		ActiveDot:  Color{R: 0.3, G: 0.7, B: 0.9, A: 1},
		Line:       Color{R: 0.3, G: 0.7, B: 0.9, A: 1},
		DragLine:   Color{R: 0.3, G: 0.7, B: 0.9, A: 0.5},
		Label:      ColorWhite,
		LineWidth:  2,
	}
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := 1.0
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// --- File loading ---

type filePoint struct {
	ID int     `toml:"id"`
	X  float64 `toml:"x"`
	Y  float64 `toml:"y"`
}

type fileTheme struct {
	Background string   `toml:"background"`
	Dot        string   `toml:"dot"`
	ActiveDot  string   `toml:"active_dot"`
	Line       string   `toml:"line"`
	DragLine   string   `toml:"drag_line"`
	Label      string   `toml:"label"`
	LineWidth  *float64 `toml:"line_width"`
}

// fileConfig mirrors the on-disk layout shared by the TOML and JSON formats.
type fileConfig struct {
	HitRadius  *float64    `toml:"hit_radius"`
	DotRadius  *float64    `toml:"dot_radius"`
	Label      string      `toml:"label"`
	ResetLabel string      `toml:"reset_label"`
	Size       int         `toml:"size"`
	Points     []filePoint `toml:"points"`
	Theme      fileTheme   `toml:"theme"`
}

// LoadConfig reads a configuration file. The format is chosen by extension:
// ".toml" or ".json".
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return Config{}, fmt.Errorf("load config: unsupported format %q", filepath.Ext(path))
	}
}

// ParseTOML parses a TOML configuration. Missing fields keep DefaultConfig
// values; "size = n" builds an n x n grid when no points are listed.
func ParseTOML(data []byte) (Config, error) {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse toml config: %w", err)
	}
	return fc.build()
}

// ParseJSON parses a JSON configuration with the same keys as ParseTOML.
func ParseJSON(data []byte) (Config, error) {
	if !gjson.ValidBytes(data) {
		return Config{}, fmt.Errorf("parse json config: invalid json")
	}
	root := gjson.ParseBytes(data)

	var fc fileConfig
	if v := root.Get("hit_radius"); v.Exists() {
		r := v.Float()
		fc.HitRadius = &r
	}
	if v := root.Get("dot_radius"); v.Exists() {
		r := v.Float()
		fc.DotRadius = &r
	}
	fc.Label = root.Get("label").String()
	fc.ResetLabel = root.Get("reset_label").String()
	fc.Size = int(root.Get("size").Int())
	for _, p := range root.Get("points").Array() {
		fc.Points = append(fc.Points, filePoint{
			ID: int(p.Get("id").Int()),
			X:  p.Get("x").Float(),
			Y:  p.Get("y").Float(),
		})
	}
	theme := root.Get("theme")
	fc.Theme = fileTheme{
		Background: theme.Get("background").String(),
		Dot:        theme.Get("dot").String(),
		ActiveDot:  theme.Get("active_dot").String(),
		Line:       theme.Get("line").String(),
		DragLine:   theme.Get("drag_line").String(),
		Label:      theme.Get("label").String(),
	}
	if v := theme.Get("line_width"); v.Exists() {
		w := v.Float()
		fc.Theme.LineWidth = &w
	}
	return fc.build()
}

func (fc fileConfig) build() (Config, error) {
	cfg := DefaultConfig()
	if fc.HitRadius != nil {
		cfg.HitRadius = *fc.HitRadius
	}
	if fc.DotRadius != nil {
		cfg.DotRadius = *fc.DotRadius
	}
	cfg.Label = fc.Label
	cfg.ResetLabel = fc.ResetLabel

	switch {
	case len(fc.Points) > 0:
		points := make([]GridPoint, len(fc.Points))
		for i, p := range fc.Points {
			points[i] = GridPoint{ID: p.ID, X: p.X, Y: p.Y}
		}
		cfg.Grid = points
	case fc.Size > 0:
		g, err := SquareGrid(fc.Size)
		if err != nil {
			return Config{}, err
		}
		cfg.Grid = g
	}

	colors := []struct {
		hex string
		dst *Color
	}{
		{fc.Theme.Background, &cfg.Theme.Background},
		{fc.Theme.Dot, &cfg.Theme.Dot},
		{fc.Theme.ActiveDot, &cfg.Theme.ActiveDot},
		{fc.Theme.Line, &cfg.Theme.Line},
		{fc.Theme.DragLine, &cfg.Theme.DragLine},
		{fc.Theme.Label, &cfg.Theme.Label},
	}
	for _, c := range colors {
		if c.hex == "" {
			continue
		}
		col, err := ParseColor(c.hex)
		if err != nil {
			return Config{}, &ConfigError{Field: "theme", Err: err}
		}
		*c.dst = col
	}
	if fc.Theme.LineWidth != nil {
		cfg.Theme.LineWidth = *fc.Theme.LineWidth
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
