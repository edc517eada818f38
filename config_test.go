package patternlock

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.HitRadius != 15 || len(cfg.Grid) != 9 {
		t.Errorf("DefaultConfig() = radius %v, %d points", cfg.HitRadius, len(cfg.Grid))
	}
	if cfg.DotRadius >= cfg.HitRadius {
		t.Errorf("dot radius %v should be smaller than hit radius %v", cfg.DotRadius, cfg.HitRadius)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
		want  error
	}{
		{"inf hit radius", func(c *Config) { c.HitRadius = math.Inf(1) }, "hit radius", ErrInvalidRadius},
		{"negative dot radius", func(c *Config) { c.DotRadius = -1 }, "dot radius", ErrInvalidRadius},
		{"bad point", func(c *Config) { c.Grid = Grid{{ID: 1, Y: math.NaN()}} }, "grid", ErrInvalidPoint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Field != tt.field {
				t.Errorf("Validate() field = %v, want %q", err, tt.field)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ffffff", Color{1, 1, 1, 1}},
		{"#000", Color{0, 0, 0, 1}},
		{"#ff000080", Color{1, 0, 0, 128.0 / 255}},
		{" #00ff00 ", Color{0, 1, 0, 1}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if !approxEqual(got.R, tt.want.R) || !approxEqual(got.G, tt.want.G) ||
			!approxEqual(got.B, tt.want.B) || !approxEqual(got.A, tt.want.A) {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "red", "#12", "#gggggg", "#ffffffzz"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
hit_radius = 10
label = "Draw to unlock"
reset_label = "Reset"

[[points]]
id = 1
x = 25
y = 25

[[points]]
id = 2
x = 75
y = 75

[theme]
background = "#000000"
active_dot = "#ff0000"
line_width = 3
`)
	cfg, err := ParseTOML(data)
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	if cfg.HitRadius != 10 {
		t.Errorf("HitRadius = %v, want 10", cfg.HitRadius)
	}
	if cfg.DotRadius != DefaultDotRadius {
		t.Errorf("DotRadius = %v, want default %v", cfg.DotRadius, DefaultDotRadius)
	}
	if cfg.Label != "Draw to unlock" || cfg.ResetLabel != "Reset" {
		t.Errorf("labels = %q, %q", cfg.Label, cfg.ResetLabel)
	}
	if len(cfg.Grid) != 2 || cfg.Grid[1] != (GridPoint{ID: 2, X: 75, Y: 75}) {
		t.Errorf("Grid = %v", cfg.Grid)
	}
	if cfg.Theme.ActiveDot != (Color{1, 0, 0, 1}) {
		t.Errorf("ActiveDot = %+v", cfg.Theme.ActiveDot)
	}
	if cfg.Theme.Dot != DefaultTheme().Dot {
		t.Errorf("Dot should keep the default, got %+v", cfg.Theme.Dot)
	}
	if cfg.Theme.LineWidth != 3 {
		t.Errorf("LineWidth = %v, want 3", cfg.Theme.LineWidth)
	}
}

func TestParseTOML_Size(t *testing.T) {
	cfg, err := ParseTOML([]byte("size = 4\n"))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	if len(cfg.Grid) != 16 {
		t.Errorf("len(Grid) = %d, want 16", len(cfg.Grid))
	}
}

func TestParseTOML_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"zero radius", "hit_radius = 0\n", ErrInvalidRadius},
		{"duplicate", "[[points]]\nid = 1\n[[points]]\nid = 1\n", ErrDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTOML([]byte(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("ParseTOML() error = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := ParseTOML([]byte("hit_radius = [")); err == nil {
		t.Error("ParseTOML should reject malformed toml")
	}
	if _, err := ParseTOML([]byte("[theme]\ndot = \"blue\"\n")); err == nil {
		t.Error("ParseTOML should reject a bad color")
	}
}

func TestParseJSON(t *testing.T) {
	cfg, err := ParseJSON([]byte(`{
		"hit_radius": 12,
		"dot_radius": 4,
		"points": [{"id": 7, "x": 10, "y": 10}, {"id": 3, "x": 90, "y": 10}],
		"theme": {"line": "#00ff00", "line_width": 1.5}
	}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if cfg.HitRadius != 12 || cfg.DotRadius != 4 {
		t.Errorf("radii = %v, %v", cfg.HitRadius, cfg.DotRadius)
	}
	if len(cfg.Grid) != 2 || cfg.Grid[0].ID != 7 || cfg.Grid[1].X != 90 {
		t.Errorf("Grid = %v", cfg.Grid)
	}
	if cfg.Theme.Line != (Color{0, 1, 0, 1}) || cfg.Theme.LineWidth != 1.5 {
		t.Errorf("Theme = %+v", cfg.Theme)
	}

	if _, err := ParseJSON([]byte(`{"hit_radius":`)); err == nil {
		t.Error("ParseJSON should reject malformed json")
	}
	if _, err := ParseJSON([]byte(`{"hit_radius": -2}`)); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("ParseJSON negative radius error = %v", err)
	}
	empty, err := ParseJSON([]byte(`{}`))
	if err != nil || len(empty.Grid) != 9 {
		t.Errorf("ParseJSON({}) = %d points, %v; want defaults", len(empty.Grid), err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "lock.toml")
	jsonPath := filepath.Join(dir, "lock.json")
	yamlPath := filepath.Join(dir, "lock.yaml")
	if err := os.WriteFile(tomlPath, []byte("size = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(jsonPath, []byte(`{"size": 5}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte("size: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if cfg, err := LoadConfig(tomlPath); err != nil || len(cfg.Grid) != 4 {
		t.Errorf("LoadConfig(toml) = %d points, %v", len(cfg.Grid), err)
	}
	if cfg, err := LoadConfig(jsonPath); err != nil || len(cfg.Grid) != 25 {
		t.Errorf("LoadConfig(json) = %d points, %v", len(cfg.Grid), err)
	}
	if _, err := LoadConfig(yamlPath); err == nil {
		t.Error("LoadConfig(yaml) should fail")
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadConfig(missing) should fail")
	}
}

func TestColor_RGBA(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: -1, A: 2}.RGBA()
	if got.R != 255 || got.B != 0 || got.A != 255 {
		t.Errorf("RGBA() = %+v", got)
	}
}
