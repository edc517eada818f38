package patternlock

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
)

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestVec2Finite(t *testing.T) {
	tests := []struct {
		v      Vec2
		expect bool
	}{
		{Vec2{1, 2}, true},
		{Vec2{math.NaN(), 0}, false},
		{Vec2{0, math.Inf(1)}, false},
	}
	for _, tt := range tests {
		if got := tt.v.finite(); got != tt.expect {
			t.Errorf("%v.finite() = %v, want %v", tt.v, got, tt.expect)
		}
	}
}

// --- Enum constant values (catch accidental iota drift) ---

func TestEnumValues(t *testing.T) {
	if Idle != 0 || Drawing != 1 {
		t.Error("GestureState values changed")
	}
	if EventPatternChange != 0 || EventPatternCleared != 1 || EventPointSelected != 2 {
		t.Error("EventType values changed")
	}
	if PointerMouse != 0 || PointerTouch != 1 {
		t.Error("PointerKind values changed")
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ    EventType
		expect string
	}{
		{EventPatternChange, "pattern_change"},
		{EventPatternCleared, "pattern_cleared"},
		{EventPointSelected, "point_selected"},
		{EventType(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.expect {
			t.Errorf("EventType(%d).String() = %q, want %q", tt.typ, got, tt.expect)
		}
	}
}

func TestConfigError(t *testing.T) {
	err := error(&ConfigError{Field: "grid", Err: ErrEmptyGrid})
	if got := err.Error(); got != "patternlock: invalid grid: grid has no points" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrEmptyGrid) {
		t.Error("ConfigError should unwrap to its cause")
	}
}

// --- Logger ---

func TestLogger_DefaultSilent(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should discard everything")
	}
}

func TestLogger_IgnoredEventsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	l := MustNew(DefaultConfig())
	l.HandleStart(&InputEvent{Kind: PointerTouch})
	if !strings.Contains(buf.String(), "start") {
		t.Errorf("expected a debug record for the ignored start, got %q", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}
