package patternlock

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts c to a straight-alpha color.NRGBA.
func (c Color) RGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions throughout the API.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) finite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Rect is an axis-aligned rectangle in viewport units. The coordinate system
// has its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// GestureState is the state of the gesture state machine.
type GestureState uint8

const (
	Idle    GestureState = iota // no gesture in progress (initial and terminal)
	Drawing                     // a stroke started on a grid point and is being tracked
)

// String returns the state name.
func (s GestureState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of signal emitted by a Lock.
type EventType uint8

const (
	EventPatternChange  EventType = iota // a gesture ended or the lock was cleared
	EventPatternCleared                  // the lock was explicitly cleared
	EventPointSelected                   // a new point joined the in-progress pattern
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventPatternChange:
		return "pattern_change"
	case EventPatternCleared:
		return "pattern_cleared"
	case EventPointSelected:
		return "point_selected"
	default:
		return "unknown"
	}
}

// PointerKind identifies the device that produced an InputEvent.
type PointerKind uint8

const (
	PointerMouse PointerKind = iota // mouse or pen pointer
	PointerTouch                    // touch contact
)
