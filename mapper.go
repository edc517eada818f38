package patternlock

import "math"

// InputEvent is a start, move or end occurrence delivered by a host. Mouse
// events carry a single point; touch events carry one point per active
// contact, of which only the first is used. Coordinates are absolute
// viewport coordinates.
type InputEvent struct {
	Kind   PointerKind
	Points []Vec2

	// Cancelable reports whether the host allows the default behavior of
	// this event (scrolling, text selection) to be suppressed.
	Cancelable bool

	// DefaultPrevented is set by the Lock when the host should suppress the
	// default behavior.
	DefaultPrevented bool
}

// PointerEvent returns a mouse-origin event at (x, y).
func PointerEvent(x, y float64) *InputEvent {
	return &InputEvent{Kind: PointerMouse, Points: []Vec2{{x, y}}, Cancelable: true}
}

// TouchEvent returns a touch-origin event with the given contacts.
func TouchEvent(contacts ...Vec2) *InputEvent {
	return &InputEvent{Kind: PointerTouch, Points: contacts, Cancelable: true}
}

// PreventDefault marks the event's default behavior as suppressed.
func (e *InputEvent) PreventDefault() {
	e.DefaultPrevented = true
}

// first returns the first contact or ErrNoCoordinates.
func (e *InputEvent) first() (Vec2, error) {
	if e == nil || len(e.Points) == 0 {
		return Vec2{}, ErrNoCoordinates
	}
	p := e.Points[0]
	if !p.finite() {
		return Vec2{}, ErrNoCoordinates
	}
	return p, nil
}

// MapToSurface converts the event's first contact into normalized surface
// coordinates: (client - origin) / extent * 100 on each axis. The result is
// not clamped, so pointers outside the surface map outside [0, 100].
func MapToSurface(ev *InputEvent, bounds Rect) (Vec2, error) {
	p, err := ev.first()
	if err != nil {
		return Vec2{}, err
	}
	if !validExtent(bounds.Width) || !validExtent(bounds.Height) ||
		math.IsNaN(bounds.X) || math.IsNaN(bounds.Y) {
		return Vec2{}, ErrSurfaceUnavailable
	}
	return Vec2{
		X: (p.X - bounds.X) / bounds.Width * 100,
		Y: (p.Y - bounds.Y) / bounds.Height * 100,
	}, nil
}

func validExtent(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// FromSurface is the inverse of MapToSurface: it converts a normalized point
// back to viewport coordinates inside bounds. Renderers use it to place dots.
func FromSurface(p Vec2, bounds Rect) Vec2 {
	return Vec2{
		X: bounds.X + p.X/100*bounds.Width,
		Y: bounds.Y + p.Y/100*bounds.Height,
	}
}
