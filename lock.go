package patternlock

import (
	"fmt"
	"slices"
)

// normalizedBounds is used by a Lock with no attached surface: event
// coordinates are taken to be normalized already.
var normalizedBounds = Rect{Width: 100, Height: 100}

// EventStore is the interface for optional ECS integration. When set on a
// Lock, every emitted signal is also forwarded to the store.
type EventStore interface {
	EmitEvent(event PatternEvent)
}

// PatternEvent carries a Lock signal for the ECS bridge.
type PatternEvent struct {
	Type EventType
	// Pattern is the emitted pattern (EventPatternChange) or the pattern so
	// far (EventPointSelected). Empty for EventPatternCleared.
	Pattern []int
	// Point is the newly selected point (EventPointSelected only).
	Point GridPoint
}

// Lock is the gesture state machine. It owns the gesture state, the
// selection and the drag line; the grid is read-only.
//
// A Lock is not safe for concurrent use. Hosts call the Handle methods from
// their input dispatch, one event at a time, in temporal order.
type Lock struct {
	grid      Grid
	hitRadius float64
	config    Config

	state     GestureState
	selection Selection
	dragLine  Segment
	dragging  bool // dragLine is valid

	surface  Surface
	viewport Viewport
	startSub Subscription
	scope    listenerScope
	moveFn   func(*InputEvent)
	endFn    func(*InputEvent)

	handlers handlerRegistry
	store    EventStore
}

// New validates cfg and returns an idle Lock.
func New(cfg Config) (*Lock, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, _ := NewGrid(cfg.Grid...)
	cfg.Grid = grid
	l := &Lock{
		grid:      grid,
		hitRadius: cfg.HitRadius,
		config:    cfg,
	}
	l.moveFn = l.HandleMove
	l.endFn = l.HandleEnd
	return l, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(cfg Config) *Lock {
	l, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return l
}

// --- Queries ---

// State returns the current gesture state.
func (l *Lock) State() GestureState { return l.state }

// Drawing reports whether a gesture is in progress.
func (l *Lock) Drawing() bool { return l.state == Drawing }

// Grid returns a copy of the lock's grid.
func (l *Lock) Grid() Grid { return slices.Clone(l.grid) }

// HitRadius returns the detection radius.
func (l *Lock) HitRadius() float64 { return l.hitRadius }

// Config returns the configuration the lock was built with. Its Grid is a
// copy.
func (l *Lock) Config() Config {
	cfg := l.config
	cfg.Grid = slices.Clone(l.config.Grid)
	return cfg
}

// Pattern returns a copy of the current selection. After a gesture ends the
// selection is kept until the next gesture starts or Clear is called.
func (l *Lock) Pattern() []int { return l.selection.Snapshot() }

// Selected reports whether id is part of the current selection.
func (l *Lock) Selected(id int) bool { return l.selection.Contains(id) }

// DragLine returns the segment from the last selected point to the pointer.
// It exists only while drawing and after at least one move.
func (l *Lock) DragLine() (Segment, bool) {
	return l.dragLine, l.dragging
}

// ConnectedLines returns the segments joining consecutive selected points.
func (l *Lock) ConnectedLines() []Segment {
	return ConnectedLines(l.selection.view(), l.grid)
}

// --- Surface binding ---

// Attach binds the lock to a surface for start events and to a viewport for
// move and end events during a gesture. viewport may be nil, in which case
// the host must call HandleMove and HandleEnd itself.
func (l *Lock) Attach(surface Surface, viewport Viewport) error {
	if surface == nil {
		return fmt.Errorf("patternlock: attach: %w", ErrSurfaceUnavailable)
	}
	if l.surface != nil {
		return fmt.Errorf("patternlock: attach: %w", ErrAlreadyAttached)
	}
	l.surface = surface
	l.viewport = viewport
	l.startSub = surface.OnStart(l.HandleStart)
	return nil
}

// Detach unbinds the lock from its surface and releases any viewport
// listeners held by an in-progress gesture. An interrupted gesture is
// abandoned without emitting a pattern.
func (l *Lock) Detach() {
	l.finishGesture()
	if l.startSub != nil {
		l.startSub.Remove()
		l.startSub = nil
	}
	l.surface = nil
	l.viewport = nil
}

// Attached reports whether the lock is bound to a surface.
func (l *Lock) Attached() bool { return l.surface != nil }

// --- Event entry points ---

// HandleStart processes a pointer-down or touch-start. While idle, a start on
// a grid point resets the previous selection, selects the point and begins a
// gesture. Starts that miss every point, and starts while drawing, are
// ignored.
func (l *Lock) HandleStart(ev *InputEvent) {
	if l.state == Drawing {
		return
	}
	// Touch starts stay passive so the host can keep scrolling cheap.
	if ev != nil && ev.Kind == PointerMouse && ev.Cancelable {
		ev.PreventDefault()
	}
	pos, err := l.mapEvent(ev)
	if err != nil {
		l.ignore("start", err)
		return
	}
	p, ok := Detect(pos.X, pos.Y, l.grid, l.hitRadius)
	if !ok {
		return
	}

	l.selection.Reset()
	l.state = Drawing
	l.dragging = false
	l.scope.acquire(l.viewport, l.moveFn, l.endFn)
	Logger().Debug("patternlock: gesture started", "point", p.ID)
	l.selectPoint(p)
}

// HandleMove processes a pointer or touch move. While drawing it updates the
// drag line and selects any point within the hit radius. Moves are not
// interpolated: a point crossed between two samples is not selected.
func (l *Lock) HandleMove(ev *InputEvent) {
	if l.state != Drawing {
		return
	}
	if ev != nil && ev.Cancelable {
		ev.PreventDefault()
	}
	pos, err := l.mapEvent(ev)
	if err != nil {
		l.ignore("move", err)
		return
	}

	if last, ok := l.selection.Last(); ok {
		if lp, ok := l.grid.Point(last); ok {
			l.dragLine = Segment{X1: lp.X, Y1: lp.Y, X2: pos.X, Y2: pos.Y}
			l.dragging = true
		}
	}

	if p, ok := Detect(pos.X, pos.Y, l.grid, l.hitRadius); ok {
		l.selectPoint(p)
	}
}

// HandleEnd processes a pointer-up, touch-end or pointer-leave. While drawing
// it ends the gesture and emits the pattern. The selection itself is kept.
// The event's coordinates are not used.
func (l *Lock) HandleEnd(ev *InputEvent) {
	if l.state != Drawing {
		return
	}
	l.finishGesture()
	pattern := l.selection.Snapshot()
	Logger().Debug("patternlock: gesture ended", "pattern", pattern)
	l.firePatternChange(pattern)
}

// Clear resets the lock from any state: the gesture is abandoned, the
// selection emptied, and both an empty PatternChange and a PatternCleared
// signal are emitted, in that order.
func (l *Lock) Clear() {
	l.finishGesture()
	l.selection.Reset()
	Logger().Debug("patternlock: cleared")
	l.firePatternChange([]int{})
	l.firePatternCleared()
}

// finishGesture is the single exit path from Drawing.
func (l *Lock) finishGesture() {
	l.state = Idle
	l.dragging = false
	l.dragLine = Segment{}
	l.scope.release()
}

func (l *Lock) selectPoint(p GridPoint) {
	if !l.selection.Append(p.ID) {
		return
	}
	l.firePointSelected(p)
}

func (l *Lock) mapEvent(ev *InputEvent) (Vec2, error) {
	bounds := normalizedBounds
	if l.surface != nil {
		b, ok := l.surface.Bounds()
		if !ok {
			return Vec2{}, ErrSurfaceUnavailable
		}
		bounds = b
	}
	return MapToSurface(ev, bounds)
}

func (l *Lock) ignore(kind string, err error) {
	Logger().Debug("patternlock: ignored event", "kind", kind, "state", l.state.String(), "err", err)
}

// SetEventStore sets the ECS bridge. Pass nil to disable it.
func (l *Lock) SetEventStore(store EventStore) {
	l.store = store
}
