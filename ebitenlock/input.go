package ebitenlock

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/patternlock"
)

// --- Per-pointer state ---

type pointerState struct {
	down  bool
	lastX float64
	lastY float64
	// touchID is the tracked contact while a touch pointer is down.
	touchID ebiten.TouchID
	// pressTarget is the button pressed at press time, or -1.
	pressTarget int
}

// button is a clickable rectangle outside the lock surface, such as the
// reset button. Press and release must both land inside it.
type button struct {
	bounds patternlock.Rect
	fn     func()
}

// PointerInput polls Ebitengine's mouse and touch state once per frame and
// turns press/hold/release transitions into start, move and end events on a
// Dispatcher. Only the first touch contact is tracked; it is released when
// that contact lifts, even if others remain.
//
// One pointer at a time owns the dispatcher: the first one pressed on the
// surface. Moves and releases of any other pointer are not dispatched.
type PointerInput struct {
	dispatcher  *patternlock.Dispatcher
	mouse       pointerState
	touch       pointerState
	owner       *pointerState
	touchIDs    []ebiten.TouchID
	buttons     []button
	injectQueue []syntheticPointerEvent
}

// NewPointerInput creates an input poller feeding d.
func NewPointerInput(d *patternlock.Dispatcher) *PointerInput {
	return &PointerInput{
		dispatcher: d,
		mouse:      pointerState{pressTarget: -1},
		touch:      pointerState{pressTarget: -1},
	}
}

// AddButton registers a click target outside the lock surface. fn fires when
// a press and the following release both land inside bounds.
func (in *PointerInput) AddButton(bounds patternlock.Rect, fn func()) {
	in.buttons = append(in.buttons, button{bounds: bounds, fn: fn})
}

// Update processes one frame of input. Injected events take priority over
// real input: while the inject queue is non-empty the mouse is not polled.
func (in *PointerInput) Update() {
	if in.processInjectedInput() {
		return
	}
	in.processMousePointer()
	in.processTouchPointer()
}

// processMousePointer handles the left mouse button.
func (in *PointerInput) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.processPointer(&in.mouse, patternlock.PointerMouse, float64(mx), float64(my), pressed, nil)
}

// processTouchPointer tracks the first touch contact.
func (in *PointerInput) processTouchPointer() {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	ps := &in.touch

	if !ps.down {
		if len(in.touchIDs) == 0 {
			return
		}
		ps.touchID = in.touchIDs[0]
	}

	tracked := false
	for _, tid := range in.touchIDs {
		if tid == ps.touchID {
			tracked = true
			break
		}
	}
	if !tracked {
		in.processPointer(ps, patternlock.PointerTouch, ps.lastX, ps.lastY, false, nil)
		return
	}

	tx, ty := ebiten.TouchPosition(ps.touchID)
	var others []patternlock.Vec2
	for _, tid := range in.touchIDs {
		if tid == ps.touchID {
			continue
		}
		ox, oy := ebiten.TouchPosition(tid)
		others = append(others, patternlock.Vec2{X: float64(ox), Y: float64(oy)})
	}
	in.processPointer(ps, patternlock.PointerTouch, float64(tx), float64(ty), true, others)
}

// processPointer runs the press/hold/release state machine for one pointer.
// Only the owning pointer's transitions reach the dispatcher.
func (in *PointerInput) processPointer(ps *pointerState, kind patternlock.PointerKind, x, y float64, pressed bool, others []patternlock.Vec2) {
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.lastX, ps.lastY = x, y
		ps.pressTarget = in.buttonAt(x, y)
		if in.owner == nil && in.onSurface(x, y) {
			in.owner = ps
			in.dispatcher.DispatchStart(newEvent(kind, x, y, others))
		}
	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			ps.lastX, ps.lastY = x, y
			if in.owner == ps {
				in.dispatcher.DispatchMove(newEvent(kind, x, y, others))
			}
		}
	case !pressed && ps.down:
		ps.down = false
		target := ps.pressTarget
		ps.pressTarget = -1
		if in.owner == ps {
			in.owner = nil
			in.dispatcher.DispatchEnd(newEvent(kind, x, y, nil))
		}
		if target >= 0 && target == in.buttonAt(x, y) {
			in.buttons[target].fn()
		}
	}
}

func (in *PointerInput) onSurface(x, y float64) bool {
	b, ok := in.dispatcher.Bounds()
	return ok && b.Contains(x, y)
}

func (in *PointerInput) buttonAt(x, y float64) int {
	for i, b := range in.buttons {
		if b.bounds.Contains(x, y) {
			return i
		}
	}
	return -1
}

func newEvent(kind patternlock.PointerKind, x, y float64, others []patternlock.Vec2) *patternlock.InputEvent {
	points := make([]patternlock.Vec2, 0, 1+len(others))
	points = append(points, patternlock.Vec2{X: x, Y: y})
	points = append(points, others...)
	return &patternlock.InputEvent{Kind: kind, Points: points, Cancelable: true}
}
