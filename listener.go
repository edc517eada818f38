package patternlock

// Subscription is a registered listener. Remove is idempotent.
type Subscription interface {
	Remove()
}

// Surface is the interactive area a Lock is attached to. Start events are
// only delivered for contacts that begin on the surface.
type Surface interface {
	// Bounds returns the surface rectangle in viewport coordinates, or false
	// when the surface is not currently laid out.
	Bounds() (Rect, bool)
	// OnStart registers fn for pointer-down / touch-start on the surface.
	OnStart(fn func(*InputEvent)) Subscription
}

// Viewport delivers move and end events from anywhere in the host window, so
// a gesture continues after the pointer leaves the surface.
type Viewport interface {
	Listen(move, end func(*InputEvent)) Subscription
}

// listenerScope holds the viewport subscription for the duration of one
// gesture. acquire is a no-op while held; release is a no-op while not held.
// Every exit from Drawing goes through release.
type listenerScope struct {
	sub Subscription
}

func (s *listenerScope) acquire(v Viewport, move, end func(*InputEvent)) {
	if s.sub != nil || v == nil {
		return
	}
	s.sub = v.Listen(move, end)
}

func (s *listenerScope) release() {
	if s.sub == nil {
		return
	}
	s.sub.Remove()
	s.sub = nil
}

func (s *listenerScope) held() bool {
	return s.sub != nil
}

// --- Dispatcher ---

type eventHandler struct {
	id uint32
	fn func(*InputEvent)
}

// Dispatcher is an in-process Surface and Viewport. Hosts translate their
// native input into InputEvents and call DispatchStart, DispatchMove and
// DispatchEnd; the Dispatcher routes them to whichever listeners are
// currently registered.
type Dispatcher struct {
	bounds  Rect
	mounted bool
	start   []eventHandler
	move    []eventHandler
	end     []eventHandler
	nextID  uint32
}

// NewDispatcher creates a dispatcher for a surface occupying bounds.
func NewDispatcher(bounds Rect) *Dispatcher {
	return &Dispatcher{bounds: bounds, mounted: true}
}

// SetBounds updates the surface rectangle, for example after a window resize.
func (d *Dispatcher) SetBounds(r Rect) {
	d.bounds = r
	d.mounted = true
}

// Unmount marks the surface as not laid out. Bounds reports false until the
// next SetBounds.
func (d *Dispatcher) Unmount() {
	d.mounted = false
}

// Bounds implements Surface.
func (d *Dispatcher) Bounds() (Rect, bool) {
	return d.bounds, d.mounted
}

// OnStart implements Surface.
func (d *Dispatcher) OnStart(fn func(*InputEvent)) Subscription {
	d.nextID++
	id := d.nextID
	d.start = append(d.start, eventHandler{id: id, fn: fn})
	return &dispatcherHandle{d: d, ids: []uint32{id}}
}

// Listen implements Viewport.
func (d *Dispatcher) Listen(move, end func(*InputEvent)) Subscription {
	h := &dispatcherHandle{d: d}
	if move != nil {
		d.nextID++
		d.move = append(d.move, eventHandler{id: d.nextID, fn: move})
		h.ids = append(h.ids, d.nextID)
	}
	if end != nil {
		d.nextID++
		d.end = append(d.end, eventHandler{id: d.nextID, fn: end})
		h.ids = append(h.ids, d.nextID)
	}
	return h
}

// ListenerCount returns the number of registered start, move and end
// listeners combined.
func (d *Dispatcher) ListenerCount() int {
	return len(d.start) + len(d.move) + len(d.end)
}

// DispatchStart delivers ev to surface listeners if its first contact lies
// within the surface. Events without usable coordinates are delivered as-is
// so the receiver decides how to reject them.
func (d *Dispatcher) DispatchStart(ev *InputEvent) {
	if p, err := ev.first(); err == nil {
		if !d.mounted || !d.bounds.Contains(p.X, p.Y) {
			return
		}
	}
	dispatch(d.start, ev)
}

// DispatchMove delivers ev to all viewport move listeners.
func (d *Dispatcher) DispatchMove(ev *InputEvent) {
	dispatch(d.move, ev)
}

// DispatchEnd delivers ev to all viewport end listeners.
func (d *Dispatcher) DispatchEnd(ev *InputEvent) {
	dispatch(d.end, ev)
}

// dispatch iterates over a copy so listeners may unregister themselves.
func dispatch(hs []eventHandler, ev *InputEvent) {
	if len(hs) == 0 {
		return
	}
	snapshot := make([]eventHandler, len(hs))
	copy(snapshot, hs)
	for _, h := range snapshot {
		h.fn(ev)
	}
}

type dispatcherHandle struct {
	d   *Dispatcher
	ids []uint32
}

func (h *dispatcherHandle) Remove() {
	if h.d == nil {
		return
	}
	for _, id := range h.ids {
		h.d.start = removeEventHandler(h.d.start, id)
		h.d.move = removeEventHandler(h.d.move, id)
		h.d.end = removeEventHandler(h.d.end, id)
	}
	h.d = nil
}

func removeEventHandler(s []eventHandler, id uint32) []eventHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}
