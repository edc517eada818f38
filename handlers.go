package patternlock

// --- Handler registry ---

type patternHandler struct {
	id uint32
	fn func([]int)
}

type clearedHandler struct {
	id uint32
	fn func()
}

type pointHandler struct {
	id uint32
	fn func(GridPoint)
}

type handlerRegistry struct {
	patternChange  []patternHandler
	patternCleared []clearedHandler
	pointSelected  []pointHandler
	nextID         uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPatternChange:
		h.reg.patternChange = removeHandler(h.reg.patternChange, h.id, func(p patternHandler) uint32 { return p.id })
	case EventPatternCleared:
		h.reg.patternCleared = removeHandler(h.reg.patternCleared, h.id, func(c clearedHandler) uint32 { return c.id })
	case EventPointSelected:
		h.reg.pointSelected = removeHandler(h.reg.pointSelected, h.id, func(p pointHandler) uint32 { return p.id })
	}
}

func removeHandler[T any](s []T, id uint32, idOf func(T) uint32) []T {
	for i := range s {
		if idOf(s[i]) == id {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// OnPatternChange registers a callback fired when a gesture ends (with the
// drawn pattern) and when the lock is cleared (with an empty pattern). Each
// callback receives its own copy.
func (l *Lock) OnPatternChange(fn func(pattern []int)) CallbackHandle {
	l.handlers.nextID++
	id := l.handlers.nextID
	l.handlers.patternChange = append(l.handlers.patternChange, patternHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &l.handlers, event: EventPatternChange}
}

// OnPatternCleared registers a callback fired only by Clear.
func (l *Lock) OnPatternCleared(fn func()) CallbackHandle {
	l.handlers.nextID++
	id := l.handlers.nextID
	l.handlers.patternCleared = append(l.handlers.patternCleared, clearedHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &l.handlers, event: EventPatternCleared}
}

// OnPointSelected registers a callback fired each time a point joins the
// in-progress pattern.
func (l *Lock) OnPointSelected(fn func(GridPoint)) CallbackHandle {
	l.handlers.nextID++
	id := l.handlers.nextID
	l.handlers.pointSelected = append(l.handlers.pointSelected, pointHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &l.handlers, event: EventPointSelected}
}

// --- Event dispatch ---

func (l *Lock) firePatternChange(pattern []int) {
	for _, h := range append([]patternHandler(nil), l.handlers.patternChange...) {
		h.fn(clonePattern(pattern))
	}
	l.emitPatternEvent(PatternEvent{Type: EventPatternChange, Pattern: clonePattern(pattern)})
}

func (l *Lock) firePatternCleared() {
	for _, h := range append([]clearedHandler(nil), l.handlers.patternCleared...) {
		h.fn()
	}
	l.emitPatternEvent(PatternEvent{Type: EventPatternCleared, Pattern: []int{}})
}

func (l *Lock) firePointSelected(p GridPoint) {
	for _, h := range append([]pointHandler(nil), l.handlers.pointSelected...) {
		h.fn(p)
	}
	l.emitPatternEvent(PatternEvent{Type: EventPointSelected, Pattern: l.selection.Snapshot(), Point: p})
}

// --- ECS bridge ---

func (l *Lock) emitPatternEvent(ev PatternEvent) {
	if l.store == nil {
		return
	}
	l.store.EmitEvent(ev)
}

func clonePattern(p []int) []int {
	out := make([]int, len(p))
	copy(out, p)
	return out
}
