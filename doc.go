// Package patternlock is a pattern-lock gesture recognizer: a grid of points
// over which the user drags a single continuous stroke, producing the ordered
// list of visited point ids (a pattern).
//
// The core is host-independent. A [Lock] is an explicit state machine
// (Idle, Drawing) with one entry point per input event:
//
//	lock, err := patternlock.New(patternlock.DefaultConfig())
//	if err != nil { ... }
//	lock.OnPatternChange(func(p []int) { fmt.Println(p) })
//
//	lock.HandleStart(patternlock.PointerEvent(20, 20)) // point 1
//	lock.HandleMove(patternlock.PointerEvent(50, 20))  // point 2
//	lock.HandleEnd(patternlock.PointerEvent(50, 20))   // prints [1 2]
//
// Without an attached surface, event coordinates are taken to be normalized
// already (0-100 on each axis). Attach the lock to a [Surface] and a
// [Viewport] to map viewport coordinates and to have move/end listeners
// acquired and released with each gesture. [Dispatcher] implements both and
// is what the bundled hosts feed.
//
// # Hosts
//
// The ebitenlock package runs a lock inside an [Ebitengine] game, polling
// mouse and the first touch contact and pulsing each newly selected dot.
// This package does not import Ebitengine itself. The term package hosts a
// lock in a terminal through tcell, the snapshot package rasterizes the
// lock state to PNG, and the ecs module forwards pattern events into a
// [Donburi] world.
//
// # Derived state
//
// [Lock.ConnectedLines] and [Lock.DragLine] are what a renderer needs. Both
// are recomputed from the selection and grid on every call.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package patternlock
