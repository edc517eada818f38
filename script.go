package patternlock

import (
	"encoding/json"
	"fmt"
)

// ScriptStep is a single action in a gesture script.
type ScriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Touch  bool    `json:"touch,omitempty"`
	// Points lists extra touch contacts after (X, Y). Only meaningful with
	// Touch set.
	Points []Vec2  `json:"points,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// Script is a recorded sequence of start/move/end/clear actions that can be
// replayed against a Lock without a running event loop.
type Script struct {
	// Bounds is the surface rectangle the coordinates refer to. Defaults to
	// the normalized 0-100 square.
	Bounds *Rect        `json:"bounds,omitempty"`
	Steps  []ScriptStep `json:"steps"`
}

// ReplayResult is the observable outcome of a replay.
type ReplayResult struct {
	// Patterns holds every PatternChange emission, in order.
	Patterns [][]int
	// Cleared counts PatternCleared emissions.
	Cleared int
	// Selection is the lock's selection after the last step.
	Selection []int
	// Lines are the connected lines after the last step.
	Lines []Segment
	// State is the gesture state after the last step.
	State GestureState
}

var scriptActions = map[string]bool{
	"start": true, "move": true, "end": true, "clear": true, "drag": true,
}

// LoadScript parses a JSON gesture script.
func LoadScript(jsonData []byte) (*Script, error) {
	var script Script
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &script, nil
}

// Replay attaches l to a fresh Dispatcher, feeds every step through it and
// detaches again. l must not already be attached.
func (s *Script) Replay(l *Lock) (ReplayResult, error) {
	bounds := normalizedBounds
	if s.Bounds != nil {
		bounds = *s.Bounds
	}
	d := NewDispatcher(bounds)
	if err := l.Attach(d, d); err != nil {
		return ReplayResult{}, fmt.Errorf("replay: %w", err)
	}
	defer l.Detach()

	var res ReplayResult
	changed := l.OnPatternChange(func(p []int) { res.Patterns = append(res.Patterns, p) })
	defer changed.Remove()
	cleared := l.OnPatternCleared(func() { res.Cleared++ })
	defer cleared.Remove()

	for _, st := range s.Steps {
		s.apply(d, l, st)
	}

	res.Selection = l.Pattern()
	res.Lines = l.ConnectedLines()
	res.State = l.State()
	return res, nil
}

func (s *Script) apply(d *Dispatcher, l *Lock, st ScriptStep) {
	switch st.Action {
	case "start":
		d.DispatchStart(st.event(st.X, st.Y))
	case "move":
		d.DispatchMove(st.event(st.X, st.Y))
	case "end":
		d.DispatchEnd(st.event(st.X, st.Y))
	case "clear":
		l.Clear()
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		d.DispatchStart(st.event(st.FromX, st.FromY))
		steps := frames - 2
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps+1)
			d.DispatchMove(st.event(st.FromX+(st.ToX-st.FromX)*t, st.FromY+(st.ToY-st.FromY)*t))
		}
		d.DispatchMove(st.event(st.ToX, st.ToY))
		d.DispatchEnd(st.event(st.ToX, st.ToY))
	}
}

func (st ScriptStep) event(x, y float64) *InputEvent {
	if st.Touch {
		return TouchEvent(append([]Vec2{{x, y}}, st.Points...)...)
	}
	return PointerEvent(x, y)
}
