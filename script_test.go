package patternlock

import (
	"errors"
	"reflect"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"bounds": {"x": 0, "y": 0, "width": 300, "height": 300},
		"steps": [
			{"action": "start", "x": 60, "y": 60},
			{"action": "move", "x": 150, "y": 60, "touch": true, "points": [{"x": 1, "y": 2}]},
			{"action": "end"},
			{"action": "drag", "fromX": 60, "fromY": 60, "toX": 240, "toY": 240, "frames": 5},
			{"action": "clear"}
		]
	}`)
	script, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if script.Bounds == nil || script.Bounds.Width != 300 {
		t.Fatalf("bounds = %+v", script.Bounds)
	}
	if len(script.Steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(script.Steps))
	}
	if st := script.Steps[1]; !st.Touch || len(st.Points) != 1 || st.Points[0] != (Vec2{1, 2}) {
		t.Errorf("step 1 mismatch: %+v", st)
	}
	if st := script.Steps[3]; st.ToX != 240 || st.Frames != 5 {
		t.Errorf("step 3 mismatch: %+v", st)
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"empty steps", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "tap"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReplay_Drag(t *testing.T) {
	script, err := LoadScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 20, "fromY": 20, "toX": 80, "toY": 20, "frames": 8}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	l := MustNew(DefaultConfig())
	res, err := script.Replay(l)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(res.Patterns) != 1 || !reflect.DeepEqual(res.Patterns[0], []int{1, 2, 3}) {
		t.Errorf("patterns = %v, want [[1 2 3]]", res.Patterns)
	}
	if !reflect.DeepEqual(res.Selection, []int{1, 2, 3}) || len(res.Lines) != 2 {
		t.Errorf("selection = %v lines = %v", res.Selection, res.Lines)
	}
	if res.State != Idle {
		t.Errorf("state = %v, want idle", res.State)
	}
	if l.Attached() {
		t.Error("lock should be detached after replay")
	}
}

func TestReplay_ShortDragSkipsMiddle(t *testing.T) {
	script, _ := LoadScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 20, "fromY": 20, "toX": 80, "toY": 20, "frames": 2}
	]}`))
	res, err := script.Replay(MustNew(DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Patterns) != 1 || !reflect.DeepEqual(res.Patterns[0], []int{1, 3}) {
		t.Errorf("patterns = %v, want [[1 3]]", res.Patterns)
	}
}

func TestReplay_ScaledBoundsAndClear(t *testing.T) {
	script, _ := LoadScript([]byte(`{
		"bounds": {"x": 100, "y": 100, "width": 200, "height": 200},
		"steps": [
			{"action": "start", "x": 140, "y": 140, "touch": true},
			{"action": "move", "x": 200, "y": 200, "touch": true},
			{"action": "move", "x": 600, "y": 600, "touch": true},
			{"action": "end", "x": 600, "y": 600, "touch": true},
			{"action": "start", "x": 5, "y": 5},
			{"action": "clear"}
		]
	}`))
	res, err := script.Replay(MustNew(DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	want := [][]int{{1, 5}, {}}
	if !reflect.DeepEqual(res.Patterns, want) {
		t.Errorf("patterns = %v, want %v", res.Patterns, want)
	}
	if res.Cleared != 1 || len(res.Selection) != 0 || len(res.Lines) != 0 {
		t.Errorf("result = %+v, want cleared once with empty selection", res)
	}
}

func TestReplay_MidGesture(t *testing.T) {
	script, _ := LoadScript([]byte(`{"steps": [
		{"action": "start", "x": 50, "y": 50},
		{"action": "move", "x": 80, "y": 50}
	]}`))
	l := MustNew(DefaultConfig())
	res, err := script.Replay(l)
	if err != nil {
		t.Fatal(err)
	}
	if res.State != Drawing || !reflect.DeepEqual(res.Selection, []int{5, 6}) {
		t.Errorf("result = %+v, want drawing [5 6]", res)
	}
	if len(res.Patterns) != 0 {
		t.Errorf("patterns = %v, want none", res.Patterns)
	}
	if l.State() != Idle {
		t.Error("detach after replay should abandon the gesture")
	}
}

func TestReplay_AlreadyAttached(t *testing.T) {
	l := MustNew(DefaultConfig())
	d := NewDispatcher(normalizedBounds)
	_ = l.Attach(d, d)
	script, _ := LoadScript([]byte(`{"steps": [{"action": "clear"}]}`))
	if _, err := script.Replay(l); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("Replay() error = %v, want ErrAlreadyAttached", err)
	}
}
