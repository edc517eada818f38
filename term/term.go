// Package term hosts a patternlock.Lock in a terminal using tcell. Mouse
// press, drag and release over the grid drive the lock; 'c' clears it and
// 'q', Escape or Ctrl-C quit.
package term

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/patternlock"
)

const (
	runeDot      = '○'
	runeSelected = '●'
	runeLine     = '·'
	topMargin    = 2 // rows above the surface (label)
	bottomMargin = 2 // rows below the surface (status)
)

// Host owns a tcell screen and the lock drawn on it. All methods must be
// called from the goroutine that polls the screen.
type Host struct {
	screen     tcell.Screen
	lock       *patternlock.Lock
	dispatcher *patternlock.Dispatcher
	handles    []patternlock.CallbackHandle

	surface patternlock.Rect
	down    bool
	status  string
}

// New attaches lock to a surface laid out in the middle of screen. The
// screen must already be initialized.
func New(screen tcell.Screen, lock *patternlock.Lock) (*Host, error) {
	h := &Host{screen: screen, lock: lock}
	h.layout()
	h.dispatcher = patternlock.NewDispatcher(h.surface)
	if err := lock.Attach(h.dispatcher, h.dispatcher); err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	h.handles = append(h.handles,
		lock.OnPatternChange(h.patternChanged),
		lock.OnPatternCleared(func() { h.status = "cleared" }),
	)
	return h, nil
}

// Surface returns the lock surface in cell coordinates.
func (h *Host) Surface() patternlock.Rect { return h.surface }

// Status returns the status line text.
func (h *Host) Status() string { return h.status }

// SetStatus replaces the status line text until the next pattern or clear.
// Callbacks registered on the lock after New run after the host's own and
// may use it to override the default message.
func (h *Host) SetStatus(s string) { h.status = s }

// Close detaches the lock. It does not finalize the screen.
func (h *Host) Close() {
	for _, cb := range h.handles {
		cb.Remove()
	}
	h.handles = nil
	h.lock.Detach()
}

// Run enables the mouse and processes events until the user quits.
func (h *Host) Run() error {
	h.screen.EnableMouse()
	h.Draw()
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if h.HandleEvent(ev) {
			return nil
		}
		h.Draw()
	}
}

// HandleEvent processes a single tcell event and reports whether the host
// should quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		x, y := e.Position()
		h.processPointer(float64(x)+0.5, float64(y)+0.5, e.Buttons()&tcell.Button1 != 0)
	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			switch e.Rune() {
			case 'q':
				return true
			case 'c':
				h.lock.Clear()
			}
		}
	case *tcell.EventResize:
		h.layout()
		h.dispatcher.SetBounds(h.surface)
		h.screen.Sync()
	}
	return false
}

// processPointer maps tcell's button mask onto start/move/end transitions.
func (h *Host) processPointer(x, y float64, pressed bool) {
	ev := &patternlock.InputEvent{
		Kind:   patternlock.PointerMouse,
		Points: []patternlock.Vec2{{X: x, Y: y}},
	}
	switch {
	case pressed && !h.down:
		h.down = true
		h.dispatcher.DispatchStart(ev)
	case pressed && h.down:
		h.dispatcher.DispatchMove(ev)
	case !pressed && h.down:
		h.down = false
		h.dispatcher.DispatchEnd(ev)
	}
}

func (h *Host) patternChanged(pattern []int) {
	if len(pattern) == 0 {
		return
	}
	h.status = "pattern: " + FormatPattern(pattern)
}

// layout sizes the surface to fit the screen. Cells are roughly twice as
// tall as they are wide, so the surface is twice as wide as it is tall.
func (h *Host) layout() {
	cols, rows := h.screen.Size()
	height := min(rows-topMargin-bottomMargin, cols/2)
	if height < 1 {
		height = 1
	}
	width := 2 * height
	h.surface = patternlock.Rect{
		X:      float64((cols - width) / 2),
		Y:      topMargin,
		Width:  float64(width),
		Height: float64(height),
	}
}

// Draw renders the label, lines, dots and status line.
func (h *Host) Draw() {
	h.screen.Clear()
	cfg := h.lock.Config()
	theme := cfg.Theme
	lineStyle := tcell.StyleDefault.Foreground(toTcell(theme.Line))
	dotStyle := tcell.StyleDefault.Foreground(toTcell(theme.Dot))
	activeStyle := tcell.StyleDefault.Foreground(toTcell(theme.ActiveDot)).Bold(true)
	labelStyle := tcell.StyleDefault.Foreground(toTcell(theme.Label))

	if cfg.Label != "" {
		h.drawText(int(h.surface.X), 0, cfg.Label, labelStyle)
	}

	for _, seg := range h.lock.ConnectedLines() {
		h.drawSegment(seg, lineStyle)
	}
	if seg, ok := h.lock.DragLine(); ok {
		h.drawSegment(seg, lineStyle.Dim(true))
	}

	for _, p := range h.lock.Grid() {
		x, y := h.cell(p.X, p.Y)
		if h.lock.Selected(p.ID) {
			h.screen.SetContent(x, y, runeSelected, nil, activeStyle)
		} else {
			h.screen.SetContent(x, y, runeDot, nil, dotStyle)
		}
	}

	_, rows := h.screen.Size()
	h.drawText(int(h.surface.X), rows-1, h.status, labelStyle)
	h.screen.Show()
}

// cell converts a normalized point to the cell containing it.
func (h *Host) cell(nx, ny float64) (int, int) {
	p := patternlock.FromSurface(patternlock.Vec2{X: nx, Y: ny}, h.surface)
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

func (h *Host) drawSegment(seg patternlock.Segment, style tcell.Style) {
	x1, y1 := h.cell(seg.X1, seg.Y1)
	x2, y2 := h.cell(seg.X2, seg.Y2)
	steps := max(abs(x2-x1), abs(y2-y1))
	if steps == 0 {
		return
	}
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(float64(x1) + float64(x2-x1)*t))
		y := int(math.Round(float64(y1) + float64(y2-y1)*t))
		h.screen.SetContent(x, y, runeLine, nil, style)
	}
}

func (h *Host) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		h.screen.SetContent(x+i, y, r, nil, style)
	}
}

// FormatPattern renders a pattern as "1-2-3".
func FormatPattern(pattern []int) string {
	parts := make([]string, len(pattern))
	for i, id := range pattern {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, "-")
}

func toTcell(c patternlock.Color) tcell.Color {
	n := c.RGBA()
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
