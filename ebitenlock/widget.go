// Package ebitenlock hosts a patternlock.Lock inside an Ebitengine game. It
// polls mouse and the first touch contact, routes them through a
// patternlock.Dispatcher, pulses newly selected dots (via gween) and draws the
// grid, the connected lines and the drag line. Run wraps a Widget in a window.
//
// The core patternlock package does not import Ebitengine; only programs that
// import this package need cgo and a display.
package ebitenlock

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/patternlock"
)

const (
	labelFontSize = 16
	labelGap      = 12 // pixels between surface and label / reset button
	resetPadding  = 8
)

// Widget hosts a Lock in an Ebitengine game.
//
//	lock, _ := patternlock.New(patternlock.DefaultConfig())
//	w, _ := ebitenlock.NewWidget(lock, patternlock.Rect{X: 40, Y: 40, Width: 300, Height: 300})
//	// in Game.Update: w.Update()
//	// in Game.Draw:   w.Draw(screen)
type Widget struct {
	lock       *patternlock.Lock
	dispatcher *patternlock.Dispatcher
	input      *PointerInput
	pulses     pulseSet
	selected   patternlock.CallbackHandle

	bounds    patternlock.Rect
	face      *text.GoTextFace
	resetRect patternlock.Rect

	// ScreenshotDir is where Screenshot writes PNG files. Defaults to
	// "screenshots".
	ScreenshotDir   string
	screenshotQueue []string
}

// NewWidget attaches lock to a new surface occupying bounds (screen pixels).
// A reset button is laid out under the surface when the lock's config has a
// ResetLabel.
func NewWidget(lock *patternlock.Lock, bounds patternlock.Rect) (*Widget, error) {
	w := &Widget{
		lock:       lock,
		dispatcher: patternlock.NewDispatcher(bounds),
		pulses:     make(pulseSet),
		bounds:     bounds,
	}
	w.input = NewPointerInput(w.dispatcher)

	cfg := lock.Config()
	if cfg.Label != "" || cfg.ResetLabel != "" {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("ebitenlock: load label font: %w", err)
		}
		w.face = &text.GoTextFace{Source: source, Size: labelFontSize}
	}

	if err := lock.Attach(w.dispatcher, w.dispatcher); err != nil {
		return nil, err
	}
	w.selected = lock.OnPointSelected(func(p patternlock.GridPoint) { w.pulses.start(p.ID) })

	if cfg.ResetLabel != "" {
		w.layoutReset()
		w.input.AddButton(w.resetRect, lock.Clear)
	}
	return w, nil
}

// Lock returns the hosted lock.
func (w *Widget) Lock() *patternlock.Lock { return w.lock }

// Input returns the pointer poller, for injecting synthetic input.
func (w *Widget) Input() *PointerInput { return w.input }

// Bounds returns the surface rectangle in screen pixels.
func (w *Widget) Bounds() patternlock.Rect { return w.bounds }

// SetBounds moves or resizes the surface.
func (w *Widget) SetBounds(r patternlock.Rect) {
	w.bounds = r
	w.dispatcher.SetBounds(r)
	if w.lock.Config().ResetLabel != "" {
		w.layoutReset()
		w.input.buttons[0].bounds = w.resetRect
	}
}

// Close detaches the lock and releases all listeners.
func (w *Widget) Close() {
	w.selected.Remove()
	w.lock.Detach()
}

// Update processes input and advances animations. Call once per tick.
func (w *Widget) Update() {
	w.input.Update()
	w.pulses.update(float32(1.0 / float64(ebiten.TPS())))
}

// Draw renders the widget onto screen.
func (w *Widget) Draw(screen *ebiten.Image) {
	cfg := w.lock.Config()
	theme := cfg.Theme
	unit := w.unit()
	lineWidth := float32(theme.LineWidth * unit)

	for _, seg := range w.lock.ConnectedLines() {
		w.strokeSegment(screen, seg, lineWidth, theme.Line)
	}
	if seg, ok := w.lock.DragLine(); ok {
		w.strokeSegment(screen, seg, lineWidth, theme.DragLine)
	}

	for _, p := range cfg.Grid {
		c := patternlock.FromSurface(patternlock.Vec2{X: p.X, Y: p.Y}, w.bounds)
		r := cfg.DotRadius * unit
		col := theme.Dot
		if w.lock.Selected(p.ID) {
			col = theme.ActiveDot
			r *= w.pulses.scale(p.ID)
		}
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(r), col.RGBA(), true)
	}

	if w.face == nil {
		return
	}
	if cfg.Label != "" {
		_, h := text.Measure(cfg.Label, w.face, 0)
		w.drawText(screen, cfg.Label, w.bounds.X+w.bounds.Width/2, w.bounds.Y-labelGap-h, theme.Label)
	}
	if cfg.ResetLabel != "" {
		r := w.resetRect
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, theme.Label.RGBA(), true)
		w.drawText(screen, cfg.ResetLabel, r.X+r.Width/2, r.Y+resetPadding, theme.Label)
	}
}

// unit is the number of pixels per normalized unit.
func (w *Widget) unit() float64 {
	return math.Min(w.bounds.Width, w.bounds.Height) / 100
}

func (w *Widget) strokeSegment(screen *ebiten.Image, seg patternlock.Segment, width float32, col patternlock.Color) {
	a := patternlock.FromSurface(patternlock.Vec2{X: seg.X1, Y: seg.Y1}, w.bounds)
	b := patternlock.FromSurface(patternlock.Vec2{X: seg.X2, Y: seg.Y2}, w.bounds)
	vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, col.RGBA(), true)
}

func (w *Widget) drawText(screen *ebiten.Image, s string, centerX, top float64, col patternlock.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(centerX, top)
	op.ColorScale.ScaleWithColor(col.RGBA())
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, s, w.face, op)
}

func (w *Widget) layoutReset() {
	label := w.lock.Config().ResetLabel
	tw, th := float64(len(label))*labelFontSize/2, float64(labelFontSize)
	if w.face != nil {
		tw, th = text.Measure(label, w.face, 0)
	}
	width := tw + 2*resetPadding
	w.resetRect = patternlock.Rect{
		X:      w.bounds.X + (w.bounds.Width-width)/2,
		Y:      w.bounds.Y + w.bounds.Height + labelGap,
		Width:  width,
		Height: th + 2*resetPadding,
	}
}
