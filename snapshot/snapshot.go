// Package snapshot rasterizes the visible state of a patternlock.Lock (dots,
// connected lines and drag line) into an image without a GPU or window. It
// is used by the replay service and by tests that need to look at a pattern.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/phanxgames/patternlock"
)

// circleK is the cubic Bézier control distance for a quarter circle.
const circleK = 0.5522847498307936

// Render draws l onto a new width x height image using the lock's theme. The
// normalized 0-100 space is mapped onto the whole image.
func Render(l *patternlock.Lock, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("snapshot: invalid size %dx%d", width, height)
	}
	cfg := l.Config()
	theme := cfg.Theme
	bounds := patternlock.Rect{Width: float64(width), Height: float64(height)}
	unit := math.Min(float64(width), float64(height)) / 100

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(theme.Background.RGBA()), image.Point{}, draw.Src)

	c := &canvas{dst: dst, z: vector.NewRasterizer(width, height)}
	lw := theme.LineWidth * unit
	for _, seg := range l.ConnectedLines() {
		c.line(seg, bounds, lw, theme.Line.RGBA())
	}
	if seg, ok := l.DragLine(); ok {
		c.line(seg, bounds, lw, theme.DragLine.RGBA())
	}
	for _, p := range l.Grid() {
		col := theme.Dot
		if l.Selected(p.ID) {
			col = theme.ActiveDot
		}
		center := patternlock.FromSurface(patternlock.Vec2{X: p.X, Y: p.Y}, bounds)
		c.circle(center.X, center.Y, cfg.DotRadius*unit, col.RGBA())
	}
	return dst, nil
}

// EncodePNG renders l and writes it to w as PNG.
func EncodePNG(w io.Writer, l *patternlock.Lock, width, height int) error {
	img, err := Render(l, width, height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("snapshot: encode png: %w", err)
	}
	return nil
}

type canvas struct {
	dst *image.RGBA
	z   *vector.Rasterizer
}

func (c *canvas) fill(col color.Color) {
	c.z.DrawOp = draw.Over
	c.z.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{})
	b := c.dst.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
}

// circle fills a circle of radius r centered on (cx, cy).
func (c *canvas) circle(cx, cy, r float64, col color.Color) {
	if r <= 0 {
		return
	}
	x, y, rr, k := float32(cx), float32(cy), float32(r), float32(r*circleK)
	c.z.MoveTo(x+rr, y)
	c.z.CubeTo(x+rr, y+k, x+k, y+rr, x, y+rr)
	c.z.CubeTo(x-k, y+rr, x-rr, y+k, x-rr, y)
	c.z.CubeTo(x-rr, y-k, x-k, y-rr, x, y-rr)
	c.z.CubeTo(x+k, y-rr, x+rr, y-k, x+rr, y)
	c.z.ClosePath()
	c.fill(col)
}

// line strokes seg with round caps.
func (c *canvas) line(seg patternlock.Segment, bounds patternlock.Rect, width float64, col color.Color) {
	a := patternlock.FromSurface(patternlock.Vec2{X: seg.X1, Y: seg.Y1}, bounds)
	b := patternlock.FromSurface(patternlock.Vec2{X: seg.X2, Y: seg.Y2}, bounds)
	hw := width / 2
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length > 0 && hw > 0 {
		nx, ny := -dy/length*hw, dx/length*hw
		c.z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
		c.z.LineTo(float32(b.X+nx), float32(b.Y+ny))
		c.z.LineTo(float32(b.X-nx), float32(b.Y-ny))
		c.z.LineTo(float32(a.X-nx), float32(a.Y-ny))
		c.z.ClosePath()
		c.fill(col)
	}
	c.circle(a.X, a.Y, hw, col)
	c.circle(b.X, b.Y, hw, col)
}
