package ebitenlock

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/patternlock"
)

// Screenshot queues a labeled capture of the next frame drawn by Run. The
// PNG is written to ScreenshotDir as <timestamp>_<label>.png. Safe to call
// from lock callbacks fired during Update.
func (w *Widget) Screenshot(label string) {
	w.screenshotQueue = append(w.screenshotQueue, label)
}

// flushScreenshots encodes the frame once and writes it under every queued
// label. Called at the end of the game's Draw.
func (w *Widget) flushScreenshots(screen *ebiten.Image) {
	if len(w.screenshotQueue) == 0 {
		return
	}
	labels := w.screenshotQueue
	w.screenshotQueue = w.screenshotQueue[:0]

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	if err := w.saveFrame(unpremultiply(pixels, b.Dx(), b.Dy()), labels, time.Now()); err != nil {
		patternlock.Logger().Warn("screenshot failed", "err", err)
	}
}

// saveFrame writes img as PNG once per label. The first failure stops the
// flush and is returned.
func (w *Widget) saveFrame(img image.Image, labels []string, at time.Time) error {
	dir := w.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("screenshot: encode: %w", err)
	}
	stamp := at.Format("20060102_150405")
	for _, label := range labels {
		path := filepath.Join(dir, stamp+"_"+fileLabel(label)+".png")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("screenshot: %w", err)
		}
	}
	return nil
}

// unpremultiply converts ReadPixels output to a straight-alpha image.
func unpremultiply(pixels []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := i; c < i+3; c++ {
			img.Pix[c] = uint8(min(int(img.Pix[c])*255/a, 255))
		}
	}
	return img
}

// fileLabel keeps letters, digits, '-' and '.' and maps everything else to
// '_'. Blank labels become "unlabeled".
func fileLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
