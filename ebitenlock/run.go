package ebitenlock

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// OnUpdate, if set, runs after the widget's Update each tick.
	OnUpdate func()
	// OnDraw, if set, runs after the widget has been drawn.
	OnDraw func(screen *ebiten.Image)
}

// Run opens a window and runs a game loop around w. It blocks until the
// window is closed and detaches the widget's lock on return.
func Run(w *Widget, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	defer w.Close()
	return ebiten.RunGame(&game{widget: w, cfg: cfg})
}

type game struct {
	widget *Widget
	cfg    RunConfig
}

func (g *game) Update() error {
	g.widget.Update()
	if g.cfg.OnUpdate != nil {
		g.cfg.OnUpdate()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.widget.Lock().Config().Theme.Background.RGBA())
	g.widget.Draw(screen)
	if g.cfg.OnDraw != nil {
		g.cfg.OnDraw(screen)
	}
	g.widget.flushScreenshots(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
