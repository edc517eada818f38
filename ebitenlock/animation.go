package ebitenlock

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	pulseFrom     = 1.6
	pulseDuration = 0.25 // seconds
)

// pulse animates a selected dot's scale from pulseFrom back to 1.
type pulse struct {
	tween *gween.Tween
	scale float64
	done  bool
}

func newPulse() *pulse {
	return &pulse{
		tween: gween.New(pulseFrom, 1, pulseDuration, ease.OutQuad),
		scale: pulseFrom,
	}
}

// update advances the pulse by dt seconds.
func (p *pulse) update(dt float32) {
	if p.done {
		return
	}
	val, finished := p.tween.Update(dt)
	p.scale = float64(val)
	p.done = finished
}

// pulseSet tracks active pulses by point id.
type pulseSet map[int]*pulse

func (s pulseSet) start(id int) {
	s[id] = newPulse()
}

// update advances every pulse and drops finished ones.
func (s pulseSet) update(dt float32) {
	for id, p := range s {
		p.update(dt)
		if p.done {
			delete(s, id)
		}
	}
}

// scale returns the current scale for id, or 1 when it is not pulsing.
func (s pulseSet) scale(id int) float64 {
	if p, ok := s[id]; ok {
		return p.scale
	}
	return 1
}
