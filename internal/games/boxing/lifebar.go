package boxing

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// barEase is how long the HUD takes to catch up with a change in life.
const barEase = 0.35

// lifeBar eases the drawn life toward the fighter's actual life.
type lifeBar struct {
	full   float64
	shown  float64
	target float64
	tween  *gween.Tween
}

func newLifeBar(full float64) *lifeBar {
	return &lifeBar{full: full, shown: full, target: full}
}

// Set starts easing toward v.
func (b *lifeBar) Set(v float64) {
	if v == b.target {
		return
	}
	b.target = v
	b.tween = gween.New(float32(b.shown), float32(v), barEase, ease.OutCubic)
}

// Update advances the ease by dt seconds.
func (b *lifeBar) Update(dt float64) {
	if b.tween == nil {
		return
	}
	v, done := b.tween.Update(float32(dt))
	b.shown = float64(v)
	if done {
		b.shown = b.target
		b.tween = nil
	}
}

// Fraction is the drawn share of a full bar, in [0, 1].
func (b *lifeBar) Fraction() float64 {
	if b == nil || b.full <= 0 {
		return 0
	}
	return min(1, max(0, b.shown/b.full))
}
