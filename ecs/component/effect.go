package component

import "github.com/tanema/gween"

type EffectKind int

const (
	EffectDash EffectKind = iota
	EffectLandDust
)

// Effect is a short-lived visual whose alpha is driven by a tween.
type Effect struct {
	Kind  EffectKind
	Fade  *gween.Tween
	Alpha float32
	// Width and Height are in world units.
	Width  float64
	Height float64
}

var EffectComponent = NewComponent[Effect]()
