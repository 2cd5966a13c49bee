package system

import (
	"github.com/milk9111/reaper/controller"
	"github.com/milk9111/reaper/ecs"
	"github.com/milk9111/reaper/ecs/component"
	"github.com/milk9111/reaper/ecs/entity"
	"github.com/milk9111/reaper/prefabs"
)

// EffectSystem advances effect fades and turns land events into dust.
// Expiry is left to the TTL each effect carries.
type EffectSystem struct {
	dt       float32
	landDust prefabs.EffectSpec
}

func NewEffectSystem(dt float64, landDust prefabs.EffectSpec) *EffectSystem {
	if dt <= 0 {
		dt = controller.DefaultStep
	}
	return &EffectSystem{dt: float32(dt), landDust: landDust}
}

// SetLandDust replaces the dust spec, e.g. after a prefab reload.
func (s *EffectSystem) SetLandDust(spec prefabs.EffectSpec) {
	if s == nil {
		return
	}
	s.landDust = spec
}

func (s *EffectSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.EffectComponent.Kind(), func(e ecs.Entity, fx *component.Effect) {
		if fx.Fade == nil {
			return
		}
		alpha, done := fx.Fade.Update(s.dt)
		if done {
			alpha = 0
		}
		fx.Alpha = alpha
	})

	w.Events().Each(ecs.EventLand, func(evt ecs.Event) {
		land, ok := evt.Data.(ecs.LandEvent)
		if !ok {
			return
		}
		entity.NewEffectSpawner(w, component.EffectLandDust, s.landDust).SpawnEffect(land.Position, 0)
	})
}
