package system

import (
	"github.com/milk9111/reaper/ecs"
	"github.com/milk9111/reaper/ecs/component"
)

// CooldownSystem decrements frame-based cooldowns and removes them once they
// have run out.
type CooldownSystem struct{}

func NewCooldownSystem() *CooldownSystem {
	return &CooldownSystem{}
}

func (s *CooldownSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.CooldownComponent.Kind(), func(e ecs.Entity, cd *component.Cooldown) {
		if cd.Frames > 0 {
			cd.Frames--
			return
		}
		ecs.Remove(w, e, component.CooldownComponent.Kind())
	})
}
