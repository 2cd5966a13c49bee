package system

import (
	"github.com/milk9111/reaper/common"
	"github.com/milk9111/reaper/ecs"
	"github.com/milk9111/reaper/ecs/component"
)

// CameraSystem eases the camera toward the player's transform.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		if e, ok := w.First(component.CameraComponent.Kind()); ok {
			cs.camEntity = e
		}
	}
	if !cs.targetEntity.Valid() || !w.IsAlive(cs.targetEntity) {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			cs.targetEntity = e
		}
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	k := cam.Smoothness
	if k <= 0 || k > 1 {
		k = 1
	}
	cam.X = common.Lerp(cam.X, target.X, k)
	cam.Y = common.Lerp(cam.Y, target.Y, k)
}
