package system

import (
	"github.com/milk9111/reaper/controller"
	"github.com/milk9111/reaper/ecs"
	"github.com/milk9111/reaper/ecs/component"
)

// PhysicsSystem steps the physics world and copies body positions back into
// transforms. Actors also take their facing from the controller.
type PhysicsSystem struct {
	dt float64
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	if dt <= 0 {
		dt = controller.DefaultStep
	}
	return &PhysicsSystem{dt: dt}
}

func (p *PhysicsSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	pw.Step(p.dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil {
			return
		}
		pos := pb.Body.Position().Add(pb.Offset)
		t.X = pos.X
		t.Y = pos.Y
		if actor, ok := ecs.Get(w, e, component.ActorComponent.Kind()); ok && actor.Controller != nil {
			t.ScaleX = actor.Controller.State().ScaleX
		}
	})
}
