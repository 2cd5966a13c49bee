package entity

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/controller"
	"github.com/milk9111/reaper/ecs"
	"github.com/milk9111/reaper/ecs/component"
	"github.com/milk9111/reaper/prefabs"
	"github.com/milk9111/reaper/tuning"
)

// NewPlayer loads player.yaml and builds the player at spawn.
func NewPlayer(w *ecs.World, stats controller.Stats, spawn cp.Vector) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return BuildPlayer(w, spec, stats, spawn)
}

// BuildPlayer creates the actor body in the world's physics world and wires a
// controller to it. stats may be nil.
func BuildPlayer(w *ecs.World, spec *prefabs.PlayerSpec, stats controller.Stats, spawn cp.Vector) (ecs.Entity, error) {
	if w == nil || spec == nil {
		return 0, fmt.Errorf("player: nil world or spec")
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, fmt.Errorf("player: world has no physics world")
	}

	geom := spec.Geometry.Geometry()
	actor := pw.AddActorBody(ecs.ActorBodySpec{
		Position:       spawn,
		Mass:           spec.Body.Mass,
		BoxHalfExtents: geom.BoxHalfExtents,
		BoxOffset:      geom.BoxOffset,
		CircleRadius:   geom.CircleRadius,
		CircleOffset:   geom.CircleOffset,
	})

	ctrl, err := controller.New(spec.Controller.Config(), geom, controller.Deps{
		Body:           actor,
		Prober:         pw,
		CrouchCollider: actor.CrouchCollider(),
		Effects:        NewEffectSpawner(w, component.EffectDash, spec.Effects.Dash),
		Stats:          stats,
	})
	if err != nil {
		pw.RemoveActorBody(actor)
		return 0, fmt.Errorf("player: %w", err)
	}

	if spec.CorrectionScript != "" {
		sc, err := tuning.Load(spec.CorrectionScript)
		if err != nil {
			log.Printf("player: %v; using default correction", err)
		} else {
			ctrl.SetCorrection(sc.Correction())
		}
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      spawn.X,
		Y:      spawn.Y,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		ID:   actor.ID(),
		Body: actor.Body(),
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{
		Controller:         ctrl,
		Spawn:              spawn,
		DashCooldownFrames: spec.Controller.DashCooldownFrames,
	}); err != nil {
		return 0, fmt.Errorf("player: add actor: %w", err)
	}

	return e, nil
}
