package entity

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/common"
	"github.com/milk9111/reaper/ecs"
	"github.com/milk9111/reaper/ecs/component"
	"github.com/milk9111/reaper/prefabs"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const defaultEffectDuration = 0.25

// EffectSpawner creates effect entities of one kind. It is the controller's
// effect sink.
type EffectSpawner struct {
	w    *ecs.World
	kind component.EffectKind
	spec prefabs.EffectSpec
}

func NewEffectSpawner(w *ecs.World, kind component.EffectKind, spec prefabs.EffectSpec) *EffectSpawner {
	return &EffectSpawner{w: w, kind: kind, spec: spec}
}

func (s *EffectSpawner) SpawnEffect(position cp.Vector, rotation float64) {
	if s == nil || s.w == nil {
		return
	}
	if _, err := SpawnEffect(s.w, s.kind, s.spec, position, rotation); err != nil {
		log.Printf("effect: spawn: %v", err)
	}
}

// SpawnEffect creates a fading effect. Its alpha tweens from 1 to 0 over the
// spec duration and a TTL removes it once the fade is done.
func SpawnEffect(w *ecs.World, kind component.EffectKind, spec prefabs.EffectSpec, position cp.Vector, rotation float64) (ecs.Entity, error) {
	duration := spec.Duration
	if duration <= 0 {
		duration = defaultEffectDuration
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        position.X,
		Y:        position.Y,
		ScaleX:   1,
		ScaleY:   1,
		Rotation: rotation,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.EffectComponent.Kind(), &component.Effect{
		Kind:   kind,
		Fade:   gween.New(1, 0, float32(duration), ease.OutQuad),
		Alpha:  1,
		Width:  spec.Width,
		Height: spec.Height,
	}); err != nil {
		return 0, err
	}
	frames := int(math.Ceil(duration*common.TPS)) + 1
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: frames}); err != nil {
		return 0, err
	}
	return e, nil
}
