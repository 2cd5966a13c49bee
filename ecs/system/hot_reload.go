package system

import (
	"log"
	"path/filepath"

	"github.com/milk9111/reaper/ecs"
	"github.com/milk9111/reaper/ecs/component"
	"github.com/milk9111/reaper/prefabs"
	"github.com/milk9111/reaper/tuning"
)

// HotReloadSystem applies prefab and script edits reported by a
// prefabs.Watcher. Actor state survives a reload; only configuration and the
// dash correction are swapped.
type HotReloadSystem struct {
	changes <-chan prefabs.Change
	errs    <-chan error
	effects *EffectSystem
}

func NewHotReloadSystem(changes <-chan prefabs.Change, errs <-chan error, effects *EffectSystem) *HotReloadSystem {
	return &HotReloadSystem{changes: changes, errs: errs, effects: effects}
}

func (h *HotReloadSystem) Update(w *ecs.World) {
	if h == nil || w == nil {
		return
	}
	for {
		select {
		case change, ok := <-h.changes:
			if !ok {
				h.changes = nil
				return
			}
			h.apply(w, change)
		case err, ok := <-h.errs:
			if !ok {
				h.errs = nil
				return
			}
			log.Printf("prefabs: watch: %v", err)
		default:
			return
		}
	}
}

func (h *HotReloadSystem) apply(w *ecs.World, change prefabs.Change) {
	switch change.Kind {
	case prefabs.ChangeSpec:
		if change.Name() != prefabs.PlayerSpecFile {
			return
		}
		h.reloadSpec(w)
	case prefabs.ChangeScript:
		h.reloadScript(w, change.Name())
	}
}

func (h *HotReloadSystem) reloadSpec(w *ecs.World) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Printf("prefabs: reload %s: %v", prefabs.PlayerSpecFile, err)
		return
	}

	ecs.ForEach2(w, component.ActorComponent.Kind(), component.PlayerTagComponent.Kind(), func(e ecs.Entity, actor *component.Actor, _ *component.PlayerTag) {
		if err := actor.Controller.SetConfig(spec.Controller.Config()); err != nil {
			log.Printf("prefabs: reload %s: %v", prefabs.PlayerSpecFile, err)
			return
		}
		actor.DashCooldownFrames = spec.Controller.DashCooldownFrames
	})
	h.effects.SetLandDust(spec.Effects.LandDust)
	log.Printf("prefabs: reload %s", prefabs.PlayerSpecFile)
}

func (h *HotReloadSystem) reloadScript(w *ecs.World, name string) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Printf("prefabs: reload %s: %v", name, err)
		return
	}
	if filepath.Base(spec.CorrectionScript) != name {
		return
	}

	sc, err := tuning.Load(spec.CorrectionScript)
	if err != nil {
		log.Printf("%v; keeping previous correction", err)
		return
	}
	ecs.ForEach2(w, component.ActorComponent.Kind(), component.PlayerTagComponent.Kind(), func(_ ecs.Entity, actor *component.Actor, _ *component.PlayerTag) {
		actor.Controller.SetCorrection(sc.Correction())
	})
	log.Printf("tuning: reload %s", name)
}
