package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/ecs"
	"github.com/milk9111/reaper/ecs/component"
	"github.com/milk9111/reaper/levels"
)

// LoadLevelToWorld adds the level's collision layers to the physics world and
// creates a Solid entity per merged box. It returns the player spawn.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) (cp.Vector, error) {
	if w == nil || lvl == nil {
		return cp.Vector{}, fmt.Errorf("level: nil world or level")
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return cp.Vector{}, fmt.Errorf("level: world has no physics world")
	}

	for _, layer := range lvl.PhysicsLayers() {
		for _, bb := range pw.AddTileLayer(lvl.Width, lvl.Height, layer, lvl.Tile()) {
			solid := ecs.CreateEntity(w)
			if err := ecs.Add(w, solid, component.SolidComponent.Kind(), &component.Solid{BB: bb}); err != nil {
				return cp.Vector{}, fmt.Errorf("level: add solid: %w", err)
			}
		}
	}

	return lvl.Spawn(), nil
}
