package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/ecs"
	"github.com/milk9111/reaper/ecs/component"
	"github.com/milk9111/reaper/prefabs"
)

func NewCamera(w *ecs.World, spec prefabs.CameraSpec, at cp.Vector) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	smooth := spec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		X:          at.X,
		Y:          at.Y,
		Smoothness: smooth,
		Zoom:       zoom,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}
