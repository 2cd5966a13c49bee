package controller

import "github.com/jakecoffman/cp"

// ActorState is the mutable record shared by the sensor, locomotion and dash
// resolver of a single actor. It is owned by the Controller and written once
// per tick or once per dash.
type ActorState struct {
	FacingRight  bool
	Grounded     bool
	WasCrouching bool

	// Velocity is the smoothed velocity last written to the body.
	Velocity cp.Vector
	// TargetVelocity is the unsmoothed velocity locomotion aimed for.
	TargetVelocity cp.Vector
	// SmoothingAccumulator is the SmoothDamp spring velocity.
	SmoothingAccumulator cp.Vector

	// ScaleX is the horizontal render scale; a flip negates it.
	ScaleX float64
}

func NewActorState() *ActorState {
	return &ActorState{FacingRight: true, ScaleX: 1}
}

// ColliderGeometry describes the actor's collider and visual extents. All
// offsets are relative to the body position. It is read-only to this package.
type ColliderGeometry struct {
	BoxHalfExtents cp.Vector
	BoxOffset      cp.Vector
	CircleRadius   float64
	CircleOffset   cp.Vector

	// VisualHeight is the rendered height of the actor, used to inset the
	// dash probes and to size the post-hit correction.
	VisualHeight float64

	GroundCheck  cp.Vector
	CeilingCheck cp.Vector
}

// Intent is the per-tick player input consumed by Controller.Tick.
type Intent struct {
	Move   float64
	Crouch bool
	Jump   bool
}
