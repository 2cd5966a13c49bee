package controller

import "github.com/jakecoffman/cp"

// BodyID identifies a physics body in overlap results. Zero is the static
// world body.
type BodyID uint64

// Hit is a single ray intersection.
type Hit struct {
	Distance float64
	Point    cp.Vector
}

// Prober answers synchronous collision queries against the physics world.
type Prober interface {
	OverlapCircleAll(center cp.Vector, radius float64, mask uint) []BodyID
	OverlapCircle(center cp.Vector, radius float64, mask uint) bool
	// RaycastAll returns every hit along the ray, nearest first.
	RaycastAll(origin, direction cp.Vector, maxDistance float64, mask uint) []Hit
}

// Body is the rigid body driven by the controller.
type Body interface {
	ID() BodyID
	Position() cp.Vector
	SetPosition(p cp.Vector)
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	ApplyImpulse(impulse cp.Vector)
}

// Toggler enables or disables a collider, e.g. the upper hitbox that is
// switched off while crouching.
type Toggler interface {
	SetEnabled(enabled bool)
}

// EffectSpawner is fire-and-forget; rotation is in radians.
type EffectSpawner interface {
	SpawnEffect(position cp.Vector, rotation float64)
}

// Stats exposes upgrade multipliers. Both default to 1 when no Stats is set.
type Stats interface {
	DashDistanceMultiplier() float64
	MovementMultiplier() float64
}

// Deps are the collaborators of a Controller. Body and Prober are required.
type Deps struct {
	Body           Body
	Prober         Prober
	CrouchCollider Toggler
	Effects        EffectSpawner
	Stats          Stats
}
