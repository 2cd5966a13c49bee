package controller

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig       = errors.New("controller: invalid config")
	ErrMissingCollaborator = errors.New("controller: missing collaborator")
)

const (
	// CeilingCheckRadius is the fixed radius of the stand-up clearance probe.
	CeilingCheckRadius = 0.2

	// DefaultSpeedScale converts a move amount into horizontal velocity.
	DefaultSpeedScale = 10.0
)

// Config is set once at construction (or on hot reload) and read-only while
// the actor is ticking.
type Config struct {
	// JumpForce is the upward impulse applied on a grounded jump.
	JumpForce float64
	// CrouchSpeed scales the move amount while crouched, 0..1.
	CrouchSpeed float64
	// MovementSmoothing is the SmoothDamp time constant in seconds, 0..0.3.
	MovementSmoothing float64
	// AirControl allows horizontal steering while airborne.
	AirControl bool
	// GroundMask selects which collision categories count as ground. It
	// filters both the ground/ceiling overlaps and the dash probes.
	GroundMask uint
	// GroundCheckRadius is the radius of the grounded overlap circle.
	GroundCheckRadius float64
	// DashDistance is the full, unobstructed dash length.
	DashDistance float64
	// SpeedScale multiplies the move amount into a target velocity.
	SpeedScale float64
}

func DefaultConfig() Config {
	return Config{
		JumpForce:         12,
		CrouchSpeed:       0.36,
		MovementSmoothing: 0.05,
		AirControl:        false,
		GroundMask:        1,
		GroundCheckRadius: 0.2,
		DashDistance:      3,
		SpeedScale:        DefaultSpeedScale,
	}
}

func (c Config) Validate() error {
	switch {
	case c.JumpForce <= 0:
		return fmt.Errorf("%w: jump force must be > 0, got %v", ErrInvalidConfig, c.JumpForce)
	case c.CrouchSpeed < 0 || c.CrouchSpeed > 1:
		return fmt.Errorf("%w: crouch speed must be in [0,1], got %v", ErrInvalidConfig, c.CrouchSpeed)
	case c.MovementSmoothing < 0 || c.MovementSmoothing > 0.3:
		return fmt.Errorf("%w: movement smoothing must be in [0,0.3], got %v", ErrInvalidConfig, c.MovementSmoothing)
	case c.DashDistance <= 0:
		return fmt.Errorf("%w: dash distance must be > 0, got %v", ErrInvalidConfig, c.DashDistance)
	case c.GroundCheckRadius <= 0:
		return fmt.Errorf("%w: ground check radius must be > 0, got %v", ErrInvalidConfig, c.GroundCheckRadius)
	case c.SpeedScale <= 0:
		return fmt.Errorf("%w: speed scale must be > 0, got %v", ErrInvalidConfig, c.SpeedScale)
	}
	return nil
}
