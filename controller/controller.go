// Package controller moves a single 2D physics actor: ground and ceiling
// sensing, smoothed horizontal locomotion with crouch and jump, and dash
// resolution against a physics world that only answers discrete probes.
//
// The package is single-threaded. Tick is called once per fixed physics step
// by the owner's scheduler and Dash on player action; both must be sequenced
// by the same caller.
package controller

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// Controller owns one actor's state and wires its sensor, locomotion and dash
// resolver to the same record.
type Controller struct {
	cfg    Config
	geom   ColliderGeometry
	state  *ActorState
	events *Events
	body   Body

	sensor     *GroundSensor
	locomotion *Locomotion
	dasher     *DashResolver
}

func New(cfg Config, geom ColliderGeometry, deps Deps) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Body == nil {
		return nil, fmt.Errorf("%w: body", ErrMissingCollaborator)
	}
	if deps.Prober == nil {
		return nil, fmt.Errorf("%w: prober", ErrMissingCollaborator)
	}

	c := &Controller{
		cfg:    cfg,
		geom:   geom,
		state:  NewActorState(),
		events: &Events{},
		body:   deps.Body,
	}
	c.sensor = NewGroundSensor(c.state, &c.cfg, &c.geom, deps.Body, deps.Prober, c.events)
	c.locomotion = NewLocomotion(c.state, &c.cfg, c.sensor, deps.Body, deps.CrouchCollider, deps.Stats, c.events)
	c.dasher = NewDashResolver(c.state, &c.cfg, &c.geom, deps.Body, deps.Prober, deps.Effects, deps.Stats)
	return c, nil
}

// Tick advances one fixed physics step: the sensor runs first so locomotion
// always reads a grounded flag computed this tick.
func (c *Controller) Tick(dt float64, in Intent) {
	if c == nil {
		return
	}
	c.locomotion.SetStep(dt)
	c.sensor.UpdateGrounded()
	c.locomotion.Move(in.Move, in.Crouch, in.Jump)
}

func (c *Controller) Dash(direction cp.Vector) DisplacementResult {
	if c == nil {
		return DisplacementResult{}
	}
	return c.dasher.Dash(direction)
}

// Reset puts the actor back at pos with a fresh state. Subscriptions survive.
func (c *Controller) Reset(pos cp.Vector) {
	if c == nil {
		return
	}
	c.body.SetPosition(pos)
	c.body.SetVelocity(cp.Vector{})
	*c.state = *NewActorState()
}

// SetConfig swaps the configuration in place, keeping actor state.
func (c *Controller) SetConfig(cfg Config) error {
	if c == nil {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// SetCorrection replaces the dash corrective offset. nil restores the default.
func (c *Controller) SetCorrection(fn CorrectionFunc) {
	if c == nil {
		return
	}
	if fn == nil {
		fn = DefaultCorrection
	}
	c.dasher.Correction = fn
}

// Events returns nil for a nil controller; subscribing to nil Events is a
// no-op.
func (c *Controller) Events() *Events {
	if c == nil {
		return nil
	}
	return c.events
}

func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

func (c *Controller) Geometry() ColliderGeometry {
	if c == nil {
		return ColliderGeometry{}
	}
	return c.geom
}

func (c *Controller) State() ActorState {
	if c == nil || c.state == nil {
		return ActorState{}
	}
	return *c.state
}

func (c *Controller) Sensor() *GroundSensor {
	if c == nil {
		return nil
	}
	return c.sensor
}

func (c *Controller) Locomotion() *Locomotion {
	if c == nil {
		return nil
	}
	return c.locomotion
}

func (c *Controller) DashResolver() *DashResolver {
	if c == nil {
		return nil
	}
	return c.dasher
}

func (c *Controller) FacingRight() bool { return c.State().FacingRight }
func (c *Controller) Grounded() bool    { return c.State().Grounded }
func (c *Controller) Crouching() bool   { return c.State().WasCrouching }

// Velocity is the target velocity of the last locomotion tick.
func (c *Controller) Velocity() cp.Vector { return c.State().TargetVelocity }
