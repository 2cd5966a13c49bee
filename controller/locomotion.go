package controller

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/common"
)

// DefaultStep is the tick length used until Controller.Tick supplies one.
const DefaultStep = 1.0 / 60.0

// Locomotion turns per-tick move, crouch and jump intent into body velocity,
// a jump impulse and facing flips.
type Locomotion struct {
	state          *ActorState
	cfg            *Config
	sensor         *GroundSensor
	body           Body
	crouchCollider Toggler
	stats          Stats
	events         *Events

	dt float64
}

func NewLocomotion(state *ActorState, cfg *Config, sensor *GroundSensor, body Body, crouchCollider Toggler, stats Stats, events *Events) *Locomotion {
	return &Locomotion{
		state:          state,
		cfg:            cfg,
		sensor:         sensor,
		body:           body,
		crouchCollider: crouchCollider,
		stats:          stats,
		events:         events,
		dt:             DefaultStep,
	}
}

// SetStep sets the elapsed time used by the velocity smoothing.
func (l *Locomotion) SetStep(dt float64) {
	if l == nil || dt <= 0 {
		return
	}
	l.dt = dt
}

// Move applies one tick of intent. It never fails; missing optional
// collaborators are skipped.
func (l *Locomotion) Move(move float64, crouch, jump bool) {
	if l == nil || l.state == nil || l.body == nil {
		return
	}

	// Cannot stand up under an obstruction.
	if !crouch && l.sensor.IsCeilingBlocked() {
		crouch = true
	}

	if l.state.Grounded || l.cfg.AirControl {
		if crouch {
			if !l.state.WasCrouching {
				l.state.WasCrouching = true
				l.events.emitCrouch(true)
			}
			move *= l.cfg.CrouchSpeed
			if l.crouchCollider != nil {
				l.crouchCollider.SetEnabled(false)
			}
		} else {
			if l.crouchCollider != nil {
				l.crouchCollider.SetEnabled(true)
			}
			if l.state.WasCrouching {
				l.state.WasCrouching = false
				l.events.emitCrouch(false)
			}
		}

		current := l.body.Velocity()
		target := cp.Vector{X: move * l.speedScale(), Y: current.Y}
		l.state.TargetVelocity = target
		v := common.SmoothDamp(current, target, &l.state.SmoothingAccumulator, l.cfg.MovementSmoothing, l.dt)
		l.body.SetVelocity(v)
		l.state.Velocity = v

		if (move > 0 && !l.state.FacingRight) || (move < 0 && l.state.FacingRight) {
			l.flip()
		}
	}

	if l.state.Grounded && jump {
		// Cleared now so a second jump in the same tick cannot fire before
		// the sensor runs again.
		l.state.Grounded = false
		l.body.ApplyImpulse(cp.Vector{X: 0, Y: l.cfg.JumpForce})
	}
}

func (l *Locomotion) speedScale() float64 {
	scale := l.cfg.SpeedScale
	if l.stats != nil {
		scale *= l.stats.MovementMultiplier()
	}
	return scale
}

func (l *Locomotion) flip() {
	l.state.FacingRight = !l.state.FacingRight
	l.state.ScaleX *= -1
}
