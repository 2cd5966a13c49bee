package controller

import "github.com/jakecoffman/cp"

// GroundSensor recomputes the grounded flag once per physics tick and answers
// whether the actor has room to stand up.
type GroundSensor struct {
	state  *ActorState
	cfg    *Config
	geom   *ColliderGeometry
	body   Body
	prober Prober
	events *Events
}

func NewGroundSensor(state *ActorState, cfg *Config, geom *ColliderGeometry, body Body, prober Prober, events *Events) *GroundSensor {
	return &GroundSensor{
		state:  state,
		cfg:    cfg,
		geom:   geom,
		body:   body,
		prober: prober,
		events: events,
	}
}

// UpdateGrounded replaces the grounded flag with the result of a fresh
// overlap query at the ground check point. Overlaps with the actor's own
// body are ignored. The land event fires once on a false to true edge.
func (s *GroundSensor) UpdateGrounded() bool {
	if s == nil || s.state == nil {
		return false
	}
	wasGrounded := s.state.Grounded
	s.state.Grounded = false
	if s.prober == nil || s.body == nil {
		return false
	}

	self := s.body.ID()
	for _, id := range s.prober.OverlapCircleAll(s.GroundCheckPoint(), s.cfg.GroundCheckRadius, s.cfg.GroundMask) {
		if id != self {
			s.state.Grounded = true
			break
		}
	}

	if s.state.Grounded && !wasGrounded {
		s.events.emitLand()
	}
	return s.state.Grounded
}

// IsCeilingBlocked reports whether ground geometry overlaps the ceiling
// check point. It has no side effects.
func (s *GroundSensor) IsCeilingBlocked() bool {
	if s == nil || s.prober == nil || s.body == nil {
		return false
	}
	return s.prober.OverlapCircle(s.CeilingCheckPoint(), CeilingCheckRadius, s.cfg.GroundMask)
}

func (s *GroundSensor) GroundCheckPoint() cp.Vector {
	return s.body.Position().Add(s.geom.GroundCheck)
}

func (s *GroundSensor) CeilingCheckPoint() cp.Vector {
	return s.body.Position().Add(s.geom.CeilingCheck)
}
