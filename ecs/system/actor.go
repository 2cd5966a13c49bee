package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/controller"
	"github.com/milk9111/reaper/ecs"
	"github.com/milk9111/reaper/ecs/component"
)

// ActorSystem drives each actor's controller from its Input: one Tick per
// fixed step, then a dash when one was pressed and no cooldown is running.
// Controller callbacks are forwarded to the world event queue.
type ActorSystem struct {
	dt    float64
	debug bool

	subscribed map[*controller.Controller]bool
}

func NewActorSystem(dt float64, debug bool) *ActorSystem {
	if dt <= 0 {
		dt = controller.DefaultStep
	}
	return &ActorSystem{dt: dt, debug: debug, subscribed: map[*controller.Controller]bool{}}
}

func (s *ActorSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	restart := false
	w.Events().Each(ecs.EventRestart, func(ecs.Event) { restart = true })

	ecs.ForEach2(w, component.ActorComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, actor *component.Actor, input *component.Input) {
		ctrl := actor.Controller
		if ctrl == nil {
			return
		}
		s.subscribe(w, e, ctrl)

		if restart {
			ctrl.Reset(actor.Spawn)
			actor.LastDash = controller.DisplacementResult{}
			ecs.Remove(w, e, component.CooldownComponent.Kind())
			return
		}

		ctrl.Tick(s.dt, controller.Intent{
			Move:   input.MoveX,
			Crouch: input.Crouch,
			Jump:   input.JumpPressed,
		})

		if input.DashPressed && !ecs.Has(w, e, component.CooldownComponent.Kind()) {
			s.dash(w, e, actor, input)
		}
	})
}

func (s *ActorSystem) dash(w *ecs.World, e ecs.Entity, actor *component.Actor, input *component.Input) {
	ctrl := actor.Controller
	dir := cp.Vector{X: input.DashX, Y: input.DashY}
	if dir.LengthSq() == 0 {
		dir.X = 1
		if !ctrl.FacingRight() {
			dir.X = -1
		}
	}

	res := ctrl.Dash(dir)
	actor.LastDash = res
	if res.Direction.LengthSq() == 0 {
		return
	}

	if actor.DashCooldownFrames > 0 {
		_ = ecs.Add(w, e, component.CooldownComponent.Kind(), &component.Cooldown{Frames: actor.DashCooldownFrames})
	}
	w.Events().Push(ecs.Event{
		Type:   ecs.EventDash,
		Entity: e,
		Data: ecs.DashEvent{
			From:       res.Start,
			To:         res.Start.Add(res.Applied),
			Obstructed: res.Obstructed,
		},
	})

	if s.debug {
		log.Printf("actor: dash entity=%s dir=(%.0f, %.0f) obstructed=%v ray=%s fail=%.3f applied=(%.3f, %.3f)",
			e, res.Direction.X, res.Direction.Y, res.Obstructed, res.Ray, res.FailDistance, res.Applied.X, res.Applied.Y)
	}
}

// subscribe forwards land and crouch callbacks once per controller.
func (s *ActorSystem) subscribe(w *ecs.World, e ecs.Entity, ctrl *controller.Controller) {
	if s.subscribed[ctrl] {
		return
	}
	s.subscribed[ctrl] = true

	ctrl.Events().OnLand(func() {
		pos := cp.Vector{}
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
			pos = pb.Body.Position().Add(ctrl.Geometry().GroundCheck)
		}
		w.Events().Push(ecs.Event{Type: ecs.EventLand, Entity: e, Data: ecs.LandEvent{Position: pos}})
	})
	ctrl.Events().OnCrouchChanged(func(crouching bool) {
		w.Events().Push(ecs.Event{Type: ecs.EventCrouchChanged, Entity: e, Data: ecs.CrouchChangedEvent{Crouching: crouching}})
	})
}
