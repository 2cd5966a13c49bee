package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/common"
	"github.com/milk9111/reaper/controller"
	"github.com/milk9111/reaper/ecs"
	"github.com/milk9111/reaper/ecs/component"
	"golang.org/x/image/colornames"
)

// RenderSystem draws the level, effects and actors as debug geometry. With
// debug on it also draws the sensor circles, the last dash probes and a
// state readout.
type RenderSystem struct {
	camEntity ecs.Entity
	debug     bool

	camX, camY, zoom float64
}

func NewRenderSystem(debug bool) *RenderSystem {
	return &RenderSystem{debug: debug, zoom: 1}
}

func (r *RenderSystem) SetDebug(debug bool) {
	if r == nil {
		return
	}
	r.debug = debug
}

func (r *RenderSystem) Debug() bool {
	return r != nil && r.debug
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	r.camX, r.camY, r.zoom = 0, 0, 1
	if cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok {
		r.camX, r.camY = cam.X, cam.Y
		if cam.Zoom > 0 {
			r.zoom = cam.Zoom
		}
	}

	screen.Fill(colornames.Midnightblue)

	ecs.ForEach(w, component.SolidComponent.Kind(), func(_ ecs.Entity, s *component.Solid) {
		r.fillBB(screen, s.BB, colornames.Slategray)
	})

	ecs.ForEach2(w, component.EffectComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, fx *component.Effect, t *component.Transform) {
		r.drawEffect(screen, fx, t)
	})

	ecs.ForEach2(w, component.ActorComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, a *component.Actor, pb *component.PhysicsBody) {
		if a.Controller == nil || pb.Body == nil {
			return
		}
		r.drawActor(screen, a, pb.Body.Position())
	})
}

func (r *RenderSystem) drawEffect(screen *ebiten.Image, fx *component.Effect, t *component.Transform) {
	if fx.Alpha <= 0 {
		return
	}
	pos := cp.Vector{X: t.X, Y: t.Y}
	switch fx.Kind {
	case component.EffectDash:
		half := cp.Vector{X: fx.Width / 2, Y: fx.Height / 2}
		r.fillBB(screen, cp.BB{L: pos.X - half.X, R: pos.X + half.X, B: pos.Y - half.Y, T: pos.Y + half.Y}, withAlpha(colornames.Lightcyan, fx.Alpha*0.5))
		tail := pos.Sub(cp.ForAngle(t.Rotation).Mult(fx.Width))
		r.line(screen, tail, pos, 2, withAlpha(colornames.White, fx.Alpha))
	case component.EffectLandDust:
		r.fillBB(screen, cp.BB{L: pos.X - fx.Width/2, R: pos.X + fx.Width/2, B: pos.Y, T: pos.Y + fx.Height}, withAlpha(colornames.Wheat, fx.Alpha))
	}
}

func (r *RenderSystem) drawActor(screen *ebiten.Image, a *component.Actor, pos cp.Vector) {
	ctrl := a.Controller
	geom := ctrl.Geometry()

	boxColor := colornames.Orange
	if ctrl.Crouching() {
		boxColor = colornames.Dimgray
	}
	r.strokeBB(screen, cp.BB{
		L: pos.X + geom.BoxOffset.X - geom.BoxHalfExtents.X,
		R: pos.X + geom.BoxOffset.X + geom.BoxHalfExtents.X,
		B: pos.Y + geom.BoxOffset.Y - geom.BoxHalfExtents.Y,
		T: pos.Y + geom.BoxOffset.Y + geom.BoxHalfExtents.Y,
	}, boxColor)
	if geom.CircleRadius > 0 {
		r.circle(screen, pos.Add(geom.CircleOffset), geom.CircleRadius, colornames.Orange)
	}

	// Facing marker.
	facing := cp.Vector{X: 0.3}
	if !ctrl.FacingRight() {
		facing.X = -facing.X
	}
	r.line(screen, pos, pos.Add(facing), 2, colornames.Yellow)

	if !r.debug {
		return
	}

	groundColor := colornames.Red
	if ctrl.Grounded() {
		groundColor = colornames.Lime
	}
	r.circle(screen, ctrl.Sensor().GroundCheckPoint(), ctrl.Config().GroundCheckRadius, groundColor)
	ceilingColor := colornames.Lime
	if ctrl.Sensor().IsCeilingBlocked() {
		ceilingColor = colornames.Red
	}
	r.circle(screen, ctrl.Sensor().CeilingCheckPoint(), controller.CeilingCheckRadius, ceilingColor)

	r.drawDash(screen, ctrl, a.LastDash)

	state := ctrl.State()
	text := fmt.Sprintf("Grounded: %v\nCrouching: %v\nFacingRight: %v\nVelocity: (%.2f, %.2f)\nDash: %s",
		state.Grounded, state.WasCrouching, state.FacingRight, state.Velocity.X, state.Velocity.Y, describeDash(a.LastDash))
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func (r *RenderSystem) drawDash(screen *ebiten.Image, ctrl *controller.Controller, res controller.DisplacementResult) {
	if res.Direction.LengthSq() == 0 {
		return
	}
	top, bottom := ctrl.DashResolver().ProbeStarts(res.Start, res.Origin)
	for _, ray := range []struct {
		start cp.Vector
		kind  controller.ProbeRay
	}{{top, controller.RayTop}, {bottom, controller.RayBottom}} {
		clr := colornames.Skyblue
		if res.Obstructed && res.Ray == ray.kind {
			clr = colornames.Tomato
		}
		r.line(screen, ray.start, ray.start.Add(res.Requested), 1, clr)
	}
	if res.Obstructed {
		r.circle(screen, res.Contact, 0.08, colornames.Red)
	}
	r.line(screen, res.Start, res.Start.Add(res.Applied), 1, colornames.Lime)
}

func describeDash(res controller.DisplacementResult) string {
	if res.Direction.LengthSq() == 0 {
		return "none"
	}
	if !res.Obstructed {
		return fmt.Sprintf("clear (%.2f, %.2f)", res.Applied.X, res.Applied.Y)
	}
	return fmt.Sprintf("%s ray, fail %.2f, applied (%.2f, %.2f)", res.Ray, res.FailDistance, res.Applied.X, res.Applied.Y)
}

func (r *RenderSystem) project(p cp.Vector) (float32, float32) {
	scale := common.PixelsPerUnit * r.zoom
	x := (p.X-r.camX)*scale + common.BaseWidth/2
	y := common.BaseHeight/2 - (p.Y-r.camY)*scale
	return float32(x), float32(y)
}

func (r *RenderSystem) pixels(d float64) float32 {
	return float32(d * common.PixelsPerUnit * r.zoom)
}

func (r *RenderSystem) fillBB(screen *ebiten.Image, bb cp.BB, clr color.Color) {
	x, y := r.project(cp.Vector{X: bb.L, Y: bb.T})
	vector.FillRect(screen, x, y, r.pixels(bb.R-bb.L), r.pixels(bb.T-bb.B), clr, false)
}

func (r *RenderSystem) strokeBB(screen *ebiten.Image, bb cp.BB, clr color.Color) {
	x, y := r.project(cp.Vector{X: bb.L, Y: bb.T})
	vector.StrokeRect(screen, x, y, r.pixels(bb.R-bb.L), r.pixels(bb.T-bb.B), 1, clr, false)
}

func (r *RenderSystem) circle(screen *ebiten.Image, center cp.Vector, radius float64, clr color.Color) {
	x, y := r.project(center)
	vector.StrokeCircle(screen, x, y, r.pixels(radius), 1, clr, true)
}

func (r *RenderSystem) line(screen *ebiten.Image, a, b cp.Vector, width float32, clr color.Color) {
	x0, y0 := r.project(a)
	x1, y1 := r.project(b)
	vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
}

func withAlpha(c color.RGBA, alpha float32) color.NRGBA {
	a := math.Max(0, math.Min(1, float64(alpha)))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a * 255)}
}
