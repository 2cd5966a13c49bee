package controller

import "github.com/jakecoffman/cp"

type fakeBody struct {
	id       BodyID
	pos      cp.Vector
	vel      cp.Vector
	impulses []cp.Vector
	posSets  int
}

func (b *fakeBody) ID() BodyID              { return b.id }
func (b *fakeBody) Position() cp.Vector     { return b.pos }
func (b *fakeBody) Velocity() cp.Vector     { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector) { b.vel = v }
func (b *fakeBody) SetPosition(p cp.Vector) {
	b.pos = p
	b.posSets++
}
func (b *fakeBody) ApplyImpulse(i cp.Vector) {
	b.impulses = append(b.impulses, i)
	b.vel = b.vel.Add(i)
}

type overlapCall struct {
	center cp.Vector
	radius float64
	mask   uint
}

type rayCall struct {
	origin    cp.Vector
	direction cp.Vector
	maxDist   float64
	mask      uint
}

// fakeProber answers ground overlaps from a fixed list and ray casts through
// an optional function.
type fakeProber struct {
	ground  []BodyID
	ceiling bool
	rays    func(origin, direction cp.Vector, maxDist float64) []Hit

	overlapCalls []overlapCall
	ceilingCalls []overlapCall
	rayCalls     []rayCall
}

func (p *fakeProber) OverlapCircleAll(center cp.Vector, radius float64, mask uint) []BodyID {
	p.overlapCalls = append(p.overlapCalls, overlapCall{center, radius, mask})
	return append([]BodyID(nil), p.ground...)
}

func (p *fakeProber) OverlapCircle(center cp.Vector, radius float64, mask uint) bool {
	p.ceilingCalls = append(p.ceilingCalls, overlapCall{center, radius, mask})
	return p.ceiling
}

func (p *fakeProber) RaycastAll(origin, direction cp.Vector, maxDist float64, mask uint) []Hit {
	p.rayCalls = append(p.rayCalls, rayCall{origin, direction, maxDist, mask})
	if p.rays == nil {
		return nil
	}
	return p.rays(origin, direction, maxDist)
}

type spawn struct {
	pos      cp.Vector
	rotation float64
}

type fakeEffects struct {
	spawns []spawn
}

func (e *fakeEffects) SpawnEffect(pos cp.Vector, rotation float64) {
	e.spawns = append(e.spawns, spawn{pos, rotation})
}

type fakeToggler struct {
	enabled bool
	calls   int
}

func (t *fakeToggler) SetEnabled(enabled bool) {
	t.enabled = enabled
	t.calls++
}

type fakeStats struct {
	dash, move float64
}

func (s fakeStats) DashDistanceMultiplier() float64 { return s.dash }
func (s fakeStats) MovementMultiplier() float64     { return s.move }

// testGeometry is a 1x2 box centred on the body with a 0.5 radius foot
// circle and check points on its top and bottom edges.
func testGeometry() ColliderGeometry {
	return ColliderGeometry{
		BoxHalfExtents: cp.Vector{X: 0.5, Y: 1},
		CircleRadius:   0.5,
		CircleOffset:   cp.Vector{X: 0, Y: -0.5},
		VisualHeight:   2,
		GroundCheck:    cp.Vector{X: 0, Y: -1},
		CeilingCheck:   cp.Vector{X: 0, Y: 1},
	}
}

type harness struct {
	body    *fakeBody
	prober  *fakeProber
	effects *fakeEffects
	toggler *fakeToggler
	ctrl    *Controller
}

func newHarness(cfg Config, stats Stats) *harness {
	h := &harness{
		body:    &fakeBody{id: 7},
		prober:  &fakeProber{},
		effects: &fakeEffects{},
		toggler: &fakeToggler{enabled: true},
	}
	deps := Deps{
		Body:           h.body,
		Prober:         h.prober,
		CrouchCollider: h.toggler,
		Effects:        h.effects,
		Stats:          stats,
	}
	ctrl, err := New(cfg, testGeometry(), deps)
	if err != nil {
		panic(err)
	}
	h.ctrl = ctrl
	return h
}

// wallAt returns a ray function reporting a single hit at dist along every
// ray whose origin Y matches one of ys. An empty ys matches all rays.
func wallAt(dist float64, ys ...float64) func(origin, direction cp.Vector, maxDist float64) []Hit {
	return func(origin, direction cp.Vector, maxDist float64) []Hit {
		if dist > maxDist {
			return nil
		}
		if len(ys) > 0 {
			match := false
			for _, y := range ys {
				if y == origin.Y {
					match = true
				}
			}
			if !match {
				return nil
			}
		}
		return []Hit{{Distance: dist, Point: origin.Add(direction.Normalize().Mult(dist))}}
	}
}

// planeAt returns a ray function reporting where each ray crosses the line
// x = at when vertical, or y = at otherwise.
func planeAt(vertical bool, at float64) func(origin, direction cp.Vector, maxDist float64) []Hit {
	return func(origin, direction cp.Vector, maxDist float64) []Hit {
		u := direction.Normalize()
		o, du := origin.Y, u.Y
		if vertical {
			o, du = origin.X, u.X
		}
		if du == 0 {
			return nil
		}
		dist := (at - o) / du
		if dist < 0 || dist > maxDist {
			return nil
		}
		return []Hit{{Distance: dist, Point: origin.Add(u.Mult(dist))}}
	}
}
