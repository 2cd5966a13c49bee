package controller

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/common"
)

// probeInsetDivisor insets both dash probes from the check points by a tenth
// of the visual height so they do not graze the edges of the floor and
// ceiling the actor is touching.
const probeInsetDivisor = 10

// ProbeRay names the dash probe a correction was computed from.
type ProbeRay int

const (
	RayNone ProbeRay = iota
	RayTop
	RayBottom
)

func (r ProbeRay) String() string {
	switch r {
	case RayTop:
		return "top"
	case RayBottom:
		return "bottom"
	default:
		return "none"
	}
}

// DisplacementResult describes how a dash request was resolved.
type DisplacementResult struct {
	Start cp.Vector
	// Direction is the compass direction, one sign per axis.
	Direction cp.Vector
	// Requested is the unobstructed displacement.
	Requested cp.Vector
	// Applied is the displacement written to the body position.
	Applied cp.Vector
	// Origin is the leading-edge anchor of the probes.
	Origin cp.Vector

	Obstructed   bool
	Ray          ProbeRay
	Contact      cp.Vector
	FailDistance float64
}

// CorrectionFunc returns the corrective offset, before halving, that is
// subtracted from an obstructed dash. dir is the compass direction.
type CorrectionFunc func(dir cp.Vector, geom ColliderGeometry) cp.Vector

// DefaultCorrection is an empirically tuned fudge factor, not a physical
// derivation: the full box width on the horizontal sign and the full visual
// height on the vertical sign, halved for diagonal dashes (both axes when
// going up, only Y when going down) and for straight up dashes.
func DefaultCorrection(dir cp.Vector, geom ColliderGeometry) cp.Vector {
	size := cp.Vector{
		X: dir.X * 2 * geom.BoxHalfExtents.X,
		Y: dir.Y * geom.VisualHeight,
	}
	switch {
	case dir.X != 0 && dir.Y < 0:
		size.Y /= 2
	case dir.X != 0 && dir.Y > 0:
		size = size.Mult(0.5)
	case dir.X == 0 && dir.Y > 0:
		size.Y /= 2
	}
	return size
}

// DashResolver turns a dash direction into a collision-safe position change
// using two discrete ray probes. It is not a swept test: geometry thinner
// than the gap between the probes can still be crossed. The probes are cast
// for the dash distance while a diagonal dash travels distance*sqrt(2), so an
// obstruction past the probe length on a diagonal goes unseen.
type DashResolver struct {
	state   *ActorState
	cfg     *Config
	geom    *ColliderGeometry
	body    Body
	prober  Prober
	effects EffectSpawner
	stats   Stats

	Correction CorrectionFunc
}

func NewDashResolver(state *ActorState, cfg *Config, geom *ColliderGeometry, body Body, prober Prober, effects EffectSpawner, stats Stats) *DashResolver {
	return &DashResolver{
		state:      state,
		cfg:        cfg,
		geom:       geom,
		body:       body,
		prober:     prober,
		effects:    effects,
		stats:      stats,
		Correction: DefaultCorrection,
	}
}

// Distance is the configured dash distance after upgrades.
func (d *DashResolver) Distance() float64 {
	dist := d.cfg.DashDistance
	if d.stats != nil {
		dist *= d.stats.DashDistanceMultiplier()
	}
	return dist
}

// Dash resolves the request completely before returning. A zero direction is
// a no-op with a zero result.
func (d *DashResolver) Dash(direction cp.Vector) DisplacementResult {
	if d == nil || d.body == nil {
		return DisplacementResult{}
	}
	start := d.body.Position()
	res := DisplacementResult{Start: start}

	dir := common.SignVector(direction)
	dist := d.Distance()
	if (dir.X == 0 && dir.Y == 0) || dist <= 0 {
		return res
	}
	res.Direction = dir
	res.Requested = dir.Mult(dist)
	res.Origin = d.ProbeOrigin(start, dir)

	top, bottom := d.ProbeStarts(start, res.Origin)
	var topHits, bottomHits []Hit
	if d.prober != nil {
		topHits = d.prober.RaycastAll(top, res.Requested, dist, d.cfg.GroundMask)
		bottomHits = d.prober.RaycastAll(bottom, res.Requested, dist, d.cfg.GroundMask)
	}

	if len(topHits) == 0 && len(bottomHits) == 0 {
		d.spawnEffect(start, 0)
		res.Applied = res.Requested
		d.body.SetPosition(start.Add(res.Applied))
		return res
	}

	hits, ray := chooseHits(dir, topHits, bottomHits)
	res.Obstructed = true
	res.Ray = ray
	res.Contact = hits[0].Point
	res.FailDistance = res.Contact.Distance(start.Add(res.Requested))

	correction := d.correction(dir)
	applied := dir.Mult(dist - res.FailDistance).Sub(correction.Mult(0.5))
	applied = clampToDirection(applied, dir)
	applied = limitToContact(d.LeadingEdge(start, dir), applied, res.Contact, dir)
	res.Applied = applied

	d.spawnEffect(start, math.Atan2(dir.Y, dir.X))
	d.body.SetPosition(start.Add(applied))
	return res
}

// ProbeOrigin anchors the probes at the actor's leading edge. Upward uses the
// box extent and downward the circle radius, matching a box body sitting on
// a circular foot collider.
func (d *DashResolver) ProbeOrigin(pos, dir cp.Vector) cp.Vector {
	o := pos
	halfW := d.geom.BoxHalfExtents.X + d.geom.BoxOffset.X
	switch {
	case dir.X > 0:
		o.X += halfW
	case dir.X < 0:
		o.X -= halfW
	}
	switch {
	case dir.Y > 0:
		o.Y += d.geom.BoxHalfExtents.Y + d.geom.BoxOffset.Y
	case dir.Y < 0:
		o.Y -= d.geom.CircleRadius - d.geom.BoxOffset.Y
	}
	return o
}

// LeadingEdge is the collider boundary in the direction of travel on each
// axis: the box side horizontally, the box top going up and the lower of the
// box and foot circle going down. Axes the dash does not travel keep pos.
func (d *DashResolver) LeadingEdge(pos, dir cp.Vector) cp.Vector {
	g := d.geom
	e := pos
	switch {
	case dir.X > 0:
		e.X += g.BoxOffset.X + g.BoxHalfExtents.X
	case dir.X < 0:
		e.X += g.BoxOffset.X - g.BoxHalfExtents.X
	}
	switch {
	case dir.Y > 0:
		top := g.BoxOffset.Y + g.BoxHalfExtents.Y
		if g.CircleRadius > 0 {
			top = math.Max(top, g.CircleOffset.Y+g.CircleRadius)
		}
		e.Y += top
	case dir.Y < 0:
		bottom := g.BoxOffset.Y - g.BoxHalfExtents.Y
		if g.CircleRadius > 0 {
			bottom = math.Min(bottom, g.CircleOffset.Y-g.CircleRadius)
		}
		e.Y += bottom
	}
	return e
}

// ProbeStarts returns the top and bottom probe start points for a dash from
// pos anchored at origin.
func (d *DashResolver) ProbeStarts(pos, origin cp.Vector) (top, bottom cp.Vector) {
	inset := d.geom.VisualHeight / probeInsetDivisor
	top = cp.Vector{X: origin.X, Y: pos.Y + d.geom.CeilingCheck.Y - inset}
	bottom = cp.Vector{X: origin.X, Y: pos.Y + d.geom.GroundCheck.Y + inset}
	return top, bottom
}

func (d *DashResolver) correction(dir cp.Vector) cp.Vector {
	if d.Correction == nil {
		return DefaultCorrection(dir, *d.geom)
	}
	return d.Correction(dir, *d.geom)
}

func (d *DashResolver) spawnEffect(pos cp.Vector, rotation float64) {
	if d.effects == nil {
		return
	}
	d.effects.SpawnEffect(pos, rotation)
}

// chooseHits picks the probe to trust. With hits on both, the probe on the
// dash's vertical side wins and horizontal dashes use the bottom probe.
func chooseHits(dir cp.Vector, top, bottom []Hit) ([]Hit, ProbeRay) {
	switch {
	case len(top) > 0 && len(bottom) == 0:
		return top, RayTop
	case len(bottom) > 0 && len(top) == 0:
		return bottom, RayBottom
	case dir.Y > 0:
		return top, RayTop
	default:
		return bottom, RayBottom
	}
}

// clampToDirection drops any component that would move the actor against the
// dash direction.
func clampToDirection(v, dir cp.Vector) cp.Vector {
	if v.X*dir.X < 0 || dir.X == 0 {
		v.X = 0
	}
	if v.Y*dir.Y < 0 || dir.Y == 0 {
		v.Y = 0
	}
	return v
}

// limitToContact keeps the leading edge from passing the contact point on any
// axis it is travelling along. An edge already level with or past the contact
// does not move on that axis.
func limitToContact(edge, v, contact, dir cp.Vector) cp.Vector {
	if dir.X != 0 {
		gap := math.Max((contact.X-edge.X)*dir.X, 0)
		if v.X*dir.X > gap {
			v.X = gap * dir.X
		}
	}
	if dir.Y != 0 {
		gap := math.Max((contact.Y-edge.Y)*dir.Y, 0)
		if v.Y*dir.Y > gap {
			v.Y = gap * dir.Y
		}
	}
	return v
}
