package controller

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

// Probe start heights for testGeometry with the body at the origin.
const (
	topProbeY    = 0.8
	bottomProbeY = -0.8
)

func TestDashClearPath(t *testing.T) {
	h := newHarness(DefaultConfig(), nil)
	h.body.pos = cp.Vector{X: 1, Y: 2}

	res := h.ctrl.Dash(cp.Vector{X: 1, Y: 0})

	assert.False(t, res.Obstructed)
	assert.Equal(t, RayNone, res.Ray)
	assert.Equal(t, cp.Vector{X: 4, Y: 2}, h.body.pos)
	assert.Equal(t, cp.Vector{X: 3, Y: 0}, res.Applied)
	require.Len(t, h.effects.spawns, 1)
	assert.Equal(t, cp.Vector{X: 1, Y: 2}, h.effects.spawns[0].pos)
	assert.Equal(t, 0.0, h.effects.spawns[0].rotation)
}

func TestDashProbeLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GroundMask = 0b10
	h := newHarness(cfg, nil)

	h.ctrl.Dash(cp.Vector{X: 1, Y: 0})

	require.Len(t, h.prober.rayCalls, 2)
	top, bottom := h.prober.rayCalls[0], h.prober.rayCalls[1]
	assert.InDelta(t, 0.5, top.origin.X, eps)
	assert.InDelta(t, topProbeY, top.origin.Y, eps)
	assert.InDelta(t, 0.5, bottom.origin.X, eps)
	assert.InDelta(t, bottomProbeY, bottom.origin.Y, eps)
	for _, call := range h.prober.rayCalls {
		assert.Equal(t, cp.Vector{X: 3, Y: 0}, call.direction)
		assert.Equal(t, 3.0, call.maxDist)
		assert.Equal(t, uint(0b10), call.mask)
	}
}

func TestProbeOrigin(t *testing.T) {
	h := newHarness(DefaultConfig(), nil)
	d := h.ctrl.DashResolver()
	pos := cp.Vector{X: 10, Y: 10}

	cases := []struct {
		dir  cp.Vector
		want cp.Vector
	}{
		{cp.Vector{X: 1, Y: 0}, cp.Vector{X: 10.5, Y: 10}},
		{cp.Vector{X: -1, Y: 0}, cp.Vector{X: 9.5, Y: 10}},
		{cp.Vector{X: 0, Y: 1}, cp.Vector{X: 10, Y: 11}},
		{cp.Vector{X: 0, Y: -1}, cp.Vector{X: 10, Y: 9.5}},
		{cp.Vector{X: 1, Y: 1}, cp.Vector{X: 10.5, Y: 11}},
		{cp.Vector{X: -1, Y: -1}, cp.Vector{X: 9.5, Y: 9.5}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, d.ProbeOrigin(pos, c.dir), "dir %v", c.dir)
	}
}

func TestDashBottomHitShortensTravel(t *testing.T) {
	h := newHarness(DefaultConfig(), nil)
	h.prober.rays = wallAt(1, bottomProbeY)

	res := h.ctrl.Dash(cp.Vector{X: 1, Y: 0})

	assert.True(t, res.Obstructed)
	assert.Equal(t, RayBottom, res.Ray)
	assert.InDelta(t, 1.5, res.Contact.X, eps)
	assert.InDelta(t, 1.7, res.FailDistance, eps)
	assert.InDelta(t, 0.8, h.body.pos.X, eps)
	assert.InDelta(t, 0, h.body.pos.Y, eps)

	mag := res.Applied.Length()
	assert.Greater(t, mag, 0.0)
	assert.Less(t, mag, 3.0)
	require.Len(t, h.effects.spawns, 1)
	assert.InDelta(t, 0, h.effects.spawns[0].rotation, eps)
}

func TestLeadingEdge(t *testing.T) {
	h := newHarness(DefaultConfig(), nil)
	d := h.ctrl.DashResolver()
	pos := cp.Vector{X: 10, Y: 10}

	cases := []struct {
		dir  cp.Vector
		want cp.Vector
	}{
		{cp.Vector{X: 1, Y: 0}, cp.Vector{X: 10.5, Y: 10}},
		{cp.Vector{X: -1, Y: 0}, cp.Vector{X: 9.5, Y: 10}},
		{cp.Vector{X: 0, Y: 1}, cp.Vector{X: 10, Y: 11}},
		{cp.Vector{X: 0, Y: -1}, cp.Vector{X: 10, Y: 9}},
		{cp.Vector{X: -1, Y: 1}, cp.Vector{X: 9.5, Y: 11}},
		{cp.Vector{X: 1, Y: -1}, cp.Vector{X: 10.5, Y: 9}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, d.LeadingEdge(pos, c.dir), "dir %v", c.dir)
	}
}

var compassDirections = []cp.Vector{
	{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
	{X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1},
}

func TestDashLeadingEdgeNeverCrossesObstruction(t *testing.T) {
	for _, dir := range compassDirections {
		// Diagonals are checked against both a wall and a floor or ceiling.
		var axes []bool
		if dir.X != 0 {
			axes = append(axes, true)
		}
		if dir.Y != 0 {
			axes = append(axes, false)
		}

		for _, vertical := range axes {
			obstructed := 0
			for gap := 0.05; gap < 3; gap += 0.05 {
				h := newHarness(DefaultConfig(), nil)
				edge := h.ctrl.DashResolver().LeadingEdge(cp.Vector{}, dir)
				sign, at := dir.Y, edge.Y+dir.Y*gap
				if vertical {
					sign, at = dir.X, edge.X+dir.X*gap
				}
				h.prober.rays = planeAt(vertical, at)

				res := h.ctrl.Dash(dir)
				if !res.Obstructed {
					// Beyond the reach of both probes.
					continue
				}
				obstructed++

				moved := h.ctrl.DashResolver().LeadingEdge(h.body.pos, dir)
				got := moved.Y
				if vertical {
					got = moved.X
				}
				assert.LessOrEqual(t, sign*got, sign*at+eps, "dir %v vertical %v gap %.2f", dir, vertical, gap)
				assert.Less(t, res.Applied.Length(), res.Requested.Length(), "dir %v gap %.2f", dir, gap)
				assert.GreaterOrEqual(t, res.Applied.X*dir.X, 0.0, "never moves backward")
				assert.GreaterOrEqual(t, res.Applied.Y*dir.Y, 0.0, "never moves backward")
			}
			assert.Positive(t, obstructed, "dir %v vertical %v", dir, vertical)
		}
	}
}

func TestDashUpStopsUnderCeiling(t *testing.T) {
	h := newHarness(DefaultConfig(), nil)
	h.prober.rays = planeAt(false, 1.2)

	res := h.ctrl.Dash(cp.Vector{X: 0, Y: 1})

	assert.Equal(t, RayTop, res.Ray)
	assert.InDelta(t, 1.2, res.Contact.Y, eps)
	assert.InDelta(t, 0.2, h.body.pos.Y, eps, "box top flush with the ceiling")
}

func TestDashNeverMovesBackward(t *testing.T) {
	h := newHarness(DefaultConfig(), nil)
	h.prober.rays = wallAt(0.05)

	res := h.ctrl.Dash(cp.Vector{X: 1, Y: 0})

	assert.Equal(t, cp.Vector{}, res.Applied)
	assert.Equal(t, cp.Vector{}, h.body.pos)
	assert.Len(t, h.effects.spawns, 1)
}

func TestDashDownLandsFlushOnFloor(t *testing.T) {
	h := newHarness(DefaultConfig(), nil)
	h.prober.rays = wallAt(0.5)

	res := h.ctrl.Dash(cp.Vector{X: 0, Y: -1})

	assert.Equal(t, RayBottom, res.Ray)
	assert.InDelta(t, -1.3, res.Contact.Y, eps)
	assert.InDelta(t, -0.3, h.body.pos.Y, eps)
	assert.InDelta(t, 0, h.body.pos.X, eps)
	require.Len(t, h.effects.spawns, 1)
	assert.InDelta(t, -math.Pi/2, h.effects.spawns[0].rotation, eps)
}

func TestDashTieBreak(t *testing.T) {
	cases := []struct {
		dir  cp.Vector
		want ProbeRay
	}{
		{cp.Vector{X: 1, Y: 1}, RayTop},
		{cp.Vector{X: -1, Y: 1}, RayTop},
		{cp.Vector{X: 0, Y: 1}, RayTop},
		{cp.Vector{X: 1, Y: -1}, RayBottom},
		{cp.Vector{X: 0, Y: -1}, RayBottom},
		{cp.Vector{X: 1, Y: 0}, RayBottom},
		{cp.Vector{X: -1, Y: 0}, RayBottom},
	}

	for _, c := range cases {
		h := newHarness(DefaultConfig(), nil)
		h.prober.rays = wallAt(1)

		first := h.ctrl.Dash(c.dir)
		h.ctrl.Reset(cp.Vector{})
		second := h.ctrl.Dash(c.dir)

		assert.Equal(t, c.want, first.Ray, "dir %v", c.dir)
		assert.Equal(t, first, second, "dir %v must resolve identically", c.dir)
		wantY := bottomProbeY
		if c.want == RayTop {
			wantY = topProbeY
		}
		assert.InDelta(t, wantY+c.dir.Normalize().Y, first.Contact.Y, eps)
	}
}

func TestDashSoleRayWins(t *testing.T) {
	h := newHarness(DefaultConfig(), nil)
	h.prober.rays = wallAt(2, topProbeY)

	res := h.ctrl.Dash(cp.Vector{X: 1, Y: -1})

	assert.Equal(t, RayTop, res.Ray)
}

func TestDashZeroDirectionIsNoop(t *testing.T) {
	h := newHarness(DefaultConfig(), nil)
	h.body.pos = cp.Vector{X: 3, Y: 3}

	res := h.ctrl.Dash(cp.Vector{})

	assert.Equal(t, cp.Vector{}, res.Applied)
	assert.False(t, res.Obstructed)
	assert.Empty(t, h.prober.rayCalls)
	assert.Empty(t, h.effects.spawns)
	assert.Zero(t, h.body.posSets)
	assert.Equal(t, cp.Vector{X: 3, Y: 3}, h.body.pos)
}

func TestDashUsesCompassDirection(t *testing.T) {
	h := newHarness(DefaultConfig(), nil)

	res := h.ctrl.Dash(cp.Vector{X: 0.2, Y: -0.7})

	assert.Equal(t, cp.Vector{X: 1, Y: -1}, res.Direction)
	assert.Equal(t, cp.Vector{X: 3, Y: -3}, h.body.pos)
}

func TestDashDistanceMultiplier(t *testing.T) {
	h := newHarness(DefaultConfig(), fakeStats{dash: 2, move: 1})

	h.ctrl.Dash(cp.Vector{X: -1, Y: 0})

	assert.Equal(t, cp.Vector{X: -6, Y: 0}, h.body.pos)
	assert.Equal(t, 6.0, h.ctrl.DashResolver().Distance())
}

func TestDashCustomCorrection(t *testing.T) {
	h := newHarness(DefaultConfig(), nil)
	h.prober.rays = wallAt(1, bottomProbeY)
	h.ctrl.SetCorrection(func(cp.Vector, ColliderGeometry) cp.Vector { return cp.Vector{} })

	h.ctrl.Dash(cp.Vector{X: 1, Y: 0})
	assert.InDelta(t, 1.0, h.body.pos.X, eps, "stops flush at the wall")

	h.ctrl.Reset(cp.Vector{})
	h.ctrl.SetCorrection(nil)
	h.ctrl.Dash(cp.Vector{X: 1, Y: 0})
	assert.InDelta(t, 0.8, h.body.pos.X, eps)
}

func TestDefaultCorrection(t *testing.T) {
	geom := testGeometry()
	cases := []struct {
		dir  cp.Vector
		want cp.Vector
	}{
		{cp.Vector{X: 1, Y: 0}, cp.Vector{X: 1, Y: 0}},
		{cp.Vector{X: -1, Y: 0}, cp.Vector{X: -1, Y: 0}},
		{cp.Vector{X: 0, Y: -1}, cp.Vector{X: 0, Y: -2}},
		{cp.Vector{X: 0, Y: 1}, cp.Vector{X: 0, Y: 1}},
		{cp.Vector{X: 1, Y: -1}, cp.Vector{X: 1, Y: -1}},
		{cp.Vector{X: -1, Y: 1}, cp.Vector{X: -0.5, Y: 1}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DefaultCorrection(c.dir, geom), "dir %v", c.dir)
	}
}

func TestProbeRayString(t *testing.T) {
	assert.Equal(t, "top", RayTop.String())
	assert.Equal(t, "bottom", RayBottom.String())
	assert.Equal(t, "none", RayNone.String())
}
