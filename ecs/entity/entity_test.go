package entity

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/ecs"
	"github.com/milk9111/reaper/ecs/component"
	"github.com/milk9111/reaper/levels"
	"github.com/milk9111/reaper/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(30))
	return w
}

func TestNewPlayer(t *testing.T) {
	w := newWorld(t)
	spawn := cp.Vector{X: 3, Y: 4}

	e, err := NewPlayer(w, nil, spawn)
	require.NoError(t, err)

	actor, ok := ecs.Get(w, e, component.ActorComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, actor.Controller)
	assert.Equal(t, spawn, actor.Spawn)
	assert.Equal(t, 20, actor.DashCooldownFrames)

	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, spawn, pb.Body.Position())
	_, ok = w.PhysicsWorld().Actor(pb.ID)
	assert.True(t, ok)

	assert.True(t, ecs.Has(w, e, component.PlayerTagComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.InputComponent.Kind()))
}

func TestBuildPlayerRequiresPhysics(t *testing.T) {
	spec, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)

	_, err = BuildPlayer(ecs.NewWorld(), spec, nil, cp.Vector{})
	assert.Error(t, err)
}

func TestBuildPlayerRejectsBadConfig(t *testing.T) {
	w := newWorld(t)
	spec, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)
	spec.Controller.JumpForce = 0

	_, err = BuildPlayer(w, spec, nil, cp.Vector{})
	assert.Error(t, err)
	assert.Empty(t, ecs.Entities(w))
}

func TestLoadLevelToWorld(t *testing.T) {
	w := newWorld(t)
	lvl := &levels.Level{
		Width:  3,
		Height: 2,
		Layers: [][]int{{0, 0, 0, 1, 1, 1}},
		Entities: []levels.Entity{
			{Type: levels.EntityPlayerSpawn, X: 1, Y: 0},
		},
	}

	spawn, err := LoadLevelToWorld(w, lvl)
	require.NoError(t, err)
	assert.Equal(t, cp.Vector{X: 1.5, Y: 1.5}, spawn)

	solids := w.Query(component.SolidComponent.Kind())
	require.Len(t, solids, 1)
	solid, _ := ecs.Get(w, solids[0], component.SolidComponent.Kind())
	assert.Equal(t, cp.BB{L: 0, R: 3, B: 0, T: 1}, solid.BB)
	assert.True(t, w.PhysicsWorld().OverlapCircle(cp.Vector{X: 1.5, Y: 0.5}, 0.1, ecs.CategoryGround))
}

func TestSpawnEffect(t *testing.T) {
	w := ecs.NewWorld()
	spec := prefabs.EffectSpec{Duration: 0.5, Width: 1, Height: 2}

	e, err := SpawnEffect(w, component.EffectDash, spec, cp.Vector{X: 1, Y: 2}, 0.5)
	require.NoError(t, err)

	fx, ok := ecs.Get(w, e, component.EffectComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, float32(1), fx.Alpha)
	assert.NotNil(t, fx.Fade)
	ttl, _ := ecs.Get(w, e, component.TTLComponent.Kind())
	assert.Equal(t, 31, ttl.Frames)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, 0.5, tr.Rotation)
}

func TestEffectSpawnerFeedsWorld(t *testing.T) {
	w := ecs.NewWorld()
	s := NewEffectSpawner(w, component.EffectLandDust, prefabs.EffectSpec{})
	s.SpawnEffect(cp.Vector{}, 0)

	_, fx, ok := ecs.First(w, component.EffectComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.EffectLandDust, fx.Kind)

	var nilSpawner *EffectSpawner
	assert.NotPanics(t, func() { nilSpawner.SpawnEffect(cp.Vector{}, 0) })
}
