package levels

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultLevel(t *testing.T) {
	lvl, err := LoadLevelFromFS(DefaultLevel)
	require.NoError(t, err)

	require.Len(t, lvl.PhysicsLayers(), 1)
	spawn := lvl.Spawn()
	assert.Equal(t, 4.5, spawn.X)
	assert.Equal(t, 3.5, spawn.Y, "spawn is above the floor")
}

func TestTileCenterFlipsRows(t *testing.T) {
	lvl := &Level{Width: 2, Height: 3}
	assert.Equal(t, cp.Vector{X: 0.5, Y: 2.5}, lvl.TileCenter(0, 0))
	assert.Equal(t, cp.Vector{X: 1.5, Y: 0.5}, lvl.TileCenter(1, 2))
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, (&Level{}).Validate(), ErrInvalidLevel)
	assert.ErrorIs(t, (&Level{Width: 2, Height: 2, Layers: [][]int{{1, 1, 1}}}).Validate(), ErrInvalidLevel)
	assert.NoError(t, (&Level{Width: 1, Height: 1, Layers: [][]int{{1}}}).Validate())
}

func TestPhysicsLayersHonourMeta(t *testing.T) {
	lvl := &Level{
		Width: 1, Height: 1,
		Layers:    [][]int{{1}, {2}},
		LayerMeta: []LayerMeta{{Physics: false}, {Physics: true}},
	}
	assert.Equal(t, [][]int{{2}}, lvl.PhysicsLayers())

	lvl.LayerMeta = nil
	assert.Len(t, lvl.PhysicsLayers(), 2)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("nope.json")
	assert.Error(t, err)
}
