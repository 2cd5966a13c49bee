package tuning

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geometry() controller.ColliderGeometry {
	return controller.ColliderGeometry{
		BoxHalfExtents: cp.Vector{X: 0.4, Y: 0.6},
		VisualHeight:   1.8,
	}
}

func TestEmbeddedScriptMatchesDefault(t *testing.T) {
	sc, err := Load("dash_correction.tengo")
	require.NoError(t, err)

	geom := geometry()
	for _, dir := range []cp.Vector{
		{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
		{X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1},
	} {
		got, err := sc.Offset(dir, geom)
		require.NoError(t, err, "%v", dir)
		want := controller.DefaultCorrection(dir, geom)
		assert.InDelta(t, want.X, got.X, 1e-9, "%v", dir)
		assert.InDelta(t, want.Y, got.Y, 1e-9, "%v", dir)
	}
}

func TestIntegerResult(t *testing.T) {
	sc, err := Compile("ints", []byte(`correction := func(dx, dy, w, h, vh) { return [1, -2] }`))
	require.NoError(t, err)

	got, err := sc.Offset(cp.Vector{X: 1}, geometry())
	require.NoError(t, err)
	assert.Equal(t, cp.Vector{X: 1, Y: -2}, got)
}

func TestBadResultFallsBack(t *testing.T) {
	sc, err := Compile("bad", []byte(`correction := func(dx, dy, w, h, vh) { return "nope" }`))
	require.NoError(t, err)

	_, err = sc.Offset(cp.Vector{X: 1}, geometry())
	assert.ErrorIs(t, err, ErrScriptResult)

	dir := cp.Vector{X: 1}
	assert.Equal(t, controller.DefaultCorrection(dir, geometry()), sc.Correction()(dir, geometry()))
}

func TestRuntimeErrorFallsBack(t *testing.T) {
	sc, err := Compile("panic", []byte(`correction := func(dx, dy, w, h, vh) { return [1 / 0, 0] }`))
	require.NoError(t, err)

	dir := cp.Vector{X: -1, Y: 1}
	assert.Equal(t, controller.DefaultCorrection(dir, geometry()), sc.Correction()(dir, geometry()))
}

func TestCompileError(t *testing.T) {
	_, err := Compile("broken", []byte(`correction := func(`))
	assert.Error(t, err)

	_, err = Compile("missing", []byte(`x := 1`))
	assert.Error(t, err, "correction must be defined")
}

func TestNilScript(t *testing.T) {
	var sc *ScriptedCorrection
	_, err := sc.Offset(cp.Vector{X: 1}, geometry())
	assert.Error(t, err)
	assert.Empty(t, sc.Name())
}
