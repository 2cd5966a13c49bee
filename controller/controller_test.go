package controller

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(DefaultConfig(), testGeometry(), Deps{Prober: &fakeProber{}})
	assert.ErrorIs(t, err, ErrMissingCollaborator)

	_, err = New(DefaultConfig(), testGeometry(), Deps{Body: &fakeBody{}})
	assert.ErrorIs(t, err, ErrMissingCollaborator)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CrouchSpeed = 2
	_, err := New(cfg, testGeometry(), Deps{Body: &fakeBody{}, Prober: &fakeProber{}})
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"crouch_zero", func(c *Config) { c.CrouchSpeed = 0 }, true},
		{"crouch_one", func(c *Config) { c.CrouchSpeed = 1 }, true},
		{"crouch_negative", func(c *Config) { c.CrouchSpeed = -0.1 }, false},
		{"crouch_above_one", func(c *Config) { c.CrouchSpeed = 1.1 }, false},
		{"smoothing_above_limit", func(c *Config) { c.MovementSmoothing = 0.4 }, false},
		{"smoothing_negative", func(c *Config) { c.MovementSmoothing = -1 }, false},
		{"radius_zero", func(c *Config) { c.GroundCheckRadius = 0 }, false},
		{"dash_negative", func(c *Config) { c.DashDistance = -1 }, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			err := cfg.Validate()
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestTickSensesBeforeMoving(t *testing.T) {
	h := grounded(newHarness(DefaultConfig(), nil))

	// Grounded is false before the first tick; the jump only fires if the
	// sensor ran first.
	require.False(t, h.ctrl.Grounded())
	h.ctrl.Tick(DefaultStep, Intent{Jump: true})

	assert.Len(t, h.body.impulses, 1)
}

func TestResetKeepsSubscriptions(t *testing.T) {
	h := grounded(newHarness(DefaultConfig(), nil))
	lands := 0
	h.ctrl.Events().OnLand(func() { lands++ })

	h.ctrl.Tick(DefaultStep, Intent{Move: -1})
	require.Equal(t, 1, lands)
	require.False(t, h.ctrl.FacingRight())

	h.ctrl.Reset(cp.Vector{X: 5, Y: 6})
	assert.Equal(t, cp.Vector{X: 5, Y: 6}, h.body.pos)
	assert.Equal(t, cp.Vector{}, h.body.vel)
	assert.True(t, h.ctrl.FacingRight())
	assert.False(t, h.ctrl.Grounded())

	h.ctrl.Tick(DefaultStep, Intent{})
	assert.Equal(t, 2, lands)
}

func TestSetConfig(t *testing.T) {
	h := newHarness(DefaultConfig(), nil)

	bad := DefaultConfig()
	bad.GroundCheckRadius = -1
	assert.ErrorIs(t, h.ctrl.SetConfig(bad), ErrInvalidConfig)
	assert.Equal(t, DefaultConfig(), h.ctrl.Config())

	good := DefaultConfig()
	good.DashDistance = 5
	require.NoError(t, h.ctrl.SetConfig(good))
	h.ctrl.Dash(cp.Vector{X: 1})
	assert.Equal(t, cp.Vector{X: 5, Y: 0}, h.body.pos)
}

func TestNilControllerIsSafe(t *testing.T) {
	var c *Controller
	assert.NotPanics(t, func() {
		c.Tick(DefaultStep, Intent{Move: 1})
		c.Dash(cp.Vector{X: 1})
		c.Reset(cp.Vector{})
		c.SetCorrection(nil)
		c.Events().OnLand(func() {})
		c.Events().OnCrouchChanged(func(bool) {})
	})
	assert.Equal(t, Config{}, c.Config())
	assert.Equal(t, ColliderGeometry{}, c.Geometry())
	assert.Equal(t, ActorState{}, c.State())
	assert.Nil(t, c.Sensor())
	assert.Nil(t, c.Locomotion())
	assert.Nil(t, c.DashResolver())
	assert.False(t, c.FacingRight())
	assert.False(t, c.Grounded())
	assert.False(t, c.Crouching())
	assert.Equal(t, cp.Vector{}, c.Velocity())
}
