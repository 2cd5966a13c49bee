package prefabs

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/controller"
	"gopkg.in/yaml.v3"
)

const PlayerSpecFile = "player.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VectorSpec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

type ControllerSpec struct {
	JumpForce          float64 `yaml:"jump_force"`
	CrouchSpeed        float64 `yaml:"crouch_speed"`
	MovementSmoothing  float64 `yaml:"movement_smoothing"`
	AirControl         bool    `yaml:"air_control"`
	GroundMask         uint    `yaml:"ground_mask"`
	GroundCheckRadius  float64 `yaml:"ground_check_radius"`
	DashDistance       float64 `yaml:"dash_distance"`
	SpeedScale         float64 `yaml:"speed_scale"`
	DashCooldownFrames int     `yaml:"dash_cooldown_frames"`
}

// Config converts the spec. Zero ground mask and speed scale fall back to the
// controller defaults.
func (s ControllerSpec) Config() controller.Config {
	def := controller.DefaultConfig()
	cfg := controller.Config{
		JumpForce:         s.JumpForce,
		CrouchSpeed:       s.CrouchSpeed,
		MovementSmoothing: s.MovementSmoothing,
		AirControl:        s.AirControl,
		GroundMask:        s.GroundMask,
		GroundCheckRadius: s.GroundCheckRadius,
		DashDistance:      s.DashDistance,
		SpeedScale:        s.SpeedScale,
	}
	if cfg.GroundMask == 0 {
		cfg.GroundMask = def.GroundMask
	}
	if cfg.SpeedScale == 0 {
		cfg.SpeedScale = def.SpeedScale
	}
	return cfg
}

type GeometrySpec struct {
	BoxHalfExtents VectorSpec `yaml:"box_half_extents"`
	BoxOffset      VectorSpec `yaml:"box_offset"`
	CircleRadius   float64    `yaml:"circle_radius"`
	CircleOffset   VectorSpec `yaml:"circle_offset"`
	VisualHeight   float64    `yaml:"visual_height"`
	GroundCheck    VectorSpec `yaml:"ground_check"`
	CeilingCheck   VectorSpec `yaml:"ceiling_check"`
}

func (s GeometrySpec) Geometry() controller.ColliderGeometry {
	return controller.ColliderGeometry{
		BoxHalfExtents: s.BoxHalfExtents.Vector(),
		BoxOffset:      s.BoxOffset.Vector(),
		CircleRadius:   s.CircleRadius,
		CircleOffset:   s.CircleOffset.Vector(),
		VisualHeight:   s.VisualHeight,
		GroundCheck:    s.GroundCheck.Vector(),
		CeilingCheck:   s.CeilingCheck.Vector(),
	}
}

type BodySpec struct {
	Mass float64 `yaml:"mass"`
}

type PhysicsSpec struct {
	Gravity float64 `yaml:"gravity"`
}

type EffectSpec struct {
	// Duration is the fade-out length in seconds.
	Duration float64 `yaml:"duration"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
}

type EffectsSpec struct {
	Dash     EffectSpec `yaml:"dash"`
	LandDust EffectSpec `yaml:"land_dust"`
}

type CameraSpec struct {
	Smoothness float64 `yaml:"smoothness"`
	Zoom       float64 `yaml:"zoom"`
}

type PlayerSpec struct {
	Name             string         `yaml:"name"`
	Controller       ControllerSpec `yaml:"controller"`
	Geometry         GeometrySpec   `yaml:"geometry"`
	Body             BodySpec       `yaml:"body"`
	Physics          PhysicsSpec    `yaml:"physics"`
	Effects          EffectsSpec    `yaml:"effects"`
	Camera           CameraSpec     `yaml:"camera"`
	CorrectionScript string         `yaml:"correction_script"`
}

// Validate checks the controller config and the collider geometry.
func (s *PlayerSpec) Validate() error {
	if err := s.Controller.Config().Validate(); err != nil {
		return err
	}
	g := s.Geometry
	switch {
	case g.BoxHalfExtents.X <= 0 || g.BoxHalfExtents.Y <= 0:
		return fmt.Errorf("%w: box half extents must be > 0", controller.ErrInvalidConfig)
	case g.CircleRadius < 0:
		return fmt.Errorf("%w: circle radius must be >= 0", controller.ErrInvalidConfig)
	case g.VisualHeight <= 0:
		return fmt.Errorf("%w: visual height must be > 0", controller.ErrInvalidConfig)
	case s.Controller.DashCooldownFrames < 0:
		return fmt.Errorf("%w: dash cooldown must be >= 0", controller.ErrInvalidConfig)
	}
	return nil
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerSpecFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", PlayerSpecFile, err)
	}
	return &spec, nil
}
