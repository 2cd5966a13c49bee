// Package tuning runs the dash corrective offset through a tengo script so it
// can be tuned while the game runs.
package tuning

import (
	"errors"
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/controller"
	"github.com/milk9111/reaper/prefabs"
)

var ErrScriptResult = errors.New("tuning: script must return [x, y]")

// The script defines correction(dx, dy, half_w, half_h, visual_height); the
// dispatch calls it with the current dash and stores the result in __out.
const correctionDispatchScript = `
__out := correction(__dir_x, __dir_y, __half_w, __half_h, __visual_height)
`

// ScriptedCorrection is a compiled correction script. It is not safe for
// concurrent use; the controller calls it from the game loop only.
type ScriptedCorrection struct {
	name     string
	compiled *tengo.Compiled
}

// Compile builds a correction from script source. name is used in errors.
func Compile(name string, src []byte) (*ScriptedCorrection, error) {
	full := string(src) + "\n" + correctionDispatchScript
	script := tengo.NewScript([]byte(full))
	for _, v := range []string{"__dir_x", "__dir_y", "__half_w", "__half_h", "__visual_height"} {
		_ = script.Add(v, 0.0)
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("tuning: compile %s: %w", name, err)
	}
	return &ScriptedCorrection{name: name, compiled: compiled}, nil
}

// Load compiles a script from prefabs/scripts.
func Load(name string) (*ScriptedCorrection, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("tuning: load %s: %w", name, err)
	}
	return Compile(name, src)
}

func (s *ScriptedCorrection) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Offset runs the script for one dash direction.
func (s *ScriptedCorrection) Offset(dir cp.Vector, geom controller.ColliderGeometry) (cp.Vector, error) {
	if s == nil || s.compiled == nil {
		return cp.Vector{}, fmt.Errorf("tuning: nil script")
	}
	inputs := map[string]float64{
		"__dir_x":         dir.X,
		"__dir_y":         dir.Y,
		"__half_w":        geom.BoxHalfExtents.X,
		"__half_h":        geom.BoxHalfExtents.Y,
		"__visual_height": geom.VisualHeight,
	}
	for k, v := range inputs {
		if err := s.compiled.Set(k, v); err != nil {
			return cp.Vector{}, err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return cp.Vector{}, fmt.Errorf("tuning: run %s: %w", s.name, err)
	}

	out := s.compiled.Get("__out").Array()
	if len(out) != 2 {
		return cp.Vector{}, fmt.Errorf("%w: %s returned %v", ErrScriptResult, s.name, s.compiled.Get("__out").Value())
	}
	x, okX := number(out[0])
	y, okY := number(out[1])
	if !okX || !okY {
		return cp.Vector{}, fmt.Errorf("%w: %s returned %v", ErrScriptResult, s.name, out)
	}
	return cp.Vector{X: x, Y: y}, nil
}

// Correction adapts the script to the controller. A failing script logs and
// falls back to controller.DefaultCorrection for that dash.
func (s *ScriptedCorrection) Correction() controller.CorrectionFunc {
	return func(dir cp.Vector, geom controller.ColliderGeometry) cp.Vector {
		offset, err := s.Offset(dir, geom)
		if err != nil {
			log.Printf("tuning: %v; using default correction", err)
			return controller.DefaultCorrection(dir, geom)
		}
		return offset
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
