package component

// Transform is a world-space pose in world units, +Y up. ScaleX carries the
// facing sign of actors.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
