package component

// Camera follows the player. X and Y are the world position at the screen
// centre.
type Camera struct {
	X, Y       float64
	Smoothness float64
	Zoom       float64
}

var CameraComponent = NewComponent[Camera]()
