package component

// Input stores the per-frame intent read from devices. Held inputs are
// levels; the *Pressed fields are edges that last one frame.
type Input struct {
	MoveX  float64
	Crouch bool
	Jump   bool

	JumpPressed bool
	DashPressed bool
	// DashX and DashY are the raw dash aim axes, reduced to a compass
	// direction by the dash resolver.
	DashX float64
	DashY float64
}

var InputComponent = NewComponent[Input]()
