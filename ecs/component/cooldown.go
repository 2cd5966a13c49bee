package component

// Cooldown counts down in update ticks and is removed when it reaches zero.
// Actors carry one after a dash.
type Cooldown struct {
	Frames int
}

var CooldownComponent = NewComponent[Cooldown]()
