package controller

// Events holds subscriber callbacks. Callbacks run synchronously, in
// registration order, at the point the state changes.
type Events struct {
	land   []func()
	crouch []func(crouching bool)
}

func (e *Events) OnLand(fn func()) {
	if e == nil || fn == nil {
		return
	}
	e.land = append(e.land, fn)
}

func (e *Events) OnCrouchChanged(fn func(crouching bool)) {
	if e == nil || fn == nil {
		return
	}
	e.crouch = append(e.crouch, fn)
}

func (e *Events) emitLand() {
	if e == nil {
		return
	}
	for _, fn := range e.land {
		fn()
	}
}

func (e *Events) emitCrouch(crouching bool) {
	if e == nil {
		return
	}
	for _, fn := range e.crouch {
		fn(crouching)
	}
}
