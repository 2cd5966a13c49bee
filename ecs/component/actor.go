package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/controller"
)

// Actor attaches a character controller to an entity.
type Actor struct {
	Controller *controller.Controller
	Spawn      cp.Vector

	// DashCooldownFrames is the number of ticks after a dash during which
	// dash presses are ignored.
	DashCooldownFrames int
	LastDash           controller.DisplacementResult
}

var ActorComponent = NewComponent[Actor]()
