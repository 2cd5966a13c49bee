package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/controller"
)

// PhysicsBody links an entity to its body in the physics world.
type PhysicsBody struct {
	ID   controller.BodyID
	Body *cp.Body
	// Offset from the body position to the entity transform.
	Offset cp.Vector
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
