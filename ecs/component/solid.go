package component

import "github.com/jakecoffman/cp"

// Solid is a static box of level geometry, kept for drawing.
type Solid struct {
	BB cp.BB
}

var SolidComponent = NewComponent[Solid]()
