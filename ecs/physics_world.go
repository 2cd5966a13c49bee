package ecs

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/controller"
)

// Collision categories. Actors must stay out of the ground mask so probes
// never report the actor itself as ground.
const (
	CategoryGround uint = 1 << iota
	CategoryActor
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeActor
)

const (
	defaultIterations = 20
	defaultFriction   = 0.8
	// actorFriction is zero so the smoothed velocity is not fought by
	// surface friction.
	actorFriction = 0
)

// PhysicsWorld owns the Chipmunk space and answers the controller's probes
// against it.
type PhysicsWorld struct {
	space  *cp.Space
	nextID controller.BodyID
	actors map[controller.BodyID]*ActorBody
}

// NewPhysicsWorld creates an empty space. gravity is the downward
// acceleration in world units per second squared, +Y up.
func NewPhysicsWorld(gravity float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = defaultIterations
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})
	return &PhysicsWorld{
		space:  space,
		actors: make(map[controller.BodyID]*ActorBody),
	}
}

func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddStaticBox adds an axis-aligned solid to the ground category.
func (pw *PhysicsWorld) AddStaticBox(bb cp.BB) *cp.Shape {
	if pw == nil || pw.space == nil {
		return nil
	}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(defaultFriction)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryGround, cp.ALL_CATEGORIES))
	pw.space.AddShape(shape)
	return shape
}

// AddTileLayer merges the non-zero cells of a row-major tile grid into as few
// static boxes as it can and adds them. Row 0 is the top row; the bottom row
// sits on y = 0. It returns the boxes added.
func (pw *PhysicsWorld) AddTileLayer(width, height int, tiles []int, tileSize float64) []cp.BB {
	if pw == nil || width <= 0 || height <= 0 || len(tiles) != width*height || tileSize <= 0 {
		return nil
	}
	var added []cp.BB
	processed := make([]bool, width*height)
	solid := func(idx int) bool { return !processed[idx] && tiles[idx] != 0 }

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if !solid(idx) {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < width && solid(y*width+x+w) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					if !solid((y+h)*width + xi) {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*width+xx] = true
				}
			}

			bb := cp.BB{
				L: float64(x) * tileSize,
				R: float64(x+w) * tileSize,
				B: float64(height-y-h) * tileSize,
				T: float64(height-y) * tileSize,
			}
			pw.AddStaticBox(bb)
			added = append(added, bb)
		}
	}
	return added
}

// ActorBodySpec describes a dynamic actor: a box collider on top of a circle
// foot collider, offsets relative to the body position.
type ActorBodySpec struct {
	Position       cp.Vector
	Mass           float64
	BoxHalfExtents cp.Vector
	BoxOffset      cp.Vector
	CircleRadius   float64
	CircleOffset   cp.Vector
}

// AddActorBody creates a rotation-locked body. Its shapes share a collision
// group so they never collide with each other.
func (pw *PhysicsWorld) AddActorBody(spec ActorBodySpec) *ActorBody {
	if pw == nil || pw.space == nil {
		return nil
	}
	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}
	pw.nextID++
	id := pw.nextID

	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(spec.Position)
	body.UserData = id
	pw.space.AddBody(body)

	filter := cp.NewShapeFilter(uint(id), CategoryActor, cp.ALL_CATEGORIES)
	hx, hy := spec.BoxHalfExtents.X, spec.BoxHalfExtents.Y
	box := cp.NewBox2(body, cp.BB{
		L: spec.BoxOffset.X - hx,
		R: spec.BoxOffset.X + hx,
		B: spec.BoxOffset.Y - hy,
		T: spec.BoxOffset.Y + hy,
	}, 0)
	box.SetFriction(actorFriction)
	box.SetCollisionType(collisionTypeActor)
	box.SetFilter(filter)
	pw.space.AddShape(box)

	var circle *cp.Shape
	if spec.CircleRadius > 0 {
		circle = cp.NewCircle(body, spec.CircleRadius, spec.CircleOffset)
		circle.SetFriction(actorFriction)
		circle.SetCollisionType(collisionTypeActor)
		circle.SetFilter(filter)
		pw.space.AddShape(circle)
	}

	actor := &ActorBody{
		id:     id,
		world:  pw,
		body:   body,
		box:    &ShapeToggle{shape: box, filter: filter, enabled: true},
		circle: circle,
	}
	pw.actors[id] = actor
	return actor
}

// RemoveActorBody takes the actor's body and shapes out of the space.
func (pw *PhysicsWorld) RemoveActorBody(a *ActorBody) {
	if pw == nil || pw.space == nil || a == nil {
		return
	}
	pw.space.RemoveShape(a.box.shape)
	if a.circle != nil {
		pw.space.RemoveShape(a.circle)
	}
	pw.space.RemoveBody(a.body)
	delete(pw.actors, a.id)
}

func (pw *PhysicsWorld) Actor(id controller.BodyID) (*ActorBody, bool) {
	if pw == nil {
		return nil, false
	}
	a, ok := pw.actors[id]
	return a, ok
}

// Step advances the simulation by dt seconds.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

func queryFilter(mask uint) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
}

func bodyID(shape *cp.Shape) controller.BodyID {
	if shape == nil || shape.Body() == nil {
		return 0
	}
	if id, ok := shape.Body().UserData.(controller.BodyID); ok {
		return id
	}
	return 0
}

// OverlapCircleAll returns the body of every shape in mask that overlaps the
// circle. Static geometry reports body 0. A body with several overlapping
// shapes is reported once per shape.
func (pw *PhysicsWorld) OverlapCircleAll(center cp.Vector, radius float64, mask uint) []controller.BodyID {
	if pw == nil || pw.space == nil {
		return nil
	}
	var out []controller.BodyID
	bb := cp.NewBBForCircle(center, radius)
	pw.space.BBQuery(bb, queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		if shape.Sensor() {
			return
		}
		if info := shape.PointQuery(center); info.Distance <= radius {
			out = append(out, bodyID(shape))
		}
	}, nil)
	return out
}

// OverlapCircle reports whether any shape in mask overlaps the circle.
func (pw *PhysicsWorld) OverlapCircle(center cp.Vector, radius float64, mask uint) bool {
	return len(pw.OverlapCircleAll(center, radius, mask)) > 0
}

// RaycastAll casts a segment of length maxDistance from origin along
// direction and returns the hits on shapes in mask, nearest first.
func (pw *PhysicsWorld) RaycastAll(origin, direction cp.Vector, maxDistance float64, mask uint) []controller.Hit {
	if pw == nil || pw.space == nil || maxDistance <= 0 || direction.LengthSq() == 0 {
		return nil
	}
	end := origin.Add(direction.Normalize().Mult(maxDistance))
	var hits []controller.Hit
	pw.space.SegmentQuery(origin, end, 0, queryFilter(mask), func(shape *cp.Shape, point, _ cp.Vector, alpha float64, _ interface{}) {
		if shape.Sensor() {
			return
		}
		hits = append(hits, controller.Hit{Distance: alpha * maxDistance, Point: point})
	}, nil)
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// ActorBody adapts a cp.Body to controller.Body.
type ActorBody struct {
	id     controller.BodyID
	world  *PhysicsWorld
	body   *cp.Body
	box    *ShapeToggle
	circle *cp.Shape
}

func (a *ActorBody) ID() controller.BodyID { return a.id }
func (a *ActorBody) Body() *cp.Body        { return a.body }

// CrouchCollider is the upper box, disabled while crouched.
func (a *ActorBody) CrouchCollider() *ShapeToggle { return a.box }

func (a *ActorBody) Position() cp.Vector {
	if a == nil || a.body == nil {
		return cp.Vector{}
	}
	return a.body.Position()
}

// SetPosition teleports the body and refreshes its shapes' cached bounds so
// shape queries made before the next step see the new location.
func (a *ActorBody) SetPosition(p cp.Vector) {
	if a == nil || a.body == nil {
		return
	}
	a.body.SetPosition(p)
	a.body.EachShape(func(s *cp.Shape) { s.CacheBB() })
}

func (a *ActorBody) Velocity() cp.Vector {
	if a == nil || a.body == nil {
		return cp.Vector{}
	}
	return a.body.Velocity()
}

func (a *ActorBody) SetVelocity(v cp.Vector) {
	if a == nil || a.body == nil {
		return
	}
	a.body.SetVelocityVector(v)
}

func (a *ActorBody) ApplyImpulse(impulse cp.Vector) {
	if a == nil || a.body == nil {
		return
	}
	a.body.ApplyImpulseAtLocalPoint(impulse, cp.Vector{})
}

// ShapeToggle enables and disables a shape through its collision filter.
type ShapeToggle struct {
	shape   *cp.Shape
	filter  cp.ShapeFilter
	enabled bool
}

func (t *ShapeToggle) SetEnabled(enabled bool) {
	if t == nil || t.shape == nil || t.enabled == enabled {
		return
	}
	t.enabled = enabled
	if enabled {
		t.shape.SetFilter(t.filter)
		return
	}
	t.shape.SetFilter(cp.SHAPE_FILTER_NONE)
}

func (t *ShapeToggle) Enabled() bool {
	return t != nil && t.enabled
}
