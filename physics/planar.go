package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/fpcontroller/common"
	"github.com/milk9111/fpcontroller/locomotion"
)

const (
	collisionTypeStatic cp.CollisionType = iota + 1
	collisionTypeCharacter
)

// characterGroup keeps ray queries from hitting character shapes.
const characterGroup uint = 1

// PlanarWorld runs the controller in a side view on Chipmunk2D. World x and
// y map to the space's x and y; z is ignored, so characters should face +x
// or -x (yaw 90 or 270).
type PlanarWorld struct {
	space    *cp.Space
	boxes    map[*cp.Shape]Box
	order    []Box
	bodies   map[*cp.Shape]*PlanarBody
	contacts []ContactEvent
}

func NewPlanarWorld(gravity float64) *PlanarWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})

	pw := &PlanarWorld{
		space:  space,
		boxes:  make(map[*cp.Shape]Box),
		bodies: make(map[*cp.Shape]*PlanarBody),
	}
	pw.setupHandlers()
	return pw
}

func (pw *PlanarWorld) Space() *cp.Space {
	return pw.space
}

// AddBox adds a static box. Its layers become the shape's filter
// categories; trigger boxes become sensors.
func (pw *PlanarWorld) AddBox(b Box) error {
	b, err := b.validate()
	if err != nil {
		return err
	}
	bb := cp.BB{L: b.Min.X(), B: b.Min.Y(), R: b.Max.X(), T: b.Max.Y()}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetSensor(b.Trigger)
	shape.SetCollisionType(collisionTypeStatic)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(b.Layers), cp.ALL_CATEGORIES))
	pw.space.AddShape(shape)

	pw.boxes[shape] = b
	pw.order = append(pw.order, b)
	return nil
}

func (pw *PlanarWorld) Boxes() []Box {
	return append([]Box(nil), pw.order...)
}

// NewBody adds a dynamic body that never rotates.
func (pw *PlanarWorld) NewBody(pos, halfExtents mgl64.Vec3) *PlanarBody {
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Y()})
	shape := cp.NewBox(body, 2*halfExtents.X(), 2*halfExtents.Y(), 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)
	shape.SetFilter(cp.NewShapeFilter(characterGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))

	pw.space.AddBody(body)
	pw.space.AddShape(shape)

	pb := &PlanarBody{body: body, shape: shape, z: pos.Z(), half: halfExtents}
	pb.gravity = newGravitySwitch(pb.applyGravity)
	pw.bodies[shape] = pb
	return pb
}

// Raycast projects the ray onto the plane. Rays with no in-plane component
// never hit.
func (pw *PlanarWorld) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask locomotion.LayerMask) (locomotion.RaycastHit, bool) {
	if !common.FiniteVec3(origin) || !common.FiniteVec3(dir) || maxDistance <= 0 {
		return locomotion.RaycastHit{}, false
	}
	planar := mgl64.Vec2{dir.X(), dir.Y()}
	if planar.Len() < 1e-9 {
		return locomotion.RaycastHit{}, false
	}
	start := cp.Vector{X: origin.X(), Y: origin.Y()}
	end := start.Add(cp.Vector{X: dir.X(), Y: dir.Y()}.Mult(maxDistance))
	filter := cp.NewShapeFilter(characterGroup, cp.ALL_CATEGORIES, uint(mask))

	info := pw.space.SegmentQueryFirst(start, end, 0, filter)
	if info.Shape == nil {
		return locomotion.RaycastHit{}, false
	}
	b := pw.boxes[info.Shape]
	return locomotion.RaycastHit{
		Point:    mgl64.Vec3{info.Point.X, info.Point.Y, origin.Z()},
		Normal:   mgl64.Vec3{info.Normal.X, info.Normal.Y, 0},
		Distance: info.Alpha * end.Sub(start).Length(),
		Layer:    b.Layers.Primary(),
	}, true
}

// Step applies queued displacements and advances the space.
func (pw *PlanarWorld) Step(dt float64) {
	if !common.Finite(dt) || dt <= 0 {
		return
	}
	for _, b := range pw.bodies {
		b.flush()
	}
	pw.space.Step(dt)
}

func (pw *PlanarWorld) DrainContacts() []ContactEvent {
	out := pw.contacts
	pw.contacts = nil
	return out
}

func (pw *PlanarWorld) setupHandlers() {
	handler := pw.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeStatic)
	handler.UserData = pw
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*PlanarWorld)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		body, okA := world.bodies[shapeA]
		box, okB := world.boxes[shapeB]
		if !okA || !okB {
			return true
		}
		world.contacts = append(world.contacts, ContactEvent{Body: body, Contact: box.contact(), Trigger: box.Trigger})
		return true
	}
}

// PlanarBody wraps a Chipmunk body. It implements locomotion.Body.
type PlanarBody struct {
	body    *cp.Body
	shape   *cp.Shape
	z       float64
	half    mgl64.Vec3
	pending mgl64.Vec3
	gravity *GravitySwitch
}

func (b *PlanarBody) Position() mgl64.Vec3 {
	p := b.body.Position()
	return mgl64.Vec3{p.X, p.Y, b.z}
}

func (b *PlanarBody) Velocity() mgl64.Vec3 {
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, v.Y, 0}
}

func (b *PlanarBody) MovePosition(delta mgl64.Vec3) {
	b.pending = b.pending.Add(delta)
}

func (b *PlanarBody) AddImpulse(impulse mgl64.Vec3) {
	b.body.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse.X(), Y: impulse.Y()}, b.body.Position())
}

func (b *PlanarBody) Gravity() *GravitySwitch { return b.gravity }

func (b *PlanarBody) HalfExtents() mgl64.Vec3 { return b.half }

// Teleport places the body at pos at rest and drops any queued move.
func (b *PlanarBody) Teleport(pos mgl64.Vec3) {
	b.body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Y()})
	b.body.SetVelocity(0, 0)
	b.z = pos.Z()
	b.pending = mgl64.Vec3{}
}

func (b *PlanarBody) flush() {
	if b.pending.X() == 0 && b.pending.Y() == 0 {
		return
	}
	p := b.body.Position()
	b.body.SetPosition(cp.Vector{X: p.X + b.pending.X(), Y: p.Y + b.pending.Y()})
	b.pending = mgl64.Vec3{}
}

// applyGravity swaps the velocity integrator. Without gravity the body is
// also brought to rest.
func (b *PlanarBody) applyGravity(on bool) {
	if on {
		b.body.SetVelocityUpdateFunc(cp.BodyUpdateVelocity)
		return
	}
	b.body.SetVelocity(0, 0)
	b.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
	})
}
