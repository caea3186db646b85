package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// contactSkin lets a body resting on a surface keep counting as touching it.
const contactSkin = 1e-4

// KinematicBody is an axis-aligned box body in a BoxWorld. It implements
// locomotion.Body.
type KinematicBody struct {
	pos     mgl64.Vec3
	vel     mgl64.Vec3
	half    mgl64.Vec3
	mass    float64
	pending mgl64.Vec3
	gravity *GravitySwitch

	touching map[int]bool
}

func (b *KinematicBody) Position() mgl64.Vec3 { return b.pos }
func (b *KinematicBody) Velocity() mgl64.Vec3 { return b.vel }

// MovePosition queues a displacement for the next step.
func (b *KinematicBody) MovePosition(delta mgl64.Vec3) {
	b.pending = b.pending.Add(delta)
}

func (b *KinematicBody) AddImpulse(impulse mgl64.Vec3) {
	b.vel = b.vel.Add(impulse.Mul(1 / b.mass))
}

// Gravity is the body's gravity toggle. Turning gravity off also stops the
// body so it hangs where it is.
func (b *KinematicBody) Gravity() *GravitySwitch { return b.gravity }

func (b *KinematicBody) HalfExtents() mgl64.Vec3 { return b.half }

// Teleport places the body at pos at rest and drops any queued move.
func (b *KinematicBody) Teleport(pos mgl64.Vec3) {
	b.pos = pos
	b.vel = mgl64.Vec3{}
	b.pending = mgl64.Vec3{}
}

func (b *KinematicBody) step(dt float64, g mgl64.Vec3, boxes []Box) []ContactEvent {
	if b.gravity.IsEnabled() {
		b.vel = b.vel.Add(g.Mul(dt))
	}
	b.pos = b.pos.Add(b.vel.Mul(dt)).Add(b.pending)
	b.pending = mgl64.Vec3{}

	// Two passes settle a body wedged in a corner.
	for range 2 {
		for _, box := range boxes {
			if !box.Trigger {
				b.pushOut(box)
			}
		}
	}

	var events []ContactEvent
	for i, box := range boxes {
		now := b.overlaps(box, contactSkin)
		if now && !b.touching[i] {
			events = append(events, ContactEvent{Body: b, Contact: box.contact(), Trigger: box.Trigger})
		}
		if now {
			b.touching[i] = true
		} else {
			delete(b.touching, i)
		}
	}
	return events
}

// pushOut moves the body out of box along the axis of least penetration and
// cancels velocity into the surface.
func (b *KinematicBody) pushOut(box Box) {
	lo, hi := b.pos.Sub(b.half), b.pos.Add(b.half)
	best, axis, push := math.Inf(1), -1, 0.0
	for i := range 3 {
		over := math.Min(hi[i], box.Max[i]) - math.Max(lo[i], box.Min[i])
		if over <= 0 {
			return
		}
		if over < best {
			d := over
			if b.pos[i] < (box.Min[i]+box.Max[i])/2 {
				d = -over
			}
			best, axis, push = over, i, d
		}
	}
	b.pos[axis] += push
	if b.vel[axis]*push < 0 {
		b.vel[axis] = 0
	}
}

func (b *KinematicBody) overlaps(box Box, skin float64) bool {
	lo, hi := b.pos.Sub(b.half), b.pos.Add(b.half)
	for i := range 3 {
		if hi[i]+skin < box.Min[i] || lo[i]-skin > box.Max[i] {
			return false
		}
	}
	return true
}
