package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/common"
	"github.com/milk9111/fpcontroller/locomotion"
)

// StandardGravity is the default downward acceleration in m/s².
const StandardGravity = 9.81

// BoxWorld is a small headless 3D world of static boxes and kinematic
// bodies. It answers the controller's ray queries and steps its bodies.
type BoxWorld struct {
	Gravity mgl64.Vec3

	boxes    []Box
	bodies   []*KinematicBody
	contacts []ContactEvent
}

func NewBoxWorld() *BoxWorld {
	return &BoxWorld{Gravity: common.WorldUp.Mul(-StandardGravity)}
}

// AddBox adds a static box. A box without layers is placed on LayerOther.
func (w *BoxWorld) AddBox(b Box) error {
	b, err := b.validate()
	if err != nil {
		return err
	}
	w.boxes = append(w.boxes, b)
	return nil
}

func (w *BoxWorld) Boxes() []Box {
	return append([]Box(nil), w.boxes...)
}

// Raycast returns the nearest non-trigger box in mask along dir within
// maxDistance. Boxes containing origin are not hit.
func (w *BoxWorld) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask locomotion.LayerMask) (locomotion.RaycastHit, bool) {
	var best locomotion.RaycastHit
	found := false
	if !common.FiniteVec3(origin) || !common.FiniteVec3(dir) || maxDistance <= 0 {
		return best, false
	}
	for _, b := range w.boxes {
		if b.Trigger || b.Layers&mask == 0 {
			continue
		}
		t, n, ok := rayBoxHit(origin, dir, maxDistance, b.Min, b.Max)
		if !ok || (found && t >= best.Distance) {
			continue
		}
		found = true
		best = locomotion.RaycastHit{
			Point:    origin.Add(dir.Mul(t)),
			Normal:   n,
			Distance: t,
			Layer:    b.Layers.Primary(),
		}
	}
	return best, found
}

// NewBody adds a kinematic body centred on pos with the given half extents.
func (w *BoxWorld) NewBody(pos, halfExtents mgl64.Vec3) *KinematicBody {
	b := &KinematicBody{
		pos:      pos,
		half:     halfExtents,
		mass:     1,
		touching: make(map[int]bool),
	}
	b.gravity = newGravitySwitch(func(on bool) {
		if !on {
			b.vel = mgl64.Vec3{}
		}
	})
	w.bodies = append(w.bodies, b)
	return b
}

// Step advances every body by dt and records contact beginnings.
func (w *BoxWorld) Step(dt float64) {
	if !common.Finite(dt) || dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		w.contacts = append(w.contacts, b.step(dt, w.Gravity, w.boxes)...)
	}
}

// DrainContacts returns the contacts recorded since the last call.
func (w *BoxWorld) DrainContacts() []ContactEvent {
	out := w.contacts
	w.contacts = nil
	return out
}

// rayBoxHit is the slab test in three dimensions. It returns the entry
// distance and the normal of the face the ray enters through.
func rayBoxHit(origin, dir mgl64.Vec3, maxDistance float64, lo, hi mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	tmin, tmax := 0.0, maxDistance
	axis, sign := -1, 0.0

	for i := range 3 {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		inv := 1.0 / dir[i]
		t1 := (lo[i] - origin[i]) * inv
		t2 := (hi[i] - origin[i]) * inv
		s := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1
		}
		if t1 > tmin {
			tmin, axis, sign = t1, i, s
		}
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}
	if axis < 0 {
		return 0, mgl64.Vec3{}, false
	}
	var n mgl64.Vec3
	n[axis] = sign
	return tmin, n, true
}
