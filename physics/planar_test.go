package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/locomotion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planarCourse(t *testing.T) *PlanarWorld {
	t.Helper()
	w := NewPlanarWorld(StandardGravity)
	require.NoError(t, w.AddBox(Box{Min: mgl64.Vec3{-20, -1, 0}, Max: mgl64.Vec3{20, 0, 0}}))
	require.NoError(t, w.AddBox(Box{Min: mgl64.Vec3{3, 0, 0}, Max: mgl64.Vec3{4, 5, 0}, Layers: climbable}))
	require.NoError(t, w.AddBox(Box{Min: mgl64.Vec3{3, 5, 0}, Max: mgl64.Vec3{4, 6, 0}, Tag: "ClimbEdge", Trigger: true}))
	return w
}

func TestPlanarRaycast(t *testing.T) {
	w := planarCourse(t)
	body := w.NewBody(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0.4, 1, 0.4})

	hit, ok := w.Raycast(body.Position(), mgl64.Vec3{0, -1, 0}, 2, locomotion.MaskAll)
	require.True(t, ok, "ray should skip the character and reach the floor")
	assert.InDelta(t, 0, hit.Point.Y(), 1e-6)
	assert.InDelta(t, 1, hit.Normal.Y(), 1e-6)
	assert.InDelta(t, 1, hit.Distance, 1e-6)
	assert.Equal(t, locomotion.LayerOther, hit.Layer)

	hit, ok = w.Raycast(mgl64.Vec3{2, 1, 0}, mgl64.Vec3{1, 0, 0}, 1.5, climbable)
	require.True(t, ok)
	assert.InDelta(t, 3, hit.Point.X(), 1e-6)
	assert.InDelta(t, -1, hit.Normal.X(), 1e-6)
	assert.Equal(t, locomotion.LayerClimbable, hit.Layer)

	_, ok = w.Raycast(mgl64.Vec3{2, 1, 0}, mgl64.Vec3{1, 0, 0}, 1.5, other)
	assert.False(t, ok)

	_, ok = w.Raycast(mgl64.Vec3{2, 5.5, 0}, mgl64.Vec3{1, 0, 0}, 3, locomotion.MaskAll)
	assert.False(t, ok, "sensors are not hit")

	_, ok = w.Raycast(mgl64.Vec3{2, 1, 0}, mgl64.Vec3{0, 0, 1}, 3, locomotion.MaskAll)
	assert.False(t, ok, "out-of-plane rays never hit")
}

func TestPlanarBodyFallsAndLands(t *testing.T) {
	w := planarCourse(t)
	body := w.NewBody(mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0.4, 1, 0.4})

	var contacts []ContactEvent
	for range 120 {
		w.Step(1.0 / 60)
		contacts = append(contacts, w.DrainContacts()...)
	}
	assert.InDelta(t, 1, body.Position().Y(), 0.15)
	assert.InDelta(t, 0, body.Velocity().Y(), 0.5)
	require.NotEmpty(t, contacts)
	assert.Equal(t, body, contacts[0].Body)
	assert.False(t, contacts[0].Trigger)
}

func TestPlanarBodyGravityToggle(t *testing.T) {
	w := planarCourse(t)
	body := w.NewBody(mgl64.Vec3{-5, 10, 0}, mgl64.Vec3{0.4, 1, 0.4})

	body.Gravity().Disable()
	for range 30 {
		w.Step(1.0 / 60)
	}
	assert.InDelta(t, 10, body.Position().Y(), 1e-9)

	body.MovePosition(mgl64.Vec3{1, 0.5, 0})
	w.Step(1.0 / 60)
	assert.InDelta(t, -4, body.Position().X(), 1e-9)
	assert.InDelta(t, 10.5, body.Position().Y(), 1e-9)

	body.Gravity().Enable()
	for range 30 {
		w.Step(1.0 / 60)
	}
	assert.Less(t, body.Position().Y(), 10.5)
}

func TestPlanarBodyTeleport(t *testing.T) {
	w := NewPlanarWorld(StandardGravity)
	b := w.NewBody(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{0.5, 1, 0.5})
	b.AddImpulse(mgl64.Vec3{3, 0, 0})

	b.Teleport(mgl64.Vec3{4, 6, 1})
	assert.Equal(t, mgl64.Vec3{4, 6, 1}, b.Position())
	assert.Equal(t, mgl64.Vec3{}, b.Velocity())
}
