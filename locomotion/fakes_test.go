package locomotion

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

type fakeInput struct {
	vectors map[Channel]mgl64.Vec2
	scalars map[Channel]float64
	enabled map[Channel]bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		vectors: map[Channel]mgl64.Vec2{},
		scalars: map[Channel]float64{},
		enabled: map[Channel]bool{},
	}
}

func (f *fakeInput) Vector(ch Channel) mgl64.Vec2 {
	if !f.enabled[ch] {
		return mgl64.Vec2{}
	}
	return f.vectors[ch]
}

func (f *fakeInput) Scalar(ch Channel) float64 {
	if !f.enabled[ch] {
		return 0
	}
	return f.scalars[ch]
}

func (f *fakeInput) Enable(chs ...Channel) {
	for _, ch := range chs {
		f.enabled[ch] = true
	}
}

func (f *fakeInput) Disable(chs ...Channel) {
	for _, ch := range chs {
		f.enabled[ch] = false
	}
}

// fakeWorld answers downward rays with ground and every other ray with wall.
type fakeWorld struct {
	ground *RaycastHit
	wall   *RaycastHit
	casts  int
}

func (w *fakeWorld) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (RaycastHit, bool) {
	w.casts++
	hit := w.wall
	if dir.Y() < -0.5 {
		hit = w.ground
	}
	if hit == nil || hit.Distance > maxDistance || !mask.Has(hit.Layer) {
		return RaycastHit{}, false
	}
	return *hit, true
}

func flatGround() *RaycastHit {
	return &RaycastHit{Point: mgl64.Vec3{0, -1, 0}, Normal: mgl64.Vec3{0, 1, 0}, Distance: 0.2, Layer: LayerOther}
}

func wallAhead(layer Layer) *RaycastHit {
	return &RaycastHit{Point: mgl64.Vec3{0, 0, 0.6}, Normal: mgl64.Vec3{0, 0, -1}, Distance: 0.4, Layer: layer}
}

type fakeBody struct {
	pos      mgl64.Vec3
	vel      mgl64.Vec3
	moves    []mgl64.Vec3
	impulses []mgl64.Vec3
}

func (b *fakeBody) Position() mgl64.Vec3 { return b.pos }
func (b *fakeBody) Velocity() mgl64.Vec3 { return b.vel }

func (b *fakeBody) MovePosition(delta mgl64.Vec3) {
	b.moves = append(b.moves, delta)
	b.pos = b.pos.Add(delta)
}

func (b *fakeBody) AddImpulse(impulse mgl64.Vec3) {
	b.impulses = append(b.impulses, impulse)
}

type fakeGravity struct {
	enabled  bool
	enables  int
	disables int
}

func (g *fakeGravity) Enable()         { g.enabled = true; g.enables++ }
func (g *fakeGravity) Disable()        { g.enabled = false; g.disables++ }
func (g *fakeGravity) IsEnabled() bool { return g.enabled }

type rig struct {
	ctrl    *Controller
	input   *fakeInput
	world   *fakeWorld
	body    *fakeBody
	gravity *fakeGravity
}

func newRig(t *testing.T, opts ...Option) *rig {
	t.Helper()
	r := &rig{
		input:   newFakeInput(),
		world:   &fakeWorld{},
		body:    &fakeBody{},
		gravity: &fakeGravity{enabled: true},
	}
	ctrl, err := NewController(DefaultTuning(), Collaborators{
		Input:   r.input,
		World:   r.world,
		Body:    r.body,
		Gravity: r.gravity,
	}, opts...)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	r.ctrl = ctrl
	return r
}

// land puts the character on flat ground.
func (r *rig) land(t *testing.T) {
	t.Helper()
	r.world.ground = flatGround()
	r.ctrl.FixedUpdate(0.02)
	if r.ctrl.Mode() != ModeGrounded {
		t.Fatalf("expected grounded after landing, got %s", r.ctrl.Mode())
	}
}

// jump presses jump for one frame from the ground and leaves the ground.
func (r *rig) jump(t *testing.T) {
	t.Helper()
	r.input.scalars[ChannelJump] = 1
	r.ctrl.Update(0.016)
	r.input.scalars[ChannelJump] = 0
	r.world.ground = nil
}

func assertVec3(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}
