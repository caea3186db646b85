package locomotion

import "github.com/go-gl/mathgl/mgl64"

// Channel names an input action.
type Channel string

const (
	ChannelMove   Channel = "Move"
	ChannelLook   Channel = "Look"
	ChannelSprint Channel = "Sprint"
	ChannelWalk   Channel = "Walk"
	ChannelJump   Channel = "Jump"
)

// AllChannels lists every channel the controller reads.
var AllChannels = []Channel{ChannelMove, ChannelLook, ChannelSprint, ChannelWalk, ChannelJump}

// InputSource exposes already-normalized input. Disabled channels read zero.
type InputSource interface {
	Vector(ch Channel) mgl64.Vec2
	Scalar(ch Channel) float64
	Enable(chs ...Channel)
	Disable(chs ...Channel)
}

type RaycastHit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Layer    Layer
}

// PhysicsWorld answers ray queries. dir is a unit vector; only colliders
// whose layer is in mask are considered.
type PhysicsWorld interface {
	Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (RaycastHit, bool)
}

// Body is the character's rigid body. MovePosition requests a displacement
// that the physics engine applies on its next step; deltas accumulate.
type Body interface {
	Position() mgl64.Vec3
	Velocity() mgl64.Vec3
	MovePosition(delta mgl64.Vec3)
	AddImpulse(impulse mgl64.Vec3)
}

// GravityService toggles gravity for the character's body.
type GravityService interface {
	Enable()
	Disable()
	IsEnabled() bool
}

// Collaborators groups the host services a Controller depends on. Gravity is
// optional; the rest are required.
type Collaborators struct {
	Input   InputSource
	World   PhysicsWorld
	Body    Body
	Gravity GravityService
}
