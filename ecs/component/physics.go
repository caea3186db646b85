package component

import "github.com/milk9111/fpcontroller/locomotion"

// PhysicsBody links an entity to its body in whichever physics world the
// host runs. Gravity may be nil.
type PhysicsBody struct {
	Body    locomotion.Body
	Gravity locomotion.GravityService
}

var PhysicsBodyComponent = NewComponentKind[PhysicsBody]("physics body")
