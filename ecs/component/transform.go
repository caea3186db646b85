package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is the rendered pose of a character, copied from its body and
// controller after each frame.
type Transform struct {
	Position     mgl64.Vec3
	Yaw          float64
	Pitch        float64
	CameraHeight float64
}

var TransformComponent = NewComponentKind[Transform]("transform")
