package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/common"
)

// Apply turns the body by look.X and the camera by look.Y for one frame.
func (o OrientationState) Apply(look mgl64.Vec2, t LookTuning, dt float64) OrientationState {
	o.Yaw = math.Mod(o.Yaw+look.X()*t.Sensitivity*dt, 360)
	if o.Yaw < 0 {
		o.Yaw += 360
	}
	o.PitchAccum = o.Pitch - look.Y()*t.Sensitivity*dt
	o.Pitch = common.Clamp(o.PitchAccum, -t.MaxVerticalAngle, t.MaxVerticalAngle)
	return o
}

// BodyRotation is the yaw about world up.
func (o OrientationState) BodyRotation() mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(o.Yaw), common.WorldUp)
}

// CameraRotation is the camera's local pitch. It is never applied to the body.
func (o OrientationState) CameraRotation() mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(o.Pitch), common.WorldRight)
}

// Forward is the level forward axis of the body.
func (o OrientationState) Forward() mgl64.Vec3 {
	return o.BodyRotation().Rotate(common.WorldForward)
}

// Right is the level right axis of the body.
func (o OrientationState) Right() mgl64.Vec3 {
	return common.WorldUp.Cross(o.Forward())
}

// LookDirection is where the camera points, combining yaw and pitch.
func (o OrientationState) LookDirection() mgl64.Vec3 {
	return o.BodyRotation().Mul(o.CameraRotation()).Rotate(common.WorldForward)
}
