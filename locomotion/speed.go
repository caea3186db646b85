package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/common"
)

// SelectSubmode picks the submode by priority: sprint, then walk, then base.
func SelectSubmode(sprint, walk bool) Submode {
	if sprint {
		return SubmodeSprint
	}
	if walk {
		return SubmodeWalk
	}
	return SubmodeBase
}

// Step advances speed by one frame. Moving accelerates toward the submode's
// cap; idle decays toward zero by lerp and is capped at MaxBase.
func (s SpeedTuning) Step(speed float64, moving bool, sub Submode, dt float64) float64 {
	if !common.Finite(speed) {
		speed = 0
	}
	if moving {
		speed += s.Acceleration(sub) * dt
		speed = common.Clamp(speed, 0, s.Max(sub))
	} else {
		speed = common.Lerp(speed, 0, s.IdleDecay*dt)
		speed = common.Clamp(speed, 0, s.MaxBase)
	}
	if speed < s.Threshold {
		speed = 0
	}
	return speed
}

// MoveDirection projects move input onto the body's basis. The result is not
// renormalized.
func MoveDirection(move mgl64.Vec2, right, forward mgl64.Vec3) mgl64.Vec3 {
	return right.Mul(move.X()).Add(forward.Mul(move.Y()))
}
