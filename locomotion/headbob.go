package locomotion

import "math"

// Advance moves the bob cycle by one frame. Inactive frames reset the phase
// and snap the camera to its resting height.
func (b BobState) Advance(active bool, speed float64, sub Submode, t HeadBobTuning, dt float64) BobState {
	if !active {
		return BobState{CameraHeight: t.RestHeight}
	}
	b.Phase += speed * t.Frequency * dt
	b.Offset = math.Sin(b.Phase) * t.Amplitude(sub)
	b.CameraHeight = t.RestHeight + b.Offset
	return b
}
