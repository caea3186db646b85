package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// World axes. Y is up; yaw 0 faces +Z.
var (
	WorldUp      = mgl64.Vec3{0, 1, 0}
	WorldForward = mgl64.Vec3{0, 0, 1}
	WorldRight   = mgl64.Vec3{1, 0, 0}
)

// Lerp interpolates from a to b. t is clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + Clamp01(t)*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func FiniteVec2(v mgl64.Vec2) bool {
	return Finite(v[0]) && Finite(v[1])
}

func FiniteVec3(v mgl64.Vec3) bool {
	return Finite(v[0]) && Finite(v[1]) && Finite(v[2])
}

// AngleBetween returns the unsigned angle between a and b in degrees.
// Zero-length input yields 0.
func AngleBetween(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := Clamp(a.Dot(b)/(la*lb), -1, 1)
	return mgl64.RadToDeg(math.Acos(cos))
}
