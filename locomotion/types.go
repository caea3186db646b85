package locomotion

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// Mode is the discrete locomotion mode. Exactly one is active at a time and
// only the controller's transition table changes it.
type Mode uint8

const (
	ModeGrounded Mode = iota
	// ModeAirborne also covers "awaiting ground": after a jump, a fall, or
	// leaving a climb, until the ground probe reports walkable support.
	ModeAirborne
	ModeClimbing
	ModeVaulting
)

var modeNames = [...]string{"grounded", "airborne", "climbing", "vaulting"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Submode selects the speed, acceleration and bob amplitude set.
type Submode uint8

const (
	SubmodeBase Submode = iota
	SubmodeWalk
	SubmodeSprint
)

var submodeNames = [...]string{"base", "walk", "sprint"}

func (s Submode) String() string {
	if int(s) < len(submodeNames) {
		return submodeNames[s]
	}
	return "submode(" + strconv.Itoa(int(s)) + ")"
}

// Layer classifies a surface for probing and contact handling.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerClimbable
	LayerVaultable
	LayerOther
)

var layerNames = [...]string{"none", "climbable", "vaultable", "other"}

func (l Layer) String() string {
	if int(l) < len(layerNames) {
		return layerNames[l]
	}
	return "layer(" + strconv.Itoa(int(l)) + ")"
}

// Mask returns the single-bit mask for l. LayerNone has no bit.
func (l Layer) Mask() LayerMask {
	if l == LayerNone || l > LayerOther {
		return 0
	}
	return 1 << (l - 1)
}

// LayerMask is a set of layers used as a raycast filter and to describe
// the layers of a contacted collider.
type LayerMask uint32

const MaskAll = ^LayerMask(0)

// MaskOf builds a mask holding every given layer.
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= l.Mask()
	}
	return m
}

func (m LayerMask) Has(l Layer) bool {
	bit := l.Mask()
	return bit != 0 && m&bit != 0
}

// Primary returns the most specific layer in m, preferring climbable over
// vaultable over other.
func (m LayerMask) Primary() Layer {
	switch {
	case m.Has(LayerClimbable):
		return LayerClimbable
	case m.Has(LayerVaultable):
		return LayerVaultable
	case m.Has(LayerOther):
		return LayerOther
	}
	return LayerNone
}

// LayerTable resolves raw engine layer numbers into Layer values. It is built
// once from configuration; unknown numbers resolve to LayerOther.
type LayerTable struct {
	raw map[int]Layer
}

func NewLayerTable(climbable, vaultable int) LayerTable {
	return LayerTable{raw: map[int]Layer{
		climbable: LayerClimbable,
		vaultable: LayerVaultable,
	}}
}

func (t LayerTable) Resolve(raw int) Layer {
	if l, ok := t.raw[raw]; ok {
		return l
	}
	return LayerOther
}

// ResolveMask resolves each raw layer number and combines the results.
func (t LayerTable) ResolveMask(raw ...int) LayerMask {
	var m LayerMask
	for _, r := range raw {
		m |= t.Resolve(r).Mask()
	}
	return m
}

// SurfaceReading is the result of one probe. It is produced fresh every
// physics step and not retained beyond the next one.
type SurfaceReading struct {
	Hit         bool
	Point       mgl64.Vec3
	Normal      mgl64.Vec3
	AngleFromUp float64
	Layer       Layer
}

// Walkable reports whether the reading is ground the character can stand on.
func (r SurfaceReading) Walkable(maxGroundAngle float64) bool {
	return r.Hit && r.AngleFromUp <= maxGroundAngle
}

// MotionState is the controller's continuous and discrete movement state.
type MotionState struct {
	Speed float64
	// Direction is right*x + forward*y of the move input; diagonal input is
	// longer than one on purpose.
	Direction mgl64.Vec3
	Submode   Submode
	Moving    bool
	Mode      Mode
	Jumping   bool
}

// OrientationState holds body yaw and camera pitch in degrees. Positive pitch
// looks down.
type OrientationState struct {
	Yaw        float64
	PitchAccum float64
	Pitch      float64
}

type BobState struct {
	Phase        float64
	Offset       float64
	CameraHeight float64
}

// Contact is a discrete collision or trigger notification, delivered once
// per contact beginning.
type Contact struct {
	Layers LayerMask
	Tag    string
}

// Snapshot is a copy of the controller state taken between ticks.
type Snapshot struct {
	Motion      MotionState
	Orientation OrientationState
	Bob         BobState
	Ground      SurfaceReading
	Wall        SurfaceReading
	// GravityEnabled is false when no gravity service is attached.
	GravityEnabled bool
}
