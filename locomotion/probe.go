package locomotion

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/common"
)

var ErrDegenerateProbe = errors.New("locomotion: degenerate probe")

// wallMask filters the wall probe to surfaces the character can climb or vault.
var wallMask = MaskOf(LayerClimbable, LayerVaultable)

// SurfaceProbe casts the ground and wall rays. It only reads from the world.
type SurfaceProbe struct {
	World  PhysicsWorld
	Tuning ProbeTuning
}

// Ground casts straight down from a point GroundOffset below pos.
func (p SurfaceProbe) Ground(pos mgl64.Vec3) (SurfaceReading, error) {
	origin := pos.Sub(common.WorldUp.Mul(p.Tuning.GroundOffset))
	return p.cast(origin, common.WorldUp.Mul(-1), p.Tuning.GroundDistance, MaskAll)
}

// Wall casts along forward from a point WallOffset in front of pos, against
// climbable and vaultable surfaces only.
func (p SurfaceProbe) Wall(pos, forward mgl64.Vec3) (SurfaceReading, error) {
	origin := pos.Add(forward.Mul(p.Tuning.WallOffset))
	return p.cast(origin, forward, p.Tuning.WallDistance, wallMask)
}

func (p SurfaceProbe) cast(origin, dir mgl64.Vec3, dist float64, mask LayerMask) (SurfaceReading, error) {
	if p.World == nil {
		return SurfaceReading{}, fmt.Errorf("%w: no physics world", ErrDegenerateProbe)
	}
	if !common.FiniteVec3(origin) || !common.FiniteVec3(dir) {
		return SurfaceReading{}, fmt.Errorf("%w: non-finite ray %v -> %v", ErrDegenerateProbe, origin, dir)
	}
	if !common.Finite(dist) || dist <= 0 {
		return SurfaceReading{}, fmt.Errorf("%w: distance %v", ErrDegenerateProbe, dist)
	}
	l := dir.Len()
	if l < 1e-9 {
		return SurfaceReading{}, fmt.Errorf("%w: zero-length direction", ErrDegenerateProbe)
	}

	hit, ok := p.World.Raycast(origin, dir.Mul(1/l), dist, mask)
	if !ok {
		return SurfaceReading{}, nil
	}
	return SurfaceReading{
		Hit:         true,
		Point:       hit.Point,
		Normal:      hit.Normal,
		AngleFromUp: common.AngleBetween(hit.Normal, common.WorldUp),
		Layer:       hit.Layer,
	}, nil
}
