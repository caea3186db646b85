package locomotion

import (
	"errors"
	"fmt"

	"github.com/milk9111/fpcontroller/common"
)

var ErrInvalidTuning = errors.New("locomotion: invalid tuning")

// Tuning holds every read-only parameter of a controller.
type Tuning struct {
	Speed   SpeedTuning
	Probe   ProbeTuning
	Jump    JumpTuning
	Climb   ClimbTuning
	Look    LookTuning
	HeadBob HeadBobTuning
	Input   InputTuning
}

type SpeedTuning struct {
	MaxBase            float64
	MaxWalk            float64
	MaxSprint          float64
	BaseAcceleration   float64
	WalkAcceleration   float64
	SprintAcceleration float64
	// IdleDecay is the per-second lerp factor toward zero when not moving.
	IdleDecay float64
	// Threshold snaps residual speed to exactly zero.
	Threshold float64
}

func (s SpeedTuning) Max(sub Submode) float64 {
	switch sub {
	case SubmodeSprint:
		return s.MaxSprint
	case SubmodeWalk:
		return s.MaxWalk
	}
	return s.MaxBase
}

func (s SpeedTuning) Acceleration(sub Submode) float64 {
	switch sub {
	case SubmodeSprint:
		return s.SprintAcceleration
	case SubmodeWalk:
		return s.WalkAcceleration
	}
	return s.BaseAcceleration
}

type ProbeTuning struct {
	GroundOffset   float64
	GroundDistance float64
	WallOffset     float64
	WallDistance   float64
	// MaxGroundAngle is in degrees from world up.
	MaxGroundAngle float64
}

type JumpTuning struct {
	Strength float64
	// VerticalVelocityThreshold is the highest upward speed at which the
	// ground probe may land an airborne character.
	VerticalVelocityThreshold float64
}

type ClimbTuning struct {
	Speed        float64
	PullDistance float64
	// StickDistance and StickOffset seat the body against the wall while
	// climbing.
	StickDistance float64
	StickOffset   float64
	// EdgeTag is the trigger tag that starts a pull while climbing.
	EdgeTag string
}

type LookTuning struct {
	// Sensitivity is in degrees per second per unit of look input.
	Sensitivity      float64
	MaxVerticalAngle float64
}

type HeadBobTuning struct {
	Frequency       float64
	BaseAmplitude   float64
	WalkAmplitude   float64
	SprintAmplitude float64
	RestHeight      float64
}

func (h HeadBobTuning) Amplitude(sub Submode) float64 {
	switch sub {
	case SubmodeSprint:
		return h.SprintAmplitude
	case SubmodeWalk:
		return h.WalkAmplitude
	}
	return h.BaseAmplitude
}

type InputTuning struct {
	MoveDeadZone   float64
	PressThreshold float64
}

// DefaultTuning returns the stock parameter set.
func DefaultTuning() Tuning {
	return Tuning{
		Speed: SpeedTuning{
			MaxBase:            3.0,
			MaxWalk:            1.5,
			MaxSprint:          6.0,
			BaseAcceleration:   1.5,
			WalkAcceleration:   0.5,
			SprintAcceleration: 3.0,
			IdleDecay:          5.0,
			Threshold:          0.001,
		},
		Probe: ProbeTuning{
			GroundOffset:   0.8,
			GroundDistance: 0.5,
			WallOffset:     0.2,
			WallDistance:   1.5,
			MaxGroundAngle: 60,
		},
		Jump: JumpTuning{
			Strength:                  1.0,
			VerticalVelocityThreshold: 0.1,
		},
		Climb: ClimbTuning{
			Speed:         2.0,
			PullDistance:  2.0,
			StickDistance: 0.5,
			StickOffset:   0.1,
			EdgeTag:       "ClimbEdge",
		},
		Look: LookTuning{
			Sensitivity:      100,
			MaxVerticalAngle: 89,
		},
		HeadBob: HeadBobTuning{
			Frequency:       5.0,
			BaseAmplitude:   0.001,
			WalkAmplitude:   0.0005,
			SprintAmplitude: 0.002,
		},
		Input: InputTuning{
			MoveDeadZone:   0.1,
			PressThreshold: 0.5,
		},
	}
}

// Validate reports every out-of-range field, joined into one error.
func (t Tuning) Validate() error {
	var errs []error
	check := func(name string, v float64, ok bool) {
		if !common.Finite(v) || !ok {
			errs = append(errs, fmt.Errorf("%w: %s = %v", ErrInvalidTuning, name, v))
		}
	}
	nonNeg := func(name string, v float64) { check(name, v, v >= 0) }
	positive := func(name string, v float64) { check(name, v, v > 0) }

	nonNeg("speed.max_base", t.Speed.MaxBase)
	nonNeg("speed.max_walk", t.Speed.MaxWalk)
	nonNeg("speed.max_sprint", t.Speed.MaxSprint)
	nonNeg("speed.base_acceleration", t.Speed.BaseAcceleration)
	nonNeg("speed.walk_acceleration", t.Speed.WalkAcceleration)
	nonNeg("speed.sprint_acceleration", t.Speed.SprintAcceleration)
	positive("speed.idle_decay", t.Speed.IdleDecay)
	nonNeg("speed.threshold", t.Speed.Threshold)

	nonNeg("probe.ground_offset", t.Probe.GroundOffset)
	positive("probe.ground_distance", t.Probe.GroundDistance)
	nonNeg("probe.wall_offset", t.Probe.WallOffset)
	positive("probe.wall_distance", t.Probe.WallDistance)
	check("probe.max_ground_angle", t.Probe.MaxGroundAngle, t.Probe.MaxGroundAngle >= 0 && t.Probe.MaxGroundAngle <= 180)

	nonNeg("jump.strength", t.Jump.Strength)
	nonNeg("jump.vertical_velocity_threshold", t.Jump.VerticalVelocityThreshold)

	nonNeg("climb.speed", t.Climb.Speed)
	nonNeg("climb.pull_distance", t.Climb.PullDistance)
	nonNeg("climb.stick_distance", t.Climb.StickDistance)
	nonNeg("climb.stick_offset", t.Climb.StickOffset)

	nonNeg("look.sensitivity", t.Look.Sensitivity)
	check("look.max_vertical_angle", t.Look.MaxVerticalAngle, t.Look.MaxVerticalAngle >= 0 && t.Look.MaxVerticalAngle <= 180)

	nonNeg("head_bob.frequency", t.HeadBob.Frequency)
	nonNeg("head_bob.base_amplitude", t.HeadBob.BaseAmplitude)
	nonNeg("head_bob.walk_amplitude", t.HeadBob.WalkAmplitude)
	nonNeg("head_bob.sprint_amplitude", t.HeadBob.SprintAmplitude)
	check("head_bob.rest_height", t.HeadBob.RestHeight, true)

	nonNeg("input.move_dead_zone", t.Input.MoveDeadZone)
	check("input.press_threshold", t.Input.PressThreshold, t.Input.PressThreshold >= 0 && t.Input.PressThreshold <= 1)

	return errors.Join(errs...)
}
