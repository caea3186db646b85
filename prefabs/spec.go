package prefabs

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/milk9111/fpcontroller/locomotion"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := decodeStrict(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// decodeStrict rejects unknown keys so a misspelt tunable fails loudly
// instead of silently keeping its default.
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

type ControllerSpec struct {
	Name    string      `yaml:"name"`
	Layers  LayersSpec  `yaml:"layers"`
	Speed   SpeedSpec   `yaml:"speed"`
	Probe   ProbeSpec   `yaml:"probe"`
	Jump    JumpSpec    `yaml:"jump"`
	Climb   ClimbSpec   `yaml:"climb"`
	Look    LookSpec    `yaml:"look"`
	HeadBob HeadBobSpec `yaml:"head_bob"`
	Input   InputSpec   `yaml:"input"`
}

// LayersSpec names the raw engine layer numbers of the two special layers.
type LayersSpec struct {
	Climbable int `yaml:"climbable"`
	Vaultable int `yaml:"vaultable"`
}

type SpeedSpec struct {
	MaxBase            float64 `yaml:"max_base"`
	MaxWalk            float64 `yaml:"max_walk"`
	MaxSprint          float64 `yaml:"max_sprint"`
	BaseAcceleration   float64 `yaml:"base_acceleration"`
	WalkAcceleration   float64 `yaml:"walk_acceleration"`
	SprintAcceleration float64 `yaml:"sprint_acceleration"`
	IdleDecay          float64 `yaml:"idle_decay"`
	Threshold          float64 `yaml:"threshold"`
}

type ProbeSpec struct {
	GroundOffset   float64 `yaml:"ground_offset"`
	GroundDistance float64 `yaml:"ground_distance"`
	WallOffset     float64 `yaml:"wall_offset"`
	WallDistance   float64 `yaml:"wall_distance"`
	MaxGroundAngle float64 `yaml:"max_ground_angle"`
}

type JumpSpec struct {
	Strength                  float64 `yaml:"strength"`
	VerticalVelocityThreshold float64 `yaml:"vertical_velocity_threshold"`
}

type ClimbSpec struct {
	Speed         float64 `yaml:"speed"`
	PullDistance  float64 `yaml:"pull_distance"`
	StickDistance float64 `yaml:"stick_distance"`
	StickOffset   float64 `yaml:"stick_offset"`
	EdgeTag       string  `yaml:"edge_tag"`
}

type LookSpec struct {
	Sensitivity      float64 `yaml:"sensitivity"`
	MaxVerticalAngle float64 `yaml:"max_vertical_angle"`
}

type HeadBobSpec struct {
	Frequency       float64 `yaml:"frequency"`
	BaseAmplitude   float64 `yaml:"base_amplitude"`
	WalkAmplitude   float64 `yaml:"walk_amplitude"`
	SprintAmplitude float64 `yaml:"sprint_amplitude"`
	RestHeight      float64 `yaml:"rest_height"`
}

type InputSpec struct {
	MoveDeadZone   float64 `yaml:"move_dead_zone"`
	PressThreshold float64 `yaml:"press_threshold"`
}

// DefaultControllerSpec mirrors locomotion.DefaultTuning. Layer numbers
// default to 6 and 7.
func DefaultControllerSpec() ControllerSpec {
	t := locomotion.DefaultTuning()
	return ControllerSpec{
		Name:   "controller",
		Layers: LayersSpec{Climbable: 6, Vaultable: 7},
		Speed: SpeedSpec{
			MaxBase:            t.Speed.MaxBase,
			MaxWalk:            t.Speed.MaxWalk,
			MaxSprint:          t.Speed.MaxSprint,
			BaseAcceleration:   t.Speed.BaseAcceleration,
			WalkAcceleration:   t.Speed.WalkAcceleration,
			SprintAcceleration: t.Speed.SprintAcceleration,
			IdleDecay:          t.Speed.IdleDecay,
			Threshold:          t.Speed.Threshold,
		},
		Probe: ProbeSpec{
			GroundOffset:   t.Probe.GroundOffset,
			GroundDistance: t.Probe.GroundDistance,
			WallOffset:     t.Probe.WallOffset,
			WallDistance:   t.Probe.WallDistance,
			MaxGroundAngle: t.Probe.MaxGroundAngle,
		},
		Jump: JumpSpec{
			Strength:                  t.Jump.Strength,
			VerticalVelocityThreshold: t.Jump.VerticalVelocityThreshold,
		},
		Climb: ClimbSpec{
			Speed:         t.Climb.Speed,
			PullDistance:  t.Climb.PullDistance,
			StickDistance: t.Climb.StickDistance,
			StickOffset:   t.Climb.StickOffset,
			EdgeTag:       t.Climb.EdgeTag,
		},
		Look: LookSpec{
			Sensitivity:      t.Look.Sensitivity,
			MaxVerticalAngle: t.Look.MaxVerticalAngle,
		},
		HeadBob: HeadBobSpec{
			Frequency:       t.HeadBob.Frequency,
			BaseAmplitude:   t.HeadBob.BaseAmplitude,
			WalkAmplitude:   t.HeadBob.WalkAmplitude,
			SprintAmplitude: t.HeadBob.SprintAmplitude,
			RestHeight:      t.HeadBob.RestHeight,
		},
		Input: InputSpec{
			MoveDeadZone:   t.Input.MoveDeadZone,
			PressThreshold: t.Input.PressThreshold,
		},
	}
}

// LoadControllerSpec decodes filename over the defaults, so a file only has
// to list the values it changes.
func LoadControllerSpec(filename string) (*ControllerSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return ParseControllerSpec(filename, data)
}

func ParseControllerSpec(filename string, data []byte) (*ControllerSpec, error) {
	spec := DefaultControllerSpec()
	if err := decodeStrict(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	if spec.Layers.Climbable == spec.Layers.Vaultable {
		return nil, fmt.Errorf("%w: %s: climbable and vaultable share layer %d", ErrInvalidSpec, filename, spec.Layers.Climbable)
	}
	if err := spec.Tuning().Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func (s ControllerSpec) Tuning() locomotion.Tuning {
	return locomotion.Tuning{
		Speed: locomotion.SpeedTuning{
			MaxBase:            s.Speed.MaxBase,
			MaxWalk:            s.Speed.MaxWalk,
			MaxSprint:          s.Speed.MaxSprint,
			BaseAcceleration:   s.Speed.BaseAcceleration,
			WalkAcceleration:   s.Speed.WalkAcceleration,
			SprintAcceleration: s.Speed.SprintAcceleration,
			IdleDecay:          s.Speed.IdleDecay,
			Threshold:          s.Speed.Threshold,
		},
		Probe: locomotion.ProbeTuning{
			GroundOffset:   s.Probe.GroundOffset,
			GroundDistance: s.Probe.GroundDistance,
			WallOffset:     s.Probe.WallOffset,
			WallDistance:   s.Probe.WallDistance,
			MaxGroundAngle: s.Probe.MaxGroundAngle,
		},
		Jump: locomotion.JumpTuning{
			Strength:                  s.Jump.Strength,
			VerticalVelocityThreshold: s.Jump.VerticalVelocityThreshold,
		},
		Climb: locomotion.ClimbTuning{
			Speed:         s.Climb.Speed,
			PullDistance:  s.Climb.PullDistance,
			StickDistance: s.Climb.StickDistance,
			StickOffset:   s.Climb.StickOffset,
			EdgeTag:       s.Climb.EdgeTag,
		},
		Look: locomotion.LookTuning{
			Sensitivity:      s.Look.Sensitivity,
			MaxVerticalAngle: s.Look.MaxVerticalAngle,
		},
		HeadBob: locomotion.HeadBobTuning{
			Frequency:       s.HeadBob.Frequency,
			BaseAmplitude:   s.HeadBob.BaseAmplitude,
			WalkAmplitude:   s.HeadBob.WalkAmplitude,
			SprintAmplitude: s.HeadBob.SprintAmplitude,
			RestHeight:      s.HeadBob.RestHeight,
		},
		Input: locomotion.InputTuning{
			MoveDeadZone:   s.Input.MoveDeadZone,
			PressThreshold: s.Input.PressThreshold,
		},
	}
}

func (s ControllerSpec) LayerTable() locomotion.LayerTable {
	return locomotion.NewLayerTable(s.Layers.Climbable, s.Layers.Vaultable)
}
