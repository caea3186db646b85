package prefabs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/locomotion"
	"github.com/milk9111/fpcontroller/physics"
)

// CourseSpec describes a test course: static boxes, where the character
// spawns and the size of its body.
type CourseSpec struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Gravity     float64     `yaml:"gravity"`
	Spawn       CourseSpawn `yaml:"spawn"`
	Body        BodySpec    `yaml:"body"`
	Boxes       []BoxSpec   `yaml:"boxes"`
}

type CourseSpawn struct {
	Position [3]float64 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`
}

type BodySpec struct {
	HalfExtents [3]float64 `yaml:"half_extents"`
}

// BoxSpec layers are raw engine layer numbers, resolved through the
// controller's layer table.
type BoxSpec struct {
	Name    string     `yaml:"name"`
	Min     [3]float64 `yaml:"min"`
	Max     [3]float64 `yaml:"max"`
	Layers  []int      `yaml:"layers"`
	Tag     string     `yaml:"tag"`
	Trigger bool       `yaml:"trigger"`
}

func LoadCourseSpec(name string) (*CourseSpec, error) {
	spec, err := LoadSpec[CourseSpec](inSubdir("courses", name, ".yaml"))
	if err != nil {
		return nil, err
	}
	if spec.Gravity == 0 {
		spec.Gravity = physics.StandardGravity
	}
	if spec.Body.HalfExtents == ([3]float64{}) {
		spec.Body.HalfExtents = [3]float64{0.4, 1, 0.4}
	}
	for i, h := range spec.Body.HalfExtents {
		if h <= 0 {
			return nil, fmt.Errorf("%w: course %s: body half extent %d is %v", ErrInvalidSpec, name, i, h)
		}
	}
	return &spec, nil
}

func (c CourseSpec) SpawnPosition() mgl64.Vec3 {
	return mgl64.Vec3(c.Spawn.Position)
}

func (c CourseSpec) HalfExtents() mgl64.Vec3 {
	return mgl64.Vec3(c.Body.HalfExtents)
}

// PhysicsBoxes resolves every box against table.
func (c CourseSpec) PhysicsBoxes(table locomotion.LayerTable) []physics.Box {
	boxes := make([]physics.Box, 0, len(c.Boxes))
	for _, b := range c.Boxes {
		boxes = append(boxes, physics.Box{
			Min:     mgl64.Vec3(b.Min),
			Max:     mgl64.Vec3(b.Max),
			Layers:  table.ResolveMask(b.Layers...),
			Tag:     b.Tag,
			Trigger: b.Trigger,
		})
	}
	return boxes
}

// BoxAdder is a world that static boxes can be added to.
type BoxAdder interface {
	AddBox(physics.Box) error
}

// Build adds the course's boxes to world.
func (c CourseSpec) Build(world BoxAdder, table locomotion.LayerTable) error {
	for i, b := range c.PhysicsBoxes(table) {
		if err := world.AddBox(b); err != nil {
			return fmt.Errorf("prefabs: course %s box %d (%s): %w", c.Name, i, c.Boxes[i].Name, err)
		}
	}
	return nil
}
