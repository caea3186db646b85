package system

import (
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
)

// LocomotionSystem runs each character's per-frame tick.
type LocomotionSystem struct{}

func NewLocomotionSystem() *LocomotionSystem {
	return &LocomotionSystem{}
}

func (s *LocomotionSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.CharacterComponent, func(e ecs.Entity, c *component.Character) {
		if c.Controller != nil {
			c.Controller.Update(dt)
		}
	})
}

// LocomotionPhysicsSystem runs each character's fixed-step tick. It belongs
// after the physics step and contact dispatch.
type LocomotionPhysicsSystem struct{}

func NewLocomotionPhysicsSystem() *LocomotionPhysicsSystem {
	return &LocomotionPhysicsSystem{}
}

func (s *LocomotionPhysicsSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.CharacterComponent, func(e ecs.Entity, c *component.Character) {
		if c.Controller != nil {
			c.Controller.FixedUpdate(dt)
		}
	})
}
