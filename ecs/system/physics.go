package system

import (
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/physics"
)

// Stepper is a physics world the host advances once per fixed step.
// physics.BoxWorld and physics.PlanarWorld both qualify.
type Stepper interface {
	Step(dt float64)
	DrainContacts() []physics.ContactEvent
}

// PhysicsSystem steps the world and queues its contact beginnings as
// ecs.EventContact events.
type PhysicsSystem struct {
	world Stepper
}

func NewPhysicsSystem(world Stepper) *PhysicsSystem {
	return &PhysicsSystem{world: world}
}

func (p *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if w == nil || p.world == nil {
		return
	}
	p.world.Step(dt)
	for _, ev := range p.world.DrainContacts() {
		w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: ev})
	}
}
