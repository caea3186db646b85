package system

import (
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/rs/zerolog"
)

// NewCharacterScheduler wires the standard character pipeline. Each fixed
// step runs physics, then contact dispatch, then the locomotion physics
// tick. Each frame polls input, runs the locomotion frame tick and syncs
// transforms. Extra frame systems, such as a renderer, run last.
func NewCharacterScheduler(step float64, world Stepper, log zerolog.Logger, extra ...ecs.System) *ecs.Scheduler {
	s := ecs.NewScheduler(step)
	s.AddFixed(
		NewPhysicsSystem(world),
		NewContactSystem(log),
		NewLocomotionPhysicsSystem(),
	)
	s.AddFrame(
		NewInputSystem(log),
		NewLocomotionSystem(),
		NewTransformSyncSystem(),
	)
	s.AddFrame(extra...)
	return s
}
