package ecs

import "math"

// DefaultMaxSteps caps the fixed steps run for one frame so a long stall
// does not snowball.
const DefaultMaxSteps = 5

// Clock splits variable frame time into fixed physics steps.
type Clock struct {
	Step     float64
	MaxSteps int

	acc float64
}

func NewClock(step float64) *Clock {
	return &Clock{Step: step, MaxSteps: DefaultMaxSteps}
}

// Advance adds frame time and returns how many fixed steps are due. Time
// beyond MaxSteps is discarded.
func (c *Clock) Advance(dt float64) int {
	if c.Step <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return 0
	}
	c.acc += dt
	n := int(c.acc / c.Step)
	if c.MaxSteps > 0 && n > c.MaxSteps {
		n = c.MaxSteps
		c.acc = 0
		return n
	}
	c.acc -= float64(n) * c.Step
	return n
}

// Alpha is the fraction of a step left in the accumulator, for
// interpolating between physics states.
func (c *Clock) Alpha() float64 {
	if c.Step <= 0 {
		return 0
	}
	return c.acc / c.Step
}
