package locomotion

import "github.com/milk9111/fpcontroller/common"

// pull lifts the body over a ledge: up by PullDistance, then forward by the
// same distance to clear the edge. The controller leaves Climbing and waits
// for the ground probe. The pull ends the jump, so the wall just climbed
// cannot start another climb before the move is applied.
func (c *Controller) pull() {
	d := c.tuning.Climb.PullDistance
	c.body.MovePosition(common.WorldUp.Mul(d))
	c.body.MovePosition(c.orient.Forward().Mul(d))
	c.motion.Jumping = false
	c.fire(TriggerLedge)
}

// climb moves along the wall with right/up input and re-seats the body
// against the climbable surface in front of it.
func (c *Controller) climb(x, y, dt float64) {
	right, forward := c.orient.Right(), c.orient.Forward()
	delta := right.Mul(x).Add(common.WorldUp.Mul(y)).Mul(c.tuning.Climb.Speed * dt)
	if delta.Len() > 0 {
		c.body.MovePosition(delta)
	}

	if c.tuning.Climb.StickDistance <= 0 {
		return
	}
	origin := c.body.Position()
	hit, ok := c.world.Raycast(origin, forward, c.tuning.Climb.StickDistance, LayerClimbable.Mask())
	if !ok {
		return
	}
	target := hit.Point.Sub(forward.Mul(c.tuning.Climb.StickOffset))
	if seat := target.Sub(origin); seat.Len() > 0 {
		c.body.MovePosition(seat)
	}
}
