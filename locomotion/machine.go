package locomotion

import "strconv"

// Trigger is an input event, probe result or contact that may move the
// controller to another mode.
type Trigger uint8

const (
	TriggerJump Trigger = iota
	TriggerGroundContact
	TriggerGroundLost
	TriggerVaultContact
	TriggerClimbContact
	TriggerWallClimbable
	TriggerWallLost
	TriggerLedge
)

var triggerNames = [...]string{
	"jump", "ground_contact", "ground_lost", "vault_contact",
	"climb_contact", "wall_climbable", "wall_lost", "ledge",
}

func (t Trigger) String() string {
	if int(t) < len(triggerNames) {
		return triggerNames[t]
	}
	return "trigger(" + strconv.Itoa(int(t)) + ")"
}

// transitions is the complete table. Pairs not listed are ignored.
var transitions = map[Mode]map[Trigger]Mode{
	ModeGrounded: {
		TriggerJump:       ModeAirborne,
		TriggerGroundLost: ModeAirborne,
	},
	ModeAirborne: {
		TriggerGroundContact: ModeGrounded,
		TriggerVaultContact:  ModeVaulting,
		TriggerClimbContact:  ModeClimbing,
		TriggerWallClimbable: ModeClimbing,
	},
	ModeClimbing: {
		TriggerWallLost: ModeAirborne,
		TriggerLedge:    ModeAirborne,
	},
	ModeVaulting: {
		TriggerGroundContact: ModeGrounded,
	},
}

// NextMode looks up the transition for (from, t).
func NextMode(from Mode, t Trigger) (Mode, bool) {
	to, ok := transitions[from][t]
	return to, ok
}

// modeState holds the entry and exit side effects of one mode.
type modeState interface {
	Enter(c *Controller)
	Exit(c *Controller)
}

// Mode state singletons (no allocation on transitions).
var modeStates = [...]modeState{
	ModeGrounded: groundedState{},
	ModeAirborne: airborneState{},
	ModeClimbing: climbingState{},
	ModeVaulting: vaultingState{},
}

type groundedState struct{}

type airborneState struct{}

type climbingState struct{}

type vaultingState struct{}

func (groundedState) Enter(c *Controller) { c.motion.Jumping = false }
func (groundedState) Exit(c *Controller)  {}

func (airborneState) Enter(c *Controller) {}
func (airborneState) Exit(c *Controller)  {}

func (climbingState) Enter(c *Controller) { c.setGravity(false) }
func (climbingState) Exit(c *Controller)  { c.setGravity(true) }

// Vaulting has no maneuver of its own; only the mode is recorded.
func (vaultingState) Enter(c *Controller) {}
func (vaultingState) Exit(c *Controller)  {}

// fire applies t to the current mode. It returns false when the table has no
// entry, in which case nothing changes.
func (c *Controller) fire(t Trigger) bool {
	from := c.motion.Mode
	to, ok := NextMode(from, t)
	if !ok {
		return false
	}
	modeStates[from].Exit(c)
	c.motion.Mode = to
	modeStates[to].Enter(c)
	c.log.Debug().
		Stringer("from", from).
		Stringer("to", to).
		Stringer("trigger", t).
		Msg("locomotion: transition")
	if c.onTransition != nil {
		c.onTransition(from, to, t)
	}
	return true
}

// contactTrigger resolves a collision contact while airborne. A collider on
// both layers climbs when the character jumped and vaults otherwise.
func contactTrigger(layers LayerMask, jumping bool) (Trigger, bool) {
	climb := layers.Has(LayerClimbable)
	vault := layers.Has(LayerVaultable)
	switch {
	case climb && vault:
		if jumping {
			return TriggerClimbContact, true
		}
		return TriggerVaultContact, true
	case vault:
		return TriggerVaultContact, true
	case climb:
		return TriggerClimbContact, true
	}
	return 0, false
}
