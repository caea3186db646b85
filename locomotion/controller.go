package locomotion

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/common"
	"github.com/rs/zerolog"
)

var (
	ErrNilInput = errors.New("locomotion: input source is nil")
	ErrNilWorld = errors.New("locomotion: physics world is nil")
	ErrNilBody  = errors.New("locomotion: body is nil")
)

// TransitionFunc observes mode changes after they are applied.
type TransitionFunc func(from, to Mode, t Trigger)

// Controller drives one character. It is owned by a single goroutine: the
// host calls Update once per rendered frame and FixedUpdate once per physics
// step, and delivers contacts between them.
type Controller struct {
	tuning  Tuning
	input   InputSource
	world   PhysicsWorld
	body    Body
	gravity GravityService

	log          zerolog.Logger
	onTransition TransitionFunc
	spawnYaw     float64

	enabled bool
	motion  MotionState
	orient  OrientationState
	bob     BobState
	ground  SurfaceReading
	wall    SurfaceReading

	// reported holds per-tick diagnostics already logged, so a persistent
	// fault is logged once rather than every tick.
	reported map[string]bool
}

type Option func(*Controller)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithYaw sets the body yaw, in degrees, used at spawn and on Reset.
func WithYaw(deg float64) Option {
	return func(c *Controller) { c.spawnYaw = deg }
}

func WithTransitionHook(fn TransitionFunc) Option {
	return func(c *Controller) { c.onTransition = fn }
}

// NewController validates the tuning and collaborators, resets the character
// to its spawn state and enables its input channels.
func NewController(t Tuning, deps Collaborators, opts ...Option) (*Controller, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	switch {
	case deps.Input == nil:
		return nil, ErrNilInput
	case deps.World == nil:
		return nil, ErrNilWorld
	case deps.Body == nil:
		return nil, ErrNilBody
	}

	c := &Controller{
		tuning:   t,
		input:    deps.Input,
		world:    deps.World,
		body:     deps.Body,
		gravity:  deps.Gravity,
		log:      zerolog.Nop(),
		reported: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.gravity == nil {
		c.log.Warn().Msg("locomotion: gravity service not assigned")
	} else {
		c.log.Debug().Bool("enabled", c.gravity.IsEnabled()).Msg("locomotion: gravity service attached")
	}

	c.Reset()
	c.Enable()
	return c, nil
}

// Reset returns the character to its spawn state. A character reset while
// climbing gets its gravity back.
func (c *Controller) Reset() {
	if c.motion.Mode == ModeClimbing {
		modeStates[ModeClimbing].Exit(c)
	}
	c.motion = MotionState{Mode: ModeAirborne}
	c.orient = OrientationState{Yaw: c.spawnYaw}
	c.bob = BobState{CameraHeight: c.tuning.HeadBob.RestHeight}
	c.ground = SurfaceReading{}
	c.wall = SurfaceReading{}
	clear(c.reported)
}

func (c *Controller) Enable() {
	c.input.Enable(AllChannels...)
	c.enabled = true
}

// Disable turns off the input channels and stops both ticks.
func (c *Controller) Disable() {
	c.input.Disable(AllChannels...)
	c.enabled = false
}

func (c *Controller) Enabled() bool { return c.enabled }

// SetTuning swaps the parameters between frames. Speed and pitch fall back
// inside the new limits on the next Update.
func (c *Controller) SetTuning(t Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.tuning = t
	return nil
}

func (c *Controller) Tuning() Tuning { return c.tuning }

func (c *Controller) Mode() Mode { return c.motion.Mode }

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Motion:         c.motion,
		Orientation:    c.orient,
		Bob:            c.bob,
		Ground:         c.ground,
		Wall:           c.wall,
		GravityEnabled: c.gravity != nil && c.gravity.IsEnabled(),
	}
}

// Update runs the per-frame cadence: movement, look, jump, head bob.
func (c *Controller) Update(dt float64) {
	if !c.enabled || !c.validDelta(dt) {
		return
	}
	c.updateMovement(dt)
	c.updateLook(dt)
	c.updateJump()
	c.updateHeadBob(dt)
}

// FixedUpdate runs the physics cadence: probes first, then the transitions
// they drive.
func (c *Controller) FixedUpdate(dt float64) {
	if !c.enabled || !c.validDelta(dt) {
		return
	}
	probe := SurfaceProbe{World: c.world, Tuning: c.tuning.Probe}
	pos := c.body.Position()

	ground, err := probe.Ground(pos)
	if err != nil {
		c.report("ground_probe", err)
	}
	c.ground = ground

	wall, err := probe.Wall(pos, c.orient.Forward())
	if err != nil {
		c.report("wall_probe", err)
	}
	c.wall = wall

	c.resolveGround()
	c.resolveWall()
}

// OnCollisionEnter handles a collision beginning. Only airborne characters
// react.
func (c *Controller) OnCollisionEnter(ct Contact) {
	if !c.enabled || c.motion.Mode != ModeAirborne {
		return
	}
	if t, ok := contactTrigger(ct.Layers, c.motion.Jumping); ok {
		c.fire(t)
	}
}

// OnTriggerEnter handles a trigger volume beginning. The climb edge trigger
// pulls a climbing character over the ledge.
func (c *Controller) OnTriggerEnter(ct Contact) {
	if !c.enabled || c.motion.Mode != ModeClimbing {
		return
	}
	if ct.Tag != "" && ct.Tag == c.tuning.Climb.EdgeTag {
		c.pull()
	}
}

func (c *Controller) updateMovement(dt float64) {
	move := c.readVector(ChannelMove)
	c.motion.Moving = move.Len() > c.tuning.Input.MoveDeadZone
	c.motion.Submode = SelectSubmode(c.pressed(ChannelSprint), c.pressed(ChannelWalk))
	c.motion.Direction = MoveDirection(move, c.orient.Right(), c.orient.Forward())
	c.motion.Speed = c.tuning.Speed.Step(c.motion.Speed, c.motion.Moving, c.motion.Submode, dt)

	if c.motion.Mode == ModeClimbing {
		c.climb(move.X(), move.Y(), dt)
		return
	}
	if delta := c.motion.Direction.Mul(c.motion.Speed * dt); delta.Len() > 0 {
		c.body.MovePosition(delta)
	}
}

func (c *Controller) updateLook(dt float64) {
	c.orient = c.orient.Apply(c.readVector(ChannelLook), c.tuning.Look, dt)
}

func (c *Controller) updateJump() {
	if c.motion.Mode != ModeGrounded || !c.pressed(ChannelJump) {
		return
	}
	if c.fire(TriggerJump) {
		c.body.AddImpulse(common.WorldUp.Mul(c.tuning.Jump.Strength))
		c.motion.Jumping = true
	}
}

func (c *Controller) updateHeadBob(dt float64) {
	active := c.motion.Moving && c.motion.Mode != ModeAirborne
	c.bob = c.bob.Advance(active, c.motion.Speed, c.motion.Submode, c.tuning.HeadBob, dt)
}

func (c *Controller) resolveGround() {
	walkable := c.ground.Walkable(c.tuning.Probe.MaxGroundAngle)
	switch c.motion.Mode {
	case ModeGrounded:
		if !walkable {
			c.fire(TriggerGroundLost)
		}
	case ModeAirborne, ModeVaulting:
		if walkable && c.body.Velocity().Dot(common.WorldUp) <= c.tuning.Jump.VerticalVelocityThreshold {
			c.fire(TriggerGroundContact)
		}
	}
}

func (c *Controller) resolveWall() {
	switch c.motion.Mode {
	case ModeAirborne:
		if c.wall.Hit && c.wall.Layer == LayerClimbable && c.motion.Jumping {
			c.fire(TriggerWallClimbable)
		}
	case ModeClimbing:
		switch {
		case !c.wall.Hit:
			c.fire(TriggerWallLost)
		case c.wall.Layer != LayerClimbable:
			c.pull()
		}
	}
}

func (c *Controller) setGravity(enabled bool) {
	if c.gravity == nil {
		c.log.Warn().Bool("enable", enabled).Msg("locomotion: gravity service not assigned, toggle skipped")
		return
	}
	if enabled {
		c.gravity.Enable()
	} else {
		c.gravity.Disable()
	}
	c.log.Debug().Bool("enabled", c.gravity.IsEnabled()).Msg("locomotion: gravity")
}

func (c *Controller) readVector(ch Channel) mgl64.Vec2 {
	v := c.input.Vector(ch)
	if !common.FiniteVec2(v) {
		c.report("input_"+string(ch), errors.New("locomotion: non-finite input sample dropped"))
		return mgl64.Vec2{}
	}
	return v
}

func (c *Controller) pressed(ch Channel) bool {
	v := c.input.Scalar(ch)
	if !common.Finite(v) {
		c.report("input_"+string(ch), errors.New("locomotion: non-finite input sample dropped"))
		return false
	}
	return v > c.tuning.Input.PressThreshold
}

func (c *Controller) validDelta(dt float64) bool {
	if common.Finite(dt) && dt > 0 {
		return true
	}
	c.report("delta", errors.New("locomotion: non-positive or non-finite delta skipped"))
	return false
}

// report logs err once per key until the next Reset.
func (c *Controller) report(key string, err error) {
	if c.reported[key] {
		return
	}
	c.reported[key] = true
	c.log.Warn().Err(err).Str("source", key).Msg("locomotion: diagnostic")
}
