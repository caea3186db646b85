package system

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
	"github.com/milk9111/fpcontroller/ecs/entity"
	"github.com/milk9111/fpcontroller/input"
	"github.com/milk9111/fpcontroller/locomotion"
	"github.com/milk9111/fpcontroller/physics"
	"github.com/milk9111/fpcontroller/prefabs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = 0.02

type transition struct {
	from, to locomotion.Mode
	trigger  locomotion.Trigger
}

type scene struct {
	world     *ecs.World
	boxes     *physics.BoxWorld
	sched     *ecs.Scheduler
	input     *input.State
	character ecs.Entity
	trace     []transition
}

func newScene(t *testing.T, course *prefabs.CourseSpec) *scene {
	t.Helper()
	s := &scene{world: ecs.NewWorld(), boxes: physics.NewBoxWorld(), input: input.NewState()}
	ctrl := prefabs.DefaultControllerSpec()
	require.NoError(t, course.Build(s.boxes, ctrl.LayerTable()))

	e, err := entity.NewCharacter(s.world, entity.CharacterConfig{
		Name:       "test",
		Controller: &ctrl,
		Course:     course,
		World:      s.boxes,
		Spawn:      entity.BoxSpawner(s.boxes),
		Input:      s.input,
		Player:     true,
		OnTransition: func(from, to locomotion.Mode, tr locomotion.Trigger) {
			s.trace = append(s.trace, transition{from, to, tr})
		},
	})
	require.NoError(t, err)
	s.character = e
	s.sched = NewCharacterScheduler(step, s.boxes, zerolog.Nop())
	return s
}

func (s *scene) controller(t *testing.T) *locomotion.Controller {
	t.Helper()
	ch, ok := ecs.Get(s.world, s.character, component.CharacterComponent)
	require.True(t, ok)
	return ch.Controller
}

func (s *scene) transform(t *testing.T) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(s.world, s.character, component.TransformComponent)
	require.True(t, ok)
	return tr
}

func flatCourse() *prefabs.CourseSpec {
	return &prefabs.CourseSpec{
		Name:  "flat",
		Spawn: prefabs.CourseSpawn{Position: [3]float64{0, 1, 0}},
		Body:  prefabs.BodySpec{HalfExtents: [3]float64{0.4, 1, 0.4}},
		Boxes: []prefabs.BoxSpec{{Name: "floor", Min: [3]float64{-10, -1, -10}, Max: [3]float64{10, 0, 20}}},
	}
}

func TestCharacterWalksForward(t *testing.T) {
	s := newScene(t, flatCourse())
	s.input.SetVector(locomotion.ChannelMove, mgl64.Vec2{0, 1})

	for range 100 {
		s.sched.Tick(s.world, step)
	}

	ctrl := s.controller(t)
	assert.Equal(t, locomotion.ModeGrounded, ctrl.Mode())
	tr := s.transform(t)
	assert.Greater(t, tr.Position.Z(), 1.0)
	assert.InDelta(t, 1.0, tr.Position.Y(), 1e-6)

	pb, ok := ecs.Get(s.world, s.character, component.PhysicsBodyComponent)
	require.True(t, ok)
	assert.Equal(t, pb.Body.Position(), tr.Position)
	require.NotEmpty(t, s.trace)
	assert.Equal(t, transition{locomotion.ModeAirborne, locomotion.ModeGrounded, locomotion.TriggerGroundContact}, s.trace[0])
}

func TestCharacterClimbsOntoBlock(t *testing.T) {
	course, err := prefabs.LoadCourseSpec("wall")
	require.NoError(t, err)
	course.Spawn.Position = [3]float64{0, 1, 3.55}
	s := newScene(t, course)
	ctrl := s.controller(t)

	s.input.SetVector(locomotion.ChannelMove, mgl64.Vec2{0, 1})
	s.input.SetButton(locomotion.ChannelJump, true)
	for i := 0; i < 10 && ctrl.Mode() != locomotion.ModeClimbing; i++ {
		s.sched.Tick(s.world, step)
	}
	require.Equal(t, locomotion.ModeClimbing, ctrl.Mode())
	s.input.SetButton(locomotion.ChannelJump, false)

	pb, _ := ecs.Get(s.world, s.character, component.PhysicsBodyComponent)
	assert.False(t, pb.Gravity.IsEnabled())

	onTop := false
	for range 100 {
		s.sched.Tick(s.world, step)
		if ctrl.Mode() == locomotion.ModeGrounded && pb.Body.Position().Y() > 3.5 {
			onTop = true
			break
		}
	}
	require.True(t, onTop, "never landed on the block, trace %v", s.trace)
	assert.True(t, pb.Gravity.IsEnabled())
	assert.Greater(t, pb.Body.Position().Z(), 5.0)

	var triggers []locomotion.Trigger
	for _, tr := range s.trace {
		triggers = append(triggers, tr.trigger)
	}
	assert.Contains(t, triggers, locomotion.TriggerWallClimbable)
	assert.Contains(t, triggers, locomotion.TriggerLedge)
}

type stubStepper struct {
	steps  int
	events []physics.ContactEvent
}

func (s *stubStepper) Step(dt float64) { s.steps++ }

func (s *stubStepper) DrainContacts() []physics.ContactEvent {
	out := s.events
	s.events = nil
	return out
}

func TestPhysicsSystemQueuesContacts(t *testing.T) {
	w := ecs.NewWorld()
	stepper := &stubStepper{events: []physics.ContactEvent{{Trigger: true}, {}}}
	NewPhysicsSystem(stepper).Update(w, step)

	assert.Equal(t, 1, stepper.steps)
	events := w.Events().Drain()
	require.Len(t, events, 2)
	for _, evt := range events {
		assert.Equal(t, ecs.EventContact, evt.Type)
	}
}

func TestContactSystemRoutesToOwner(t *testing.T) {
	boxes := physics.NewBoxWorld()
	w := ecs.NewWorld()
	ctrlSpec := prefabs.DefaultControllerSpec()

	spawn := func(name string, x float64) *locomotion.Controller {
		course := &prefabs.CourseSpec{
			Spawn: prefabs.CourseSpawn{Position: [3]float64{x, 10, 0}},
			Body:  prefabs.BodySpec{HalfExtents: [3]float64{0.4, 1, 0.4}},
		}
		e, err := entity.NewCharacter(w, entity.CharacterConfig{
			Name: name, Controller: &ctrlSpec, Course: course,
			World: boxes, Spawn: entity.BoxSpawner(boxes), Input: input.NewState(),
		})
		require.NoError(t, err)
		ch, _ := ecs.Get(w, e, component.CharacterComponent)
		return ch.Controller
	}
	a := spawn("a", 0)
	b := spawn("b", 5)

	var bodyA locomotion.Body
	ecs.ForEach2(w, component.CharacterComponent, component.PhysicsBodyComponent, func(e ecs.Entity, ch *component.Character, pb *component.PhysicsBody) {
		if ch.Controller == a {
			bodyA = pb.Body
		}
	})
	require.NotNil(t, bodyA)

	w.Events().Push(ecs.Event{Type: "other"})
	w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: physics.ContactEvent{
		Body:    bodyA,
		Contact: locomotion.Contact{Layers: locomotion.MaskOf(locomotion.LayerClimbable)},
	}})
	NewContactSystem(zerolog.Nop()).Update(w, step)

	assert.Equal(t, locomotion.ModeClimbing, a.Mode())
	assert.Equal(t, locomotion.ModeAirborne, b.Mode())
	assert.Equal(t, 1, w.Events().Len())
}

type failingSource struct {
	*input.State
	err error
}

func (f *failingSource) Poll(dt float64) error { return f.err }

func TestInputSystemLogsRepeatedFailureOnce(t *testing.T) {
	var buf bytes.Buffer
	w := ecs.NewWorld()
	src := &failingSource{State: input.NewState(), err: errors.New("device gone")}
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.InputComponent, &component.Input{Source: src}))

	sys := NewInputSystem(zerolog.New(&buf))
	sys.Update(w, step)
	sys.Update(w, step)
	assert.Equal(t, 1, strings.Count(buf.String(), "device gone"))

	src.err = nil
	sys.Update(w, step)
	src.err = errors.New("device gone")
	sys.Update(w, step)
	assert.Equal(t, 2, strings.Count(buf.String(), "device gone"))
}

func TestInputSystemPollsScripts(t *testing.T) {
	w := ecs.NewWorld()
	src, err := input.NewScriptSource("forward", []byte("move_y = 1"))
	require.NoError(t, err)
	src.Enable(locomotion.AllChannels...)
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.InputComponent, &component.Input{Source: src}))

	NewInputSystem(zerolog.Nop()).Update(w, step)
	assert.Equal(t, mgl64.Vec2{0, 1}, src.Vector(locomotion.ChannelMove))
	assert.Equal(t, 1, src.Frame())
}
