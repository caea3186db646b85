package entity

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
	"github.com/milk9111/fpcontroller/locomotion"
	"github.com/milk9111/fpcontroller/physics"
	"github.com/milk9111/fpcontroller/prefabs"
	"github.com/rs/zerolog"
)

var ErrNoSpawner = errors.New("entity: no body spawner")

// Spawner creates a character body at pos. The gravity service may be nil.
type Spawner func(pos, halfExtents mgl64.Vec3) (locomotion.Body, locomotion.GravityService)

// BoxSpawner spawns kinematic bodies in a BoxWorld.
func BoxSpawner(w *physics.BoxWorld) Spawner {
	return func(pos, half mgl64.Vec3) (locomotion.Body, locomotion.GravityService) {
		b := w.NewBody(pos, half)
		return b, b.Gravity()
	}
}

// PlanarSpawner spawns Chipmunk bodies in a PlanarWorld.
func PlanarSpawner(w *physics.PlanarWorld) Spawner {
	return func(pos, half mgl64.Vec3) (locomotion.Body, locomotion.GravityService) {
		b := w.NewBody(pos, half)
		return b, b.Gravity()
	}
}

type CharacterConfig struct {
	Name       string
	Controller *prefabs.ControllerSpec
	Course     *prefabs.CourseSpec
	World      locomotion.PhysicsWorld
	Spawn      Spawner
	Input      locomotion.InputSource
	Player     bool
	// NoGravity spawns the character without a gravity service.
	NoGravity    bool
	Logger       zerolog.Logger
	OnTransition locomotion.TransitionFunc
}

// NewCharacter spawns a body at the course spawn point and creates an
// entity carrying the controller, its body and input.
func NewCharacter(w *ecs.World, cfg CharacterConfig) (ecs.Entity, error) {
	if cfg.Spawn == nil {
		return 0, ErrNoSpawner
	}
	ctrlSpec := cfg.Controller
	if ctrlSpec == nil {
		def := prefabs.DefaultControllerSpec()
		ctrlSpec = &def
	}
	course := cfg.Course
	if course == nil {
		course = &prefabs.CourseSpec{Body: prefabs.BodySpec{HalfExtents: [3]float64{0.4, 1, 0.4}}}
	}

	body, gravity := cfg.Spawn(course.SpawnPosition(), course.HalfExtents())
	if cfg.NoGravity {
		gravity = nil
	}
	opts := []locomotion.Option{
		locomotion.WithLogger(cfg.Logger.With().Str("character", cfg.Name).Logger()),
		locomotion.WithYaw(course.Spawn.Yaw),
	}
	if cfg.OnTransition != nil {
		opts = append(opts, locomotion.WithTransitionHook(cfg.OnTransition))
	}
	ctrl, err := locomotion.NewController(ctrlSpec.Tuning(), locomotion.Collaborators{
		Input:   cfg.Input,
		World:   cfg.World,
		Body:    body,
		Gravity: gravity,
	}, opts...)
	if err != nil {
		return 0, fmt.Errorf("entity: character %q: %w", cfg.Name, err)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CharacterComponent, &component.Character{Name: cfg.Name, Controller: ctrl}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Body: body, Gravity: gravity}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.InputComponent, &component.Input{Source: cfg.Input}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: body.Position(), Yaw: course.Spawn.Yaw}); err != nil {
		return 0, err
	}
	if cfg.Player {
		if err := ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}); err != nil {
			return 0, err
		}
	}
	return e, nil
}
