package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
	"github.com/milk9111/fpcontroller/ecs/entity"
	"github.com/milk9111/fpcontroller/ecs/system"
	"github.com/milk9111/fpcontroller/input"
	"github.com/milk9111/fpcontroller/locomotion"
	"github.com/milk9111/fpcontroller/physics"
	"github.com/milk9111/fpcontroller/prefabs"
	"github.com/rs/zerolog"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	physicsStep = 1.0 / 50
)

type Game struct {
	log zerolog.Logger

	world  *ecs.World
	sched  *ecs.Scheduler
	render *system.PlanarRenderSystem
	course *prefabs.CourseSpec
	player ecs.Entity

	tuningFile string
	watcher    *prefabs.Watcher
}

func NewGame(courseName, tuningFile string, debug bool, log zerolog.Logger) (*Game, error) {
	ctrlSpec, err := prefabs.LoadControllerSpec(tuningFile)
	if err != nil {
		return nil, err
	}
	course, err := prefabs.LoadCourseSpec(courseName)
	if err != nil {
		return nil, err
	}

	planar := physics.NewPlanarWorld(course.Gravity)
	if err := course.Build(planar, ctrlSpec.LayerTable()); err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	player, err := entity.NewCharacter(w, entity.CharacterConfig{
		Name:       "player",
		Controller: ctrlSpec,
		Course:     course,
		World:      planar,
		Spawn:      entity.PlanarSpawner(planar),
		Input:      input.NewEbitenSource(),
		Player:     true,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}

	render := system.NewPlanarRenderSystem(planar)
	render.Debug = debug

	g := &Game{
		log:        log,
		world:      w,
		sched:      system.NewCharacterScheduler(physicsStep, planar, log, render),
		render:     render,
		course:     course,
		player:     player,
		tuningFile: tuningFile,
	}

	if watcher, err := prefabs.NewWatcher(prefabs.Dir); err != nil {
		log.Debug().Err(err).Msg("prefab hot reload disabled")
	} else {
		g.watcher = watcher
	}
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.pollWatcher()
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.respawn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.render.Debug = !g.render.Debug
	}

	g.sched.Tick(g.world, 1/float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.sched.Draw(g.world, screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) controller() *locomotion.Controller {
	ch, ok := ecs.Get(g.world, g.player, component.CharacterComponent)
	if !ok {
		return nil
	}
	return ch.Controller
}

// respawn puts the player back at the course spawn point.
func (g *Game) respawn() {
	pb, ok := ecs.Get(g.world, g.player, component.PhysicsBodyComponent)
	if !ok {
		return
	}
	if t, ok := pb.Body.(interface{ Teleport(mgl64.Vec3) }); ok {
		t.Teleport(g.course.SpawnPosition())
	}
	if ctrl := g.controller(); ctrl != nil {
		ctrl.Reset()
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes():
			if !ok {
				g.watcher = nil
				return
			}
			path := change.Path
			if change.Kind != prefabs.ChangeController {
				g.log.Debug().Str("file", path).Stringer("kind", change.Kind).Msg("change ignored")
				continue
			}
			spec, err := prefabs.LoadControllerSpec(g.tuningFile)
			if err == nil {
				err = g.controller().SetTuning(spec.Tuning())
			}
			if err != nil {
				g.log.Warn().Err(err).Str("file", path).Msg("tuning reload rejected")
				continue
			}
			g.log.Info().Str("file", path).Msg("tuning reloaded")
		case err, ok := <-g.watcher.Errors():
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn().Err(err).Msg("watch")
		default:
			return
		}
	}
}
