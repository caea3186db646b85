package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/common"
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

var errBadRate = errors.New("locosim: frame rate, step and duration must be positive")

type simConfig struct {
	Course  string
	Script  string
	Tuning  string
	Seconds float64
	FPS     float64
	Step    float64
	Watch   bool
}

type transitionRecord struct {
	Time     float64
	From, To locomotion.Mode
	Trigger  locomotion.Trigger
}

type simResult struct {
	Frames      int
	Steps       int
	Transitions []transitionRecord
	Final       locomotion.Snapshot
	Position    mgl64.Vec3
}

// simulate runs one scripted character for cfg.Seconds of simulated time.
// With Watch set it paces frames in real time and applies tuning edits
// between frames.
func simulate(ctx context.Context, cfg simConfig, log zerolog.Logger) (*simResult, error) {
	if !(cfg.FPS > 0) || !(cfg.Step > 0) || !(cfg.Seconds > 0) {
		return nil, errBadRate
	}
	ctrlSpec, err := prefabs.LoadControllerSpec(cfg.Tuning)
	if err != nil {
		return nil, err
	}
	course, err := prefabs.LoadCourseSpec(cfg.Course)
	if err != nil {
		return nil, err
	}
	src, err := prefabs.LoadScript(cfg.Script)
	if err != nil {
		return nil, fmt.Errorf("locosim: script %s: %w", cfg.Script, err)
	}
	script, err := input.NewScriptSource(cfg.Script, src)
	if err != nil {
		return nil, err
	}

	boxes := physics.NewBoxWorld()
	boxes.Gravity = common.WorldUp.Mul(-course.Gravity)
	if err := course.Build(boxes, ctrlSpec.LayerTable()); err != nil {
		return nil, err
	}

	res := &simResult{}
	w := ecs.NewWorld()
	e, err := entity.NewCharacter(w, entity.CharacterConfig{
		Name:       course.Name,
		Controller: ctrlSpec,
		Course:     course,
		World:      boxes,
		Spawn:      entity.BoxSpawner(boxes),
		Input:      script,
		Player:     true,
		Logger:     log,
		OnTransition: func(from, to locomotion.Mode, t locomotion.Trigger) {
			now := float64(res.Frames) / cfg.FPS
			res.Transitions = append(res.Transitions, transitionRecord{Time: now, From: from, To: to, Trigger: t})
			log.Info().
				Str("t", fmt.Sprintf("%.2fs", now)).
				Stringer("from", from).
				Stringer("to", to).
				Stringer("trigger", t).
				Msg("transition")
		},
	})
	if err != nil {
		return nil, err
	}
	ch, _ := ecs.Get(w, e, component.CharacterComponent)
	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent)

	sched := system.NewCharacterScheduler(cfg.Step, boxes, log)

	var (
		changes <-chan prefabs.Change
		errs    <-chan error
		pace    <-chan time.Time
	)
	if cfg.Watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Warn().Err(err).Str("dir", prefabs.Dir).Msg("hot reload disabled")
		} else {
			defer watcher.Close()
			changes, errs = watcher.Changes(), watcher.Errors()
		}
		ticker := time.NewTicker(time.Duration(float64(time.Second) / cfg.FPS))
		defer ticker.Stop()
		pace = ticker.C
	}

	dt := 1 / cfg.FPS
	frames := int(cfg.Seconds * cfg.FPS)
	for res.Frames < frames {
		if pace != nil {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case change, ok := <-changes:
				switch {
				case !ok:
					changes = nil
				case change.Kind == prefabs.ChangeController:
					reloadTuning(ch.Controller, cfg.Tuning, log)
				default:
					log.Info().Str("file", change.Path).Stringer("kind", change.Kind).Msg("change applies on next run")
				}
				continue
			case err, ok := <-errs:
				if !ok {
					errs = nil
				} else {
					log.Warn().Err(err).Msg("watch")
				}
				continue
			case <-pace:
			}
		} else if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Steps += sched.Tick(w, dt)
		res.Frames++
	}

	res.Final = ch.Controller.Snapshot()
	res.Position = pb.Body.Position()
	return res, nil
}

func reloadTuning(ctrl *locomotion.Controller, name string, log zerolog.Logger) {
	spec, err := prefabs.LoadControllerSpec(name)
	if err != nil {
		log.Warn().Err(err).Str("file", name).Msg("tuning reload rejected")
		return
	}
	if err := ctrl.SetTuning(spec.Tuning()); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("tuning reload rejected")
		return
	}
	log.Info().Str("file", name).Msg("tuning reloaded")
}

func printResult(out io.Writer, cfg simConfig, res *simResult) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "course\t%s\n", cfg.Course)
	fmt.Fprintf(tw, "script\t%s\n", cfg.Script)
	fmt.Fprintf(tw, "frames\t%d (%d physics steps)\n", res.Frames, res.Steps)
	fmt.Fprintf(tw, "transitions\t%d\n", len(res.Transitions))
	for _, tr := range res.Transitions {
		fmt.Fprintf(tw, "\t%6.2fs  %s -> %s (%s)\n", tr.Time, tr.From, tr.To, tr.Trigger)
	}
	s := res.Final
	fmt.Fprintf(tw, "mode\t%s/%s\n", s.Motion.Mode, s.Motion.Submode)
	fmt.Fprintf(tw, "position\t%.3f %.3f %.3f\n", res.Position.X(), res.Position.Y(), res.Position.Z())
	fmt.Fprintf(tw, "speed\t%.3f\n", s.Motion.Speed)
	fmt.Fprintf(tw, "yaw/pitch\t%.1f / %.1f\n", s.Orientation.Yaw, s.Orientation.Pitch)
	fmt.Fprintf(tw, "camera height\t%.4f\n", s.Bob.CameraHeight)
	fmt.Fprintf(tw, "gravity\t%t\n", s.GravityEnabled)
	tw.Flush()
}
