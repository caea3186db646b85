package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/milk9111/fpcontroller/locomotion"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateClimbWall(t *testing.T) {
	cfg := simConfig{
		Course:  "wall",
		Script:  "climb_wall",
		Tuning:  "controller.yaml",
		Seconds: 6,
		FPS:     60,
		Step:    0.02,
	}
	res, err := simulate(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 360, res.Frames)
	assert.InDelta(t, 300, res.Steps, 1)

	var triggers []locomotion.Trigger
	for _, tr := range res.Transitions {
		triggers = append(triggers, tr.Trigger)
	}
	assert.Contains(t, triggers, locomotion.TriggerJump)
	assert.Contains(t, triggers, locomotion.TriggerWallClimbable)
	assert.Contains(t, triggers, locomotion.TriggerLedge)
	assert.True(t, res.Final.GravityEnabled)

	var out bytes.Buffer
	printResult(&out, cfg, res)
	assert.Contains(t, out.String(), "ledge")
	assert.Contains(t, out.String(), "course")
}

func TestSimulateRejects(t *testing.T) {
	base := simConfig{Course: "wall", Script: "climb_wall", Tuning: "controller.yaml", Seconds: 1, FPS: 60, Step: 0.02}

	bad := base
	bad.FPS = 0
	_, err := simulate(context.Background(), bad, zerolog.Nop())
	assert.True(t, errors.Is(err, errBadRate))

	bad = base
	bad.Course = "missing"
	_, err = simulate(context.Background(), bad, zerolog.Nop())
	assert.Error(t, err)

	bad = base
	bad.Script = "missing"
	_, err = simulate(context.Background(), bad, zerolog.Nop())
	assert.Error(t, err)
}

func TestSimulateStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := simConfig{Course: "vault", Script: "vault", Tuning: "controller.yaml", Seconds: 5, FPS: 60, Step: 0.02}
	res, err := simulate(ctx, cfg, zerolog.Nop())
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, res.Frames)
}
