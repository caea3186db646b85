package locomotion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadBobAdvance(t *testing.T) {
	tuning := HeadBobTuning{Frequency: 5, BaseAmplitude: 0.001, SprintAmplitude: 0.002, RestHeight: 1.6}

	b := BobState{CameraHeight: tuning.RestHeight}
	b = b.Advance(true, 3, SubmodeSprint, tuning, 0.1)
	assert.InDelta(t, 1.5, b.Phase, 1e-9)
	assert.InDelta(t, math.Sin(1.5)*0.002, b.Offset, 1e-12)
	assert.InDelta(t, 1.6+b.Offset, b.CameraHeight, 1e-12)
}

func TestHeadBobStaysWithinAmplitude(t *testing.T) {
	tuning := DefaultTuning().HeadBob
	var b BobState
	for range 500 {
		b = b.Advance(true, 6, SubmodeSprint, tuning, 0.016)
		assert.LessOrEqual(t, math.Abs(b.CameraHeight-tuning.RestHeight), tuning.SprintAmplitude+1e-12)
	}
}

func TestHeadBobResetsWhenIdle(t *testing.T) {
	tuning := HeadBobTuning{Frequency: 5, BaseAmplitude: 0.01, RestHeight: 1.6}
	b := BobState{Phase: 4.2, Offset: 0.007, CameraHeight: 1.607}

	b = b.Advance(false, 0, SubmodeBase, tuning, 0.016)
	assert.Equal(t, 0.0, b.Phase)
	assert.Equal(t, 1.6, b.CameraHeight)
}
