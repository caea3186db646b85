package input

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/locomotion"
)

var ErrScript = errors.New("input: script")

// scriptOutputs are the globals a script assigns each frame. They are reset
// to zero before every run.
var scriptOutputs = []string{"move_x", "move_y", "look_x", "look_y", "sprint", "walk", "jump"}

// ScriptSource drives a character from a tengo script. The script reads
// frame, time and dt and assigns the outputs; booleans count as 1 or 0.
type ScriptSource struct {
	*State

	name     string
	compiled *tengo.Compiled
	frame    int
	time     float64
}

func NewScriptSource(name string, src []byte) (*ScriptSource, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math", "text", "rand"))
	script.SetMaxAllocs(1 << 16)

	for _, in := range []string{"frame", "time", "dt"} {
		if err := script.Add(in, 0); err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrScript, name, err)
		}
	}
	for _, out := range scriptOutputs {
		if err := script.Add(out, 0); err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrScript, name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w %s: compile: %v", ErrScript, name, err)
	}
	return &ScriptSource{State: NewState(), name: name, compiled: compiled}, nil
}

func (s *ScriptSource) Name() string { return s.name }

// Frame is the number of completed polls.
func (s *ScriptSource) Frame() int { return s.frame }

func (s *ScriptSource) Poll(dt float64) error {
	if err := s.compiled.Set("frame", s.frame); err != nil {
		return err
	}
	if err := s.compiled.Set("time", s.time); err != nil {
		return err
	}
	if err := s.compiled.Set("dt", dt); err != nil {
		return err
	}
	for _, out := range scriptOutputs {
		if err := s.compiled.Set(out, 0); err != nil {
			return err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("%w %s: frame %d: %v", ErrScript, s.name, s.frame, err)
	}

	s.SetVector(locomotion.ChannelMove, mgl64.Vec2{s.number("move_x"), s.number("move_y")})
	s.SetVector(locomotion.ChannelLook, mgl64.Vec2{s.number("look_x"), s.number("look_y")})
	s.SetScalar(locomotion.ChannelSprint, s.number("sprint"))
	s.SetScalar(locomotion.ChannelWalk, s.number("walk"))
	s.SetScalar(locomotion.ChannelJump, s.number("jump"))

	s.frame++
	s.time += dt
	return nil
}

func (s *ScriptSource) number(name string) float64 {
	switch v := s.compiled.Get(name).Value().(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	case bool:
		if v {
			return 1
		}
	}
	return 0
}
