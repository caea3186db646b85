// Package input provides locomotion.InputSource implementations: a plain
// settable State, a keyboard/mouse/gamepad source backed by ebiten, and a
// tengo-scripted source for headless runs.
package input

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/locomotion"
)

// Poller is a source that refreshes itself once per rendered frame.
type Poller interface {
	Poll(dt float64) error
}

// State holds the latest value of every channel. Disabled channels keep
// their value but read as zero.
type State struct {
	vectors  map[locomotion.Channel]mgl64.Vec2
	scalars  map[locomotion.Channel]float64
	disabled map[locomotion.Channel]bool
}

// NewState returns a State with every channel disabled until the
// controller enables it.
func NewState() *State {
	s := &State{
		vectors:  make(map[locomotion.Channel]mgl64.Vec2),
		scalars:  make(map[locomotion.Channel]float64),
		disabled: make(map[locomotion.Channel]bool),
	}
	s.Disable(locomotion.AllChannels...)
	return s
}

func (s *State) SetVector(ch locomotion.Channel, v mgl64.Vec2) {
	s.vectors[ch] = v
}

func (s *State) SetScalar(ch locomotion.Channel, v float64) {
	s.scalars[ch] = v
}

// SetButton stores a button as 1 or 0.
func (s *State) SetButton(ch locomotion.Channel, pressed bool) {
	if pressed {
		s.scalars[ch] = 1
		return
	}
	s.scalars[ch] = 0
}

func (s *State) Vector(ch locomotion.Channel) mgl64.Vec2 {
	if s.disabled[ch] {
		return mgl64.Vec2{}
	}
	return s.vectors[ch]
}

func (s *State) Scalar(ch locomotion.Channel) float64 {
	if s.disabled[ch] {
		return 0
	}
	return s.scalars[ch]
}

func (s *State) Enable(chs ...locomotion.Channel) {
	for _, ch := range chs {
		delete(s.disabled, ch)
	}
}

func (s *State) Disable(chs ...locomotion.Channel) {
	for _, ch := range chs {
		s.disabled[ch] = true
	}
}

func (s *State) Enabled(ch locomotion.Channel) bool {
	return !s.disabled[ch]
}

// Clear zeroes every channel without touching enablement.
func (s *State) Clear() {
	clear(s.vectors)
	clear(s.scalars)
}
