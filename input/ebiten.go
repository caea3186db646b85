package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/fpcontroller/locomotion"
)

const (
	stickDeadzone     = 0.2
	defaultMouseScale = 0.1
)

// EbitenSource reads keyboard, mouse and the first gamepad. WASD or the
// arrows move, the mouse looks, Shift sprints, Ctrl walks and Space jumps.
type EbitenSource struct {
	*State

	// MouseScale converts cursor pixels per frame into look units.
	MouseScale float64
	// InvertY flips vertical look.
	InvertY bool

	lastX, lastY int
	primed       bool
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{State: NewState(), MouseScale: defaultMouseScale}
}

func (s *EbitenSource) Poll(dt float64) error {
	move := mgl64.Vec2{}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move[0] -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move[0] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move[1] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move[1] -= 1
	}
	sprint := ebiten.IsKeyPressed(ebiten.KeyShift)
	walk := ebiten.IsKeyPressed(ebiten.KeyControl)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)

	look := s.mouseDelta().Mul(s.MouseScale)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			move = mgl64.Vec2{lx, -ly}
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			look = look.Add(mgl64.Vec2{rx, -ry})
		}

		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		sprint = sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
		walk = walk || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
	}

	if s.InvertY {
		look[1] = -look[1]
	}

	s.SetVector(locomotion.ChannelMove, move)
	s.SetVector(locomotion.ChannelLook, look)
	s.SetButton(locomotion.ChannelSprint, sprint)
	s.SetButton(locomotion.ChannelWalk, walk)
	s.SetButton(locomotion.ChannelJump, jump)
	return nil
}

// mouseDelta is the cursor movement since the last poll with screen y
// flipped so moving the mouse up looks up.
func (s *EbitenSource) mouseDelta() mgl64.Vec2 {
	x, y := ebiten.CursorPosition()
	if !s.primed {
		s.lastX, s.lastY, s.primed = x, y, true
		return mgl64.Vec2{}
	}
	dx, dy := x-s.lastX, y-s.lastY
	s.lastX, s.lastY = x, y
	return mgl64.Vec2{float64(dx), -float64(dy)}
}
