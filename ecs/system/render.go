package system

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
	"github.com/milk9111/fpcontroller/locomotion"
	"github.com/milk9111/fpcontroller/physics"
)

// BoxLister exposes a world's static boxes for drawing.
type BoxLister interface {
	Boxes() []physics.Box
}

var (
	colorBackground = color.NRGBA{R: 24, G: 26, B: 33, A: 255}
	colorOther      = color.NRGBA{R: 110, G: 110, B: 120, A: 255}
	colorClimbable  = color.NRGBA{R: 80, G: 170, B: 90, A: 255}
	colorVaultable  = color.NRGBA{R: 210, G: 140, B: 60, A: 255}
	colorTrigger    = color.NRGBA{R: 230, G: 220, B: 80, A: 255}
	colorCharacter  = color.NRGBA{R: 90, G: 150, B: 230, A: 255}
	colorLook       = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
)

// PlanarRenderSystem draws the x/y plane of a course with the player at the
// centre of the screen. Scale is pixels per metre.
type PlanarRenderSystem struct {
	boxes BoxLister
	Scale float64
	Debug bool
}

func NewPlanarRenderSystem(boxes BoxLister) *PlanarRenderSystem {
	return &PlanarRenderSystem{boxes: boxes, Scale: 32}
}

// Update does nothing; the system only draws.
func (r *PlanarRenderSystem) Update(w *ecs.World, dt float64) {}

func (r *PlanarRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}
	screen.Fill(colorBackground)

	cam := mgl64.Vec2{}
	if e, ok := ecs.First(w, component.PlayerTagComponent); ok {
		if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			cam = mgl64.Vec2{t.Position.X(), t.Position.Y()}
		}
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	toScreen := func(x, y float64) (float32, float32) {
		return float32((x-cam.X())*r.Scale + float64(sw)/2), float32(float64(sh)/2 - (y-cam.Y())*r.Scale)
	}

	if r.boxes != nil {
		for _, b := range r.boxes.Boxes() {
			x0, y0 := toScreen(b.Min.X(), b.Max.Y())
			x1, y1 := toScreen(b.Max.X(), b.Min.Y())
			if b.Trigger {
				vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, colorTrigger, false)
				continue
			}
			vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, boxColor(b.Layers), false)
		}
	}

	line := 0
	ecs.ForEach2(w, component.CharacterComponent, component.TransformComponent, func(e ecs.Entity, ch *component.Character, t *component.Transform) {
		half := mgl64.Vec3{0.4, 1, 0.4}
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
			if hb, ok := pb.Body.(interface{ HalfExtents() mgl64.Vec3 }); ok {
				half = hb.HalfExtents()
			}
		}
		x0, y0 := toScreen(t.Position.X()-half.X(), t.Position.Y()+half.Y())
		x1, y1 := toScreen(t.Position.X()+half.X(), t.Position.Y()-half.Y())
		vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, colorCharacter, false)

		eye := t.Position.Add(mgl64.Vec3{0, half.Y()*0.8 + t.CameraHeight, 0})
		look := locomotion.OrientationState{Yaw: t.Yaw, Pitch: t.Pitch}.LookDirection()
		tip := eye.Add(look)
		ex, ey := toScreen(eye.X(), eye.Y())
		tx, ty := toScreen(tip.X(), tip.Y())
		vector.StrokeLine(screen, ex, ey, tx, ty, 2, colorLook, true)

		if r.Debug && ch.Controller != nil {
			snap := ch.Controller.Snapshot()
			text := fmt.Sprintf("%s  %s/%s  speed %.2f  yaw %.0f pitch %.0f  gravity %t",
				ch.Name, snap.Motion.Mode, snap.Motion.Submode, snap.Motion.Speed,
				snap.Orientation.Yaw, snap.Orientation.Pitch, snap.GravityEnabled)
			ebitenutil.DebugPrintAt(screen, text, 10, 10+line*16)
			line++
		}
	})
}

func boxColor(layers locomotion.LayerMask) color.Color {
	switch {
	case layers.Has(locomotion.LayerClimbable):
		return colorClimbable
	case layers.Has(locomotion.LayerVaultable):
		return colorVaultable
	}
	return colorOther
}
