package system

import (
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
)

// TransformSyncSystem copies each character's body position and camera pose
// into its Transform, adding one if missing.
type TransformSyncSystem struct{}

func NewTransformSyncSystem() *TransformSyncSystem {
	return &TransformSyncSystem{}
}

func (s *TransformSyncSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.CharacterComponent, component.PhysicsBodyComponent, func(e ecs.Entity, ch *component.Character, pb *component.PhysicsBody) {
		if ch.Controller == nil || pb.Body == nil {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			t = &component.Transform{}
			if err := ecs.Add(w, e, component.TransformComponent, t); err != nil {
				return
			}
		}
		snap := ch.Controller.Snapshot()
		t.Position = pb.Body.Position()
		t.Yaw = snap.Orientation.Yaw
		t.Pitch = snap.Orientation.Pitch
		t.CameraHeight = snap.Bob.CameraHeight
	})
}
