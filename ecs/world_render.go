package ecs

import "github.com/hajimehoshi/ebiten/v2"

// RenderSystem draws ECS entities each frame.
type RenderSystem interface {
	Draw(w *World, screen *ebiten.Image)
}

// Draw calls every render-capable system, in the order they were added.
func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, sys := range s.Systems() {
		if rs, ok := sys.(RenderSystem); ok {
			rs.Draw(w, screen)
		}
	}
}
