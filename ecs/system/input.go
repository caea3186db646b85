package system

import (
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
	"github.com/milk9111/fpcontroller/input"
	"github.com/rs/zerolog"
)

// InputSystem polls every input source that refreshes itself per frame.
// A failing source keeps its previous values; the same error is logged once.
type InputSystem struct {
	log    zerolog.Logger
	failed map[ecs.Entity]string
}

func NewInputSystem(log zerolog.Logger) *InputSystem {
	return &InputSystem{log: log, failed: make(map[ecs.Entity]string)}
}

func (i *InputSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, in *component.Input) {
		p, ok := in.Source.(input.Poller)
		if !ok {
			return
		}
		if err := p.Poll(dt); err != nil {
			if i.failed[e] != err.Error() {
				i.failed[e] = err.Error()
				i.log.Warn().Err(err).Stringer("entity", e).Msg("input poll failed")
			}
			return
		}
		delete(i.failed, e)
	})
}
