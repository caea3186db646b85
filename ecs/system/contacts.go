package system

import (
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
	"github.com/milk9111/fpcontroller/physics"
	"github.com/rs/zerolog"
)

// ContactSystem hands queued contact events to the character that owns the
// body. Other events are left on the queue.
type ContactSystem struct {
	log zerolog.Logger
}

func NewContactSystem(log zerolog.Logger) *ContactSystem {
	return &ContactSystem{log: log}
}

func (c *ContactSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	events := w.Events().Drain()
	for _, evt := range events {
		ev, ok := evt.Data.(physics.ContactEvent)
		if evt.Type != ecs.EventContact || !ok {
			w.Events().Push(evt)
			continue
		}
		c.dispatch(w, ev)
	}
}

func (c *ContactSystem) dispatch(w *ecs.World, ev physics.ContactEvent) {
	delivered := false
	ecs.ForEach2(w, component.CharacterComponent, component.PhysicsBodyComponent, func(e ecs.Entity, ch *component.Character, pb *component.PhysicsBody) {
		if delivered || ch.Controller == nil || pb.Body != ev.Body {
			return
		}
		delivered = true
		c.log.Trace().
			Stringer("entity", e).
			Str("tag", ev.Contact.Tag).
			Bool("trigger", ev.Trigger).
			Msg("contact")
		if ev.Trigger {
			ch.Controller.OnTriggerEnter(ev.Contact)
		} else {
			ch.Controller.OnCollisionEnter(ev.Contact)
		}
	})
}
