package ecs

// System runs once per tick of the phase it was added to. dt is the frame
// delta for frame systems and the fixed step for physics systems.
type System interface {
	Update(w *World, dt float64)
}

// SystemFunc adapts a function to System.
type SystemFunc func(w *World, dt float64)

func (f SystemFunc) Update(w *World, dt float64) { f(w, dt) }

// Scheduler runs fixed-step systems as often as the clock says, then frame
// systems once.
type Scheduler struct {
	clock *Clock
	fixed []System
	frame []System
}

func NewScheduler(step float64) *Scheduler {
	return &Scheduler{clock: NewClock(step)}
}

func (s *Scheduler) AddFixed(systems ...System) {
	for _, sys := range systems {
		if sys != nil {
			s.fixed = append(s.fixed, sys)
		}
	}
}

func (s *Scheduler) AddFrame(systems ...System) {
	for _, sys := range systems {
		if sys != nil {
			s.frame = append(s.frame, sys)
		}
	}
}

func (s *Scheduler) Clock() *Clock { return s.clock }

// Tick advances one rendered frame and returns the number of fixed steps
// that ran.
func (s *Scheduler) Tick(w *World, dt float64) int {
	if w == nil {
		return 0
	}
	n := s.clock.Advance(dt)
	for range n {
		for _, sys := range s.fixed {
			sys.Update(w, s.clock.Step)
		}
	}
	if dt > 0 {
		for _, sys := range s.frame {
			sys.Update(w, dt)
		}
	}
	w.events.flush()
	return n
}

func (s *Scheduler) Systems() []System {
	out := make([]System, 0, len(s.fixed)+len(s.frame))
	out = append(out, s.fixed...)
	return append(out, s.frame...)
}
