package physics

// GravitySwitch toggles gravity for one body. It implements
// locomotion.GravityService.
type GravitySwitch struct {
	enabled  bool
	onChange func(enabled bool)
}

func newGravitySwitch(onChange func(bool)) *GravitySwitch {
	return &GravitySwitch{enabled: true, onChange: onChange}
}

func (g *GravitySwitch) Enable()  { g.set(true) }
func (g *GravitySwitch) Disable() { g.set(false) }

func (g *GravitySwitch) IsEnabled() bool { return g.enabled }

func (g *GravitySwitch) set(on bool) {
	if g.enabled == on {
		return
	}
	g.enabled = on
	if g.onChange != nil {
		g.onChange(on)
	}
}
