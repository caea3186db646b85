package physics

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/common"
	"github.com/milk9111/fpcontroller/locomotion"
)

var ErrInvalidBox = errors.New("physics: invalid box")

// Box is a static axis-aligned collider. Trigger boxes are sensors: rays
// pass through them and bodies overlap them without being pushed out.
type Box struct {
	Min, Max mgl64.Vec3
	Layers   locomotion.LayerMask
	Tag      string
	Trigger  bool
}

func (b Box) validate() (Box, error) {
	if !common.FiniteVec3(b.Min) || !common.FiniteVec3(b.Max) {
		return b, fmt.Errorf("%w: non-finite bounds %v %v", ErrInvalidBox, b.Min, b.Max)
	}
	for i := range 3 {
		if b.Min[i] > b.Max[i] {
			return b, fmt.Errorf("%w: min %v exceeds max %v", ErrInvalidBox, b.Min, b.Max)
		}
	}
	if b.Layers == 0 {
		b.Layers = locomotion.LayerOther.Mask()
	}
	return b, nil
}

func (b Box) contact() locomotion.Contact {
	return locomotion.Contact{Layers: b.Layers, Tag: b.Tag}
}

// ContactEvent reports that a body began touching a box.
type ContactEvent struct {
	Body    locomotion.Body
	Contact locomotion.Contact
	Trigger bool
}
