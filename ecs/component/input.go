package component

import "github.com/milk9111/fpcontroller/locomotion"

// Input holds the source a character reads from.
type Input struct {
	Source locomotion.InputSource
}

var InputComponent = NewComponentKind[Input]("input")
