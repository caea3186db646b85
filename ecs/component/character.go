package component

import "github.com/milk9111/fpcontroller/locomotion"

type Character struct {
	Name       string
	Controller *locomotion.Controller
}

var CharacterComponent = NewComponentKind[Character]("character")
