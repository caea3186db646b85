package component

// PlayerTag marks the character the view follows.
type PlayerTag struct{}

var PlayerTagComponent = NewComponentKind[PlayerTag]("player tag")
