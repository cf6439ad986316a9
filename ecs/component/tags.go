package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// MirrorTag marks the pawn that follows another pawn in point reflection.
type MirrorTag struct{}

var MirrorTagComponent = NewComponent[MirrorTag]()
