package component

import "github.com/milk9111/mirrorshot/pawn"

// Pawn binds a controller to an entity. Mirror is a weak handle to the
// paired pawn (ecs.Entity is uint64); it is resolved every tick and may
// point at a dead entity.
type Pawn struct {
	Controller *pawn.Controller
	Mirror     uint64

	MirrorMissingLogged bool
}

var PawnComponent = NewComponent[Pawn]()
