package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mirrorshot/ecs"
	"github.com/milk9111/mirrorshot/ecs/component"
	"github.com/milk9111/mirrorshot/pawn"
)

const (
	PawnPrefab       = "pawn.yaml"
	MirrorPawnPrefab = "mirror_pawn.yaml"
)

// NewPawnPair builds the player pawn at spawn and its mirror at the
// reflected point, and links the mirror handle. The mirror entity is not
// owned by the pawn and may be destroyed independently.
func NewPawnPair(w *ecs.World, spawn cp.Vector) (ecs.Entity, ecs.Entity, error) {
	primary, err := BuildEntity(w, PawnPrefab)
	if err != nil {
		return 0, 0, err
	}
	if err := SetEntityTransform(w, primary, spawn.X, spawn.Y, 0); err != nil {
		ecs.DestroyEntity(w, primary)
		return 0, 0, fmt.Errorf("pawn: override transform: %w", err)
	}

	mirror, err := BuildEntity(w, MirrorPawnPrefab)
	if err != nil {
		ecs.DestroyEntity(w, primary)
		return 0, 0, err
	}
	reflected := spawn.Neg()
	if err := SetEntityTransform(w, mirror, reflected.X, reflected.Y, pawn.Opposite(0)); err != nil {
		ecs.DestroyEntity(w, primary)
		ecs.DestroyEntity(w, mirror)
		return 0, 0, fmt.Errorf("mirror pawn: override transform: %w", err)
	}

	p, ok := ecs.Get(w, primary, component.PawnComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, primary)
		ecs.DestroyEntity(w, mirror)
		return 0, 0, fmt.Errorf("pawn: prefab %q has no pawn component", PawnPrefab)
	}
	p.Mirror = uint64(mirror)

	return primary, mirror, nil
}

// MirrorOf resolves the weak mirror handle of a pawn. It reports false when
// the pawn has no mirror or the mirror entity is gone.
func MirrorOf(w *ecs.World, p *component.Pawn) (ecs.Entity, bool) {
	if p == nil || p.Mirror == 0 {
		return 0, false
	}
	e := ecs.Entity(p.Mirror)
	if !ecs.IsAlive(w, e) {
		return 0, false
	}
	return e, true
}
