package entity

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mirrorshot/ecs"
	"github.com/milk9111/mirrorshot/ecs/component"
	"github.com/milk9111/mirrorshot/prefabs"
)

var defaultWallColor = color.RGBA{R: 0x5c, G: 0x6b, B: 0xc0, A: 0xff}

// LoadArena builds the physics world for an arena prefab, attaches it to w
// and returns the primary pawn spawn point.
func LoadArena(w *ecs.World, name string) (cp.Vector, error) {
	spec, err := prefabs.LoadArenaSpec(name)
	if err != nil {
		return cp.Vector{}, err
	}

	layout := ecs.ArenaLayout{
		HalfExtentX: spec.HalfExtentX,
		HalfExtentY: spec.HalfExtentY,
		Walls:       make([]ecs.WallBox, 0, len(spec.Walls)),
	}
	for _, wall := range spec.Walls {
		layout.Walls = append(layout.Walls, ecs.WallBox{
			MinX: min(wall.MinX, wall.MaxX),
			MinY: min(wall.MinY, wall.MaxY),
			MaxX: max(wall.MinX, wall.MaxX),
			MaxY: max(wall.MinY, wall.MaxY),
		})
	}
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(layout))

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ArenaComponent.Kind(), &component.Arena{
		Name:      spec.Name,
		WallColor: spec.WallColor.RGBA8(defaultWallColor),
	}); err != nil {
		return cp.Vector{}, err
	}

	return cp.Vector{X: spec.PrimarySpawn.X, Y: spec.PrimarySpawn.Y}, nil
}

// NewMatch loads an arena and places the pawn pair at its spawn.
func NewMatch(w *ecs.World, arena string) (ecs.Entity, ecs.Entity, error) {
	spawn, err := LoadArena(w, arena)
	if err != nil {
		return 0, 0, err
	}
	return NewPawnPair(w, spawn)
}
