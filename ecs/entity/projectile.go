package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mirrorshot/ecs"
	"github.com/milk9111/mirrorshot/ecs/component"
	"github.com/milk9111/mirrorshot/pawn"
)

const ProjectilePrefab = "projectile.yaml"

// SpawnProjectile builds a projectile at location travelling along yaw.
func SpawnProjectile(w *ecs.World, location cp.Vector, yaw float64, side pawn.Side) (ecs.Entity, error) {
	e, err := BuildEntity(w, ProjectilePrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, location.X, location.Y, yaw); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("projectile: override transform: %w", err)
	}

	proj, ok := ecs.Get(w, e, component.ProjectileComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("projectile: prefab %q has no projectile component", ProjectilePrefab)
	}
	proj.Velocity = cp.ForAngle(yaw).Mult(proj.Velocity.Length())
	proj.Side = side.String()
	return e, nil
}
