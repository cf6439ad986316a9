package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/mirrorshot/ecs"
	"github.com/milk9111/mirrorshot/ecs/component"
)

// ProjectileSystem flies projectiles in straight lines and destroys them
// on the first wall they touch.
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	physics := w.PhysicsWorld()

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, proj *component.Projectile, t *component.Transform) {
		from := cp.Vector{X: t.X, Y: t.Y}
		delta := proj.Velocity.Mult(dt)

		if physics != nil {
			if physics.Overlaps(from, proj.Radius) {
				s.impact(w, e, proj, from)
				return
			}
			hit := physics.SweepCircle(from, delta, proj.Radius)
			if hit.Blocking {
				s.impact(w, e, proj, from.Add(delta.Mult(hit.Time)))
				return
			}
		}

		t.X += delta.X
		t.Y += delta.Y
		if physics != nil && !physics.Contains(cp.Vector{X: t.X, Y: t.Y}) {
			ecs.DestroyEntity(w, e)
		}
	})
}

func (s *ProjectileSystem) impact(w *ecs.World, e ecs.Entity, proj *component.Projectile, at cp.Vector) {
	w.Events().Push(ecs.Event{
		Kind:     ecs.EventProjectileHit,
		Entity:   e,
		Side:     proj.Side,
		Position: at,
	})
	ecs.DestroyEntity(w, e)
}
