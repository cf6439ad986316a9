package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mirrorshot/ecs"
	"github.com/milk9111/mirrorshot/ecs/component"
	"github.com/milk9111/mirrorshot/ecs/entity"
	"github.com/milk9111/mirrorshot/pawn"
)

// PawnControllerSystem runs each pawn's controller against the world: the
// transforms become swept bodies, projectiles are spawned as entities and
// sounds are queued on the pawn's Audio component.
type PawnControllerSystem struct {
	shots       int
	mirrorShots int
}

func NewPawnControllerSystem() *PawnControllerSystem {
	return &PawnControllerSystem{}
}

// Shots reports how many primary and mirror shots have fired so far.
func (s *PawnControllerSystem) Shots() (int, int) {
	if s == nil {
		return 0, 0
	}
	return s.shots, s.mirrorShots
}

func (s *PawnControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	physics := w.PhysicsWorld()

	ecs.ForEach3(w, component.PawnComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Pawn, input *component.Input, transform *component.Transform) {
		if p.Controller == nil {
			return
		}

		env := pawn.Env{
			Self:    newSweptBody(physics, transform, radiusOf(w, e)),
			Spawner: &worldSpawner{w: w},
			Sound:   &audioSink{w: w, e: e},
		}
		if mirror, ok := entity.MirrorOf(w, p); ok {
			if mt, ok := ecs.Get(w, mirror, component.TransformComponent.Kind()); ok {
				env.Mirror = newSweptBody(physics, mt, radiusOf(w, mirror))
			}
		}

		res := p.Controller.Tick(dt, pawn.Axes{
			MoveForward: input.MoveForward,
			MoveRight:   input.MoveRight,
			FireForward: input.FireForward,
			FireRight:   input.FireRight,
		}, env)

		if res.MirrorMissing {
			if !p.MirrorMissingLogged {
				log.Printf("PawnController: pawn %v has no live mirror; moving and firing alone", e)
				w.Events().Push(ecs.Event{Kind: ecs.EventMirrorMissing, Entity: e})
				p.MirrorMissingLogged = true
			}
		} else {
			p.MirrorMissingLogged = false
		}

		if res.Hit.Blocking {
			w.Events().Push(ecs.Event{
				Kind:     ecs.EventPawnBlocked,
				Entity:   e,
				Side:     pawn.SidePrimary.String(),
				Position: cp.Vector{X: transform.X, Y: transform.Y},
			})
		}
		if res.Fired {
			s.shots++
		}
		if res.MirrorFired {
			s.mirrorShots++
		}
	})
}

func radiusOf(w *ecs.World, e ecs.Entity) float64 {
	if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		return c.Radius
	}
	return 0
}

// sweptBody moves a transform through the arena. Without a physics world
// every sweep is unblocked.
type sweptBody struct {
	physics   *ecs.PhysicsWorld
	transform *component.Transform
	radius    float64
}

func newSweptBody(physics *ecs.PhysicsWorld, t *component.Transform, radius float64) *sweptBody {
	return &sweptBody{physics: physics, transform: t, radius: radius}
}

func (b *sweptBody) Position() cp.Vector {
	return cp.Vector{X: b.transform.X, Y: b.transform.Y}
}

func (b *sweptBody) Sweep(delta cp.Vector) pawn.Hit {
	if b.physics == nil {
		return pawn.Hit{Time: 1}
	}
	hit := b.physics.SweepCircle(b.Position(), delta, b.radius)
	return pawn.Hit{Blocking: hit.Blocking, Time: hit.Time, Normal: hit.Normal}
}

func (b *sweptBody) Move(delta cp.Vector, yaw float64) {
	b.transform.X += delta.X
	b.transform.Y += delta.Y
	b.transform.Yaw = yaw
}

type worldSpawner struct {
	w *ecs.World
}

func (s *worldSpawner) SpawnProjectile(location cp.Vector, yaw float64, side pawn.Side) bool {
	e, err := entity.SpawnProjectile(s.w, location, yaw, side)
	if err != nil {
		log.Printf("PawnController: spawn projectile: %v", err)
		return false
	}
	s.w.Events().Push(ecs.Event{Kind: ecs.EventShotFired, Entity: e, Side: side.String(), Position: location})
	return true
}

// audioSink queues sounds on the pawn's Audio component for AudioSystem.
type audioSink struct {
	w *ecs.World
	e ecs.Entity
}

func (a *audioSink) PlaySoundAt(name string, location cp.Vector) {
	audio, ok := ecs.Get(a.w, a.e, component.AudioComponent.Kind())
	if !ok {
		return
	}
	audio.Pending = append(audio.Pending, component.SoundRequest{Name: name, Location: location})
}
