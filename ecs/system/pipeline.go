package system

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/milk9111/mirrorshot/ecs"
	"github.com/milk9111/mirrorshot/ecs/component"
	"github.com/milk9111/mirrorshot/ecs/entity"
	"github.com/milk9111/mirrorshot/prefabs"
)

// Pipeline is the gameplay system order shared by the window and headless
// runners: devices, bots, pawns, projectiles, lifetimes, sound.
type Pipeline struct {
	Input       *InputSystem
	Bots        *BotSystem
	Pawns       *PawnControllerSystem
	Projectiles *ProjectileSystem
	TTL         *TTLSystem
	Audio       *AudioSystem

	scheduler *ecs.Scheduler
}

// NewPipeline builds the systems. A nil bindings table leaves out device
// input, for runs driven only by bots.
func NewPipeline(bindings *Bindings, volume VolumeSource, audioOutput bool) *Pipeline {
	p := &Pipeline{
		Bots:        NewBotSystem(),
		Pawns:       NewPawnControllerSystem(),
		Projectiles: NewProjectileSystem(),
		TTL:         NewTTLSystem(),
		Audio:       NewAudioSystem(volume, audioOutput),
	}
	p.scheduler = ecs.NewScheduler()
	if bindings != nil {
		p.Input = NewInputSystem(bindings)
		p.scheduler.Add(p.Input)
	}
	p.scheduler.Add(p.Bots)
	p.scheduler.Add(p.Pawns)
	p.scheduler.Add(p.Projectiles)
	p.scheduler.Add(p.TTL)
	p.scheduler.Add(p.Audio)
	return p
}

func (p *Pipeline) Update(w *ecs.World, dt float64) {
	p.scheduler.Update(w, dt)
}

// Reload applies an edited prefab or script to the running world.
func (p *Pipeline) Reload(w *ecs.World, change prefabs.Change) error {
	if change.Kind == prefabs.ChangeScript {
		p.Bots.Invalidate()
		log.Printf("Reload: bot scripts invalidated by %s", filepath.Base(change.Path))
		return nil
	}

	switch filepath.Base(change.Path) {
	case entity.PawnPrefab:
		spec, err := prefabs.PawnTuning(entity.PawnPrefab)
		if err != nil {
			return err
		}
		cfg := entity.PawnConfig(spec)
		var applyErr error
		ecs.ForEach(w, component.PawnComponent.Kind(), func(e ecs.Entity, pc *component.Pawn) {
			if pc.Controller == nil || applyErr != nil {
				return
			}
			if err := pc.Controller.SetConfig(cfg); err != nil {
				applyErr = fmt.Errorf("reload: pawn %v: %w", e, err)
			}
		})
		if applyErr != nil {
			return applyErr
		}
		log.Printf("Reload: pawn tuning speed=%.0f fire_rate=%.3f", cfg.MoveSpeed, cfg.FireRate)
	case "input.yaml":
		if p.Input == nil {
			return nil
		}
		b, err := LoadBindings()
		if err != nil {
			return err
		}
		p.Input.SetBindings(b)
		log.Printf("Reload: input bindings")
	default:
		log.Printf("Reload: %s changed; new entities pick it up", filepath.Base(change.Path))
	}
	return nil
}
