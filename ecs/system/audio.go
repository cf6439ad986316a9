package system

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/mirrorshot/assets"
	"github.com/milk9111/mirrorshot/ecs"
	"github.com/milk9111/mirrorshot/ecs/component"
)

// VolumeSource reports the volume sounds should play at; zero mutes.
type VolumeSource interface {
	EffectiveVolume() float64
}

// AudioSystem plays the sound requests queued on Audio components and a hit
// sound for every projectile that struck a wall this tick. Without output
// the requests are counted and dropped, which keeps headless runs silent.
type AudioSystem struct {
	volume  VolumeSource
	output  bool
	players map[string]*audio.Player
	failed  map[string]bool
	played  map[string]int
}

func NewAudioSystem(volume VolumeSource, output bool) *AudioSystem {
	return &AudioSystem{
		volume:  volume,
		output:  output,
		players: map[string]*audio.Player{},
		failed:  map[string]bool{},
		played:  map[string]int{},
	}
}

// Played reports how many times a sound was requested.
func (a *AudioSystem) Played(name string) int {
	if a == nil {
		return 0
	}
	return a.played[name]
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		for _, req := range audioComp.Pending {
			a.play(req.Name)
		}
		audioComp.Pending = audioComp.Pending[:0]
	})

	w.Events().Each(func(evt ecs.Event) {
		if evt.Kind == ecs.EventProjectileHit {
			a.play("hit")
		}
	})
}

func (a *AudioSystem) play(name string) {
	a.played[name]++
	if !a.output || a.failed[name] {
		return
	}
	volume := 1.0
	if a.volume != nil {
		volume = a.volume.EffectiveVolume()
	}
	if volume <= 0 {
		return
	}

	player, ok := a.players[name]
	if !ok {
		var err error
		player, err = assets.LoadAudioPlayer(name)
		if err != nil {
			log.Printf("Audio: %v", err)
			a.failed[name] = true
			return
		}
		a.players[name] = player
	}

	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("Audio: rewind %s: %v", name, err)
		return
	}
	player.Play()
}
