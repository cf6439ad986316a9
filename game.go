package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/mirrorshot/common"
	"github.com/milk9111/mirrorshot/ecs"
	"github.com/milk9111/mirrorshot/ecs/component"
	"github.com/milk9111/mirrorshot/ecs/entity"
	"github.com/milk9111/mirrorshot/ecs/system"
	"github.com/milk9111/mirrorshot/prefabs"
	"github.com/milk9111/mirrorshot/settings"
)

type GameConfig struct {
	Arena string
	Bot   string
	Debug bool
}

type Game struct {
	world    *ecs.World
	pipeline *system.Pipeline
	render   *system.RenderSystem
	settings *settings.Manager
	watcher  *prefabs.Watcher

	primary ecs.Entity

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(cfg GameConfig) (*Game, error) {
	prefs, err := settings.Open()
	if err != nil {
		log.Printf("[Settings] %v (settings will not persist)", err)
	}

	bindings, err := system.LoadBindings()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	world := ecs.NewWorld()
	primary, _, err := entity.NewMatch(world, cfg.Arena)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if cfg.Bot != "" {
		if err := ecs.Add(world, primary, component.BotComponent.Kind(), &component.Bot{Script: prefabs.ScriptName(cfg.Bot)}); err != nil {
			return nil, fmt.Errorf("game: attach bot: %w", err)
		}
	}

	render := system.NewRenderSystem()
	render.Debug = cfg.Debug

	g := &Game{
		world:    world,
		pipeline: system.NewPipeline(bindings, prefs, true),
		render:   render,
		settings: prefs,
		primary:  primary,
	}
	g.pauseUI = NewPauseUI(g)
	g.watchPrefabs()
	return g, nil
}

// watchPrefabs enables hot reload when the prefab directory exists on disk.
func (g *Game) watchPrefabs() {
	dirs := []string{}
	for _, dir := range []string{prefabs.DiskDir, prefabs.DiskDir + "/scripts"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return
	}
	watcher, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("Reload: watcher disabled: %v", err)
		return
	}
	g.watcher = watcher
	log.Printf("Reload: watching %v", dirs)
}

func (g *Game) Update() error {
	if g.quit {
		g.Close()
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || g.startPressed() {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.applyReloads()
	g.pipeline.Update(g.world, 1.0/common.TPS)
	return nil
}

func (g *Game) startPressed() bool {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}

func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for _, change := range g.watcher.Poll() {
		if err := g.pipeline.Reload(g.world, change); err != nil {
			log.Printf("Reload: %s: %v", change.Path, err)
		}
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("Reload: watcher: %v", err)
		}
	default:
	}
}

func (g *Game) toggleMute() bool {
	muted := g.settings.ToggleMute()
	if err := g.settings.Save(); err != nil {
		log.Printf("[Settings] %v", err)
	}
	return muted
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
		g.watcher = nil
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
