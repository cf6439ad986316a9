package system

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/mirrorshot/common"
	"github.com/milk9111/mirrorshot/ecs"
	"github.com/milk9111/mirrorshot/ecs/component"
)

var (
	boundsColor   = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	mirrorAxisCol = color.RGBA{R: 0x42, G: 0x42, B: 0x42, A: 0xff}
)

// RenderSystem draws the arena and every Transform + Sprite entity.
type RenderSystem struct {
	Debug bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	r.drawArena(w, screen)

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if t == nil || s == nil {
			continue
		}

		cx, cy := common.WorldToScreen(t.X, t.Y)
		vector.FillCircle(screen, float32(cx), float32(cy), float32(s.Radius*common.WorldScale), s.Color, true)

		if s.HeadingLine > 0 {
			hx, hy := common.WorldToScreen(t.X+math.Cos(t.Yaw)*s.HeadingLine, t.Y+math.Sin(t.Yaw)*s.HeadingLine)
			vector.StrokeLine(screen, float32(cx), float32(cy), float32(hx), float32(hy), 3, color.White, true)
		}
	}

	if r.Debug {
		DrawPhysicsDebug(w, screen)
		r.drawDebug(w, screen)
	}
}

func (r *RenderSystem) drawArena(w *ecs.World, screen *ebiten.Image) {
	physics := w.PhysicsWorld()
	if physics == nil {
		return
	}
	layout := physics.Layout()

	// LoadArena always records a colour; bare physics worlds draw walls
	// like the bounds.
	wallColor := boundsColor
	if e, ok := w.First(component.ArenaComponent.Kind()); ok {
		if arena, ok := ecs.Get(w, e, component.ArenaComponent.Kind()); ok {
			wallColor = arena.WallColor
		}
	}

	x0, y0 := common.WorldToScreen(layout.HalfExtentX, -layout.HalfExtentY)
	x1, y1 := common.WorldToScreen(-layout.HalfExtentX, layout.HalfExtentY)
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 2, boundsColor, false)

	// point reflection centre
	cx, cy := common.WorldToScreen(0, 0)
	vector.StrokeLine(screen, float32(cx-6), float32(cy), float32(cx+6), float32(cy), 1, mirrorAxisCol, false)
	vector.StrokeLine(screen, float32(cx), float32(cy-6), float32(cx), float32(cy+6), 1, mirrorAxisCol, false)

	for _, wall := range layout.Walls {
		wx0, wy0 := common.WorldToScreen(wall.MaxX, wall.MinY)
		wx1, wy1 := common.WorldToScreen(wall.MinX, wall.MaxY)
		vector.FillRect(screen, float32(wx0), float32(wy0), float32(wx1-wx0), float32(wy1-wy0), wallColor, false)
	}
}

func (r *RenderSystem) drawDebug(w *ecs.World, screen *ebiten.Image) {
	msg := fmt.Sprintf("TPS %.0f  FPS %.0f  tick %d  projectiles %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(), w.Ticks(), len(w.Query(component.ProjectileComponent.Kind())))

	if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if p, ok := ecs.Get(w, e, component.PawnComponent.Kind()); ok && p.Controller != nil {
			msg += fmt.Sprintf("\ncooldown %.3fs  ready %v", p.Controller.Cooldown().Remaining(), p.Controller.CanFire())
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			msg += fmt.Sprintf("\npawn (%.1f, %.1f) yaw %.2f", t.X, t.Y, t.Yaw)
		}
	}
	if e, ok := w.First(component.MirrorTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			msg += fmt.Sprintf("\nmirror (%.1f, %.1f) yaw %.2f", t.X, t.Y, t.Yaw)
		}
	}
	ebitenutil.DebugPrint(screen, msg)
}
