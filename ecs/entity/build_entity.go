package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mirrorshot/ecs"
	"github.com/milk9111/mirrorshot/ecs/component"
	"github.com/milk9111/mirrorshot/pawn"
	"github.com/milk9111/mirrorshot/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"mirror_tag":   addMirrorTag,
	"pawn":         addPawn,
	"input":        addInput,
	"bot":          addBot,
	"transform":    addTransform,
	"collider":     addCollider,
	"sprite":       addSprite,
	"render_layer": addRenderLayer,
	"projectile":   addProjectile,
	"ttl":          addTTL,
	"audio":        addAudio,
}

var componentBuildOrder = []string{
	"player_tag",
	"mirror_tag",
	"pawn",
	"input",
	"bot",
	"transform",
	"collider",
	"sprite",
	"render_layer",
	"projectile",
	"ttl",
	"audio",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	return e, nil
}

// SetEntityTransform overrides the pose loaded from the prefab.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	t.Yaw = yaw
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addMirrorTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.MirrorTagComponent.Kind(), &component.MirrorTag{})
}

type pawnSpec = prefabs.PawnComponentSpec

// PawnConfig converts a decoded pawn block into controller tuning.
func PawnConfig(spec pawnSpec) pawn.Config {
	return pawn.Config{
		MoveSpeed: spec.MoveSpeed,
		GunOffset: cp.Vector{X: spec.GunOffset.X, Y: spec.GunOffset.Y},
		FireRate:  spec.FireRate,
		FireSound: spec.FireSound,
	}
}

func addPawn(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	cfg := pawn.DefaultConfig()
	if raw != nil {
		spec, err := prefabs.DecodeComponentSpec[pawnSpec](raw)
		if err != nil {
			return fmt.Errorf("decode pawn spec: %w", err)
		}
		cfg = PawnConfig(spec)
	}

	ctrl, err := pawn.NewController(cfg)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.PawnComponent.Kind(), &component.Pawn{Controller: ctrl})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type botSpec = prefabs.BotComponentSpec

func addBot(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[botSpec](raw)
	if err != nil {
		return fmt.Errorf("decode bot spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("bot requires a script")
	}
	return ecs.Add(w, e, component.BotComponent.Kind(), &component.Bot{Script: prefabs.ScriptName(spec.Script)})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:   spec.X,
		Y:   spec.Y,
		Yaw: spec.Yaw,
	})
}

type colliderSpec = prefabs.ColliderComponentSpec

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	if spec.Radius < 0 {
		return fmt.Errorf("collider radius %v is negative", spec.Radius)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: spec.Radius})
}

type spriteSpec = prefabs.SpriteComponentSpec

var defaultSpriteColor = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Color:       spec.Color.RGBA8(defaultSpriteColor),
		Radius:      spec.Radius,
		HeadingLine: spec.HeadingLine,
	})
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type projectileSpec = prefabs.ProjectileComponentSpec

// addProjectile stores the muzzle speed along +X; SpawnProjectile rotates it
// to the fire yaw.
func addProjectile(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[projectileSpec](raw)
	if err != nil {
		return fmt.Errorf("decode projectile spec: %w", err)
	}
	if spec.Speed <= 0 {
		return fmt.Errorf("projectile speed must be positive, got %v", spec.Speed)
	}
	return ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Velocity: cp.Vector{X: spec.Speed},
		Radius:   spec.Radius,
	})
}

type ttlSpec = prefabs.TTLComponentSpec

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[ttlSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: spec.Seconds})
}

func addAudio(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.AudioComponent.Kind(), &component.Audio{})
}
