package entity

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mirrorshot/ecs"
	"github.com/milk9111/mirrorshot/ecs/component"
	"github.com/milk9111/mirrorshot/pawn"
	"github.com/milk9111/mirrorshot/prefabs"
)

func TestNewPawnPairReflectsSpawn(t *testing.T) {
	w := ecs.NewWorld()
	primary, mirror, err := NewPawnPair(w, cp.Vector{X: -600, Y: 120})
	if err != nil {
		t.Fatalf("pawn pair: %v", err)
	}

	pt, ok := ecs.Get(w, primary, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("primary has no transform")
	}
	mt, ok := ecs.Get(w, mirror, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("mirror has no transform")
	}
	if pt.X != -mt.X || pt.Y != -mt.Y {
		t.Fatalf("mirror at (%v,%v) is not the reflection of (%v,%v)", mt.X, mt.Y, pt.X, pt.Y)
	}
	if math.Abs(mt.Yaw-math.Pi) > 1e-9 {
		t.Fatalf("mirror should face the opposite way, yaw %v", mt.Yaw)
	}

	if !ecs.Has(w, primary, component.PlayerTagComponent.Kind()) || !ecs.Has(w, primary, component.InputComponent.Kind()) {
		t.Fatalf("primary is missing its player tag or input")
	}
	if !ecs.Has(w, mirror, component.MirrorTagComponent.Kind()) {
		t.Fatalf("mirror is missing its tag")
	}
	if ecs.Has(w, mirror, component.PawnComponent.Kind()) {
		t.Fatalf("mirror must not run its own controller")
	}

	p, _ := ecs.Get(w, primary, component.PawnComponent.Kind())
	if p.Controller == nil || p.Controller.Config().MoveSpeed != 1000 {
		t.Fatalf("unexpected controller %+v", p.Controller)
	}
	got, ok := MirrorOf(w, p)
	if !ok || got != mirror {
		t.Fatalf("mirror handle resolved to %v ok=%v, want %v", got, ok, mirror)
	}

	ecs.DestroyEntity(w, mirror)
	if _, ok := MirrorOf(w, p); ok {
		t.Fatalf("a destroyed mirror must not resolve")
	}
	if !ecs.IsAlive(w, primary) {
		t.Fatalf("destroying the mirror must not touch the primary")
	}
}

func TestSpawnProjectile(t *testing.T) {
	w := ecs.NewWorld()

	cases := []struct {
		name string
		yaw  float64
		side pawn.Side
	}{
		{"forward_primary", 0, pawn.SidePrimary},
		{"right_mirror", math.Pi / 2, pawn.SideMirror},
		{"back_primary", math.Pi, pawn.SidePrimary},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := SpawnProjectile(w, cp.Vector{X: 10, Y: 20}, c.yaw, c.side)
			if err != nil {
				t.Fatalf("spawn: %v", err)
			}
			proj, ok := ecs.Get(w, e, component.ProjectileComponent.Kind())
			if !ok {
				t.Fatalf("no projectile component")
			}
			if math.Abs(proj.Velocity.Length()-3000) > 1e-6 {
				t.Fatalf("speed %v, want 3000", proj.Velocity.Length())
			}
			want := cp.ForAngle(c.yaw).Mult(3000)
			if proj.Velocity.Sub(want).Length() > 1e-6 {
				t.Fatalf("velocity %v, want %v", proj.Velocity, want)
			}
			if proj.Side != c.side.String() {
				t.Fatalf("side %q, want %q", proj.Side, c.side)
			}
			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			if tr.X != 10 || tr.Y != 20 {
				t.Fatalf("projectile at (%v,%v)", tr.X, tr.Y)
			}
			if ttl, ok := ecs.Get(w, e, component.TTLComponent.Kind()); !ok || ttl.Seconds != 3 {
				t.Fatalf("expected a 3s ttl, got %+v", ttl)
			}
		})
	}
}

func TestLoadArenaAttachesPhysics(t *testing.T) {
	w := ecs.NewWorld()
	primary, mirror, err := NewMatch(w, "arena")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		t.Fatalf("physics world not attached")
	}
	if len(pw.Layout().Walls) == 0 {
		t.Fatalf("arena walls were not loaded")
	}
	if _, ok := w.First(component.ArenaComponent.Kind()); !ok {
		t.Fatalf("arena entity missing")
	}
	for _, e := range []ecs.Entity{primary, mirror} {
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if !pw.Contains(cp.Vector{X: tr.X, Y: tr.Y}) {
			t.Fatalf("pawn %v spawned outside the arena", e)
		}
	}
}

func TestLoadArenaDefaultsWallColor(t *testing.T) {
	dir := t.TempDir()
	old := prefabs.DiskDir
	prefabs.DiskDir = dir
	defer func() { prefabs.DiskDir = old }()

	body := "name: bare\nhalf_extent_x: 500\nhalf_extent_y: 500\n"
	if err := os.WriteFile(filepath.Join(dir, "bare.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w := ecs.NewWorld()
	if _, err := LoadArena(w, "bare.yaml"); err != nil {
		t.Fatalf("load arena: %v", err)
	}
	e, ok := w.First(component.ArenaComponent.Kind())
	if !ok {
		t.Fatalf("arena entity missing")
	}
	arena, _ := ecs.Get(w, e, component.ArenaComponent.Kind())
	if arena.WallColor != defaultWallColor {
		t.Fatalf("wall colour %v, want default %v", arena.WallColor, defaultWallColor)
	}
}

func TestBuildEntityRejectsUnknownComponent(t *testing.T) {
	dir := t.TempDir()
	old := prefabs.DiskDir
	prefabs.DiskDir = dir
	defer func() { prefabs.DiskDir = old }()

	body := "name: odd\ncomponents:\n  transform: {x: 1}\n  jetpack: {}\n"
	if err := os.WriteFile(filepath.Join(dir, "odd.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w := ecs.NewWorld()
	_, err := BuildEntity(w, "odd.yaml")
	if err == nil || !strings.Contains(err.Error(), "jetpack") {
		t.Fatalf("expected an unknown component error, got %v", err)
	}
	if n := len(ecs.Entities(w)); n != 0 {
		t.Fatalf("failed build must not leave entities behind, got %d", n)
	}
}

func TestBuildEntityRejectsBadPawnTuning(t *testing.T) {
	dir := t.TempDir()
	old := prefabs.DiskDir
	prefabs.DiskDir = dir
	defer func() { prefabs.DiskDir = old }()

	body := "name: slow\ncomponents:\n  pawn: {move_speed: -1}\n"
	if err := os.WriteFile(filepath.Join(dir, "slow.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := BuildEntity(ecs.NewWorld(), "slow.yaml"); err == nil {
		t.Fatalf("expected invalid pawn config to fail the build")
	}
}
