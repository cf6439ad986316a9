package ecs

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func testArena() ArenaLayout {
	return ArenaLayout{
		HalfExtentX: 1000,
		HalfExtentY: 1000,
		Walls: []WallBox{
			{MinX: 200, MinY: -100, MaxX: 220, MaxY: 100},
		},
	}
}

func TestSweepCircle(t *testing.T) {
	pw := NewPhysicsWorld(testArena())

	cases := []struct {
		name      string
		from      cp.Vector
		delta     cp.Vector
		wantBlock bool
	}{
		{"open_space", cp.Vector{X: 0, Y: 0}, cp.Vector{X: 0, Y: 300}, false},
		{"into_wall", cp.Vector{X: 0, Y: 0}, cp.Vector{X: 300, Y: 0}, true},
		{"short_of_wall", cp.Vector{X: 0, Y: 0}, cp.Vector{X: 100, Y: 0}, false},
		{"into_bounds", cp.Vector{X: 0, Y: 0}, cp.Vector{X: 0, Y: -1500}, true},
		{"zero_delta", cp.Vector{X: 0, Y: 0}, cp.Vector{}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hit := pw.SweepCircle(c.from, c.delta, 20)
			if hit.Blocking != c.wantBlock {
				t.Fatalf("blocking=%v, want %v (hit %+v)", hit.Blocking, c.wantBlock, hit)
			}
			if !hit.Blocking && hit.Time != 1 {
				t.Fatalf("unblocked sweep should report time 1, got %v", hit.Time)
			}
			if hit.Blocking && (hit.Time < 0 || hit.Time >= 1) {
				t.Fatalf("blocked time %v out of range", hit.Time)
			}
		})
	}
}

func TestSweepCircleWallNormalFacesMover(t *testing.T) {
	pw := NewPhysicsWorld(testArena())

	hit := pw.SweepCircle(cp.Vector{}, cp.Vector{X: 300}, 20)
	if !hit.Blocking {
		t.Fatalf("expected to hit the wall")
	}
	if hit.Normal.X > -0.9 {
		t.Fatalf("expected normal pointing back at the mover, got %v", hit.Normal)
	}
	// contact at x=180 for a 20 radius circle
	if hit.Time < 0.5 || hit.Time > 0.61 {
		t.Fatalf("unexpected hit time %v", hit.Time)
	}
}

func TestContains(t *testing.T) {
	pw := NewPhysicsWorld(testArena())
	if !pw.Contains(cp.Vector{X: 999, Y: -999}) {
		t.Fatalf("point inside bounds reported outside")
	}
	if pw.Contains(cp.Vector{X: 1001}) {
		t.Fatalf("point outside bounds reported inside")
	}
}

func TestOverlaps(t *testing.T) {
	pw := NewPhysicsWorld(testArena())

	cases := []struct {
		name   string
		at     cp.Vector
		radius float64
		want   bool
	}{
		{"inside_wall", cp.Vector{X: 210, Y: 0}, 5, true},
		{"touching_face", cp.Vector{X: 195, Y: 0}, 10, true},
		{"clear", cp.Vector{X: 100, Y: 0}, 10, false},
		{"near_bounds", cp.Vector{X: 995, Y: 0}, 10, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := pw.Overlaps(c.at, c.radius); got != c.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", c.at, c.radius, got, c.want)
			}
		})
	}
}
