package ecs

import (
	"log"

	"github.com/jakecoffman/cp"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBounds
)

const (
	categoryWall uint = 1 << iota
	categoryMover
)

// sweepSkin keeps swept movers this far off a wall so the next sweep does
// not start in contact.
const sweepSkin = 0.5

// WallBox is an axis-aligned static wall in world units.
type WallBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// ArenaLayout describes the static collision of an arena centred on the
// origin. X is forward, Y is right.
type ArenaLayout struct {
	HalfExtentX float64
	HalfExtentY float64
	Walls       []WallBox
}

// SweepHit is the first wall touched by a swept circle.
type SweepHit struct {
	Blocking bool
	Time     float64
	Normal   cp.Vector
	Point    cp.Vector
}

// PhysicsWorld owns the Chipmunk space holding the arena's static shapes.
type PhysicsWorld struct {
	layout ArenaLayout
	space  *cp.Space
	shapes int
}

// NewPhysicsWorld builds a space for an arena layout.
func NewPhysicsWorld(layout ArenaLayout) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10

	pw := &PhysicsWorld{
		layout: layout,
		space:  space,
	}
	pw.buildStaticShapes()
	log.Printf("PhysicsWorld: built arena %.0fx%.0f with %d static shapes", layout.HalfExtentX*2, layout.HalfExtentY*2, pw.shapes)
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func (pw *PhysicsWorld) Layout() ArenaLayout {
	if pw == nil {
		return ArenaLayout{}
	}
	return pw.layout
}

// SweepCircle moves a circle of radius from `from` along delta and reports
// the first wall it would touch. Time is pulled back by a small skin.
func (pw *PhysicsWorld) SweepCircle(from, delta cp.Vector, radius float64) SweepHit {
	if pw == nil || pw.space == nil {
		return SweepHit{Time: 1}
	}
	length := delta.Length()
	if length == 0 {
		return SweepHit{Time: 1}
	}

	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categoryMover, Mask: categoryWall}
	info := pw.space.SegmentQueryFirst(from, from.Add(delta), radius, filter)
	if info.Shape == nil {
		return SweepHit{Time: 1}
	}

	t := info.Alpha - sweepSkin/length
	if t < 0 {
		t = 0
	}
	return SweepHit{
		Blocking: true,
		Time:     t,
		Normal:   info.Normal,
		Point:    info.Point,
	}
}

// Overlaps reports whether a circle at p already touches a wall. Segment
// queries skip a shape whose inside they start in, so movers spawned there
// need this check first.
func (pw *PhysicsWorld) Overlaps(p cp.Vector, radius float64) bool {
	if pw == nil || pw.space == nil {
		return false
	}
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categoryMover, Mask: categoryWall}
	info := pw.space.PointQueryNearest(p, radius, filter)
	return info != nil && info.Shape != nil && info.Distance < radius
}

// Contains reports whether p lies inside the arena bounds.
func (pw *PhysicsWorld) Contains(p cp.Vector) bool {
	if pw == nil {
		return false
	}
	return p.X >= -pw.layout.HalfExtentX && p.X <= pw.layout.HalfExtentX &&
		p.Y >= -pw.layout.HalfExtentY && p.Y <= pw.layout.HalfExtentY
}

func (pw *PhysicsWorld) buildStaticShapes() {
	if pw == nil || pw.space == nil {
		return
	}
	wallFilter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categoryWall, Mask: cp.ALL_CATEGORIES}

	for _, wall := range pw.layout.Walls {
		if wall.MaxX <= wall.MinX || wall.MaxY <= wall.MinY {
			log.Printf("PhysicsWorld: skipping degenerate wall %+v", wall)
			continue
		}
		bb := cp.BB{L: wall.MinX, B: wall.MinY, R: wall.MaxX, T: wall.MaxY}
		shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(wallFilter)
		pw.space.AddShape(shape)
		pw.shapes++
	}

	hx := pw.layout.HalfExtentX
	hy := pw.layout.HalfExtentY
	if hx <= 0 || hy <= 0 {
		return
	}
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: -hx, Y: -hy}, b: cp.Vector{X: hx, Y: -hy}},
		{a: cp.Vector{X: -hx, Y: hy}, b: cp.Vector{X: hx, Y: hy}},
		{a: cp.Vector{X: -hx, Y: -hy}, b: cp.Vector{X: -hx, Y: hy}},
		{a: cp.Vector{X: hx, Y: -hy}, b: cp.Vector{X: hx, Y: hy}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(pw.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeBounds)
		shape.SetFilter(wallFilter)
		pw.space.AddShape(shape)
		pw.shapes++
	}
}
