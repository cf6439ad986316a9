package pawn

import (
	"math"

	"github.com/jakecoffman/cp"
)

const maxMoveMagnitude = 1.0

// MoveDirection builds the X-forward/Y-right direction from the two move
// axes, clamped so diagonals are no faster than straight moves.
func MoveDirection(forward, right float64) cp.Vector {
	return cp.Vector{X: forward, Y: right}.Clamp(maxMoveMagnitude)
}

// Heading returns the yaw of v in radians.
func Heading(v cp.Vector) float64 {
	return v.ToAngle()
}

// Opposite returns the yaw pointing the other way, kept in (-pi, pi].
// The mirror pawn uses it so it faces along its own point-reflected
// displacement; this is a half turn, not the yaw negated about the
// forward axis.
func Opposite(yaw float64) float64 {
	return normalizeAngle(yaw + math.Pi)
}

// SafeNormal2D returns n normalized, or zero when n has no length.
func SafeNormal2D(n cp.Vector) cp.Vector {
	if n.LengthSq() < 1e-16 {
		return cp.Vector{}
	}
	return n.Normalize()
}

// PlaneProject removes the component of v along the plane normal n.
func PlaneProject(v, n cp.Vector) cp.Vector {
	return v.Sub(n.Mult(v.Dot(n)))
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
