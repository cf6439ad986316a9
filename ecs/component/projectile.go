package component

import "github.com/jakecoffman/cp"

// Projectile travels in a straight line until it hits a wall or its TTL
// runs out.
type Projectile struct {
	Velocity cp.Vector
	Radius   float64
	Side     string
}

var ProjectileComponent = NewComponent[Projectile]()
