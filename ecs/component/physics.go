package component

// Collider is the circle swept against the arena when an entity moves.
type Collider struct {
	Radius float64
}

var ColliderComponent = NewComponent[Collider]()
