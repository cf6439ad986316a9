package component

// Transform is a top-down pose: X forward, Y right, Yaw in radians.
type Transform struct {
	X   float64
	Y   float64
	Yaw float64
}

var TransformComponent = NewComponent[Transform]()
