package component

// Input stores the four axes polled for a pawn this tick.
type Input struct {
	MoveForward float64
	MoveRight   float64
	FireForward float64
	FireRight   float64
}

var InputComponent = NewComponent[Input]()
