package component

import "github.com/jakecoffman/cp"

// SoundRequest asks the audio system to play a named clip.
type SoundRequest struct {
	Name     string
	Location cp.Vector
}

// Audio queues sound requests raised on an entity during a tick.
type Audio struct {
	Pending []SoundRequest
}

var AudioComponent = NewComponent[Audio]()
