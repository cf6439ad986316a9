package component

import "image/color"

// Arena holds the drawing data of the loaded arena. Collision lives in the
// world's physics world.
type Arena struct {
	Name      string
	WallColor color.RGBA
}

var ArenaComponent = NewComponent[Arena]()
