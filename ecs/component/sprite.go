package component

import "image/color"

// Sprite draws an entity as a filled circle with an optional heading tick.
type Sprite struct {
	Color       color.RGBA
	Radius      float64
	HeadingLine float64
}

var SpriteComponent = NewComponent[Sprite]()
