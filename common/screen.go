package common

const (
	BaseWidth  = 1280
	BaseHeight = 720
	TPS        = 60

	// WorldScale converts world units to screen pixels.
	WorldScale = 0.25
)

// WorldToScreen maps a world point (X forward, Y right) onto the screen
// with the arena origin at the centre and forward pointing up.
func WorldToScreen(x, y float64) (float64, float64) {
	return BaseWidth/2 + y*WorldScale, BaseHeight/2 - x*WorldScale
}

// ScreenToWorld is the inverse of WorldToScreen.
func ScreenToWorld(sx, sy float64) (float64, float64) {
	return (BaseHeight/2 - sy) / WorldScale, (sx - BaseWidth/2) / WorldScale
}
