package pawn

const cooldownEpsilon = 1e-9

// Cooldown is a countdown in seconds. It is Ready when nothing remains.
type Cooldown struct {
	remaining float64
}

// Ready reports whether the countdown has elapsed.
func (c *Cooldown) Ready() bool {
	return c.remaining <= cooldownEpsilon
}

// Remaining returns the seconds left before Ready.
func (c *Cooldown) Remaining() float64 {
	if c.Ready() {
		return 0
	}
	return c.remaining
}

// Start puts the cooldown into Cooling-down for d seconds.
func (c *Cooldown) Start(d float64) {
	if d < 0 {
		d = 0
	}
	c.remaining = d
}

// Advance consumes dt seconds and reports whether this call moved the
// cooldown from Cooling-down to Ready.
func (c *Cooldown) Advance(dt float64) bool {
	if c.Ready() || dt <= 0 {
		return false
	}
	c.remaining -= dt
	if c.remaining <= cooldownEpsilon {
		c.remaining = 0
		return true
	}
	return false
}

// Reset forces the cooldown back to Ready.
func (c *Cooldown) Reset() {
	c.remaining = 0
}
