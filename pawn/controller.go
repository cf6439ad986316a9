package pawn

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var ErrInvalidConfig = errors.New("pawn: invalid config")

// Axis binding names polled once per tick.
const (
	MoveForwardBinding = "MoveForward"
	MoveRightBinding   = "MoveRight"
	FireForwardBinding = "FireForward"
	FireRightBinding   = "FireRight"
)

// Side tells a spawner which pawn of the pair a shot belongs to.
type Side int

const (
	SidePrimary Side = iota
	SideMirror
)

func (s Side) String() string {
	if s == SideMirror {
		return "mirror"
	}
	return "primary"
}

// Axes are the four input values read for one tick.
type Axes struct {
	MoveForward float64
	MoveRight   float64
	FireForward float64
	FireRight   float64
}

// Hit describes the first blocking contact of a swept move. Time is the
// fraction of the requested displacement travelled before contact.
type Hit struct {
	Blocking bool
	Time     float64
	Normal   cp.Vector
}

// Body is a pawn the controller can sweep and move.
type Body interface {
	Position() cp.Vector
	Sweep(delta cp.Vector) Hit
	Move(delta cp.Vector, yaw float64)
}

type Spawner interface {
	SpawnProjectile(location cp.Vector, yaw float64, side Side) bool
}

type SoundPlayer interface {
	PlaySoundAt(name string, location cp.Vector)
}

// Env carries the collaborators for one tick. Mirror is nil when the
// mirror reference did not resolve; Spawner and Sound may be nil.
type Env struct {
	Self    Body
	Mirror  Body
	Spawner Spawner
	Sound   SoundPlayer
}

// Result summarizes what a tick did.
type Result struct {
	Displacement       cp.Vector
	MirrorDisplacement cp.Vector
	Hit                Hit
	Fired              bool
	MirrorFired        bool
	MirrorMissing      bool
	CooldownExpired    bool
}

type Config struct {
	MoveSpeed float64
	GunOffset cp.Vector
	FireRate  float64
	FireSound string
}

// DefaultConfig returns the stock twin-stick tuning.
func DefaultConfig() Config {
	return Config{
		MoveSpeed: 1000,
		GunOffset: cp.Vector{X: 90, Y: 0},
		FireRate:  0.1,
		FireSound: "fire",
	}
}

func (c Config) Validate() error {
	if c.MoveSpeed < 0 {
		return fmt.Errorf("%w: move speed %v is negative", ErrInvalidConfig, c.MoveSpeed)
	}
	if c.FireRate < 0 {
		return fmt.Errorf("%w: fire rate %v is negative", ErrInvalidConfig, c.FireRate)
	}
	return nil
}

// Controller drives one pawn and its mirror.
type Controller struct {
	cfg      Config
	cooldown Cooldown
}

func NewController(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Controller{cfg: cfg}, nil
}

func (c *Controller) Config() Config {
	return c.cfg
}

// SetConfig swaps the tuning in place; a running cooldown is kept.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *Controller) CanFire() bool {
	return c.cooldown.Ready()
}

func (c *Controller) Cooldown() *Cooldown {
	return &c.cooldown
}

// Tick runs one simulation step.
func (c *Controller) Tick(dt float64, axes Axes, env Env) Result {
	var res Result
	res.CooldownExpired = c.cooldown.Advance(dt)
	if env.Self == nil {
		return res
	}
	res.MirrorMissing = env.Mirror == nil

	delta := MoveDirection(axes.MoveForward, axes.MoveRight).Mult(c.cfg.MoveSpeed * dt)
	if delta.LengthSq() > 0 {
		c.move(delta, env, &res)
	}

	fireDir := cp.Vector{X: axes.FireForward, Y: axes.FireRight}
	res.Fired = c.fireShot(env.Self.Position(), fireDir, SidePrimary, env)
	if env.Mirror != nil {
		res.MirrorFired = c.fireShot(env.Mirror.Position(), fireDir.Neg(), SideMirror, env)
	}

	if res.Fired {
		c.cooldown.Start(c.cfg.FireRate)
	}
	return res
}

func (c *Controller) move(delta cp.Vector, env Env, res *Result) {
	yaw := Heading(delta)
	mirrorYaw := Opposite(yaw)

	hit, other := sweepPair(delta, env)
	t := 1.0
	if hit.Blocking {
		t = clamp01(hit.Time)
	}
	applied := delta.Mult(t)
	env.Self.Move(applied, yaw)
	if env.Mirror != nil {
		env.Mirror.Move(applied.Neg(), mirrorYaw)
	}

	if hit.Blocking {
		deflection := deflect(delta, hit, other).Mult(1 - t)
		if deflection.LengthSq() > 0 {
			env.Self.Move(deflection, yaw)
			if env.Mirror != nil {
				env.Mirror.Move(deflection.Neg(), mirrorYaw)
			}
			applied = applied.Add(deflection)
		}
	}

	res.Hit = hit
	res.Displacement = applied
	if env.Mirror != nil {
		res.MirrorDisplacement = applied.Neg()
	}
}

// sweepPair sweeps the primary by delta and the mirror by -delta. Both hits
// are returned in the primary's frame, the earlier one first; other is only
// Blocking when both pawns were stopped.
func sweepPair(delta cp.Vector, env Env) (first, other Hit) {
	first = env.Self.Sweep(delta)
	if env.Mirror == nil {
		return first, Hit{}
	}
	mh := env.Mirror.Sweep(delta.Neg())
	if !mh.Blocking {
		return first, Hit{}
	}
	mh = Hit{Blocking: true, Time: mh.Time, Normal: mh.Normal.Neg()}
	if !first.Blocking {
		return mh, Hit{}
	}
	if mh.Time < first.Time {
		return mh, first
	}
	return first, mh
}

// deflect projects v onto the plane of the first hit and, when the other
// pawn was blocked too, onto that plane as well. The slide is not swept, so
// a direction that still enters either wall becomes zero.
func deflect(v cp.Vector, first, other Hit) cp.Vector {
	n1 := SafeNormal2D(first.Normal)
	out := PlaneProject(v, n1)
	if !other.Blocking {
		return out
	}
	n2 := SafeNormal2D(other.Normal)
	if out.Dot(n2) >= 0 {
		return out
	}
	out = PlaneProject(out, n2)
	if out.Dot(n1) < -1e-9 {
		return cp.Vector{}
	}
	return out
}

// fireShot spawns one projectile if the cooldown allows it. Only the
// primary side plays the fire sound.
func (c *Controller) fireShot(location, dir cp.Vector, side Side, env Env) bool {
	if !c.cooldown.Ready() || dir.LengthSq() <= 0 {
		return false
	}

	yaw := Heading(dir)
	spawnAt := location.Add(c.cfg.GunOffset.Rotate(cp.ForAngle(yaw)))
	if env.Spawner != nil {
		env.Spawner.SpawnProjectile(spawnAt, yaw, side)
	}

	if side == SidePrimary && env.Sound != nil && c.cfg.FireSound != "" {
		env.Sound.PlaySoundAt(c.cfg.FireSound, location)
	}
	return true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
