package system

import (
	"fmt"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/mirrorshot/ecs"
	"github.com/milk9111/mirrorshot/ecs/component"
	"github.com/milk9111/mirrorshot/pawn"
	"github.com/milk9111/mirrorshot/prefabs"
)

var gamepadAxes = map[string]ebiten.StandardGamepadAxis{
	"left_stick_horizontal":  ebiten.StandardGamepadAxisLeftStickHorizontal,
	"left_stick_vertical":    ebiten.StandardGamepadAxisLeftStickVertical,
	"right_stick_horizontal": ebiten.StandardGamepadAxisRightStickHorizontal,
	"right_stick_vertical":   ebiten.StandardGamepadAxisRightStickVertical,
}

type axisBinding struct {
	key     ebiten.Key
	hasKey  bool
	gamepad ebiten.StandardGamepadAxis
	scale   float64
}

// Bindings maps the four pawn axes to keys and gamepad axes.
type Bindings struct {
	Deadzone float64
	axes     map[string][]axisBinding
}

// NewBindings validates a binding table loaded from yaml.
func NewBindings(spec *prefabs.InputBindingsSpec) (*Bindings, error) {
	if spec == nil {
		return nil, fmt.Errorf("input: bindings spec is nil")
	}
	b := &Bindings{Deadzone: spec.Deadzone, axes: make(map[string][]axisBinding, len(spec.Axes))}
	for axis, entries := range spec.Axes {
		switch axis {
		case pawn.MoveForwardBinding, pawn.MoveRightBinding, pawn.FireForwardBinding, pawn.FireRightBinding:
		default:
			return nil, fmt.Errorf("input: unknown axis %q", axis)
		}
		for _, entry := range entries {
			ab := axisBinding{scale: entry.Scale}
			if ab.scale == 0 {
				ab.scale = 1
			}
			switch {
			case entry.Key != "" && entry.GamepadAxis != "":
				return nil, fmt.Errorf("input: %s binding sets both key and gamepad axis", axis)
			case entry.Key != "":
				var k ebiten.Key
				if err := k.UnmarshalText([]byte(entry.Key)); err != nil {
					return nil, fmt.Errorf("input: %s: %w", axis, err)
				}
				ab.key = k
				ab.hasKey = true
			case entry.GamepadAxis != "":
				ga, ok := gamepadAxes[strings.ToLower(entry.GamepadAxis)]
				if !ok {
					return nil, fmt.Errorf("input: %s: unknown gamepad axis %q", axis, entry.GamepadAxis)
				}
				ab.gamepad = ga
			default:
				return nil, fmt.Errorf("input: %s binding sets neither key nor gamepad axis", axis)
			}
			b.axes[axis] = append(b.axes[axis], ab)
		}
	}
	return b, nil
}

// LoadBindings reads input.yaml.
func LoadBindings() (*Bindings, error) {
	spec, err := prefabs.LoadInputBindingsSpec()
	if err != nil {
		return nil, err
	}
	return NewBindings(spec)
}

// DeviceState is what the bindings read from. Gamepad is nil when no
// gamepad is connected.
type DeviceState struct {
	KeyPressed func(ebiten.Key) bool
	Gamepad    func(ebiten.StandardGamepadAxis) float64
}

// Fold sums every binding of an axis and clamps the result to [-1, 1].
func (b *Bindings) Fold(axis string, dev DeviceState) float64 {
	if b == nil {
		return 0
	}
	sum := 0.0
	for _, ab := range b.axes[axis] {
		if ab.hasKey {
			if dev.KeyPressed != nil && dev.KeyPressed(ab.key) {
				sum += ab.scale
			}
			continue
		}
		if dev.Gamepad == nil {
			continue
		}
		v := dev.Gamepad(ab.gamepad)
		if math.Abs(v) <= b.Deadzone {
			continue
		}
		sum += v * ab.scale
	}
	return math.Max(-1, math.Min(1, sum))
}

// Axes folds all four axes at once.
func (b *Bindings) Axes(dev DeviceState) component.Input {
	return component.Input{
		MoveForward: b.Fold(pawn.MoveForwardBinding, dev),
		MoveRight:   b.Fold(pawn.MoveRightBinding, dev),
		FireForward: b.Fold(pawn.FireForwardBinding, dev),
		FireRight:   b.Fold(pawn.FireRightBinding, dev),
	}
}

// InputSystem polls the keyboard and the first standard gamepad into every
// Input component not driven by a bot.
type InputSystem struct {
	bindings *Bindings
}

func NewInputSystem(bindings *Bindings) *InputSystem {
	return &InputSystem{bindings: bindings}
}

// SetBindings swaps the binding table after a reload.
func (i *InputSystem) SetBindings(b *Bindings) {
	if i == nil || b == nil {
		return
	}
	i.bindings = b
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.bindings == nil {
		return
	}

	dev := DeviceState{KeyPressed: ebiten.IsKeyPressed}
	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			dev.Gamepad = func(a ebiten.StandardGamepadAxis) float64 {
				return ebiten.StandardGamepadAxisValue(id, a)
			}
		}
	}
	axes := i.bindings.Axes(dev)

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		if ecs.Has(w, e, component.BotComponent.Kind()) {
			return
		}
		*input = axes
	})
}
