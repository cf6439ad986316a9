package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type WallSpec struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// ArenaSpec is the static layout of a play field centred on the origin.
// The mirror pawn always spawns at the negated primary spawn.
type ArenaSpec struct {
	Name         string     `yaml:"name"`
	HalfExtentX  float64    `yaml:"half_extent_x"`
	HalfExtentY  float64    `yaml:"half_extent_y"`
	PrimarySpawn VectorSpec `yaml:"primary_spawn"`
	Walls        []WallSpec `yaml:"walls"`
	WallColor    *YAMLColor `yaml:"wall_color"`
}

func LoadArenaSpec(name string) (*ArenaSpec, error) {
	if name == "" {
		name = "arena.yaml"
	}
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		name += ".yaml"
	}
	spec, err := LoadSpec[ArenaSpec](name)
	if err != nil {
		return nil, err
	}
	if spec.HalfExtentX <= 0 || spec.HalfExtentY <= 0 {
		return nil, fmt.Errorf("prefabs: arena %s: half extents must be positive", name)
	}
	return &spec, nil
}

// AxisBindingSpec maps one key or gamepad axis onto an input axis. Exactly
// one of Key and GamepadAxis is set.
type AxisBindingSpec struct {
	Key         string  `yaml:"key"`
	GamepadAxis string  `yaml:"gamepad_axis"`
	Scale       float64 `yaml:"scale"`
}

type InputBindingsSpec struct {
	Deadzone float64                      `yaml:"deadzone"`
	Axes     map[string][]AxisBindingSpec `yaml:"axes"`
}

func LoadInputBindingsSpec() (*InputBindingsSpec, error) {
	spec, err := LoadSpec[InputBindingsSpec]("input.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// RGBA8 returns the colour as color.RGBA, or fallback when unset.
func (c *YAMLColor) RGBA8(fallback color.RGBA) color.RGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	r, g, b, a := c.Color.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
