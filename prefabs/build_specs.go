package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PawnComponentSpec struct {
	MoveSpeed float64    `yaml:"move_speed"`
	GunOffset VectorSpec `yaml:"gun_offset"`
	FireRate  float64    `yaml:"fire_rate"`
	FireSound string     `yaml:"fire_sound"`
}

type TransformComponentSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Yaw float64 `yaml:"yaw"`
}

type ColliderComponentSpec struct {
	Radius float64 `yaml:"radius"`
}

type SpriteComponentSpec struct {
	Color       *YAMLColor `yaml:"color"`
	Radius      float64    `yaml:"radius"`
	HeadingLine float64    `yaml:"heading_line"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type ProjectileComponentSpec struct {
	Speed  float64 `yaml:"speed"`
	Radius float64 `yaml:"radius"`
}

type TTLComponentSpec struct {
	Seconds float64 `yaml:"seconds"`
}

type BotComponentSpec struct {
	Script string `yaml:"script"`
}

// PawnTuning reads the pawn component of a pawn prefab on its own, for hot
// reloading tuning into live controllers.
func PawnTuning(prefab string) (PawnComponentSpec, error) {
	spec, err := LoadEntityBuildSpec(prefab)
	if err != nil {
		return PawnComponentSpec{}, err
	}
	return DecodeComponentSpec[PawnComponentSpec](spec.Components["pawn"])
}
