package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const AppName = "mirrorshot"

const (
	settingsObject   = "settings"
	settingsProperty = "audio"
)

// Settings are the user preferences kept between runs.
type Settings struct {
	SoundVolume float64 `yaml:"soundVolume"`
	Muted       bool    `yaml:"muted"`
}

func Default() Settings {
	return Settings{SoundVolume: 0.8}
}

// Manager loads and saves Settings through gdata. A nil gdata manager
// keeps everything in memory.
type Manager struct {
	store    *gdata.Manager
	settings Settings
}

// Open opens the per-user data directory. On failure the returned manager
// still works in memory and the error is reported.
func Open() (*Manager, error) {
	store, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return NewManager(nil), fmt.Errorf("settings: open storage: %w", err)
	}
	return NewManager(store), nil
}

func NewManager(store *gdata.Manager) *Manager {
	m := &Manager{store: store, settings: Default()}
	if err := m.Load(); err != nil {
		log.Printf("[Settings] failed to load settings: %v (using defaults)", err)
	}
	return m
}

func (m *Manager) Load() error {
	m.settings = Default()
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("settings: load: %w", err)
	}
	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("settings: unmarshal: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	m.settings = loaded
	return nil
}

func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	log.Printf("[Settings] saved")
	return nil
}

func (m *Manager) Settings() Settings {
	if m == nil {
		return Default()
	}
	return m.settings
}

func (m *Manager) SetSoundVolume(v float64) {
	m.settings.SoundVolume = clampVolume(v)
}

// ToggleMute flips the mute flag and reports the new state. The change is
// kept in memory until Save.
func (m *Manager) ToggleMute() bool {
	m.settings.Muted = !m.settings.Muted
	return m.settings.Muted
}

// EffectiveVolume is the volume sounds should play at, zero when muted.
func (m *Manager) EffectiveVolume() float64 {
	s := m.Settings()
	if s.Muted {
		return 0
	}
	return s.SoundVolume
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
