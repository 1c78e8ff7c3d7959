package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orrery/internal/engine"
)

const (
	DefaultDt              = 3600.0 // one simulated hour per step
	DefaultDays            = 30.0
	DefaultSaveEvery       = 24
	DefaultHistoryCap      = 10_000
	DefaultMaxPullDistance = 1e30
	DefaultFrameRate       = 30
)

type Config struct {
	// Scene is a preset name or a path to a scene file.
	Scene string  `yaml:"scene"`
	Dt    float64 `yaml:"dt"`
	Days  float64 `yaml:"days"`

	PullMassThreshold float64 `yaml:"pull_mass_threshold"`
	MaxPullDistance   float64 `yaml:"max_pull_distance"`
	SaveEvery         int     `yaml:"save_every"`
	HistoryCap        int     `yaml:"history_cap"`

	FrameRate int `yaml:"frame_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:           "ours",
		Dt:              DefaultDt,
		Days:            DefaultDays,
		MaxPullDistance: DefaultMaxPullDistance,
		SaveEvery:       DefaultSaveEvery,
		HistoryCap:      DefaultHistoryCap,
		FrameRate:       DefaultFrameRate,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive, got %g", c.Days)
	}
	if c.SaveEvery <= 0 {
		return fmt.Errorf("save_every must be positive, got %d", c.SaveEvery)
	}
	if c.HistoryCap <= 0 {
		return fmt.Errorf("history_cap must be positive, got %d", c.HistoryCap)
	}
	if c.PullMassThreshold < 0 {
		return fmt.Errorf("pull_mass_threshold must not be negative, got %g", c.PullMassThreshold)
	}
	if c.MaxPullDistance <= 0 {
		return fmt.Errorf("max_pull_distance must be positive, got %g", c.MaxPullDistance)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive, got %d", c.FrameRate)
	}
	return nil
}

// EngineParams maps the file-facing config onto the engine's inputs.
func (c *Config) EngineParams() engine.Params {
	return engine.Params{
		PullMassThreshold: c.PullMassThreshold,
		MaxPullDistance:   c.MaxPullDistance,
		SaveEvery:         c.SaveEvery,
		HistoryCap:        c.HistoryCap,
	}
}
