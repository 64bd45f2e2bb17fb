package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/experiment"
)

const (
	DefaultTheme  = "default"
	DefaultFPS    = 10
	DefaultWidth  = 60
	DefaultHeight = 20
)

// Config is the YAML document accepted by --config.
type Config struct {
	Params experiment.Params        `yaml:"params"`
	Solver experiment.SolverOptions `yaml:"solver"`
	Render RenderConfig             `yaml:"render"`
}

// RenderConfig controls the terminal chart and animation.
type RenderConfig struct {
	Theme  string `yaml:"theme"`
	FPS    int    `yaml:"fps"`
	Seed   int64  `yaml:"seed"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Params: experiment.DefaultParams(),
		Solver: experiment.DefaultSolverOptions(),
		Render: RenderConfig{
			Theme:  DefaultTheme,
			FPS:    DefaultFPS,
			Seed:   1,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

// Load reads a YAML file over the defaults, so a file may set only the
// fields it cares about.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.Merge(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays the YAML file at path onto c.
func (c *Config) Merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if err := c.Solver.Validate(); err != nil {
		return err
	}
	r := c.Render
	if r.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", dynamo.ErrInvalidParameter, r.FPS)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: render size %dx%d", dynamo.ErrInvalidParameter, r.Width, r.Height)
	}
	return nil
}
