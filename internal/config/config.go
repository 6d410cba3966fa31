package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStep        = 0.01
	DefaultFinal       = 10.0
	DefaultMaxCheck    = 0.1
	DefaultConvergence = 1e-9
	DefaultMaxIter     = 100
)

type Config struct {
	Model     string           `yaml:"model"`
	Method    string           `yaml:"method"`
	Step      float64          `yaml:"step"`
	Start     float64          `yaml:"start"`
	Final     float64          `yaml:"final"`
	InitState []float64        `yaml:"init_state"`
	Sample    float64          `yaml:"sample"`
	Detectors []DetectorConfig `yaml:"detectors"`
}

type DetectorConfig struct {
	Type          string  `yaml:"type"`   // time, threshold, bounce
	At            float64 `yaml:"at"`     // time: trigger time
	Index         int     `yaml:"index"`  // threshold: state component
	Value         float64 `yaml:"value"`  // threshold: crossing value
	Restitution   float64 `yaml:"restitution"`
	Action        string  `yaml:"action"` // continue, reset-derivatives, reset-state, stop
	MaxCheck      float64 `yaml:"max_check"`
	Convergence   float64 `yaml:"convergence"`
	MaxIterations int     `yaml:"max_iterations"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:  "oscillator",
		Method: "3/8",
		Step:   DefaultStep,
		Final:  DefaultFinal,
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetInitState returns the configured initial state, or a model default.
func (c *Config) GetInitState() []float64 {
	if len(c.InitState) > 0 {
		return c.InitState
	}
	switch c.Model {
	case "exponential":
		return []float64{1}
	case "pendulum":
		return []float64{0.5, 0}
	case "bouncer":
		return []float64{10, 0}
	default:
		return []float64{1, 0}
	}
}

// Defaulted fills the zero-valued tuning knobs of a detector entry.
func (d DetectorConfig) Defaulted() DetectorConfig {
	out := d
	if out.MaxCheck == 0 {
		out.MaxCheck = DefaultMaxCheck
	}
	if out.Convergence == 0 {
		out.Convergence = DefaultConvergence
	}
	if out.MaxIterations == 0 {
		out.MaxIterations = DefaultMaxIter
	}
	return out
}
