// Package config loads and saves yaml scenario files describing a jumper,
// a force generator, the integration settings and the sweep inputs.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ouzlim/vjsim/internal/engine"
	"github.com/ouzlim/vjsim/internal/fgen"
)

const (
	DefaultBodyweight      = 75.0
	DefaultPushOffDistance = 0.4
)

type Scenario struct {
	Bodyweight      float64         `yaml:"bodyweight"`
	ExternalLoad    float64         `yaml:"external_load"`
	PushOffDistance float64         `yaml:"push_off_distance"`
	Gravity         float64         `yaml:"gravity"`
	TimeStep        float64         `yaml:"time_step"`
	MaxTime         float64         `yaml:"max_time"`
	Generator       GeneratorConfig `yaml:"generator"`
	ExternalLoads   []float64       `yaml:"external_loads"`
	Probe           ProbeConfig     `yaml:"probe"`
}

type GeneratorConfig struct {
	MaxForce            float64 `yaml:"max_force"`
	MaxVelocity         float64 `yaml:"max_velocity"`
	DeclineRate         float64 `yaml:"decline_rate"`
	PeakLocation        float64 `yaml:"peak_location"`
	TimeToMaxActivation float64 `yaml:"time_to_max_activation"`
}

type ProbeConfig struct {
	Parameters  []string  `yaml:"parameters"`
	Ratios      []float64 `yaml:"ratios"`
	Aggregation string    `yaml:"aggregation"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Bodyweight:      DefaultBodyweight,
		PushOffDistance: DefaultPushOffDistance,
		Gravity:         engine.DefaultGravity,
		TimeStep:        engine.DefaultTimeStep,
		MaxTime:         engine.DefaultMaxTime,
		Generator: GeneratorConfig{
			MaxForce:            fgen.DefaultMaxForce,
			MaxVelocity:         fgen.DefaultMaxVelocity,
			DeclineRate:         fgen.DefaultDeclineRate,
			PeakLocation:        fgen.DefaultPeakLocation,
			TimeToMaxActivation: fgen.DefaultTimeToMaxActivation,
		},
		ExternalLoads: []float64{0, 10, 20, 30, 40, 50, 60},
		Probe: ProbeConfig{
			Ratios:      []float64{0.9, 0.95, 1.0, 1.05, 1.1},
			Aggregation: "ratio",
		},
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultScenario()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Scenario) Load() engine.Load {
	return engine.Load{
		Bodyweight:      s.Bodyweight,
		ExternalLoad:    s.ExternalLoad,
		Gravity:         s.Gravity,
		PushOffDistance: s.PushOffDistance,
	}
}

func (s *Scenario) Params() fgen.Params {
	return fgen.Params{
		MaxForce:            s.Generator.MaxForce,
		MaxVelocity:         s.Generator.MaxVelocity,
		DeclineRate:         s.Generator.DeclineRate,
		PeakLocation:        s.Generator.PeakLocation,
		TimeToMaxActivation: s.Generator.TimeToMaxActivation,
	}
}

func (s *Scenario) Options() engine.Options {
	return engine.Options{
		TimeStep: s.TimeStep,
		MaxTime:  s.MaxTime,
	}
}
