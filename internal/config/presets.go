package config

import (
	"math"
	"sort"
)

// Presets are named jumper archetypes used by the CLI. Each returns a fresh
// scenario so callers can mutate freely.
var presets = map[string]func() *Scenario{
	"reference": DefaultScenario,
	"force_dominant": func() *Scenario {
		s := DefaultScenario()
		s.Generator.MaxForce = 3600
		s.Generator.MaxVelocity = 3
		return s
	},
	"velocity_dominant": func() *Scenario {
		s := DefaultScenario()
		s.Generator.MaxForce = 2400
		s.Generator.MaxVelocity = 5.5
		return s
	},
	// A pure-force generator: every characteristic disabled. Useful for
	// checking against closed-form constant-force kinematics.
	"constant_force": func() *Scenario {
		s := DefaultScenario()
		s.Generator.MaxVelocity = math.Inf(1)
		s.Generator.DeclineRate = 0
		s.Generator.PeakLocation = 0
		s.Generator.TimeToMaxActivation = 0
		return s
	},
	"slow_activation": func() *Scenario {
		s := DefaultScenario()
		s.Generator.TimeToMaxActivation = 0.6
		return s
	},
}

func GetPreset(name string) *Scenario {
	build, ok := presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
