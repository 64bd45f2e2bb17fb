package config

import (
	"sort"

	"github.com/san-kum/predprey/internal/experiment"
)

type Preset struct {
	Description string
	Params      experiment.Params
}

var Presets = map[string]Preset{
	"classic": {
		Description: "default rabbits and foxes",
		Params:      experiment.DefaultParams(),
	},
	"prey_crash": {
		Description: "heavy predation drives the prey out",
		Params: experiment.Params{
			Alpha: 0.5, Beta: 0.05, Delta: 0.02, Gamma: 0.4,
			X0: 40, Y0: 40, TMax: 30, Points: 300,
		},
	},
	"predator_starve": {
		Description: "predators die off and prey boom",
		Params: experiment.Params{
			Alpha: 0.33, Beta: 0.02, Delta: 0.001, Gamma: 0.8,
			X0: 100, Y0: 5, TMax: 20, Points: 200,
		},
	},
	"no_predation": {
		Description: "prey alone, pure exponential growth",
		Params: experiment.Params{
			Alpha: 0.33, Beta: 0, Delta: 0, Gamma: 0,
			X0: 10, Y0: 20, TMax: 10, Points: 100,
		},
	},
	"equilibrium": {
		Description: "starts on the coexistence fixed point",
		Params: experiment.Params{
			Alpha: 0.33, Beta: 0.02, Delta: 0.02, Gamma: 0.3,
			X0: 15, Y0: 16.5, TMax: 10, Points: 100,
		},
	},
}

// GetPreset returns the default config with the named preset's parameters,
// or nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Params = p.Params
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
