package config

import "sort"

var Presets = map[string]*Config{
	"classroom": {
		Integrator: "semi-implicit", Duration: 5.0, TimeStep: 0.1, Acceleration: -Gravity,
		Initial: InitialState{Height: 10, Velocity: 2.5},
	},
	"short": {
		Integrator: "semi-implicit", Duration: 3.0, TimeStep: 0.1, Acceleration: -Gravity,
		Initial: InitialState{Height: 10, Velocity: 2.5},
	},
	"drop": {
		Integrator: "semi-implicit", Duration: 5.0, TimeStep: 0.01, Acceleration: -Gravity,
		Initial: InitialState{Height: 20, Velocity: 0},
	},
	"tower": {
		Integrator: "semi-implicit", Duration: 10.0, TimeStep: 0.01, Acceleration: -Gravity,
		Initial: InitialState{Height: 1000, Velocity: 0},
	},
	"moon": {
		Integrator: "semi-implicit", Duration: 20.0, TimeStep: 0.05, Acceleration: -1.62,
		Initial: InitialState{Height: 10, Velocity: 2.5},
	},
	"hover": {
		Integrator: "semi-implicit", Duration: 1.0, TimeStep: 0.5, Acceleration: 0,
		Initial: InitialState{Height: 5, Velocity: 0},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := cfg.Clone()
	c.Name = name
	return c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
