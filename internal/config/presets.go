package config

import "sort"

func preset(name string, mutate func(c *Config)) *Config {
	c := DefaultConfig()
	c.Name = name
	mutate(c)
	return c
}

var Presets = map[string]*Config{
	"relax": preset("relax", func(c *Config) {}),
	"drift": preset("drift", func(c *Config) {
		c.Steps = 400
		c.Binary.Perturbation = 0
		c.Damping.RelaxationFactor = 0
		c.Damping.RadialFactor = DefaultRadial
	}),
	"rotating": preset("rotating", func(c *Config) {
		c.Rotation.Enabled = true
	}),
	"corotating": preset("corotating", func(c *Config) {
		c.Rotation.Enabled = true
		c.Rotation.StateInRotatingFrame = true
		c.Damping.RadialFactor = DefaultRadial
	}),
	"hybrid": preset("hybrid", func(c *Config) {
		c.Damping.RadialFactor = DefaultRadial
		c.Damping.HybridMomentum = true
	}),
	"heun": preset("heun", func(c *Config) {
		c.Integrator = "heun"
		c.Dt = 0.05
		c.Steps = 80
	}),
	"inert": preset("inert", func(c *Config) {
		c.Steps = 50
		c.Damping.Problem = 0
	}),
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
