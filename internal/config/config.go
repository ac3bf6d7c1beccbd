package config

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/mergersrc/internal/damping"
	"github.com/san-kum/mergersrc/internal/dynamo"
	"github.com/san-kum/mergersrc/internal/integrators"
	"github.com/san-kum/mergersrc/internal/rotation"
	"github.com/san-kum/mergersrc/internal/wdmerger"
)

const (
	DefaultDt             = 0.01
	DefaultSteps          = 200
	DefaultCells          = 32
	DefaultExtent         = 1.5
	DefaultRelaxation     = 0.1
	DefaultRadial         = 10.0
	DefaultAmbientDensity = 1e-4
)

type Config struct {
	Name          string         `yaml:"name"`
	Backend       string         `yaml:"backend"`
	Integrator    string         `yaml:"integrator"`
	Dt            float64        `yaml:"dt"`
	Steps         int            `yaml:"steps"`
	ValidateState bool           `yaml:"validate_state"`
	Grid          GridConfig     `yaml:"grid"`
	Binary        BinaryConfig   `yaml:"binary"`
	Damping       DampingConfig  `yaml:"damping"`
	Rotation      RotationConfig `yaml:"rotation"`
}

type GridConfig struct {
	Cells [3]int     `yaml:"cells"`
	Lo    [3]float64 `yaml:"lo"`
	Hi    [3]float64 `yaml:"hi"`
}

type BinaryConfig struct {
	PrimaryMass     float64 `yaml:"primary_mass"`
	PrimaryRadius   float64 `yaml:"primary_radius"`
	SecondaryMass   float64 `yaml:"secondary_mass"`
	SecondaryRadius float64 `yaml:"secondary_radius"`
	Separation      float64 `yaml:"separation"`
	G               float64 `yaml:"g"`
	AmbientDensity  float64 `yaml:"ambient_density"`
	SpecificEnergy  float64 `yaml:"specific_energy"`
	Perturbation    float64 `yaml:"perturbation"`
}

type DampingConfig struct {
	Problem          int     `yaml:"problem"`
	RelaxationFactor float64 `yaml:"relaxation_damping_factor"`
	RadialFactor     float64 `yaml:"radial_damping_factor"`
	// Zero free-fall times are derived from the binary's stars.
	TffPrimary     float64    `yaml:"t_ff_primary"`
	TffSecondary   float64    `yaml:"t_ff_secondary"`
	OrbitalAxes    [3]int     `yaml:"orbital_axes"`
	Center         [3]float64 `yaml:"center"`
	HybridMomentum bool       `yaml:"hybrid_momentum"`
}

type RotationConfig struct {
	Enabled bool `yaml:"enabled"`
	// A zero period uses the binary's Kepler period.
	Period               float64 `yaml:"period"`
	PeriodDot            float64 `yaml:"period_dot"`
	StateInRotatingFrame bool    `yaml:"state_in_rotating_frame"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:          "relax",
		Backend:       "cpu",
		Integrator:    "euler",
		Dt:            DefaultDt,
		Steps:         DefaultSteps,
		ValidateState: true,
		Grid: GridConfig{
			Cells: [3]int{DefaultCells, DefaultCells, DefaultCells},
			Lo:    [3]float64{-DefaultExtent, -DefaultExtent, -DefaultExtent},
			Hi:    [3]float64{DefaultExtent, DefaultExtent, DefaultExtent},
		},
		Binary: BinaryConfig{
			PrimaryMass:     0.9,
			PrimaryRadius:   0.3,
			SecondaryMass:   0.6,
			SecondaryRadius: 0.35,
			Separation:      1.5,
			G:               1.0,
			AmbientDensity:  DefaultAmbientDensity,
			SpecificEnergy:  0.05,
			Perturbation:    0.05,
		},
		Damping: DampingConfig{
			Problem:          damping.ProblemMerger,
			RelaxationFactor: DefaultRelaxation,
			OrbitalAxes:      damping.DefaultAxes,
		},
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

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g: %w", c.Dt, dynamo.ErrParameterBounds)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d: %w", c.Steps, dynamo.ErrParameterBounds)
	}
	if _, err := integrators.New(c.Integrator); err != nil {
		return err
	}
	if _, err := c.Geometry(); err != nil {
		return err
	}
	if err := c.BinarySetup().Validate(); err != nil {
		return err
	}
	if _, err := c.DampingConfig(); err != nil {
		return err
	}
	return nil
}

func vec(a [3]float64) r3.Vec { return r3.Vec{X: a[0], Y: a[1], Z: a[2]} }

func (c *Config) Geometry() (dynamo.Geometry, error) {
	g := c.Grid
	return dynamo.NewGeometry(vec(g.Lo), vec(g.Hi), g.Cells[0], g.Cells[1], g.Cells[2])
}

func (c *Config) BinarySetup() wdmerger.Binary {
	b := c.Binary
	return wdmerger.Binary{
		Primary:         wdmerger.Star{Mass: b.PrimaryMass, Radius: b.PrimaryRadius},
		Secondary:       wdmerger.Star{Mass: b.SecondaryMass, Radius: b.SecondaryRadius},
		Separation:      b.Separation,
		G:               b.G,
		Axes:            c.Damping.OrbitalAxes,
		Center:          vec(c.Damping.Center),
		AmbientDensity:  b.AmbientDensity,
		SpecificEnergy:  b.SpecificEnergy,
		Perturbation:    b.Perturbation,
		InRotatingFrame: c.Rotation.Enabled && c.Rotation.StateInRotatingFrame,
	}
}

// RotationFrame returns the rotating frame, inactive unless enabled.
func (c *Config) RotationFrame() rotation.Frame {
	if !c.Rotation.Enabled {
		return rotation.Frame{}
	}
	period := c.Rotation.Period
	if period <= 0 {
		period = c.BinarySetup().Period()
	}
	return rotation.Frame{
		Axis:      c.Damping.OrbitalAxes[2] - 1,
		Period:    period,
		PeriodDot: c.Rotation.PeriodDot,
	}
}

// DampingConfig builds the kernel configuration.
func (c *Config) DampingConfig() (damping.Config, error) {
	d := c.Damping
	tffP, tffS := d.TffPrimary, d.TffSecondary
	if tffP <= 0 || tffS <= 0 {
		p, s := c.BinarySetup().FreeFallTimes()
		if tffP <= 0 {
			tffP = p
		}
		if tffS <= 0 {
			tffS = s
		}
	}

	dc := damping.Config{
		Problem:                 d.Problem,
		RelaxationDampingFactor: d.RelaxationFactor,
		RadialDampingFactor:     d.RadialFactor,
		TffPrimary:              tffP,
		TffSecondary:            tffS,
		Rotation:                c.RotationFrame(),
		StateInRotatingFrame:    c.Rotation.StateInRotatingFrame,
		HybridMomentum:          d.HybridMomentum,
		Center:                  vec(d.Center),
		Axes:                    d.OrbitalAxes,
	}
	if err := dc.Validate(); err != nil {
		return damping.Config{}, err
	}
	return dc, nil
}
