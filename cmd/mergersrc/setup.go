package main

import (
	"fmt"

	"github.com/san-kum/mergersrc/internal/compute"
	"github.com/san-kum/mergersrc/internal/config"
	"github.com/san-kum/mergersrc/internal/damping"
	"github.com/san-kum/mergersrc/internal/dynamo"
	"github.com/san-kum/mergersrc/internal/integrators"
	"github.com/san-kum/mergersrc/internal/metrics"
	"github.com/san-kum/mergersrc/internal/sim"
	"github.com/san-kum/mergersrc/internal/storage"
	"github.com/san-kum/mergersrc/internal/tui"
)

// setup is everything a run needs, built from one validated config.
type setup struct {
	cfg     *config.Config
	geom    dynamo.Geometry
	state   *dynamo.Field
	kernel  *damping.Kernel
	backend compute.Backend
}

func newSetup(cfg *config.Config) (*setup, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", cfg.Name, err)
	}

	geom, err := cfg.Geometry()
	if err != nil {
		return nil, err
	}

	state, err := dynamo.NewField(geom.Nx, geom.Ny, geom.Nz, dynamo.NVAR)
	if err != nil {
		return nil, err
	}
	if err := cfg.BinarySetup().Fill(geom, state); err != nil {
		return nil, err
	}

	dc, err := cfg.DampingConfig()
	if err != nil {
		return nil, err
	}
	kernel, err := damping.NewKernel(dc)
	if err != nil {
		return nil, err
	}

	backend, err := newBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}

	return &setup{cfg: cfg, geom: geom, state: state, kernel: kernel, backend: backend}, nil
}

func newBackend(name string) (compute.Backend, error) {
	if name == "" || name == "auto" {
		return compute.AutoSelectBackend(), nil
	}
	return compute.New(name)
}

func (s *setup) simulator() *sim.Simulator {
	dc := s.kernel.Config()
	sm := sim.New(s.kernel, s.backend, s.geom)
	sm.UseIntegrator(s.integrator())
	sm.AddMetric(metrics.NewKineticEnergy())
	sm.AddMetric(metrics.NewEnergySource())
	sm.AddMetric(metrics.NewDampingEffort())
	sm.AddMetric(metrics.NewStability(1e3))
	sm.AddMetric(metrics.NewRadialMomentum(dc.Center, s.kernel.Basis()))
	return sm
}

// integrator returns a fresh integrator; the name was checked by Validate.
func (s *setup) integrator() integrators.Integrator {
	integ, err := integrators.New(s.cfg.Integrator)
	if err != nil {
		return integrators.NewEuler()
	}
	return integ
}

func (s *setup) simConfig() sim.Config {
	return sim.Config{Dt: s.cfg.Dt, Steps: s.cfg.Steps, ValidateState: s.cfg.ValidateState}
}

func (s *setup) metadata() storage.RunMetadata {
	return storage.RunMetadata{
		Preset:     s.cfg.Name,
		Backend:    s.backend.Name(),
		Integrator: s.cfg.Integrator,
		Dt:         s.cfg.Dt,
		Steps:      s.cfg.Steps,
		Cells:      s.cfg.Grid.Cells,
		Relaxation: s.cfg.Damping.RelaxationFactor,
		Radial:     s.cfg.Damping.RadialFactor,
		Rotating:   s.cfg.Rotation.Enabled,
		Hybrid:     s.cfg.Damping.HybridMomentum,
	}
}

func (s *setup) session() *tui.Session {
	return &tui.Session{
		Name:      s.cfg.Name,
		Simulator: s.simulator(),
		Geometry:  s.geom,
		State0:    s.state,
		Dt:        s.cfg.Dt,
		Steps:     s.cfg.Steps,
	}
}

func presetSession(name string) (*tui.Session, error) {
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	s, err := newSetup(cfg)
	if err != nil {
		return nil, err
	}
	return s.session(), nil
}
