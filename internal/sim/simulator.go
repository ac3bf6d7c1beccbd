package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/mergersrc/internal/compute"
	"github.com/san-kum/mergersrc/internal/damping"
	"github.com/san-kum/mergersrc/internal/dynamo"
	"github.com/san-kum/mergersrc/internal/integrators"
	"github.com/san-kum/mergersrc/internal/metrics"
)

// Simulator advances a state by its damping sources alone: each step sweeps
// the kernel over the grid and lets the integrator apply the result.
// Hydrodynamic fluxes are not part of the update.
type Simulator struct {
	kernel     *damping.Kernel
	backend    compute.Backend
	integrator integrators.Integrator
	geom      dynamo.Geometry
	pool      *FieldPool
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(kernel *damping.Kernel, backend compute.Backend, geom dynamo.Geometry) *Simulator {
	return &Simulator{
		kernel:     kernel,
		backend:    backend,
		integrator: integrators.NewEuler(),
		geom:       geom,
		pool:       NewFieldPool(geom.Nx, geom.Ny, geom.Nz, dynamo.NVAR),
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

// UseIntegrator replaces the default forward Euler update.
func (s *Simulator) UseIntegrator(i integrators.Integrator) { s.integrator = i }

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, state0 *dynamo.Field, cfg Config) (*Result, error) {
	if err := s.validate(state0, cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Times:         make([]float64, 0, cfg.Steps+1),
		KineticEnergy: make([]float64, 0, cfg.Steps+1),
		EnergySource:  make([]float64, 0, cfg.Steps+1),
		Metrics:       make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	state := state0.Clone()
	src := s.pool.Get()
	defer s.pool.Put(src)

	t := 0.0
	injected := 0.0
	result.Times = append(result.Times, t)
	result.KineticEnergy = append(result.KineticEnergy, metrics.TotalKineticEnergy(state, s.geom))
	result.EnergySource = append(result.EnergySource, injected)

	for step := 0; step < cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			result.Final = state
			return result, &dynamo.SimulationError{Step: step, Time: t, Wrapped: fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())}
		default:
		}

		if err := s.Step(state, src, cfg.Dt, t); err != nil {
			result.Final = state
			return result, &dynamo.SimulationError{Step: step, Time: t, Wrapped: err}
		}
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !state.IsValid() {
			result.Final = state
			return result, &dynamo.SimulationError{Step: step, Time: t, Wrapped: dynamo.ErrInvalidState}
		}

		snap := dynamo.Snapshot{Step: step, Time: t, Dt: cfg.Dt, Geometry: s.geom, State: state, Source: src}
		for _, m := range s.metrics {
			m.Observe(snap)
		}
		for _, obs := range s.observers {
			obs.OnStep(snap)
		}

		injected += cfg.Dt * src.Sum(dynamo.UEDEN) * s.geom.CellVolume()
		result.Times = append(result.Times, t)
		result.KineticEnergy = append(result.KineticEnergy, metrics.TotalKineticEnergy(state, s.geom))
		result.EnergySource = append(result.EnergySource, injected)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = state

	return result, nil
}

// Step performs one source-only update of state at time t, using src as
// scratch. On return src holds the sources that were applied.
func (s *Simulator) Step(state, src *dynamo.Field, dt, t float64) error {
	sweep := func(st, out *dynamo.Field, at float64) error {
		return s.backend.Sweep(s.kernel, s.geom, st, out, dt, at)
	}
	return s.integrator.Step(sweep, state, src, t, dt)
}

func (s *Simulator) validate(state *dynamo.Field, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g: %w", cfg.Dt, dynamo.ErrParameterBounds)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d: %w", cfg.Steps, dynamo.ErrParameterBounds)
	}
	if !s.geom.Matches(state) || state.NComp() != dynamo.NVAR {
		return dynamo.ErrDimensionMismatch
	}
	return nil
}
