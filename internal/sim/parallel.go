package sim

import (
	"context"
	"sync"

	"github.com/san-kum/mergersrc/internal/compute"
	"github.com/san-kum/mergersrc/internal/damping"
	"github.com/san-kum/mergersrc/internal/dynamo"
	"github.com/san-kum/mergersrc/internal/integrators"
)

// Ensemble runs the same initial state under several kernels concurrently,
// for example to compare damping factors.
type Ensemble struct {
	kernels    []*damping.Kernel
	backend    func() compute.Backend
	geom       dynamo.Geometry
	newMetrics func() []dynamo.Metric

	// NewIntegrator, when set, gives each run its own integrator.
	NewIntegrator func() integrators.Integrator
}

// NewEnsemble builds an ensemble; newMetrics may be nil. Each run gets its
// own backend and metric instances.
func NewEnsemble(kernels []*damping.Kernel, backend func() compute.Backend, geom dynamo.Geometry, newMetrics func() []dynamo.Metric) *Ensemble {
	return &Ensemble{kernels: kernels, backend: backend, geom: geom, newMetrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context, state0 *dynamo.Field, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.kernels))
	errs := make([]error, len(e.kernels))

	var wg sync.WaitGroup
	for i, k := range e.kernels {
		wg.Add(1)
		go func(idx int, k *damping.Kernel) {
			defer wg.Done()

			s := New(k, e.backend(), e.geom)
			if e.NewIntegrator != nil {
				s.UseIntegrator(e.NewIntegrator())
			}
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, state0, cfg)
		}(i, k)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
