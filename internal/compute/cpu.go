package compute

import (
	"runtime"

	"github.com/san-kum/mergersrc/internal/damping"
	"github.com/san-kum/mergersrc/internal/dynamo"
)

// minRows keeps goroutines from being spawned for tiny grids.
const minRows = 8

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return c.workers > 0 }
func (c *CPUBackend) Cleanup()        {}

func (c *CPUBackend) Sweep(k *damping.Kernel, geom dynamo.Geometry, state, src *dynamo.Field, dt, time float64) error {
	if err := checkShapes(geom, state, src); err != nil {
		return err
	}
	if !k.Active() {
		return nil
	}

	nx, ny, nz := state.Dims()
	dynamo.ParallelFor(ny*nz, minRows, c.workers, func(start, end int) {
		for row := start; row < end; row++ {
			j, kk := row%ny, row/ny
			for i := 0; i < nx; i++ {
				k.Apply(i, j, kk, geom, state, src, dt, time)
			}
		}
	})
	return nil
}

type SerialBackend struct{}

func NewSerialBackend() *SerialBackend { return &SerialBackend{} }

func (s *SerialBackend) Name() string    { return "serial" }
func (s *SerialBackend) Available() bool { return true }
func (s *SerialBackend) Cleanup()        {}

func (s *SerialBackend) Sweep(k *damping.Kernel, geom dynamo.Geometry, state, src *dynamo.Field, dt, time float64) error {
	if err := checkShapes(geom, state, src); err != nil {
		return err
	}
	if !k.Active() {
		return nil
	}

	nx, ny, nz := state.Dims()
	for kk := 0; kk < nz; kk++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				k.Apply(i, j, kk, geom, state, src, dt, time)
			}
		}
	}
	return nil
}
