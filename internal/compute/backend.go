package compute

import (
	"fmt"
	"sort"

	"github.com/san-kum/mergersrc/internal/damping"
	"github.com/san-kum/mergersrc/internal/dynamo"
)

type Backend interface {
	Name() string
	Available() bool
	// Sweep adds the kernel's contribution for every cell of state into src.
	Sweep(k *damping.Kernel, geom dynamo.Geometry, state, src *dynamo.Field, dt, time float64) error
	Cleanup()
}

var backends = map[string]func() Backend{
	"cpu":    func() Backend { return NewCPUBackend() },
	"serial": func() Backend { return NewSerialBackend() },
}

// New returns the backend registered under name.
func New(name string) (Backend, error) {
	fn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%q (available: %v): %w", name, List(), dynamo.ErrUnknownBackend)
	}
	return fn(), nil
}

func List() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AutoSelectBackend picks the fastest available backend.
func AutoSelectBackend() Backend {
	cpu := NewCPUBackend()
	if cpu.Available() {
		return cpu
	}
	return NewSerialBackend()
}

func checkShapes(geom dynamo.Geometry, state, src *dynamo.Field) error {
	if !geom.Matches(state) || !state.SameShape(src) {
		return dynamo.ErrDimensionMismatch
	}
	if state.NComp() < dynamo.NVAR {
		return fmt.Errorf("state has %d components, need %d: %w", state.NComp(), dynamo.NVAR, dynamo.ErrDimensionMismatch)
	}
	return nil
}
