// Package compute provides the backends that sweep the damping kernel over a
// whole grid.
//
//   - cpu: rows of cells split across goroutines
//   - serial: a single-threaded reference sweep
//
// Every cell is independent and written only by the goroutine owning its row,
// so no locking is needed. Different source terms must be swept one after
// another into the same field.
//
//	backend, _ := compute.New("cpu")
//	err := backend.Sweep(kernel, geom, state, src, dt, t)
package compute
