// Package dynamo provides the core primitives shared by the source-term
// kernel and the code that drives it over a grid.
//
// The package defines:
//
//   - [Field]: cell-indexed storage for conserved state or source terms
//   - [StateAccessor] and [SourceAccumulator]: the narrow read and
//     read-modify-write views the kernel consumes
//   - [Geometry]: uniform Cartesian cell-center positions
//   - [ParallelFor]: chunked parallel loop used by the sweep backends
//
// Components are laid out as in a compressible hydrodynamics code: density,
// three Cartesian momenta, total energy, then three hybrid momenta.
//
// # Example
//
//	geom, _ := dynamo.NewGeometry(lo, hi, 64, 64, 64)
//	state, _ := dynamo.NewField(64, 64, 64, dynamo.NVAR)
//	src, _ := dynamo.NewField(64, 64, 64, dynamo.NVAR)
//	kernel.Apply(i, j, k, geom, state, src, dt, t)
//
// # Thread Safety
//
// Field is NOT safe for concurrent writes to the same cell. Concurrent
// writers must partition cells, as the sweep backends do.
package dynamo
