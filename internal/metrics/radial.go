package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/mergersrc/internal/dynamo"
	"github.com/san-kum/mergersrc/internal/hybrid"
)

// RadialMomentum reports the volume-integrated cylindrical radial momentum
// in the orbital plane. Negative values mean net inflow.
type RadialMomentum struct {
	name    string
	center  r3.Vec
	basis   hybrid.Basis
	current float64
}

func NewRadialMomentum(center r3.Vec, basis hybrid.Basis) *RadialMomentum {
	return &RadialMomentum{name: "radial_momentum", center: center, basis: basis}
}

func (r *RadialMomentum) Name() string { return r.name }

func (r *RadialMomentum) Observe(s dynamo.Snapshot) {
	nx, ny, nz := s.State.Dims()
	sum := 0.0
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				loc := r3.Sub(s.Geometry.Position(i, j, k), r.center)
				pr := r.basis.LinearToHybrid(loc, dynamo.Momentum(s.State, i, j, k)).X
				if math.IsNaN(pr) {
					continue // on the rotation axis
				}
				sum += pr
			}
		}
	}
	r.current = sum * s.Geometry.CellVolume()
}

func (r *RadialMomentum) Value() float64 { return r.current }

func (r *RadialMomentum) Reset() { r.current = 0 }
