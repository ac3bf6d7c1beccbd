// Package hybrid converts momenta between the Cartesian basis and the hybrid
// basis used for rotating systems: radial momentum in the orbital plane,
// angular momentum about the rotation axis and the Cartesian momentum along
// that axis.
//
// A hybrid vector is returned as an r3.Vec whose X, Y and Z hold the radial,
// angular and vertical parts.
package hybrid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/mergersrc/internal/dynamo"
)

// Basis names the zero-based Cartesian axes spanning the orbital plane
// (Axis1, Axis2) and the rotation axis (Axis3).
type Basis struct {
	Axis1, Axis2, Axis3 int
}

// Standard is the x-y orbital plane rotating about z.
var Standard = Basis{Axis1: 0, Axis2: 1, Axis3: 2}

// LinearToHybrid expresses the Cartesian vector lin at position loc (relative
// to the rotation center) in the hybrid basis. loc must be off the rotation
// axis.
func (b Basis) LinearToHybrid(loc, lin r3.Vec) r3.Vec {
	x1, x2 := dynamo.Component(loc, b.Axis1), dynamo.Component(loc, b.Axis2)
	l1, l2 := dynamo.Component(lin, b.Axis1), dynamo.Component(lin, b.Axis2)
	R := math.Sqrt(x1*x1 + x2*x2)

	return r3.Vec{
		X: l1*(x1/R) + l2*(x2/R),
		Y: l2*x1 - l1*x2,
		Z: dynamo.Component(lin, b.Axis3),
	}
}

// HybridToLinear is the inverse of LinearToHybrid.
func (b Basis) HybridToLinear(loc, hyb r3.Vec) r3.Vec {
	x1, x2 := dynamo.Component(loc, b.Axis1), dynamo.Component(loc, b.Axis2)
	R2 := x1*x1 + x2*x2
	R := math.Sqrt(R2)

	var lin r3.Vec
	lin = dynamo.WithComponent(lin, b.Axis1, hyb.X*(x1/R)-hyb.Y*(x2/R2))
	lin = dynamo.WithComponent(lin, b.Axis2, hyb.X*(x2/R)+hyb.Y*(x1/R2))
	lin = dynamo.WithComponent(lin, b.Axis3, hyb.Z)
	return lin
}
