package dynamo

import "gonum.org/v1/gonum/spatial/r3"

// Component returns the axis-th Cartesian component (0, 1 or 2) of v.
func Component(v r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// WithComponent returns v with its axis-th component replaced by x.
func WithComponent(v r3.Vec, axis int, x float64) r3.Vec {
	switch axis {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	default:
		v.Z = x
	}
	return v
}

// Momentum reads the Cartesian momentum of cell (i,j,k).
func Momentum(s StateAccessor, i, j, k int) r3.Vec {
	return r3.Vec{X: s.At(i, j, k, UMX), Y: s.At(i, j, k, UMY), Z: s.At(i, j, k, UMZ)}
}
