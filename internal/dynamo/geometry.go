package dynamo

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Geometry describes a uniform Cartesian box of cells.
type Geometry struct {
	Lo, Hi     r3.Vec
	Nx, Ny, Nz int
	Dx         r3.Vec
}

func NewGeometry(lo, hi r3.Vec, nx, ny, nz int) (Geometry, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return Geometry{}, fmt.Errorf("geometry %dx%dx%d: %w", nx, ny, nz, ErrParameterBounds)
	}
	if hi.X <= lo.X || hi.Y <= lo.Y || hi.Z <= lo.Z {
		return Geometry{}, fmt.Errorf("geometry hi %v not above lo %v: %w", hi, lo, ErrParameterBounds)
	}
	return Geometry{
		Lo: lo,
		Hi: hi,
		Nx: nx,
		Ny: ny,
		Nz: nz,
		Dx: r3.Vec{
			X: (hi.X - lo.X) / float64(nx),
			Y: (hi.Y - lo.Y) / float64(ny),
			Z: (hi.Z - lo.Z) / float64(nz),
		},
	}, nil
}

// Position returns the absolute cell-center position of cell (i,j,k).
func (g Geometry) Position(i, j, k int) r3.Vec {
	return r3.Vec{
		X: g.Lo.X + (float64(i)+0.5)*g.Dx.X,
		Y: g.Lo.Y + (float64(j)+0.5)*g.Dx.Y,
		Z: g.Lo.Z + (float64(k)+0.5)*g.Dx.Z,
	}
}

func (g Geometry) CellVolume() float64 {
	return g.Dx.X * g.Dx.Y * g.Dx.Z
}

// Matches reports whether f covers exactly this geometry's cells.
func (g Geometry) Matches(f *Field) bool {
	nx, ny, nz := f.Dims()
	return nx == g.Nx && ny == g.Ny && nz == g.Nz
}
