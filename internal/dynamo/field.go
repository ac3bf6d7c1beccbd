package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Conserved-variable components of a state or source field.
const (
	URHO  = iota // density
	UMX          // x momentum
	UMY          // y momentum
	UMZ          // z momentum
	UEDEN        // total energy density
	UMR          // hybrid radial momentum
	UML          // hybrid angular momentum
	UMP          // hybrid vertical momentum
	NVAR
)

// StateAccessor is the read-only view of the conserved state.
type StateAccessor interface {
	At(i, j, k, n int) float64
}

// SourceAccumulator supports in-place addition into a source field.
type SourceAccumulator interface {
	Add(i, j, k, n int, v float64)
}

// GeometryQuery returns the absolute cell-center position of a cell.
type GeometryQuery interface {
	Position(i, j, k int) r3.Vec
}

// Field stores ncomp values per cell of an nx*ny*nz box. The i index runs
// fastest, then j, k and finally the component.
type Field struct {
	nx, ny, nz int
	ncomp      int
	data       []float64
}

func NewField(nx, ny, nz, ncomp int) (*Field, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 || ncomp <= 0 {
		return nil, fmt.Errorf("field %dx%dx%d with %d components: %w", nx, ny, nz, ncomp, ErrParameterBounds)
	}
	return &Field{
		nx:    nx,
		ny:    ny,
		nz:    nz,
		ncomp: ncomp,
		data:  make([]float64, nx*ny*nz*ncomp),
	}, nil
}

func (f *Field) Dims() (nx, ny, nz int) { return f.nx, f.ny, f.nz }
func (f *Field) NComp() int             { return f.ncomp }
func (f *Field) Cells() int             { return f.nx * f.ny * f.nz }

func (f *Field) index(i, j, k, n int) int {
	return ((n*f.nz+k)*f.ny+j)*f.nx + i
}

func (f *Field) At(i, j, k, n int) float64 {
	return f.data[f.index(i, j, k, n)]
}

func (f *Field) Set(i, j, k, n int, v float64) {
	f.data[f.index(i, j, k, n)] = v
}

// Add increments one value. It is a plain read-modify-write, not atomic.
func (f *Field) Add(i, j, k, n int, v float64) {
	f.data[f.index(i, j, k, n)] += v
}

func (f *Field) Zero() {
	for i := range f.data {
		f.data[i] = 0
	}
}

func (f *Field) Clone() *Field {
	c := &Field{nx: f.nx, ny: f.ny, nz: f.nz, ncomp: f.ncomp, data: make([]float64, len(f.data))}
	copy(c.data, f.data)
	return c
}

// SameShape reports whether g has the same box and component count.
func (f *Field) SameShape(g *Field) bool {
	return f.nx == g.nx && f.ny == g.ny && f.nz == g.nz && f.ncomp == g.ncomp
}

// Axpy performs f += a*x.
func (f *Field) Axpy(a float64, x *Field) error {
	if !f.SameShape(x) {
		return ErrDimensionMismatch
	}
	for i, v := range x.data {
		f.data[i] += a * v
	}
	return nil
}

func (f *Field) Scale(a float64) {
	for i := range f.data {
		f.data[i] *= a
	}
}

func (f *Field) IsValid() bool {
	for _, v := range f.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Component returns the storage of component n over all cells, in x-fastest
// order. The slice aliases the field.
func (f *Field) Component(n int) []float64 {
	cells := f.Cells()
	return f.data[n*cells : (n+1)*cells]
}

// Sum returns the sum of component n over all cells.
func (f *Field) Sum(n int) float64 {
	return floats.Sum(f.Component(n))
}
