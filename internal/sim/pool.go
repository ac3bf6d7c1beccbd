package sim

import (
	"sync"

	"github.com/san-kum/mergersrc/internal/dynamo"
)

// FieldPool recycles zeroed scratch fields of one shape.
type FieldPool struct {
	pool       sync.Pool
	nx, ny, nz int
	ncomp      int
}

func NewFieldPool(nx, ny, nz, ncomp int) *FieldPool {
	p := &FieldPool{nx: nx, ny: ny, nz: nz, ncomp: ncomp}
	p.pool.New = func() interface{} {
		f, err := dynamo.NewField(nx, ny, nz, ncomp)
		if err != nil {
			return nil
		}
		return f
	}
	return p
}

// Get returns a zeroed field, or nil if the pool shape is invalid.
func (p *FieldPool) Get() *dynamo.Field {
	f, _ := p.pool.Get().(*dynamo.Field)
	return f
}

func (p *FieldPool) Put(f *dynamo.Field) {
	if f == nil {
		return
	}
	nx, ny, nz := f.Dims()
	if nx == p.nx && ny == p.ny && nz == p.nz && f.NComp() == p.ncomp {
		f.Zero()
		p.pool.Put(f)
	}
}
