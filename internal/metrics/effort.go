package metrics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/mergersrc/internal/dynamo"
)

// DampingEffort is the mean over snapshots of the volume-integrated
// magnitude of the Cartesian momentum source.
type DampingEffort struct {
	name    string
	sum     float64
	samples int
}

func NewDampingEffort() *DampingEffort {
	return &DampingEffort{
		name: "damping_effort",
	}
}

func (d *DampingEffort) Name() string {
	return d.name
}

func (d *DampingEffort) Observe(s dynamo.Snapshot) {
	nx, ny, nz := s.Source.Dims()
	total := 0.0
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				total += r3.Norm(dynamo.Momentum(s.Source, i, j, k))
			}
		}
	}
	d.sum += total * s.Geometry.CellVolume()
	d.samples++
}

func (d *DampingEffort) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.sum / float64(d.samples)
}

func (d *DampingEffort) Reset() {
	d.sum = 0
	d.samples = 0
}
