package metrics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/mergersrc/internal/dynamo"
)

// TotalKineticEnergy integrates |m|^2 / (2 rho) over the grid.
func TotalKineticEnergy(state *dynamo.Field, geom dynamo.Geometry) float64 {
	nx, ny, nz := state.Dims()
	sum := 0.0
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				m := dynamo.Momentum(state, i, j, k)
				sum += 0.5 * r3.Dot(m, m) / state.At(i, j, k, dynamo.URHO)
			}
		}
	}
	return sum * geom.CellVolume()
}

// KineticEnergy reports the kinetic energy of the most recent snapshot.
type KineticEnergy struct {
	name    string
	current float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(s dynamo.Snapshot) {
	e.current = TotalKineticEnergy(s.State, s.Geometry)
	e.samples++
}

func (e *KineticEnergy) Value() float64 { return e.current }

func (e *KineticEnergy) Reset() {
	e.current = 0
	e.samples = 0
}

// EnergySource accumulates the energy injected by the sources, dt * sum of
// the energy source over the grid. Damping makes it negative.
type EnergySource struct {
	name  string
	total float64
}

func NewEnergySource() *EnergySource {
	return &EnergySource{name: "energy_source"}
}

func (e *EnergySource) Name() string { return e.name }

func (e *EnergySource) Observe(s dynamo.Snapshot) {
	e.total += s.Dt * s.Source.Sum(dynamo.UEDEN) * s.Geometry.CellVolume()
}

func (e *EnergySource) Value() float64 { return e.total }

func (e *EnergySource) Reset() { e.total = 0 }
