package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/mergersrc/internal/dynamo"
)

// Stability is the fraction of snapshots whose state is finite and whose
// fastest cell stays below a speed threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(snap dynamo.Snapshot) {
	s.samples++
	if !snap.State.IsValid() || MaxSpeed(snap.State) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

func MaxSpeed(state *dynamo.Field) float64 {
	nx, ny, nz := state.Dims()
	maxV := 0.0
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				v := r3.Norm(dynamo.Momentum(state, i, j, k)) / state.At(i, j, k, dynamo.URHO)
				maxV = math.Max(maxV, v)
			}
		}
	}
	return maxV
}
