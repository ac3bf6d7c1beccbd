package hybrid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestLinearToHybrid_Standard(t *testing.T) {
	loc := r3.Vec{X: 3, Y: 4, Z: 7}
	lin := r3.Vec{X: 1, Y: 2, Z: 5}

	hyb := Standard.LinearToHybrid(loc, lin)

	assert.InDelta(t, (1*3+2*4)/5.0, hyb.X, 1e-12, "radial")
	assert.InDelta(t, 2*3-1*4.0, hyb.Y, 1e-12, "angular")
	assert.InDelta(t, 5.0, hyb.Z, 1e-12, "vertical")
}

func TestLinearToHybrid_PurelyRadial(t *testing.T) {
	loc := r3.Vec{X: 2, Y: 0}
	lin := r3.Vec{X: -3}

	hyb := Standard.LinearToHybrid(loc, lin)
	assert.InDelta(t, -3.0, hyb.X, 1e-12)
	assert.InDelta(t, 0.0, hyb.Y, 1e-12)
}

func TestRoundTrip(t *testing.T) {
	bases := []Basis{
		Standard,
		{Axis1: 1, Axis2: 2, Axis3: 0},
		{Axis1: 2, Axis2: 0, Axis3: 1},
	}
	loc := r3.Vec{X: -1.5, Y: 0.25, Z: 2}
	lin := r3.Vec{X: 0.3, Y: -4, Z: 1.1}

	for _, b := range bases {
		back := b.HybridToLinear(loc, b.LinearToHybrid(loc, lin))
		if d := r3.Norm(r3.Sub(back, lin)); d > 1e-12 {
			t.Errorf("basis %+v: round trip off by %g (%v)", b, d, back)
		}
	}
}

func TestLinearToHybrid_OnAxisIsNaN(t *testing.T) {
	hyb := Standard.LinearToHybrid(r3.Vec{Z: 1}, r3.Vec{X: 1})
	assert.True(t, math.IsNaN(hyb.X))
}
