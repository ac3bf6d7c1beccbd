package damping

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/mergersrc/internal/dynamo"
	"github.com/san-kum/mergersrc/internal/rotation"
)

func benchKernel(b *testing.B, hybridMomentum bool) *Kernel {
	b.Helper()
	k, err := NewKernel(Config{
		Problem:                 ProblemMerger,
		RelaxationDampingFactor: 0.1,
		RadialDampingFactor:     10,
		TffPrimary:              2,
		TffSecondary:            5,
		Rotation:                rotation.Frame{Axis: 2, Period: 100},
		HybridMomentum:          hybridMomentum,
		Axes:                    DefaultAxes,
	})
	if err != nil {
		b.Fatal(err)
	}
	return k
}

func BenchmarkEvaluate(b *testing.B) {
	k := benchKernel(b, false)
	c := Cell{Density: 1, Momentum: r3.Vec{X: 0.1, Y: 2, Z: 0.01}, Position: r3.Vec{X: 3, Y: 1, Z: 0.2}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = k.Evaluate(c, 0.01, 0)
	}
}

func BenchmarkApply_Hybrid(b *testing.B) {
	k := benchKernel(b, true)
	geom, _ := dynamo.NewGeometry(r3.Vec{X: -1, Y: -1, Z: -1}, r3.Vec{X: 1, Y: 1, Z: 1}, 2, 2, 2)
	state, _ := dynamo.NewField(2, 2, 2, dynamo.NVAR)
	src, _ := dynamo.NewField(2, 2, 2, dynamo.NVAR)
	state.Set(1, 1, 1, dynamo.URHO, 1)
	state.Set(1, 1, 1, dynamo.UMY, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k.Apply(1, 1, 1, geom, state, src, 0.01, 0)
	}
}
