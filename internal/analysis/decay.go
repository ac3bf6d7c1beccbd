package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/mergersrc/internal/dynamo"
)

// Decay is an exponential fit y = Amplitude * exp(-Rate * t).
type Decay struct {
	Rate      float64
	Amplitude float64
	RSquared  float64
	Samples   int
}

// FitDecay fits an exponential to the strictly positive samples of ys.
// Non-positive or non-finite samples are skipped.
func FitDecay(times, ys []float64) (Decay, error) {
	if len(times) != len(ys) {
		return Decay{}, fmt.Errorf("%d times, %d values: %w", len(times), len(ys), dynamo.ErrDimensionMismatch)
	}

	xs := make([]float64, 0, len(ys))
	logs := make([]float64, 0, len(ys))
	for i, y := range ys {
		if y > 0 && !math.IsInf(y, 0) && !math.IsNaN(times[i]) {
			xs = append(xs, times[i])
			logs = append(logs, math.Log(y))
		}
	}
	if len(xs) < 2 {
		return Decay{}, fmt.Errorf("need two positive samples, have %d: %w", len(xs), dynamo.ErrParameterBounds)
	}

	alpha, beta := stat.LinearRegression(xs, logs, nil, false)
	return Decay{
		Rate:      -beta,
		Amplitude: math.Exp(alpha),
		RSquared:  stat.RSquared(xs, logs, nil, alpha, beta),
		Samples:   len(xs),
	}, nil
}

// ExpectedDecay is the kinetic energy decay rate when momentum is multiplied
// by 1 + dt*coef every step. Kinetic energy goes as the square.
func ExpectedDecay(coef, dt float64) float64 {
	return -2 * math.Log(1+dt*coef) / dt
}

// HalfLife returns ln 2 / rate, or +Inf for a non-decaying series.
func HalfLife(rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	return math.Ln2 / rate
}
