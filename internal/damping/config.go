package damping

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/mergersrc/internal/dynamo"
	"github.com/san-kum/mergersrc/internal/rotation"
)

// ProblemMerger is the problem discriminator for which damping applies.
const ProblemMerger = 1

// Config is the read-only parameter set shared by every cell evaluation.
type Config struct {
	Problem int

	// Damping factors scale the dynamical timescale into a damping time.
	// A factor <= 0 disables the corresponding term.
	RelaxationDampingFactor float64
	RadialDampingFactor     float64

	// Free-fall timescales of the primary and secondary stars.
	TffPrimary   float64
	TffSecondary float64

	Rotation             rotation.Frame
	StateInRotatingFrame bool
	HybridMomentum       bool

	Center r3.Vec

	// Axes holds the 1-based orbital axes: the plane is spanned by Axes[0]
	// and Axes[1], Axes[2] is orthogonal to it.
	Axes [3]int
}

// DefaultAxes is the x-y orbital plane.
var DefaultAxes = [3]int{1, 2, 3}

func (c Config) relaxationEnabled() bool {
	return c.Problem == ProblemMerger && c.RelaxationDampingFactor > 0
}

func (c Config) driftEnabled() bool {
	return c.Problem == ProblemMerger && c.RadialDampingFactor > 0
}

// Active reports whether any damping term contributes.
func (c Config) Active() bool {
	return c.relaxationEnabled() || c.driftEnabled()
}

// Validate checks the invariants the per-cell path relies on.
func (c Config) Validate() error {
	seen := [4]bool{}
	for _, a := range c.Axes {
		if a < 1 || a > 3 || seen[a] {
			return fmt.Errorf("orbital axes %v must be a permutation of 1,2,3: %w", c.Axes, dynamo.ErrInvalidConfig)
		}
		seen[a] = true
	}

	if c.Active() && (c.TffPrimary <= 0 || c.TffSecondary <= 0) {
		return fmt.Errorf("free-fall times (%g, %g) must be positive: %w",
			c.TffPrimary, c.TffSecondary, dynamo.ErrParameterBounds)
	}

	if c.Rotation.Active() && (c.Rotation.Axis < 0 || c.Rotation.Axis > 2) {
		return fmt.Errorf("rotation axis %d: %w", c.Rotation.Axis, dynamo.ErrInvalidConfig)
	}

	return nil
}
