package damping

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/mergersrc/internal/dynamo"
	"github.com/san-kum/mergersrc/internal/hybrid"
	"github.com/san-kum/mergersrc/internal/rotation"
)

// Cell is the conserved state of one cell together with its absolute
// cell-center position. Density must be positive.
type Cell struct {
	Density  float64
	Momentum r3.Vec
	Position r3.Vec
}

// Term is one source contribution. Hybrid is zero unless hybrid momentum is
// active.
type Term struct {
	Momentum r3.Vec
	Hybrid   r3.Vec
	Energy   float64
}

func (t Term) add(o Term) Term {
	return Term{
		Momentum: r3.Add(t.Momentum, o.Momentum),
		Hybrid:   r3.Add(t.Hybrid, o.Hybrid),
		Energy:   t.Energy + o.Energy,
	}
}

// Kernel evaluates the damping source terms cell by cell.
type Kernel struct {
	cfg   Config
	basis hybrid.Basis
}

func NewKernel(cfg Config) (*Kernel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Kernel{
		cfg: cfg,
		basis: hybrid.Basis{
			Axis1: cfg.Axes[0] - 1,
			Axis2: cfg.Axes[1] - 1,
			Axis3: cfg.Axes[2] - 1,
		},
	}, nil
}

func (k *Kernel) Config() Config      { return k.cfg }
func (k *Kernel) Active() bool        { return k.cfg.Active() }
func (k *Kernel) Basis() hybrid.Basis { return k.basis }

// Relaxation returns the relaxation damping term for c. The drag acts on the
// rotating-frame momentum when the state is stored in the inertial frame of a
// rotating problem. A momentum rate at a fixed position is the same in both
// frames, so the result is written back unchanged.
func (k *Kernel) Relaxation(c Cell, dt, time float64) (Term, bool) {
	coef, ok := k.cfg.Coefficient(Relaxation, dt)
	if !ok {
		return Term{}, false
	}

	rhoInv := 1.0 / c.Density
	loc := r3.Sub(c.Position, k.cfg.Center)
	vel := r3.Scale(rhoInv, c.Momentum)

	mom := c.Momentum
	if k.cfg.Rotation.Active() && !k.cfg.StateInRotatingFrame {
		vrot := rotation.InertialToRotational(vel, loc, k.cfg.Rotation.OmegaAt(time))
		mom = r3.Scale(c.Density, vrot)
	}

	return k.finish(loc, vel, r3.Scale(coef, mom)), true
}

// RadialDrift returns the radial drift term for c. The force lies in the
// orbital plane along the cylindrical radius and scales with the magnitude of
// the inertial radial speed, so it always points inward for a negative
// coefficient. The term is undefined on the rotation axis.
func (k *Kernel) RadialDrift(c Cell, dt, time float64) (Term, bool) {
	coef, ok := k.cfg.Coefficient(RadialDrift, dt)
	if !ok {
		return Term{}, false
	}

	rhoInv := 1.0 / c.Density
	loc := r3.Sub(c.Position, k.cfg.Center)
	vel := r3.Scale(rhoInv, c.Momentum)

	a1, a2 := k.basis.Axis1, k.basis.Axis2
	x1, x2 := dynamo.Component(loc, a1), dynamo.Component(loc, a2)
	R := math.Sqrt(x1*x1 + x2*x2)
	cosTheta := x1 / R
	sinTheta := x2 / R

	var omega r3.Vec
	if k.cfg.Rotation.Active() {
		omega = k.cfg.Rotation.OmegaAt(time)
	}
	velI := rotation.InertialVelocity(vel, loc, omega, k.cfg.Rotation.Active() && k.cfg.StateInRotatingFrame)

	vRad := cosTheta*dynamo.Component(velI, a1) + sinTheta*dynamo.Component(velI, a2)
	mag := c.Density * math.Abs(vRad) * coef

	var S r3.Vec
	S = dynamo.WithComponent(S, a1, cosTheta*mag)
	S = dynamo.WithComponent(S, a2, sinTheta*mag)

	return k.finish(loc, vel, S), true
}

// finish attaches the hybrid remap and the kinetic energy source v . S.
func (k *Kernel) finish(loc, vel, S r3.Vec) Term {
	t := Term{Momentum: S, Energy: r3.Dot(vel, S)}
	if k.cfg.HybridMomentum {
		t.Hybrid = k.basis.LinearToHybrid(loc, S)
	}
	return t
}

// Evaluate returns the sum of all enabled terms for c.
func (k *Kernel) Evaluate(c Cell, dt, time float64) Term {
	var total Term
	if t, ok := k.Relaxation(c, dt, time); ok {
		total = total.add(t)
	}
	if t, ok := k.RadialDrift(c, dt, time); ok {
		total = total.add(t)
	}
	return total
}

// Apply evaluates cell (i,j,k) and adds every enabled term into src. Existing
// source values are kept.
func (k *Kernel) Apply(i, j, kk int, geom dynamo.GeometryQuery, state dynamo.StateAccessor, src dynamo.SourceAccumulator, dt, time float64) {
	if !k.cfg.Active() {
		return
	}

	c := Cell{
		Density:  state.At(i, j, kk, dynamo.URHO),
		Momentum: dynamo.Momentum(state, i, j, kk),
		Position: geom.Position(i, j, kk),
	}

	if t, ok := k.Relaxation(c, dt, time); ok {
		k.accumulate(i, j, kk, src, t)
	}
	if t, ok := k.RadialDrift(c, dt, time); ok {
		k.accumulate(i, j, kk, src, t)
	}
}

func (k *Kernel) accumulate(i, j, kk int, src dynamo.SourceAccumulator, t Term) {
	src.Add(i, j, kk, dynamo.UMX, t.Momentum.X)
	src.Add(i, j, kk, dynamo.UMY, t.Momentum.Y)
	src.Add(i, j, kk, dynamo.UMZ, t.Momentum.Z)

	if k.cfg.HybridMomentum {
		src.Add(i, j, kk, dynamo.UMR, t.Hybrid.X)
		src.Add(i, j, kk, dynamo.UML, t.Hybrid.Y)
		src.Add(i, j, kk, dynamo.UMP, t.Hybrid.Z)
	}

	src.Add(i, j, kk, dynamo.UEDEN, t.Energy)
}
