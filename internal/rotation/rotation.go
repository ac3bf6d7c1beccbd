// Package rotation implements rigid-rotation frame bookkeeping: the angular
// velocity of a rotating frame and the velocity transforms between that frame
// and the inertial one.
package rotation

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/mergersrc/internal/dynamo"
)

// Frame is a rotation about one Cartesian axis with a possibly drifting
// period. A non-positive Period means no rotation.
type Frame struct {
	Axis      int // zero-based
	Period    float64
	PeriodDot float64
}

func (f Frame) Active() bool { return f.Period > 0 }

// OmegaAt returns the angular velocity vector at time t, zero when the frame
// does not rotate.
func (f Frame) OmegaAt(t float64) r3.Vec {
	if !f.Active() {
		return r3.Vec{}
	}
	period := f.Period + f.PeriodDot*t
	return dynamo.WithComponent(r3.Vec{}, f.Axis, 2*math.Pi/period)
}

// InertialToRotational returns v - omega x r, with r measured from the
// rotation center.
func InertialToRotational(v, r, omega r3.Vec) r3.Vec {
	return r3.Sub(v, r3.Cross(omega, r))
}

// RotationalToInertial returns v + omega x r.
func RotationalToInertial(v, r, omega r3.Vec) r3.Vec {
	return r3.Add(v, r3.Cross(omega, r))
}

// InertialVelocity returns the inertial-frame velocity of material at r with
// stored velocity v. Only a state kept in the rotating frame needs the
// omega x r correction.
func InertialVelocity(v, r, omega r3.Vec, stateInRotatingFrame bool) r3.Vec {
	if !stateInRotatingFrame {
		return v
	}
	return RotationalToInertial(v, r, omega)
}
