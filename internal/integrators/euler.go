package integrators

import "github.com/san-kum/mergersrc/internal/dynamo"

// Euler applies the old-time source over the whole step. The damping
// coefficients are built for this update.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(f SourceFunc, state, src *dynamo.Field, t, dt float64) error {
	src.Zero()
	if err := f(state, src, t); err != nil {
		return err
	}
	return state.Axpy(dt, src)
}
