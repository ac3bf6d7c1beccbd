package integrators

import "github.com/san-kum/mergersrc/internal/dynamo"

// Heun is a predictor-corrector: a full step with the old-time source, then a
// half-step correction with the difference between the new-time and
// old-time sources. The net update uses their average.
type Heun struct {
	next *dynamo.Field
}

func NewHeun() *Heun {
	return &Heun{}
}

func (h *Heun) Name() string { return "heun" }

func (h *Heun) Step(f SourceFunc, state, src *dynamo.Field, t, dt float64) error {
	src.Zero()
	if err := f(state, src, t); err != nil {
		return err
	}
	if err := state.Axpy(dt, src); err != nil {
		return err
	}

	if h.next == nil || !h.next.SameShape(src) {
		h.next = src.Clone()
	}
	h.next.Zero()
	if err := f(state, h.next, t+dt); err != nil {
		return err
	}

	// src becomes (old + new) / 2; state gets the remaining dt * (new - old) / 2.
	if err := state.Axpy(0.5*dt, h.next); err != nil {
		return err
	}
	if err := state.Axpy(-0.5*dt, src); err != nil {
		return err
	}
	src.Scale(0.5)
	return src.Axpy(0.5, h.next)
}
