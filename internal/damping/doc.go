// Package damping implements the artificial source terms used to set up and
// drive a binary white dwarf merger.
//
// Two terms are provided, both evaluated per cell and accumulated into a
// source field:
//
//   - relaxation damping, a drag proportional to momentum that settles each
//     star into equilibrium before the dynamical phase
//   - radial drift damping, an inward force in the orbital plane that slowly
//     shrinks the orbit until mass transfer begins
//
// Both terms are applied implicitly. Given a damping time tau and a step dt
// the rate coefficient is
//
//	-(1 - 1/(1 + dt/tau)) / dt
//
// which tends to -1/tau for dt << tau and stays bounded by 1/dt for dt >> tau.
//
// The kinetic energy source of each term is v . S with v the lab-frame
// velocity before the update.
//
// # Thread Safety
//
// A [Kernel] is immutable after construction and may be shared by any number
// of goroutines. [Kernel.Apply] writes only to the cell it is given.
package damping
