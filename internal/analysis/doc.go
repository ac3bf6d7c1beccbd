// Package analysis characterises how a run relaxes.
//
//   - [FitDecay]: exponential decay rate of a positive series, from a
//     least-squares line through its logarithm
//   - [ExpectedDecay]: the kinetic energy decay rate a single damping
//     coefficient produces with forward Euler updates
//   - [HalfLife]: time for a decaying quantity to halve
package analysis
