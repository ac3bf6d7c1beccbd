package damping

import "math"

// Mode selects which damping term a timescale or coefficient is for.
type Mode int

const (
	Relaxation Mode = iota
	RadialDrift
)

func (m Mode) String() string {
	switch m {
	case Relaxation:
		return "relaxation"
	case RadialDrift:
		return "radial_drift"
	default:
		return "unknown"
	}
}

// DynamicalTimescale picks the timescale that bounds a damping term.
// Relaxation must not outrun the faster star, so it uses the shorter
// free-fall time. Radial drift must stay slow compared with the slower star,
// so it uses the longer one.
func DynamicalTimescale(mode Mode, tffPrimary, tffSecondary float64) float64 {
	if mode == RadialDrift {
		return math.Max(tffPrimary, tffSecondary)
	}
	return math.Min(tffPrimary, tffSecondary)
}

// ImplicitCoefficient returns the implicit-Euler damping rate for damping time
// tau and step dt.
func ImplicitCoefficient(tau, dt float64) float64 {
	return -(1.0 - 1.0/(1.0+dt/tau)) / dt
}

// Coefficient returns the damping rate of the given term for step dt, and
// whether that term is enabled at all.
func (c Config) Coefficient(mode Mode, dt float64) (float64, bool) {
	var factor float64
	var enabled bool
	switch mode {
	case Relaxation:
		factor, enabled = c.RelaxationDampingFactor, c.relaxationEnabled()
	case RadialDrift:
		factor, enabled = c.RadialDampingFactor, c.driftEnabled()
	}
	if !enabled {
		return 0, false
	}

	tau := factor * DynamicalTimescale(mode, c.TffPrimary, c.TffSecondary)
	return ImplicitCoefficient(tau, dt), true
}
