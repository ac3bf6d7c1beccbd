// Package wdmerger holds the problem-side pieces the damping kernel needs
// from a binary white dwarf setup: stellar free-fall times, the orbital
// period and a simple two-star initial state on a grid.
package wdmerger

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/mergersrc/internal/dynamo"
)

// GravitationalConstantCGS is Newton's constant in cm^3 g^-1 s^-2.
const GravitationalConstantCGS = 6.67430e-8

type Star struct {
	Mass   float64
	Radius float64
}

func (s Star) MeanDensity() float64 {
	return s.Mass / (4.0 / 3.0 * math.Pi * s.Radius * s.Radius * s.Radius)
}

// FreeFallTime is sqrt(3 pi / (32 G rho)) for the star's mean density.
func FreeFallTime(s Star, g float64) float64 {
	return math.Sqrt(3.0 * math.Pi / (32.0 * g * s.MeanDensity()))
}

// KeplerPeriod is the period of a circular orbit with separation a.
func KeplerPeriod(a, totalMass, g float64) float64 {
	return 2.0 * math.Pi * math.Sqrt(a*a*a/(g*totalMass))
}

// Binary describes two uniform-density stars on a circular orbit.
type Binary struct {
	Primary    Star
	Secondary  Star
	Separation float64
	G          float64

	// Axes are the 1-based orbital axes; the stars sit on Axes[0] and orbit
	// about Axes[2].
	Axes   [3]int
	Center r3.Vec

	AmbientDensity float64
	// SpecificEnergy is the internal energy per unit mass of all material.
	SpecificEnergy float64
	// Perturbation adds an outward velocity inside each star, as a fraction
	// of the star's orbital speed at its surface, for relaxation to remove.
	Perturbation float64
	// InRotatingFrame stores velocities relative to the co-rotating frame,
	// where the stars are at rest.
	InRotatingFrame bool
}

func (b Binary) Validate() error {
	if b.Primary.Mass <= 0 || b.Secondary.Mass <= 0 || b.Primary.Radius <= 0 || b.Secondary.Radius <= 0 {
		return fmt.Errorf("stars %+v and %+v: %w", b.Primary, b.Secondary, dynamo.ErrParameterBounds)
	}
	if b.Separation <= 0 || b.G <= 0 {
		return fmt.Errorf("separation %g, G %g: %w", b.Separation, b.G, dynamo.ErrParameterBounds)
	}
	if b.AmbientDensity <= 0 {
		return fmt.Errorf("ambient density %g must be positive: %w", b.AmbientDensity, dynamo.ErrParameterBounds)
	}
	seen := [4]bool{}
	for _, a := range b.Axes {
		if a < 1 || a > 3 || seen[a] {
			return fmt.Errorf("orbital axes %v: %w", b.Axes, dynamo.ErrInvalidConfig)
		}
		seen[a] = true
	}
	return nil
}

func (b Binary) TotalMass() float64 { return b.Primary.Mass + b.Secondary.Mass }

func (b Binary) FreeFallTimes() (primary, secondary float64) {
	return FreeFallTime(b.Primary, b.G), FreeFallTime(b.Secondary, b.G)
}

func (b Binary) Period() float64 {
	return KeplerPeriod(b.Separation, b.TotalMass(), b.G)
}

// Omega is the orbital angular velocity vector.
func (b Binary) Omega() r3.Vec {
	return dynamo.WithComponent(r3.Vec{}, b.Axes[2]-1, 2*math.Pi/b.Period())
}

// Positions returns the star centers with the center of mass at b.Center.
func (b Binary) Positions() (primary, secondary r3.Vec) {
	m := b.TotalMass()
	axis := b.Axes[0] - 1
	primary = dynamo.WithComponent(b.Center, axis, dynamo.Component(b.Center, axis)-b.Separation*b.Secondary.Mass/m)
	secondary = dynamo.WithComponent(b.Center, axis, dynamo.Component(b.Center, axis)+b.Separation*b.Primary.Mass/m)
	return primary, secondary
}

// Fill writes the initial conserved state into state.
func (b Binary) Fill(geom dynamo.Geometry, state *dynamo.Field) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if !geom.Matches(state) || state.NComp() < dynamo.NVAR {
		return dynamo.ErrDimensionMismatch
	}

	pPos, sPos := b.Positions()
	omega := b.Omega()
	stars := []struct {
		star   Star
		center r3.Vec
	}{
		{b.Primary, pPos},
		{b.Secondary, sPos},
	}

	for kk := 0; kk < geom.Nz; kk++ {
		for j := 0; j < geom.Ny; j++ {
			for i := 0; i < geom.Nx; i++ {
				pos := geom.Position(i, j, kk)
				rho := b.AmbientDensity
				var vel r3.Vec

				for _, s := range stars {
					d := r3.Sub(pos, s.center)
					if r3.Norm(d) >= s.star.Radius {
						continue
					}
					rho = s.star.MeanDensity()
					if !b.InRotatingFrame {
						vel = r3.Cross(omega, r3.Sub(s.center, b.Center))
					}
					if b.Perturbation != 0 {
						surface := r3.Norm(omega) * s.star.Radius
						vel = r3.Add(vel, r3.Scale(b.Perturbation*surface/s.star.Radius, d))
					}
				}

				mom := r3.Scale(rho, vel)
				state.Set(i, j, kk, dynamo.URHO, rho)
				state.Set(i, j, kk, dynamo.UMX, mom.X)
				state.Set(i, j, kk, dynamo.UMY, mom.Y)
				state.Set(i, j, kk, dynamo.UMZ, mom.Z)
				state.Set(i, j, kk, dynamo.UEDEN, rho*b.SpecificEnergy+0.5*rho*r3.Dot(vel, vel))
			}
		}
	}
	return nil
}
