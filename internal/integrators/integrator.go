// Package integrators advances peptide chain positions one time step at a
// time. A Langevin thermostat, a position-only Stormer-Verlet scheme, and an
// overdamped Brownian scheme are provided. Stochastic variants take an
// explicit seed so runs are reproducible.
package integrators

import (
	"github.com/foldsim/foldsim/internal/geom"
	"github.com/foldsim/foldsim/internal/molecule"
)

const (
	// Boltzmann is k_B in kcal/mol/K.
	Boltzmann = 0.001987
	// DefaultMass is the CA bead mass in amu.
	DefaultMass = 12.0
	// DefaultSeed keeps stochastic integrators reproducible unless a caller
	// supplies its own seed.
	DefaultSeed = 42
)

// Integrator advances all residue positions in place by one step of size dt
// using the supplied per-residue forces.
type Integrator interface {
	Step(chain *molecule.PeptideChain, forces []geom.Vec3, dt float64)
	SetTemperature(temperature float64)
	KineticEnergy(chain *molecule.PeptideChain) float64
}

// forceAt tolerates short force arrays by substituting a zero vector, the
// same forgiving stance the buffer resizing takes.
func forceAt(forces []geom.Vec3, i int) geom.Vec3 {
	if i < len(forces) {
		return forces[i]
	}
	return geom.Vec3{}
}
