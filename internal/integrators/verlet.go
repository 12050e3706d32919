package integrators

import (
	"github.com/foldsim/foldsim/internal/geom"
	"github.com/foldsim/foldsim/internal/molecule"
)

// Verlet is the position-only Stormer-Verlet scheme
// x_new = 2x - x_prev + a*dt^2. It carries no velocities, so it has no
// temperature control and always reports zero kinetic energy.
type Verlet struct {
	prevPositions []geom.Vec3
	masses        []float64
	initialized   bool
}

func NewVerlet(numParticles int) *Verlet {
	masses := make([]float64, numParticles)
	for i := range masses {
		masses[i] = DefaultMass
	}
	return &Verlet{
		prevPositions: make([]geom.Vec3, numParticles),
		masses:        masses,
	}
}

// Initialize caches the chain's current positions as the previous step.
// Call this once before stepping; otherwise the first step treats the
// previous positions as the origin.
func (v *Verlet) Initialize(chain *molecule.PeptideChain) {
	v.prevPositions = chain.Positions()
	if len(v.masses) != len(v.prevPositions) {
		v.masses = make([]float64, len(v.prevPositions))
		for i := range v.masses {
			v.masses[i] = DefaultMass
		}
	}
	v.initialized = true
}

// Initialized reports whether previous positions have been cached.
func (v *Verlet) Initialized() bool {
	return v.initialized
}

func (v *Verlet) ensureBuffers(chain *molecule.PeptideChain) {
	if len(v.prevPositions) == chain.Len() {
		return
	}
	prev := make([]geom.Vec3, chain.Len())
	copy(prev, v.prevPositions)
	masses := make([]float64, chain.Len())
	for i := range masses {
		if i < len(v.masses) {
			masses[i] = v.masses[i]
		} else {
			masses[i] = DefaultMass
		}
	}
	v.prevPositions = prev
	v.masses = masses
}

func (v *Verlet) Step(chain *molecule.PeptideChain, forces []geom.Vec3, dt float64) {
	v.ensureBuffers(chain)
	residues := chain.Residues()

	for i := range residues {
		mass := v.masses[i]
		accel := forceAt(forces, i).Scale(1 / mass)
		current := residues[i].Position()
		prev := v.prevPositions[i]

		next := current.Scale(2).Sub(prev).Add(accel.Scale(dt * dt))

		v.prevPositions[i] = current
		residues[i].SetPosition(next)
	}
}

// SetTemperature is a no-op: the scheme has no thermostat.
func (v *Verlet) SetTemperature(temperature float64) {}

// KineticEnergy always returns zero because velocities are not tracked.
func (v *Verlet) KineticEnergy(chain *molecule.PeptideChain) float64 {
	return 0
}
