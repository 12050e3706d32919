package integrators

import (
	"math"
	"math/rand"

	"github.com/foldsim/foldsim/internal/geom"
	"github.com/foldsim/foldsim/internal/molecule"
)

// Brownian is the overdamped stochastic scheme: positions drift with the
// force and diffuse with amplitude sqrt(2*D*dt), D = k_B*T/(friction*mass).
// No velocities exist, so kinetic energy is reported as the equipartition
// estimate rather than a measured quantity.
type Brownian struct {
	temperature float64
	friction    float64
	masses      []float64
	rng         *rand.Rand
}

func NewBrownian(numParticles int, temperature, friction float64, seed int64) *Brownian {
	masses := make([]float64, numParticles)
	for i := range masses {
		masses[i] = DefaultMass
	}
	return &Brownian{
		temperature: temperature,
		friction:    friction,
		masses:      masses,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (b *Brownian) ensureBuffers(n int) {
	if len(b.masses) == n {
		return
	}
	masses := make([]float64, n)
	for i := range masses {
		if i < len(b.masses) {
			masses[i] = b.masses[i]
		} else {
			masses[i] = DefaultMass
		}
	}
	b.masses = masses
}

func (b *Brownian) Step(chain *molecule.PeptideChain, forces []geom.Vec3, dt float64) {
	residues := chain.Residues()
	b.ensureBuffers(len(residues))

	kbT := Boltzmann * b.temperature
	for i := range residues {
		mass := b.masses[i]
		force := forceAt(forces, i)

		diffusion := kbT / (b.friction * mass)
		var drift geom.Vec3
		if kbT > 1e-12 {
			drift = force.Scale(diffusion * dt / kbT)
		}
		noiseAmp := math.Sqrt(2 * diffusion * dt)
		noise := geom.New(
			b.rng.NormFloat64()*noiseAmp,
			b.rng.NormFloat64()*noiseAmp,
			b.rng.NormFloat64()*noiseAmp,
		)

		residues[i].SetPosition(residues[i].Position().Add(drift).Add(noise))
	}
}

func (b *Brownian) SetTemperature(temperature float64) {
	b.temperature = temperature
}

// KineticEnergy returns 0.5*k_B*T per degree of freedom, the equilibrium
// expectation for a thermalised system.
func (b *Brownian) KineticEnergy(chain *molecule.PeptideChain) float64 {
	dof := 3 * chain.Len()
	return 0.5 * Boltzmann * b.temperature * float64(dof)
}
