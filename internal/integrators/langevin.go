package integrators

import (
	"math"
	"math/rand"

	"github.com/foldsim/foldsim/internal/geom"
	"github.com/foldsim/foldsim/internal/molecule"
)

const (
	shakeTolerance  = 1e-6
	shakeMaxIters   = 100
	impulseStrength = 10.0
)

// Langevin is a thermostatted velocity integrator: each step applies a
// half-kick with deterministic force, friction drag, and a stochastic force
// obeying the fluctuation-dissipation relation, advances positions, applies
// the second half-kick without recomputing forces, then projects bond
// lengths back toward the target with a SHAKE-style iteration.
type Langevin struct {
	temperature float64
	friction    float64
	velocities  []geom.Vec3
	masses      []float64
	rng         *rand.Rand
	constraints molecule.BondConstraintSet
}

// NewLangevin builds an integrator for numParticles residues. The seed is
// explicit; two integrators built with the same seed produce identical
// trajectories for identical inputs.
func NewLangevin(numParticles int, temperature, friction float64, seed int64) *Langevin {
	masses := make([]float64, numParticles)
	for i := range masses {
		masses[i] = DefaultMass
	}
	return &Langevin{
		temperature: temperature,
		friction:    friction,
		velocities:  make([]geom.Vec3, numParticles),
		masses:      masses,
		rng:         rand.New(rand.NewSource(seed)),
		constraints: molecule.DefaultBondConstraints(),
	}
}

func (l *Langevin) ensureBuffers(n int) {
	if len(l.velocities) == n {
		return
	}
	velocities := make([]geom.Vec3, n)
	copy(velocities, l.velocities)
	masses := make([]float64, n)
	for i := range masses {
		if i < len(l.masses) {
			masses[i] = l.masses[i]
		} else {
			masses[i] = DefaultMass
		}
	}
	l.velocities = velocities
	l.masses = masses
}

// InitializeVelocities draws Maxwell-Boltzmann velocities for the current
// temperature.
func (l *Langevin) InitializeVelocities(chain *molecule.PeptideChain) {
	l.ensureBuffers(chain.Len())
	for i := range l.velocities {
		sigma := math.Sqrt(Boltzmann * l.temperature / l.masses[i])
		l.velocities[i] = geom.New(
			l.rng.NormFloat64()*sigma,
			l.rng.NormFloat64()*sigma,
			l.rng.NormFloat64()*sigma,
		)
	}
}

func (l *Langevin) Step(chain *molecule.PeptideChain, forces []geom.Vec3, dt float64) {
	residues := chain.Residues()
	l.ensureBuffers(len(residues))

	for i := range residues {
		mass := l.masses[i]
		force := forceAt(forces, i)

		sigma := math.Sqrt(2 * l.friction * Boltzmann * l.temperature / mass)
		random := geom.New(
			l.rng.NormFloat64()*sigma,
			l.rng.NormFloat64()*sigma,
			l.rng.NormFloat64()*sigma,
		)

		// Half-kick, position drift, second half-kick with the same
		// acceleration; forces are not recomputed mid-step.
		drag := l.velocities[i].Scale(l.friction)
		accel := force.Add(random).Sub(drag).Scale(1 / mass)

		l.velocities[i] = l.velocities[i].Add(accel.Scale(dt * 0.5))
		residues[i].SetPosition(residues[i].Position().Add(l.velocities[i].Scale(dt)))
		l.velocities[i] = l.velocities[i].Add(accel.Scale(dt * 0.5))
	}

	l.ApplyConstraints(chain)
}

// ApplyConstraints iteratively corrects consecutive bond lengths toward the
// preferred distance, splitting each correction evenly between the two
// residues. Stops once the largest error is within tolerance or after the
// iteration cap.
func (l *Langevin) ApplyConstraints(chain *molecule.PeptideChain) {
	residues := chain.Residues()
	target := l.constraints.PreferredDistance

	for iter := 0; iter < shakeMaxIters; iter++ {
		maxError := 0.0

		for i := 0; i+1 < len(residues); i++ {
			p1 := residues[i].Position()
			p2 := residues[i+1].Position()
			delta := p2.Sub(p1)
			current := delta.Norm()
			if current < 1e-12 {
				continue
			}

			err := current - target
			if math.Abs(err) > maxError {
				maxError = math.Abs(err)
			}
			if math.Abs(err) <= shakeTolerance {
				continue
			}

			correction := err / (2 * current)
			residues[i].SetPosition(p1.Add(delta.Scale(correction)))
			residues[i+1].SetPosition(p2.Sub(delta.Scale(correction)))
		}

		if maxError < shakeTolerance {
			break
		}
	}
}

// ApplyRotationImpulse perturbs one residue's velocity along a random unit
// direction, scaled by the requested angle magnitude. This models an
// externally injected rotation command.
func (l *Langevin) ApplyRotationImpulse(residueIdx int, angle float64) {
	if residueIdx < 0 || residueIdx >= len(l.velocities) {
		return
	}
	dir := geom.New(
		l.rng.NormFloat64(),
		l.rng.NormFloat64(),
		l.rng.NormFloat64(),
	).Normalize()
	l.velocities[residueIdx] = l.velocities[residueIdx].Add(dir.Scale(angle * impulseStrength))
}

func (l *Langevin) SetTemperature(temperature float64) {
	l.temperature = temperature
}

func (l *Langevin) KineticEnergy(chain *molecule.PeptideChain) float64 {
	energy := 0.0
	for i, mass := range l.masses {
		if i < len(l.velocities) {
			energy += 0.5 * mass * l.velocities[i].NormSquared()
		}
	}
	return energy
}

// Temperature derives the instantaneous temperature from kinetic energy by
// equipartition over 3N degrees of freedom.
func (l *Langevin) Temperature(chain *molecule.PeptideChain) float64 {
	dof := 3 * chain.Len()
	if dof == 0 {
		return 0
	}
	return 2 * l.KineticEnergy(chain) / (Boltzmann * float64(dof))
}

// ScaleVelocities rescales all velocities toward a target temperature. A
// near-zero current temperature leaves velocities untouched.
func (l *Langevin) ScaleVelocities(targetTemperature, currentTemperature float64) {
	if currentTemperature <= 1e-10 {
		return
	}
	factor := math.Sqrt(targetTemperature / currentTemperature)
	for i := range l.velocities {
		l.velocities[i] = l.velocities[i].Scale(factor)
	}
}
