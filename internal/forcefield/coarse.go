package forcefield

import (
	"math"

	"github.com/foldsim/foldsim/internal/geom"
	"github.com/foldsim/foldsim/internal/molecule"
)

// CoarseGrained is a harmonic + Lennard-Jones potential over one bead per
// residue, tuned for speed rather than accuracy.
type CoarseGrained struct {
	BondStrength     float64 // kcal/mol/A^2
	AngleStrength    float64 // kcal/mol/rad^2
	DihedralStrength float64 // kcal/mol
	LJEpsilon        float64 // kcal/mol
	LJSigma          float64 // A
}

func NewCoarseGrained() *CoarseGrained {
	return &CoarseGrained{
		BondStrength:     100.0,
		AngleStrength:    50.0,
		DihedralStrength: 2.0,
		LJEpsilon:        0.2,
		LJSigma:          3.5,
	}
}

func (ff *CoarseGrained) ComputeEnergy(chain *molecule.PeptideChain) float64 {
	return ff.BondEnergy(chain) +
		ff.AngleEnergy(chain) +
		ff.DihedralEnergy(chain) +
		ff.NonbondedEnergy(chain)
}

// ComputeForces returns the analytic gradient of the bond-stretch and
// Lennard-Jones terms. Angle and dihedral contributions are not
// differentiated; this truncation is intentional and pinned by tests.
func (ff *CoarseGrained) ComputeForces(chain *molecule.PeptideChain) []geom.Vec3 {
	residues := chain.Residues()
	forces := make([]geom.Vec3, len(residues))

	// Bond stretch
	for i := 0; i+1 < len(residues); i++ {
		p1 := residues[i].Position()
		p2 := residues[i+1].Position()
		r := geom.Dist(p1, p2)
		if r <= minDistance {
			continue
		}
		// Restoring: a stretched bond pulls the pair together.
		mag := ff.BondStrength * (r - TargetBondLength)
		dir := p2.Sub(p1).Scale(1 / r)
		forces[i] = forces[i].Add(dir.Scale(mag))
		forces[i+1] = forces[i+1].Sub(dir.Scale(mag))
	}

	// Lennard-Jones, bonded neighbors excluded
	for i := range residues {
		for j := i + 2; j < len(residues); j++ {
			p1 := residues[i].Position()
			p2 := residues[j].Position()
			r := geom.Dist(p1, p2)
			if r <= minDistance || r >= CutoffDistance {
				continue
			}
			sr := ff.LJSigma / r
			sr6 := sr * sr * sr * sr * sr * sr
			sr12 := sr6 * sr6
			// Repulsive inside the well minimum, attractive beyond it.
			mag := -24 * ff.LJEpsilon * (2*sr12 - sr6) / r
			dir := p2.Sub(p1).Scale(1 / r)
			forces[i] = forces[i].Add(dir.Scale(mag))
			forces[j] = forces[j].Sub(dir.Scale(mag))
		}
	}

	return forces
}

func (ff *CoarseGrained) BondEnergy(chain *molecule.PeptideChain) float64 {
	residues := chain.Residues()
	energy := 0.0
	for i := 0; i+1 < len(residues); i++ {
		r := geom.Dist(residues[i].Position(), residues[i+1].Position())
		dr := r - TargetBondLength
		energy += 0.5 * ff.BondStrength * dr * dr
	}
	return energy
}

func (ff *CoarseGrained) AngleEnergy(chain *molecule.PeptideChain) float64 {
	residues := chain.Residues()
	theta0 := 120.0 * math.Pi / 180.0
	energy := 0.0
	for i := 0; i+2 < len(residues); i++ {
		theta := bendAngle(residues[i].Position(), residues[i+1].Position(), residues[i+2].Position())
		if theta < 0 {
			continue
		}
		dt := theta - theta0
		energy += 0.5 * ff.AngleStrength * dt * dt
	}
	return energy
}

// DihedralEnergy is a Ramachandran-style cosine potential over the stored
// phi/psi values of interior residues; it is not recomputed from geometry.
func (ff *CoarseGrained) DihedralEnergy(chain *molecule.PeptideChain) float64 {
	residues := chain.Residues()
	energy := 0.0
	for i := 0; i+3 < len(residues); i++ {
		phi := residues[i+1].Phi
		psi := residues[i+1].Psi
		energy += ff.DihedralStrength * (1 + math.Cos(3*phi))
		energy += ff.DihedralStrength * (1 + math.Cos(psi))
	}
	return energy
}

func (ff *CoarseGrained) NonbondedEnergy(chain *molecule.PeptideChain) float64 {
	residues := chain.Residues()
	energy := 0.0
	for i := range residues {
		for j := i + 2; j < len(residues); j++ {
			r := geom.Dist(residues[i].Position(), residues[j].Position())
			if r <= minDistance || r >= CutoffDistance {
				continue
			}
			sr := ff.LJSigma / r
			sr6 := sr * sr * sr * sr * sr * sr
			sr12 := sr6 * sr6
			energy += 4 * ff.LJEpsilon * (sr12 - sr6)
		}
	}
	return energy
}
