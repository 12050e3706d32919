// Package forcefield evaluates potential energy and forces for a peptide
// chain. Two models are provided: a coarse-grained harmonic + Lennard-Jones
// field, and an Amber99SB-parameterised field with a Generalized-Born
// implicit-solvent term.
package forcefield

import (
	"math"

	"github.com/foldsim/foldsim/internal/geom"
	"github.com/foldsim/foldsim/internal/molecule"
)

const (
	// TargetBondLength is the equilibrium CA-CA distance in Angstroms.
	TargetBondLength = 3.8
	// CutoffDistance bounds the non-bonded pair sums, in Angstroms.
	CutoffDistance = 12.0
	// minDistance guards divisions; pairs closer than this are skipped.
	minDistance = 1e-10
)

// ForceField computes potential energy terms and per-residue forces.
type ForceField interface {
	ComputeEnergy(chain *molecule.PeptideChain) float64
	ComputeForces(chain *molecule.PeptideChain) []geom.Vec3
	BondEnergy(chain *molecule.PeptideChain) float64
	AngleEnergy(chain *molecule.PeptideChain) float64
	DihedralEnergy(chain *molecule.PeptideChain) float64
	NonbondedEnergy(chain *molecule.PeptideChain) float64
}

// bendAngle returns the angle at b subtended by a and c, or -1 when either
// arm is degenerate.
func bendAngle(a, b, c geom.Vec3) float64 {
	v1 := a.Sub(b)
	v2 := c.Sub(b)
	n1 := v1.Norm()
	n2 := v2.Norm()
	if n1 < minDistance || n2 < minDistance {
		return -1
	}
	cos := v1.Dot(v2) / (n1 * n2)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}
