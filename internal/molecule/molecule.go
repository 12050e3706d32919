// Package molecule holds the coarse-grained peptide chain model: one point
// position and two backbone dihedral angles per residue. Angles are stored
// in radians throughout.
package molecule

import (
	"math"

	"github.com/foldsim/foldsim/internal/geom"
)

// DefaultBondLength is the target CA-CA distance in Angstroms.
const DefaultBondLength = 3.8

// ResidueID identifies a residue by its position in the owning chain.
type ResidueID int

// Residue is a single amino acid reduced to a labelled point with backbone
// dihedral angles.
type Residue struct {
	ID       ResidueID
	Name     string
	Phi, Psi float64
	position geom.Vec3
}

func NewResidue(id ResidueID, name string, position geom.Vec3) Residue {
	return Residue{ID: id, Name: name, position: position}
}

func (r *Residue) Position() geom.Vec3 {
	return r.position
}

func (r *Residue) SetPosition(p geom.Vec3) {
	r.position = p
}

// BondConstraintSet describes the fixed bond geometry enforced between
// consecutive residues.
type BondConstraintSet struct {
	PreferredDistance float64
}

func DefaultBondConstraints() BondConstraintSet {
	return BondConstraintSet{PreferredDistance: DefaultBondLength}
}

// PeptideChain is an ordered, index-stable sequence of residues. The chain
// length is fixed after construction; integrators only mutate positions and
// angles in place.
type PeptideChain struct {
	residues []Residue
}

func NewChain(residues []Residue) *PeptideChain {
	return &PeptideChain{residues: residues}
}

// FromSequence builds a chain from a one-letter amino acid sequence, seeding
// positions along a loose helix.
func FromSequence(sequence string) *PeptideChain {
	residues := make([]Residue, 0, len(sequence))
	for i, symbol := range sequence {
		angle := float64(i) * (math.Pi / 8)
		radius := 5.0
		pos := geom.New(radius*math.Cos(angle), radius*math.Sin(angle), float64(i)*1.5)
		residues = append(residues, NewResidue(ResidueID(i), ThreeLetterCode(symbol), pos))
	}
	return NewChain(residues)
}

// Residues exposes the backing slice so callers can mutate positions and
// angles in place.
func (c *PeptideChain) Residues() []Residue {
	return c.residues
}

func (c *PeptideChain) Residue(id ResidueID) *Residue {
	if int(id) < 0 || int(id) >= len(c.residues) {
		return nil
	}
	return &c.residues[id]
}

func (c *PeptideChain) Len() int {
	return len(c.residues)
}

// Positions returns a snapshot of all residue positions.
func (c *PeptideChain) Positions() []geom.Vec3 {
	out := make([]geom.Vec3, len(c.residues))
	for i := range c.residues {
		out[i] = c.residues[i].position
	}
	return out
}

// Angles returns the (phi, psi) pair of every residue.
func (c *PeptideChain) Angles() []AnglePair {
	out := make([]AnglePair, len(c.residues))
	for i, r := range c.residues {
		out[i] = AnglePair{Phi: r.Phi, Psi: r.Psi}
	}
	return out
}

// AnglePair is a backbone dihedral pair in radians.
type AnglePair struct {
	Phi float64 `json:"phi"`
	Psi float64 `json:"psi"`
}

// ThreeLetterCode maps a one-letter amino acid symbol to its three-letter
// label. Unknown symbols map to "UNK"; labels are display-only and not
// validated further.
func ThreeLetterCode(symbol rune) string {
	switch unicodeUpper(symbol) {
	case 'A':
		return "ALA"
	case 'C':
		return "CYS"
	case 'D':
		return "ASP"
	case 'E':
		return "GLU"
	case 'F':
		return "PHE"
	case 'G':
		return "GLY"
	case 'H':
		return "HIS"
	case 'I':
		return "ILE"
	case 'K':
		return "LYS"
	case 'L':
		return "LEU"
	case 'M':
		return "MET"
	case 'N':
		return "ASN"
	case 'P':
		return "PRO"
	case 'Q':
		return "GLN"
	case 'R':
		return "ARG"
	case 'S':
		return "SER"
	case 'T':
		return "THR"
	case 'V':
		return "VAL"
	case 'W':
		return "TRP"
	case 'Y':
		return "TYR"
	default:
		return "UNK"
	}
}

func unicodeUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
