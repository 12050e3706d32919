package molecule

import "github.com/foldsim/foldsim/internal/geom"

// EnergySummary aggregates the components of the lightweight model.
type EnergySummary struct {
	Potential float64
}

func (s EnergySummary) Total() float64 {
	return s.Potential
}

// EnergyModel is a cheap potential that penalises bond stretching and steric
// clashes. It is a quick-look estimate for CLI output and tests; the real
// force fields live in the forcefield package.
type EnergyModel struct {
	BondStrength    float64
	StericRepulsion float64
}

func DefaultEnergyModel() EnergyModel {
	return EnergyModel{
		BondStrength:    1.0,
		StericRepulsion: 0.1,
	}
}

func (m EnergyModel) TotalEnergy(chain *PeptideChain) float64 {
	return m.Summary(chain).Total()
}

func (m EnergyModel) Summary(chain *PeptideChain) EnergySummary {
	residues := chain.Residues()
	potential := 0.0

	for i := 0; i+1 < len(residues); i++ {
		dist := geom.Dist(residues[i].Position(), residues[i+1].Position())
		stretch := dist - DefaultBondLength
		potential += 0.5 * m.BondStrength * stretch * stretch
	}

	for i := range residues {
		for j := i + 1; j < len(residues); j++ {
			dist := geom.Dist(residues[i].Position(), residues[j].Position())
			if dist > 0 {
				r6 := dist * dist * dist * dist * dist * dist
				potential += m.StericRepulsion / (r6 * r6)
			}
		}
	}

	return EnergySummary{Potential: potential}
}
