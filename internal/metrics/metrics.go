// Package metrics computes structural diagnostics over residue geometries.
package metrics

import (
	"math"

	"github.com/foldsim/foldsim/internal/geom"
)

// RMSD is the root-mean-square deviation between two equal-length position
// sets. Mismatched lengths return 0 by contract rather than failing, so
// callers using RMSD as a correctness signal must check lengths themselves.
func RMSD(reference, current []geom.Vec3) float64 {
	if len(reference) != len(current) || len(reference) == 0 {
		return 0
	}
	sum := 0.0
	for i := range reference {
		sum += current[i].Sub(reference[i]).NormSquared()
	}
	return math.Sqrt(sum / float64(len(reference)))
}

// RadiusOfGyration is the root-mean-square distance of positions from their
// centroid. An empty geometry has radius 0.
func RadiusOfGyration(positions []geom.Vec3) float64 {
	if len(positions) == 0 {
		return 0
	}
	center := geom.Centroid(positions)
	sum := 0.0
	for _, p := range positions {
		sum += p.Sub(center).NormSquared()
	}
	return math.Sqrt(sum / float64(len(positions)))
}
