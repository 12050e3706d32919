package engine

import "math"

// SpanRequest asks for a closed-form thermodynamic estimate of a single
// rotation span, without running the step loop. The bridge layer uses these
// estimates for the response fields the step loop does not produce.
type SpanRequest struct {
	Residue      int
	AngleDegrees float64
	Temperature  float64
	DurationMS   uint64
	Level        Level
	Label        string
}

// SpanEstimate carries the per-level analytic estimates for one span.
type SpanEstimate struct {
	AppliedAngle     float64
	DeltaEntropy     float64
	DeltaInformation float64
	DeltaEnergy      float64
	GibbsEnergy      float64
	DurationMS       uint64
	RMSD             float64
	RadiusOfGyration float64
	PotentialEnergy  float64
	KineticEnergy    float64
	Temperature      float64
	SimulationTimePS float64
	Metrics          map[string]float64
}

// EstimateSpan evaluates the level's closed-form span model.
func EstimateSpan(request *SpanRequest) *SpanEstimate {
	switch request.Level {
	case LevelCoarse:
		return estimateCoarseSpan(request)
	case LevelGB:
		return estimateGBSpan(request)
	case LevelFull:
		return estimateFullSpan(request)
	default:
		return estimateToySpan(request)
	}
}

func estimateToySpan(request *SpanRequest) *SpanEstimate {
	factor := 0.5
	applied := request.AngleDegrees * factor
	magnitude := math.Abs(applied)

	deltaEntropy := 0.015 * magnitude * factor
	deltaInformation := 0.0075 * magnitude * factor
	deltaEnergy := 0.001 * magnitude * (request.Temperature / 300.0) * factor
	gibbs := deltaEnergy - request.Temperature*deltaEntropy*0.001

	potential := deltaEnergy * 1000.0
	return &SpanEstimate{
		AppliedAngle:     applied,
		DeltaEntropy:     deltaEntropy,
		DeltaInformation: deltaInformation,
		DeltaEnergy:      deltaEnergy,
		GibbsEnergy:      gibbs,
		DurationMS:       request.DurationMS,
		RMSD:             magnitude * 0.01,
		RadiusOfGyration: 1.5 + magnitude*0.002,
		PotentialEnergy:  potential,
		KineticEnergy:    deltaEnergy * 800.0,
		Temperature:      request.Temperature,
		SimulationTimePS: float64(request.DurationMS) * 0.01,
		Metrics: map[string]float64{
			"bond_energy":     potential * 0.3,
			"angle_energy":    potential * 0.2,
			"dihedral_energy": potential * 0.5,
		},
	}
}

func estimateCoarseSpan(request *SpanRequest) *SpanEstimate {
	magnitude := math.Abs(request.AngleDegrees)
	deltaEnergy := magnitude * 0.5
	deltaEntropy := magnitude * 0.02
	gibbs := deltaEnergy - request.Temperature*deltaEntropy*0.001

	return &SpanEstimate{
		AppliedAngle:     request.AngleDegrees,
		DeltaEntropy:     deltaEntropy,
		DeltaInformation: magnitude * 0.01,
		DeltaEnergy:      deltaEnergy,
		GibbsEnergy:      gibbs,
		DurationMS:       request.DurationMS,
		RMSD:             magnitude * 0.1,
		RadiusOfGyration: 15.0 + magnitude*0.5,
		PotentialEnergy:  deltaEnergy,
		KineticEnergy:    request.Temperature * 0.01,
		Temperature:      request.Temperature,
		SimulationTimePS: float64(request.DurationMS) * 0.001,
		Metrics: map[string]float64{
			"bond_energy":      10.0,
			"angle_energy":     5.0,
			"dihedral_energy":  2.0,
			"nonbonded_energy": 8.0,
		},
	}
}

func estimateGBSpan(request *SpanRequest) *SpanEstimate {
	magnitude := math.Abs(request.AngleDegrees)
	solvationPenalty := magnitude * 0.3
	deltaEnergy := magnitude*0.8 + solvationPenalty
	deltaEntropy := magnitude * 0.025
	gibbs := deltaEnergy - request.Temperature*deltaEntropy*0.001

	return &SpanEstimate{
		AppliedAngle:     request.AngleDegrees,
		DeltaEntropy:     deltaEntropy,
		DeltaInformation: magnitude * 0.015,
		DeltaEnergy:      deltaEnergy,
		GibbsEnergy:      gibbs,
		DurationMS:       request.DurationMS,
		RMSD:             magnitude * 0.15,
		RadiusOfGyration: 18.0 + magnitude*0.7,
		PotentialEnergy:  deltaEnergy,
		KineticEnergy:    request.Temperature * 0.015,
		Temperature:      request.Temperature,
		SimulationTimePS: float64(request.DurationMS) * 0.001,
		Metrics: map[string]float64{
			"bond_energy":      12.0,
			"angle_energy":     6.0,
			"dihedral_energy":  3.0,
			"nonbonded_energy": 10.0,
			"solvation_energy": solvationPenalty,
		},
	}
}

func estimateFullSpan(request *SpanRequest) *SpanEstimate {
	magnitude := math.Abs(request.AngleDegrees)
	solventPenalty := magnitude * 0.5
	deltaEnergy := magnitude*1.2 + solventPenalty
	deltaEntropy := magnitude * 0.03
	gibbs := deltaEnergy - request.Temperature*deltaEntropy*0.001

	return &SpanEstimate{
		AppliedAngle:     request.AngleDegrees,
		DeltaEntropy:     deltaEntropy,
		DeltaInformation: magnitude * 0.02,
		DeltaEnergy:      deltaEnergy,
		GibbsEnergy:      gibbs,
		DurationMS:       request.DurationMS,
		RMSD:             magnitude * 0.2,
		RadiusOfGyration: 20.0 + magnitude*0.9,
		PotentialEnergy:  deltaEnergy,
		KineticEnergy:    request.Temperature * 0.02,
		Temperature:      request.Temperature,
		SimulationTimePS: float64(request.DurationMS) * 0.001,
		Metrics: map[string]float64{
			"bond_energy":      15.0,
			"angle_energy":     8.0,
			"dihedral_energy":  4.0,
			"nonbonded_energy": 12.0,
			"solvation_energy": solventPenalty,
		},
	}
}
