package engine

import (
	"context"
	"sync"
)

// Ensemble runs independent replicas of one request with sequential seeds.
// Each replica steps serially on its own engine; only the replicas run
// concurrently.
type Ensemble struct {
	level     Level
	numRuns   int
	seedStart int64
}

func NewEnsemble(level Level, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{level: level, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, request *PhysicsRequest) ([]*RotationOutcome, error) {
	outcomes := make([]*RotationOutcome, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			if ctx.Err() != nil {
				errs[idx] = ctx.Err()
				return
			}

			eng := New(e.level, e.seedStart+int64(idx))
			outcomes[idx], errs[idx] = eng.Run(request)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return outcomes, nil
}

// EnsembleStats aggregates final metrics across replicas.
type EnsembleStats struct {
	Runs       int
	MeanEnergy float64
	MeanRMSD   float64
	MeanRg     float64
}

func Summarize(outcomes []*RotationOutcome) EnsembleStats {
	stats := EnsembleStats{Runs: len(outcomes)}
	if len(outcomes) == 0 {
		return stats
	}

	for _, o := range outcomes {
		stats.MeanEnergy += o.Energy
		stats.MeanRMSD += o.RMSD
		stats.MeanRg += o.RadiusOfGyration
	}
	n := float64(len(outcomes))
	stats.MeanEnergy /= n
	stats.MeanRMSD /= n
	stats.MeanRg /= n
	return stats
}
