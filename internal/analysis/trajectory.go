package analysis

import "math"

// TrajectoryStats summarizes a sampled energy series.
type TrajectoryStats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	// Drift is the slope of a least-squares line through the series,
	// in energy units per sample. Near zero once equilibrated.
	Drift float64
}

func Stats(series []float64) TrajectoryStats {
	if len(series) == 0 {
		return TrajectoryStats{}
	}

	stats := TrajectoryStats{Min: series[0], Max: series[0]}
	sum := 0.0
	for _, v := range series {
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = sum / float64(len(series))

	variance := 0.0
	for _, v := range series {
		d := v - stats.Mean
		variance += d * d
	}
	variance /= float64(len(series))
	stats.StdDev = math.Sqrt(variance)

	stats.Drift = slope(series)
	return stats
}

// slope fits y = a + b*i by least squares and returns b.
func slope(series []float64) float64 {
	n := float64(len(series))
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range series {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if math.Abs(denom) < 1e-12 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// Autocorrelation returns the normalized autocorrelation of the series up to
// maxLag. Lag 0 is always 1 for a non-constant series.
func Autocorrelation(series []float64, maxLag int) []float64 {
	n := len(series)
	if n == 0 || maxLag < 0 {
		return nil
	}
	if maxLag >= n {
		maxLag = n - 1
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range series {
		d := v - mean
		variance += d * d
	}

	acf := make([]float64, maxLag+1)
	if variance < 1e-12 {
		return acf
	}

	for lag := 0; lag <= maxLag; lag++ {
		sum := 0.0
		for i := 0; i < n-lag; i++ {
			sum += (series[i] - mean) * (series[i+lag] - mean)
		}
		acf[lag] = sum / variance
	}
	return acf
}

// CorrelationTime is the first lag where the autocorrelation drops below
// 1/e, in samples. Returns the series length if it never decays.
func CorrelationTime(series []float64) int {
	acf := Autocorrelation(series, len(series)-1)
	threshold := 1.0 / math.E
	for lag, v := range acf {
		if v < threshold {
			return lag
		}
	}
	return len(series)
}
