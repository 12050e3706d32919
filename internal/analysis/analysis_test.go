package analysis

import (
	"math"
	"testing"
)

func TestFFTConstantSignal(t *testing.T) {
	data := []float64{1, 1, 1, 1}
	fft := FFT(data)

	if math.Abs(real(fft[0])-4) > 1e-9 {
		t.Errorf("DC component = %v, want 4", fft[0])
	}
	for i := 1; i < len(fft); i++ {
		if cmplxAbs(fft[i]) > 1e-9 {
			t.Errorf("bin %d = %v, want 0 for constant signal", i, fft[i])
		}
	}
}

func TestPowerSpectrumSinusoid(t *testing.T) {
	n := 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)

	peak := 0
	for i := range ps {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if peak != 8 {
		t.Errorf("spectral peak at bin %d, want 8", peak)
	}
}

func TestPowerSpectrumPadsOddLength(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i % 5)
	}
	// must not panic on non-power-of-two input
	ps := PowerSpectrum(data)
	if len(ps) != 64 {
		t.Errorf("spectrum length = %d, want 64 for padded input", len(ps))
	}
}

func TestStats(t *testing.T) {
	s := Stats([]float64{2, 4, 6, 8})
	if s.Mean != 5 {
		t.Errorf("mean = %f, want 5", s.Mean)
	}
	if s.Min != 2 || s.Max != 8 {
		t.Errorf("min/max = %f/%f, want 2/8", s.Min, s.Max)
	}
	if math.Abs(s.Drift-2) > 1e-9 {
		t.Errorf("drift = %f, want 2 for a linear ramp", s.Drift)
	}
}

func TestStatsEmpty(t *testing.T) {
	s := Stats(nil)
	if s.Mean != 0 || s.StdDev != 0 {
		t.Errorf("expected zero stats for empty series, got %+v", s)
	}
}

func TestStatsFlatSeriesHasZeroDrift(t *testing.T) {
	s := Stats([]float64{3, 3, 3, 3, 3})
	if math.Abs(s.Drift) > 1e-12 {
		t.Errorf("drift = %f, want 0 for flat series", s.Drift)
	}
	if s.StdDev != 0 {
		t.Errorf("stddev = %f, want 0 for flat series", s.StdDev)
	}
}

func TestAutocorrelationLagZero(t *testing.T) {
	data := []float64{1, -1, 2, -2, 3, -3}
	acf := Autocorrelation(data, 3)
	if math.Abs(acf[0]-1) > 1e-9 {
		t.Errorf("acf[0] = %f, want 1", acf[0])
	}
}

func TestAutocorrelationAlternating(t *testing.T) {
	data := make([]float64, 32)
	for i := range data {
		if i%2 == 0 {
			data[i] = 1
		} else {
			data[i] = -1
		}
	}
	acf := Autocorrelation(data, 2)
	if acf[1] > 0 {
		t.Errorf("acf[1] = %f, want negative for alternating series", acf[1])
	}
	if acf[2] < 0.5 {
		t.Errorf("acf[2] = %f, want strongly positive for alternating series", acf[2])
	}
}

func TestCorrelationTimeWhiteNoiseLikeSeries(t *testing.T) {
	// deterministic pseudo-random walkless series decays fast
	data := make([]float64, 64)
	x := 1.0
	for i := range data {
		x = math.Mod(x*1103515245+12345, 1000)
		data[i] = x/500 - 1
	}
	tau := CorrelationTime(data)
	if tau < 1 || tau > 16 {
		t.Errorf("correlation time = %d, want small for uncorrelated series", tau)
	}
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
