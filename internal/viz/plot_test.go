package viz

import (
	"strings"
	"testing"

	"github.com/foldsim/foldsim/internal/engine"
)

func TestPlotSeriesEmpty(t *testing.T) {
	out := PlotSeries(nil, "x")
	if !strings.Contains(out, "no samples") {
		t.Errorf("expected placeholder for empty series, got %q", out)
	}
}

func TestPlotTrajectory(t *testing.T) {
	traj := &engine.TrajectoryData{
		Energies:     []float64{-1, -2, -3, -2.5},
		Temperatures: []float64{300, 299, 301, 300},
		Timestep:     0.01,
		NumSteps:     40,
	}
	out := PlotTrajectory(traj)
	if !strings.Contains(out, "Energy") || !strings.Contains(out, "Temperature") {
		t.Errorf("trajectory plot missing captions:\n%s", out)
	}
}

func TestSummaryContainsMetrics(t *testing.T) {
	out := Summary(&engine.RotationOutcome{Energy: -5.5, Temperature: 300})
	if !strings.Contains(out, "-5.5") {
		t.Errorf("summary missing energy value:\n%s", out)
	}
	if !strings.Contains(out, "300.0") {
		t.Errorf("summary missing temperature:\n%s", out)
	}
}
