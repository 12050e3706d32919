// Package viz renders trajectory series and run summaries for the terminal.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/foldsim/foldsim/internal/engine"
)

const (
	plotHeight = 10
	plotWidth  = 80
)

// PlotSeries renders one sampled series as an ASCII graph with a caption.
func PlotSeries(data []float64, caption string) string {
	if len(data) == 0 {
		return Subtle.Render("(no samples)")
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotTrajectory renders the energy and temperature series of a run.
func PlotTrajectory(traj *engine.TrajectoryData) string {
	if traj == nil || len(traj.Energies) == 0 {
		return Subtle.Render("(no trajectory recorded)")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Energy (kcal/mol)"))
	b.WriteString("\n")
	b.WriteString(PlotSeries(traj.Energies, fmt.Sprintf("total energy over %d steps (dt %.4f ps)", traj.NumSteps, traj.Timestep)))
	b.WriteString("\n\n")
	b.WriteString(TitleStyle.Render("Temperature (K)"))
	b.WriteString("\n")
	b.WriteString(PlotSeries(traj.Temperatures, "sampled temperature"))
	return b.String()
}

// Summary renders the closing metrics of a run as a bordered panel.
func Summary(outcome *engine.RotationOutcome) string {
	rows := []struct {
		label string
		value string
	}{
		{"Total energy", fmt.Sprintf("%.4f kcal/mol", outcome.Energy)},
		{"Potential", fmt.Sprintf("%.4f kcal/mol", outcome.PotentialEnergy)},
		{"Kinetic", fmt.Sprintf("%.4f kcal/mol", outcome.KineticEnergy)},
		{"Temperature", fmt.Sprintf("%.1f K", outcome.Temperature)},
		{"RMSD", fmt.Sprintf("%.4f A", outcome.RMSD)},
		{"Radius of gyration", fmt.Sprintf("%.4f A", outcome.RadiusOfGyration)},
		{"Wall time", fmt.Sprintf("%.3f s", outcome.SimulationTime)},
	}

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(MetricLabel.Render(fmt.Sprintf("%-20s", r.label)))
		b.WriteString(MetricValue.Render(r.value))
	}

	return PanelStyle.Render(b.String())
}
