// Package tui renders a folding run live in the terminal while the engine
// steps in a background goroutine.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/foldsim/foldsim/internal/engine"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

// Sample is one diagnostic reading emitted during the run.
type Sample struct {
	Step        int
	Energy      float64
	Temperature float64
}

// Result carries the finished run back to the UI.
type Result struct {
	Outcome *engine.RotationOutcome
	Err     error
}

type sampleMsg Sample

type doneMsg Result

// Model displays a running simulation fed through the samples channel.
type Model struct {
	sequence   string
	level      string
	totalSteps int

	samples <-chan Sample
	done    <-chan Result

	energies     []float64
	temperatures []float64
	latest       Sample
	started      time.Time

	outcome  *engine.RotationOutcome
	err      error
	finished bool
}

func NewModel(sequence, level string, totalSteps int, samples <-chan Sample, done <-chan Result) Model {
	return Model{
		sequence:     sequence,
		level:        level,
		totalSteps:   totalSteps,
		samples:      samples,
		done:         done,
		energies:     make([]float64, 0, historyCapacity),
		temperatures: make([]float64, 0, historyCapacity),
		started:      time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.wait()
}

// wait blocks on the next sample, falling through to the final result once
// the sample channel closes.
func (m Model) wait() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.samples
		if !ok {
			return doneMsg(<-m.done)
		}
		return sampleMsg(s)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case sampleMsg:
		m.latest = Sample(msg)
		m.energies = append(m.energies, msg.Energy)
		m.temperatures = append(m.temperatures, msg.Temperature)
		if len(m.energies) > historyCapacity {
			m.energies = m.energies[1:]
			m.temperatures = m.temperatures[1:]
		}
		return m, m.wait()
	case doneMsg:
		m.finished = true
		m.outcome = msg.Outcome
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("foldsim live  %s  level=%s", m.sequence, m.level)))
	b.WriteString("\n")

	if len(m.energies) > 1 {
		graph := asciigraph.Plot(m.energies,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("total energy (kcal/mol)"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	row("step", fmt.Sprintf("%d / %d", m.latest.Step, m.totalSteps))
	row("energy", fmt.Sprintf("%.4f kcal/mol", m.latest.Energy))
	row("temperature", fmt.Sprintf("%.1f K", m.latest.Temperature))
	row("elapsed", time.Since(m.started).Round(time.Millisecond).String())

	if m.finished {
		if m.err != nil {
			b.WriteString(doneStyle.Render(fmt.Sprintf("failed: %v", m.err)))
		} else if m.outcome != nil {
			b.WriteString(doneStyle.Render(fmt.Sprintf(
				"done  rmsd=%.4f A  rg=%.4f A", m.outcome.RMSD, m.outcome.RadiusOfGyration)))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("q quit"))
	return b.String()
}

// RunLive executes the request on eng in a goroutine and blocks displaying
// its progress until the run finishes or the user quits.
func RunLive(eng *engine.Engine, request *engine.PhysicsRequest, sequence string, totalSteps int) (*engine.RotationOutcome, error) {
	samples := make(chan Sample, 64)
	done := make(chan Result, 1)

	go func() {
		outcome, err := eng.RunWithObserver(request, func(step int, energy, temperature float64) {
			samples <- Sample{Step: step, Energy: energy, Temperature: temperature}
		})
		close(samples)
		done <- Result{Outcome: outcome, Err: err}
	}()

	model := NewModel(sequence, string(request.PhysicsLevel), totalSteps, samples, done)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := final.(Model)
	if m.finished {
		return m.outcome, m.err
	}

	// user quit early; drain the engine goroutine
	go func() {
		for range samples {
		}
		<-done
	}()
	return nil, nil
}
