// Package engine orchestrates one bounded folding simulation: it builds a
// chain from a request, applies rotation perturbations, runs the step loop
// with the level's force field and integrator, and reports diagnostics.
package engine

import (
	"fmt"
	"time"

	"github.com/foldsim/foldsim/internal/forcefield"
	"github.com/foldsim/foldsim/internal/geom"
	"github.com/foldsim/foldsim/internal/integrators"
	"github.com/foldsim/foldsim/internal/metrics"
	"github.com/foldsim/foldsim/internal/molecule"
)

// sampleInterval is the diagnostic cadence in steps.
const sampleInterval = 10

// RotationCommand asks for an angle increment (radians) on one residue's
// phi dihedral.
type RotationCommand struct {
	Residue int     `json:"residue"`
	Angle   float64 `json:"angle"`
}

// PhysicsRequest is the input bundle for one simulation run.
type PhysicsRequest struct {
	InitialPositions []geom.Vec3       `json:"initial_positions"`
	ResidueTypes     []string          `json:"residue_types"`
	RotationCommands []RotationCommand `json:"rotation_commands"`
	PhysicsLevel     Level             `json:"physics_level"`
	Temperature      float64           `json:"temperature"`
	// SimulationTime is informational; the level's step count bounds the
	// actual runtime.
	SimulationTime float64 `json:"simulation_time"`
}

// TrajectoryData is the optional diagnostic series sampled during the run.
type TrajectoryData struct {
	Energies     []float64 `json:"energies"`
	Temperatures []float64 `json:"temperatures"`
	PhysicsLevel string    `json:"physics_level"`
	Timestep     float64   `json:"timestep"`
	NumSteps     int       `json:"num_steps"`
}

// RotationOutcome is the result bundle of one simulation run.
type RotationOutcome struct {
	FinalPositions   []geom.Vec3          `json:"final_positions"`
	FinalAngles      []molecule.AnglePair `json:"final_angles"`
	Energy           float64              `json:"energy"`
	KineticEnergy    float64              `json:"kinetic_energy"`
	PotentialEnergy  float64              `json:"potential_energy"`
	Temperature      float64              `json:"temperature"`
	RMSD             float64              `json:"rmsd"`
	RadiusOfGyration float64              `json:"radius_of_gyration"`
	SimulationTime   float64              `json:"simulation_time"`
	ConvergenceInfo  string               `json:"convergence_info"`
	TrajectoryData   *TrajectoryData      `json:"trajectory_data,omitempty"`
}

// Observer receives each diagnostic sample as it is taken.
type Observer func(step int, energy, temperature float64)

// Engine owns a (force field, integrator) pair resolved once from a level.
// An engine must not be shared between concurrent runs; each run exclusively
// mutates the integrator's buffers and the chain it builds.
type Engine struct {
	level      Level
	forceField forcefield.ForceField
	integrator integrators.Integrator
}

// New resolves the level's force field and integrator. The seed feeds the
// stochastic integrators so identical requests reproduce identical
// trajectories.
func New(level Level, seed int64) *Engine {
	params := level.Params()

	var ff forcefield.ForceField
	if params.AllAtom {
		ff = forcefield.NewAmber99SB()
	} else {
		ff = forcefield.NewCoarseGrained()
	}

	var integ integrators.Integrator
	if params.Friction > 0 {
		integ = integrators.NewLangevin(0, params.Temperature, params.Friction, seed)
	} else {
		integ = integrators.NewVerlet(0)
	}

	return &Engine{level: level, forceField: ff, integrator: integ}
}

// NewCustom pairs an explicit force field and integrator with a level's
// step parameters, for callers that want e.g. Brownian dynamics on the
// coarse-grained field.
func NewCustom(level Level, ff forcefield.ForceField, integ integrators.Integrator) *Engine {
	return &Engine{level: level, forceField: ff, integrator: integ}
}

func (e *Engine) Level() Level {
	return e.level
}

// Run executes the full simulation for a request.
func (e *Engine) Run(request *PhysicsRequest) (*RotationOutcome, error) {
	return e.RunWithObserver(request, nil)
}

// RunWithObserver is Run with a per-sample callback, used by the live view.
func (e *Engine) RunWithObserver(request *PhysicsRequest, observe Observer) (*RotationOutcome, error) {
	start := time.Now()

	chain, err := buildChain(request)
	if err != nil {
		return nil, err
	}

	params := e.level.Params()
	temperature := params.Temperature
	if request.Temperature > 0 {
		temperature = request.Temperature
	}
	e.integrator.SetTemperature(temperature)

	if v, ok := e.integrator.(*integrators.Verlet); ok {
		v.Initialize(chain)
	}

	// Rotation commands are angle-only updates: no positional consequence
	// is propagated here.
	for _, cmd := range request.RotationCommands {
		if r := chain.Residue(molecule.ResidueID(cmd.Residue)); r != nil {
			r.Phi += cmd.Angle
		}
	}

	var energies, temperatures []float64
	for step := 0; step < params.Steps; step++ {
		forces := e.forceField.ComputeForces(chain)
		e.integrator.Step(chain, forces, params.Timestep)

		if step%sampleInterval == 0 {
			if err := validatePositions(chain, step); err != nil {
				return nil, err
			}
			total := e.forceField.ComputeEnergy(chain) + e.integrator.KineticEnergy(chain)
			energies = append(energies, total)
			temperatures = append(temperatures, temperature)
			if observe != nil {
				observe(step, total, temperature)
			}
		}
	}

	potential := e.forceField.ComputeEnergy(chain)
	kinetic := e.integrator.KineticEnergy(chain)
	finalPositions := chain.Positions()
	elapsed := time.Since(start).Seconds()

	sampledTemperature := temperature
	if len(temperatures) > 0 {
		sampledTemperature = temperatures[len(temperatures)-1]
	}

	return &RotationOutcome{
		FinalPositions:   finalPositions,
		FinalAngles:      chain.Angles(),
		Energy:           potential + kinetic,
		KineticEnergy:    kinetic,
		PotentialEnergy:  potential,
		Temperature:      sampledTemperature,
		RMSD:             metrics.RMSD(request.InitialPositions, finalPositions),
		RadiusOfGyration: metrics.RadiusOfGyration(finalPositions),
		SimulationTime:   elapsed,
		ConvergenceInfo: fmt.Sprintf("native physics simulation completed in %.3fs with %d steps",
			elapsed, params.Steps),
		TrajectoryData: &TrajectoryData{
			Energies:     energies,
			Temperatures: temperatures,
			PhysicsLevel: e.level.String(),
			Timestep:     params.Timestep,
			NumSteps:     params.Steps,
		},
	}, nil
}

func buildChain(request *PhysicsRequest) (*molecule.PeptideChain, error) {
	if len(request.InitialPositions) != len(request.ResidueTypes) {
		return nil, fmt.Errorf("%w: %d positions vs %d types",
			ErrLengthMismatch, len(request.InitialPositions), len(request.ResidueTypes))
	}
	residues := make([]molecule.Residue, len(request.InitialPositions))
	for i, pos := range request.InitialPositions {
		residues[i] = molecule.NewResidue(molecule.ResidueID(i), request.ResidueTypes[i], pos)
	}
	return molecule.NewChain(residues), nil
}

func validatePositions(chain *molecule.PeptideChain, step int) error {
	for _, r := range chain.Residues() {
		if !r.Position().IsValid() {
			return &SimulationError{Step: step, Wrapped: ErrInvalidState}
		}
	}
	return nil
}
