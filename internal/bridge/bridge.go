// Package bridge serves the subprocess span protocol: a single JSON request
// on stdin, a single JSON response on stdout. An external folding layer
// spawns this process per span; everything here is one-shot and stateless.
package bridge

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/foldsim/foldsim/internal/engine"
	"github.com/foldsim/foldsim/internal/geom"
)

// Residue is one bead of the caller's chain.
type Residue struct {
	Index    int        `json:"index"`
	Position [3]float64 `json:"position"`
}

// Command is the requested rotation. Angles cross this boundary in degrees
// and are converted to radians before they reach the engine.
type Command struct {
	Residue      int     `json:"residue"`
	AngleDegrees float64 `json:"angle_degrees"`
	DurationMS   uint64  `json:"duration_ms"`
	Label        string  `json:"label,omitempty"`
}

// Request is the wire request. Unrecognized levels fall back to toy, the
// same stance ParseLevel takes everywhere else.
type Request struct {
	Level       string    `json:"level"`
	Temperature float64   `json:"temperature"`
	Residues    []Residue `json:"residues"`
	Command     Command   `json:"command"`
}

// Response is the wire response. Every field the protocol marks optional is
// emitted; consumers that predate a field treat it as zero.
type Response struct {
	AppliedAngle     float64            `json:"applied_angle"`
	DeltaEntropy     float64            `json:"delta_entropy"`
	DeltaInformation float64            `json:"delta_information"`
	DeltaEnergy      float64            `json:"delta_energy"`
	GibbsEnergy      float64            `json:"gibbs_energy"`
	DurationMS       uint64             `json:"duration_ms"`
	RMSD             float64            `json:"rmsd"`
	RadiusOfGyration float64            `json:"radius_of_gyration"`
	PotentialEnergy  float64            `json:"potential_energy"`
	KineticEnergy    float64            `json:"kinetic_energy"`
	Temperature      float64            `json:"temperature"`
	SimulationTimePS float64            `json:"simulation_time_ps"`
	TrajectoryPath   string             `json:"trajectory_path,omitempty"`
	PhysicsMetrics   map[string]float64 `json:"physics_metrics,omitempty"`
}

// Handle runs one span: the step-loop simulation for the measured fields,
// and the closed-form span model for the thermodynamic deltas the step loop
// does not produce.
func Handle(request *Request, seed int64) (*Response, error) {
	level := engine.ParseLevel(request.Level)

	residues := make([]Residue, len(request.Residues))
	copy(residues, request.Residues)
	sort.Slice(residues, func(i, j int) bool { return residues[i].Index < residues[j].Index })

	positions := make([]geom.Vec3, len(residues))
	types := make([]string, len(residues))
	for i, r := range residues {
		positions[i] = r.Position
		// The protocol carries no residue labels; beads are generic.
		types[i] = "ALA"
	}

	angleRadians := request.Command.AngleDegrees * math.Pi / 180

	e := engine.New(level, seed)
	outcome, err := e.Run(&engine.PhysicsRequest{
		InitialPositions: positions,
		ResidueTypes:     types,
		RotationCommands: []engine.RotationCommand{{Residue: request.Command.Residue, Angle: angleRadians}},
		PhysicsLevel:     level,
		Temperature:      request.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("bridge: simulation failed: %w", err)
	}

	estimate := engine.EstimateSpan(&engine.SpanRequest{
		Residue:      request.Command.Residue,
		AngleDegrees: request.Command.AngleDegrees,
		Temperature:  request.Temperature,
		DurationMS:   request.Command.DurationMS,
		Level:        level,
		Label:        request.Command.Label,
	})

	return &Response{
		AppliedAngle:     estimate.AppliedAngle,
		DeltaEntropy:     estimate.DeltaEntropy,
		DeltaInformation: estimate.DeltaInformation,
		DeltaEnergy:      estimate.DeltaEnergy,
		GibbsEnergy:      estimate.GibbsEnergy,
		DurationMS:       request.Command.DurationMS,
		RMSD:             outcome.RMSD,
		RadiusOfGyration: outcome.RadiusOfGyration,
		PotentialEnergy:  outcome.PotentialEnergy,
		KineticEnergy:    outcome.KineticEnergy,
		Temperature:      outcome.Temperature,
		SimulationTimePS: outcome.SimulationTime * 1000.0,
		PhysicsMetrics:   estimate.Metrics,
	}, nil
}

// Serve reads one request, handles it, and writes one response.
func Serve(r io.Reader, w io.Writer, seed int64) error {
	var request Request
	if err := json.NewDecoder(r).Decode(&request); err != nil {
		return fmt.Errorf("bridge: decode request: %w", err)
	}

	response, err := Handle(&request, seed)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("bridge: encode response: %w", err)
	}
	return nil
}
