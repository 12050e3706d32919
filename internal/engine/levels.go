package engine

import "strings"

// Level selects the fidelity/cost trade-off of a simulation. It picks the
// force field, the integrator and its friction, the step size, and the step
// count.
type Level string

const (
	LevelToy    Level = "toy"
	LevelCoarse Level = "coarse"
	LevelGB     Level = "gb"
	LevelFull   Level = "full"
)

// ParseLevel is case-insensitive; unrecognized values fall back to toy.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "coarse":
		return LevelCoarse
	case "gb":
		return LevelGB
	case "full":
		return LevelFull
	default:
		return LevelToy
	}
}

// Levels lists all levels in increasing fidelity order.
func Levels() []Level {
	return []Level{LevelToy, LevelCoarse, LevelGB, LevelFull}
}

// Parameters are the fixed run settings a level maps to.
type Parameters struct {
	Timestep    float64 // ps
	Steps       int
	Temperature float64 // K, nominal
	Friction    float64 // 0 means the non-thermostatted Verlet path
	AllAtom     bool    // Amber99SB + solvation instead of coarse-grained
}

var levelParameters = map[Level]Parameters{
	LevelToy:    {Timestep: 0.01, Steps: 100, Temperature: 300.0},
	LevelCoarse: {Timestep: 0.005, Steps: 200, Temperature: 300.0, Friction: 1.0},
	LevelGB:     {Timestep: 0.002, Steps: 500, Temperature: 300.0, Friction: 5.0, AllAtom: true},
	LevelFull:   {Timestep: 0.001, Steps: 1000, Temperature: 300.0, Friction: 10.0, AllAtom: true},
}

// Params returns the fixed parameter set for a level; unknown levels get
// the toy parameters, consistent with ParseLevel.
func (l Level) Params() Parameters {
	if p, ok := levelParameters[l]; ok {
		return p
	}
	return levelParameters[LevelToy]
}

func (l Level) String() string {
	return string(l)
}
