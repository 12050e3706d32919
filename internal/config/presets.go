package config

import "sort"

// Presets are canned scenarios: named starting points per fidelity level.
var presets = map[string]*Config{
	"quick": {
		Sequence:    "ACDEF",
		Level:       "toy",
		Temperature: 300,
		Seed:        DefaultSeed,
		DataDir:     ".foldsim",
	},
	"hairpin": {
		Sequence:    "GEWTYDDATKTFTVTE",
		Level:       "coarse",
		Temperature: 300,
		Seed:        DefaultSeed,
		Rotations: []Rotation{
			{Residue: 7, Angle: 0.5},
			{Residue: 8, Angle: -0.5},
		},
		DataDir: ".foldsim",
	},
	"helix": {
		Sequence:    "AEAAAKEAAAKA",
		Level:       "gb",
		Temperature: 300,
		Seed:        DefaultSeed,
		DataDir:     ".foldsim",
	},
	"refine": {
		Sequence:    "ACDEFGHIKL",
		Level:       "full",
		Temperature: 310,
		Seed:        DefaultSeed,
		DataDir:     ".foldsim",
	},
	"cold": {
		Sequence:    "ACDEFGHIKL",
		Level:       "coarse",
		Temperature: 150,
		Seed:        DefaultSeed,
		DataDir:     ".foldsim",
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cp := *p
	cp.Rotations = append([]Rotation(nil), p.Rotations...)
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
