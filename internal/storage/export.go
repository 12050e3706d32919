package storage

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"

	"github.com/foldsim/foldsim/internal/engine"
)

type ExportData struct {
	Sequence     string                  `json:"sequence"`
	Level        string                  `json:"level"`
	Temperature  float64                 `json:"temperature"`
	Seed         int64                   `json:"seed"`
	Outcome      *engine.RotationOutcome `json:"outcome"`
	Times        []float64               `json:"times"`
	Energies     []float64               `json:"energies"`
	Temperatures []float64               `json:"temperatures"`
}

// ExportJSON writes a saved run to path, or to stdout if path is empty.
func (s *Store) ExportJSON(runID, path string) error {
	data, err := s.gather(runID)
	if err != nil {
		return err
	}

	out := os.Stdout
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes the sampled trajectory of a saved run to path, or to
// stdout if path is empty.
func (s *Store) ExportCSV(runID, path string) error {
	data, err := s.gather(runID)
	if err != nil {
		return err
	}

	out := os.Stdout
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"time", "energy", "temperature"}); err != nil {
		return err
	}
	for i := range data.Times {
		row := []string{
			strconv.FormatFloat(data.Times[i], 'f', 6, 64),
			strconv.FormatFloat(data.Energies[i], 'f', 6, 64),
			strconv.FormatFloat(data.Temperatures[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) gather(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	outcome, err := s.LoadOutcome(runID)
	if err != nil {
		return nil, err
	}
	times, energies, temperatures, err := s.LoadTrajectory(runID)
	if err != nil {
		return nil, err
	}

	return &ExportData{
		Sequence:     meta.Sequence,
		Level:        meta.Level,
		Temperature:  meta.Temperature,
		Seed:         meta.Seed,
		Outcome:      outcome,
		Times:        times,
		Energies:     energies,
		Temperatures: temperatures,
	}, nil
}
