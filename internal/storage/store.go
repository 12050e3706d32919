// Package storage persists simulation runs: one directory per run holding
// metadata, the full outcome, and the sampled trajectory as CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/foldsim/foldsim/internal/engine"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string    `json:"id"`
	Sequence    string    `json:"sequence"`
	Level       string    `json:"level"`
	Timestamp   time.Time `json:"timestamp"`
	Seed        int64     `json:"seed"`
	Temperature float64   `json:"temperature"`
	Steps       int       `json:"steps"`
	Timestep    float64   `json:"timestep"`
	FinalEnergy float64   `json:"final_energy"`
	RMSD        float64   `json:"rmsd"`
	Rg          float64   `json:"radius_of_gyration"`
}

// Save writes a run directory containing metadata.json, outcome.json and
// trajectory.csv, and returns the generated run ID.
func (s *Store) Save(sequence string, level string, temperature float64, seed int64, outcome *engine.RotationOutcome) (string, error) {
	runID := fmt.Sprintf("%s_%d", level, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	steps := 0
	timestep := 0.0
	if outcome.TrajectoryData != nil {
		steps = outcome.TrajectoryData.NumSteps
		timestep = outcome.TrajectoryData.Timestep
	}

	meta := RunMetadata{
		ID:          runID,
		Sequence:    sequence,
		Level:       level,
		Timestamp:   time.Now(),
		Seed:        seed,
		Temperature: temperature,
		Steps:       steps,
		Timestep:    timestep,
		FinalEnergy: outcome.Energy,
		RMSD:        outcome.RMSD,
		Rg:          outcome.RadiusOfGyration,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "outcome.json"), outcome); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if outcome.TrajectoryData == nil || len(outcome.TrajectoryData.Energies) == 0 {
		return runID, nil
	}

	if err := w.Write([]string{"time", "energy", "temperature"}); err != nil {
		return "", err
	}

	traj := outcome.TrajectoryData
	stride := sampleStride(traj)
	for i, e := range traj.Energies {
		t := float64(i*stride) * traj.Timestep
		temp := 0.0
		if i < len(traj.Temperatures) {
			temp = traj.Temperatures[i]
		}
		row := []string{
			strconv.FormatFloat(t, 'f', 6, 64),
			strconv.FormatFloat(e, 'f', 6, 64),
			strconv.FormatFloat(temp, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// sampleStride recovers the step interval between trajectory samples.
func sampleStride(traj *engine.TrajectoryData) int {
	if len(traj.Energies) <= 1 {
		return 1
	}
	stride := traj.NumSteps / len(traj.Energies)
	if stride < 1 {
		return 1
	}
	return stride
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadOutcome(runID string) (*engine.RotationOutcome, error) {
	path := filepath.Join(s.baseDir, runID, "outcome.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var outcome engine.RotationOutcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return nil, err
	}

	return &outcome, nil
}

// LoadTrajectory reads the sampled energy and temperature series back from
// trajectory.csv.
func (s *Store) LoadTrajectory(runID string) (times, energies, temperatures []float64, err error) {
	path := filepath.Join(s.baseDir, runID, "trajectory.csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []float64{}, []float64{}, nil
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		e, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		temp, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}

		times = append(times, t)
		energies = append(energies, e)
		temperatures = append(temperatures, temp)
	}

	return times, energies, temperatures, nil
}
