package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/foldsim/foldsim/internal/engine"
)

func sampleOutcome() *engine.RotationOutcome {
	return &engine.RotationOutcome{
		Energy:           -12.5,
		PotentialEnergy:  -14.0,
		KineticEnergy:    1.5,
		RMSD:             0.8,
		RadiusOfGyration: 4.2,
		Temperature:      300,
		SimulationTime:   1.0,
		TrajectoryData: &engine.TrajectoryData{
			Energies:     []float64{-10.0, -11.0, -12.5},
			Temperatures: []float64{300, 298, 301},
			PhysicsLevel: "toy",
			Timestep:     0.01,
			NumSteps:     30,
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("ACDEF", "toy", 300, 42, sampleOutcome())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Sequence != "ACDEF" {
		t.Errorf("expected sequence ACDEF, got %s", meta.Sequence)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.FinalEnergy != -12.5 {
		t.Errorf("expected final energy -12.5, got %f", meta.FinalEnergy)
	}

	outcome, err := st.LoadOutcome(runID)
	if err != nil {
		t.Fatalf("load outcome failed: %v", err)
	}
	if outcome.RMSD != 0.8 {
		t.Errorf("expected rmsd 0.8, got %f", outcome.RMSD)
	}

	times, energies, temperatures, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(times) != 3 || len(energies) != 3 || len(temperatures) != 3 {
		t.Fatalf("expected 3 samples, got %d/%d/%d", len(times), len(energies), len(temperatures))
	}
	if energies[2] != -12.5 {
		t.Errorf("expected last energy -12.5, got %f", energies[2])
	}
	// stride is 30/3 = 10 steps at dt 0.01
	if times[1] != 0.1 {
		t.Errorf("expected second sample at t=0.1, got %f", times[1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("ACD", "coarse", 300, 42, sampleOutcome()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("ACD", "toy", 300, 42, sampleOutcome())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "outcome.json", "trajectory.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestSaveWithoutTrajectory(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	outcome := sampleOutcome()
	outcome.TrajectoryData = nil

	runID, err := st.Save("ACD", "toy", 300, 42, outcome)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	times, _, _, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(times) != 0 {
		t.Errorf("expected empty trajectory, got %d samples", len(times))
	}
}

func TestExportJSON(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("ACDEF", "toy", 300, 42, sampleOutcome())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out := filepath.Join(tmpDir, "export.json")
	if err := st.ExportJSON(runID, out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(data) == 0 {
		t.Error("export file is empty")
	}
}

func TestExportCSV(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("ACDEF", "toy", 300, 42, sampleOutcome())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out := filepath.Join(tmpDir, "export.csv")
	if err := st.ExportCSV(runID, out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(data) == 0 {
		t.Error("export file is empty")
	}
}
