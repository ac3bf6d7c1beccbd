package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/san-kum/mergersrc/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Times:         []float64{0, 0.01, 0.02},
		KineticEnergy: []float64{1.5, 1.25, 1.0416666666666667},
		EnergySource:  []float64{0, -0.25, -0.4583333333333333},
		Metrics:       map[string]float64{"kinetic_energy": 1.0416666666666667},
		StepsTaken:    2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{Preset: "relax", Backend: "cpu", Dt: 0.01, Steps: 2, Cells: [3]int{8, 8, 8}, Relaxation: 0.1}
	runID, err := st.Save(meta, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	got, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	want := meta
	want.ID = runID
	want.Metrics = testResult().Metrics
	if diff := cmp.Diff(want, *got, cmpopts.IgnoreFields(RunMetadata{}, "Timestamp")); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if diff := cmp.Diff(SeriesFromResult(testResult()), series); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreSave_UniqueIDs(t *testing.T) {
	st := New(t.TempDir())
	meta := RunMetadata{Preset: "drift"}

	a, err := st.Save(meta, testResult())
	if err != nil {
		t.Fatal(err)
	}
	b, err := st.Save(meta, testResult())
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("expected distinct run ids, both %q", a)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreList_SkipsJunk(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	if err := os.MkdirAll(filepath.Join(dir, "empty"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save(RunMetadata{Preset: "relax"}, testResult()); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Preset != "relax" {
		t.Errorf("unexpected runs: %+v", runs)
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, RunMetadata{Preset: "hybrid", Hybrid: true}, testResult()); err != nil {
		t.Fatal(err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !got.Meta.Hybrid || got.Meta.Metrics["kinetic_energy"] != testResult().Metrics["kinetic_energy"] {
		t.Errorf("unexpected meta: %+v", got.Meta)
	}
	if diff := cmp.Diff(testResult().EnergySource, got.EnergySource); diff != "" {
		t.Errorf("energy source mismatch (-want +got):\n%s", diff)
	}
}
