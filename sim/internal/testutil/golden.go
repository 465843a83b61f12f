// Package testutil provides shared test infrastructure for the memsim simulator.
// It consolidates golden dataset types and assertion helpers used across
// sim/ and its sub-package tests. It does not import sim, so in-package sim
// tests can use it.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase represents a single scenario from the golden dataset.
type GoldenTestCase struct {
	Name            string         `json:"name"`
	Strategy        string         `json:"strategy"`
	MemoryLimit     int64          `json:"memory_limit"`
	ReleaseOnExpiry bool           `json:"release_on_expiry"`
	Table           []string       `json:"table"`
	Expected        GoldenExpected `json:"expected"`
}

// GoldenExpected represents the expected outcome of a golden scenario.
type GoldenExpected struct {
	States          []GoldenState `json:"states"`
	FinalMemoryUsed int64         `json:"final_memory_used"`
	FinalClock      int64         `json:"final_clock"`
	Admissions      int           `json:"admissions"`
	Rejections      int           `json:"rejections"`
	CrossPromotions int           `json:"cross_promotions"`
	PeakMemoryUsed  int64         `json:"peak_memory_used"`
}

// GoldenState is one expected (id, state) pair.
type GoldenState struct {
	ID    int    `json:"id"`
	State string `json:"state"`
}

// TableText returns the scenario's job table as file contents.
func (tc GoldenTestCase) TableText() string {
	return strings.Join(tc.Table, "\n") + "\n"
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// FindGolden returns the named golden scenario or fails the test.
func FindGolden(t *testing.T, name string) GoldenTestCase {
	t.Helper()
	for _, tc := range LoadGoldenDataset(t).Tests {
		if tc.Name == name {
			return tc
		}
	}
	t.Fatalf("golden scenario %q not found", name)
	return GoldenTestCase{}
}

// AssertStates compares expected golden states with got, given as parallel id/state slices.
func AssertStates(t *testing.T, name string, want []GoldenState, gotIDs []int, gotStates []string) {
	t.Helper()
	if len(gotIDs) != len(want) || len(gotStates) != len(want) {
		t.Fatalf("%s: got %d results, want %d", name, len(gotIDs), len(want))
	}
	for i, w := range want {
		if gotIDs[i] != w.ID || gotStates[i] != w.State {
			t.Errorf("%s: result[%d] = (%d, %s), want (%d, %s)", name, i, gotIDs[i], gotStates[i], w.ID, w.State)
		}
	}
}
