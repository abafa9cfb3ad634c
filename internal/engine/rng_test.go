package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
)

type StepVector struct {
	Description string   `json:"description"`
	Seed        string   `json:"seed"`
	Digest      string   `json:"digest"`
	Start       uint64   `json:"start"`
	Count       int      `json:"count"`
	StepValues  []uint32 `json:"step_values"`
	Dynamic     []int    `json:"dynamic"`
	Stable      []int    `json:"stable"`
}

func TestStepGoldenVectors(t *testing.T) {
	vectors, err := loadStepVectors()
	if err != nil {
		t.Fatalf("Failed to load golden vectors: %v", err)
	}

	for _, v := range vectors {
		t.Run(v.Description, func(t *testing.T) {
			actual := StepValues(v.Seed, v.Start, v.Count)
			if len(actual) != len(v.StepValues) {
				t.Fatalf("Length mismatch: got %d values, want %d", len(actual), len(v.StepValues))
			}
			for i := range actual {
				if actual[i] != v.StepValues[i] {
					t.Errorf("Value %d mismatch: got %d, want %d", i, actual[i], v.StepValues[i])
				}
			}
			if got := Digest(v.Seed); got != v.Digest {
				t.Errorf("Digest(%q) = %s, want %s", v.Seed, got, v.Digest)
			}
		})
	}
}

func TestStepMessage(t *testing.T) {
	tests := []struct {
		seed  string
		index uint64
		want  string
	}{
		{"abc123", 1, "abc123-1"},
		{"abc123", 0, "abc123-0"},
		{"", 42, "-42"},
		{"a-b", 18446744073709551615, "a-b-18446744073709551615"},
	}
	for _, tt := range tests {
		if got := StepMessage(tt.seed, tt.index); got != tt.want {
			t.Errorf("StepMessage(%q, %d) = %q, want %q", tt.seed, tt.index, got, tt.want)
		}
	}
}

func TestStepValuesInto(t *testing.T) {
	seed := "abc123"

	dst := make([]uint32, 10)
	result := StepValuesInto(dst, seed, 1, 4)
	if len(result) != 4 {
		t.Fatalf("StepValuesInto() returned %d values, want 4", len(result))
	}
	if &result[0] != &dst[0] {
		t.Error("StepValuesInto() should reuse a large enough buffer")
	}

	small := make([]uint32, 2)
	result2 := StepValuesInto(small, seed, 1, 4)
	if len(result2) != 4 {
		t.Fatalf("StepValuesInto() returned %d values, want 4", len(result2))
	}

	expected := StepValues(seed, 1, 4)
	for i := range expected {
		if result[i] != expected[i] || result2[i] != expected[i] {
			t.Errorf("value %d: got %d / %d, want %d", i, result[i], result2[i], expected[i])
		}
	}
}

func TestStepValueReproducibility(t *testing.T) {
	seed := "test_seed_for_reproducibility"
	reference := StepValues(seed, 1, 64)

	t.Run("Multiple calls identical", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			values := StepValues(seed, 1, 64)
			for j := range values {
				if values[j] != reference[j] {
					t.Fatalf("iteration %d index %d: got %d, want %d", i, j, values[j], reference[j])
				}
			}
		}
	})

	t.Run("Different GOMAXPROCS settings", func(t *testing.T) {
		original := runtime.GOMAXPROCS(0)
		defer runtime.GOMAXPROCS(original)

		for _, procs := range []int{1, 2, runtime.NumCPU()} {
			t.Run(fmt.Sprintf("GOMAXPROCS=%d", procs), func(t *testing.T) {
				runtime.GOMAXPROCS(procs)
				values := StepValues(seed, 1, 64)
				for j := range values {
					if values[j] != reference[j] {
						t.Errorf("index %d: got %d, want %d", j, values[j], reference[j])
					}
				}
			})
		}
	})

	t.Run("Concurrent goroutines", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make(chan error, 16)
		for g := 0; g < 16; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				values := StepValues(seed, 1, 64)
				for j := range values {
					if values[j] != reference[j] {
						errs <- fmt.Errorf("index %d: got %d, want %d", j, values[j], reference[j])
						return
					}
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Error(err)
		}
	})
}

func loadStepVectors() ([]StepVector, error) {
	path := filepath.Join("..", "..", "testdata", "step_golden.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var vectors []StepVector
	err = json.Unmarshal(data, &vectors)
	return vectors, err
}
