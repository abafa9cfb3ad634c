package games

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/MJE43/pf-grid-verify/internal/engine"
)

type deltaVector struct {
	Description string `json:"description"`
	Seed        string `json:"seed"`
	Start       uint64 `json:"start"`
	Count       int    `json:"count"`
	Dynamic     []int  `json:"dynamic"`
	Stable      []int  `json:"stable"`
}

func TestRegistry(t *testing.T) {
	ids := ListModes()
	if len(ids) != 2 || ids[0] != "dynamic" || ids[1] != "stable" {
		t.Fatalf("ListModes() = %v, want [dynamic stable]", ids)
	}

	m, ok := GetMode("")
	if !ok || m.Spec().ID != DefaultModeID {
		t.Errorf("GetMode(\"\") should return the default mode, got %v", m)
	}
	if _, ok := GetMode("volatile"); ok {
		t.Error("GetMode should not find an unregistered mode")
	}
}

func TestDynamicBucket(t *testing.T) {
	m := &DynamicMode{}
	tests := []struct {
		value uint32
		want  int
	}{
		{0, Down},
		{1, Flat},
		{2, Up},
		{3, Down},
		{3255155336, Up},
		{4294967295, Down},
	}
	for _, tt := range tests {
		if got := m.Bucket(tt.value); got != tt.want {
			t.Errorf("Bucket(%d) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestStableBucketBoundaries(t *testing.T) {
	m := &StableMode{}
	tests := []struct {
		name  string
		value uint32
		want  int
	}{
		{"zero", 0, Down},
		{"last_down", 24, Down},
		{"first_flat", 25, Flat},
		{"mid_flat", 500, Flat},
		{"last_flat", 974, Flat},
		{"first_up", 975, Up},
		{"last_up", 999, Up},
		{"wraps", 1024, Down},
		{"large_up", 3734651976, Up},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Bucket(tt.value); got != tt.want {
				t.Errorf("Bucket(%d) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestDeltaGoldenVectors(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "step_golden.json"))
	if err != nil {
		t.Fatalf("Failed to load golden vectors: %v", err)
	}
	var vectors []deltaVector
	if err := json.Unmarshal(data, &vectors); err != nil {
		t.Fatalf("Failed to decode golden vectors: %v", err)
	}

	dynamic, _ := GetMode("dynamic")
	stable, _ := GetMode("stable")

	for _, v := range vectors {
		t.Run(v.Description, func(t *testing.T) {
			for i := 0; i < v.Count; i++ {
				index := v.Start + uint64(i)
				if got := dynamic.Bucket(engine.StepValue(v.Seed, index)); got != v.Dynamic[i] {
					t.Errorf("dynamic delta at %d = %d, want %d", index, got, v.Dynamic[i])
				}
				if got := stable.Bucket(engine.StepValue(v.Seed, index)); got != v.Stable[i] {
					t.Errorf("stable delta at %d = %d, want %d", index, got, v.Stable[i])
				}
			}
		})
	}
}

func TestDeltaTotal(t *testing.T) {
	for _, id := range ListModes() {
		m, _ := GetMode(id)
		for i := uint64(0); i < 2000; i++ {
			d := m.Bucket(engine.StepValue("totality", i))
			if d != Down && d != Flat && d != Up {
				t.Fatalf("%s delta at %d = %d, outside {-1,0,1}", id, i, d)
			}
			if again := m.Bucket(engine.StepValue("totality", i)); again != d {
				t.Fatalf("%s delta at %d not deterministic: %d then %d", id, i, d, again)
			}
		}
	}
}
