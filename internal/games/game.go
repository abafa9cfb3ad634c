package games

import "sort"

// Price movements produced by a mode for a single index.
const (
	Down = -1
	Flat = 0
	Up   = 1
)

// ModeSpec describes a registered game mode.
type ModeSpec struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// DisplayDecimals is how many implied decimal places prices carry
	// when shown to players. Reconstruction ignores it.
	DisplayDecimals int32 `json:"display_decimals"`
}

// Mode maps a step value onto a price movement.
type Mode interface {
	Spec() ModeSpec

	// Bucket reduces a step value into Down, Flat or Up.
	Bucket(value uint32) int
}

// ModeRegistry holds all available modes keyed by ID
var ModeRegistry = make(map[string]Mode)

// DefaultModeID is used when a game does not name its mode.
const DefaultModeID = "dynamic"

// RegisterMode adds a mode to the registry
func RegisterMode(m Mode) {
	ModeRegistry[m.Spec().ID] = m
}

// GetMode retrieves a mode by ID. An empty ID selects the default mode.
func GetMode(id string) (Mode, bool) {
	if id == "" {
		id = DefaultModeID
	}
	m, ok := ModeRegistry[id]
	return m, ok
}

// ListModes returns all registered mode IDs in sorted order
func ListModes() []string {
	ids := make([]string, 0, len(ModeRegistry))
	for id := range ModeRegistry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func init() {
	RegisterMode(&DynamicMode{})
	RegisterMode(&StableMode{})
}
