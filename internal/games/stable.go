package games

// Stable mode thresholds on value mod 1000.
const (
	stableModulus   = 1000
	stableDownBelow = 25
	stableUpFrom    = 975
)

// StableMode holds the price flat 97.5% of the time, splitting the rest
// evenly between a step down and a step up. Prices are quoted in units of
// 1/100000.
type StableMode struct{}

func (m *StableMode) Spec() ModeSpec {
	return ModeSpec{
		ID:              "stable",
		Name:            "Stable",
		DisplayDecimals: 5,
	}
}

func (m *StableMode) Bucket(value uint32) int {
	p := value % stableModulus
	switch {
	case p < stableDownBelow:
		return Down
	case p < stableUpFrom:
		return Flat
	default:
		return Up
	}
}
