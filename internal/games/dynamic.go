package games

// DynamicMode moves the price in uniform thirds.
type DynamicMode struct{}

func (m *DynamicMode) Spec() ModeSpec {
	return ModeSpec{
		ID:   "dynamic",
		Name: "Dynamic",
	}
}

// Bucket maps value mod 3 to Down, Flat, Up.
func (m *DynamicMode) Bucket(value uint32) int {
	switch value % 3 {
	case 0:
		return Down
	case 1:
		return Flat
	default:
		return Up
	}
}
