package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"strconv"
)

// StepSeparator joins the seed and the price index in the per-step message.
const StepSeparator = "-"

// StepMessage builds the message hashed for a single price index.
func StepMessage(seed string, index uint64) string {
	return seed + StepSeparator + strconv.FormatUint(index, 10)
}

// StepValue returns the first 8 hex characters of SHA-256(seed-index)
// parsed as an unsigned integer. Games reduce this value into a delta.
func StepValue(seed string, index uint64) uint32 {
	sum := sha256.Sum256([]byte(StepMessage(seed, index)))
	return binary.BigEndian.Uint32(sum[:4])
}

// StepValues generates count step values starting at the given index
func StepValues(seed string, start uint64, count int) []uint32 {
	values := make([]uint32, count)
	for i := 0; i < count; i++ {
		values[i] = StepValue(seed, start+uint64(i))
	}
	return values
}

// StepValuesInto fills the provided slice with step values, avoiding allocation
func StepValuesInto(dst []uint32, seed string, start uint64, count int) []uint32 {
	if len(dst) < count {
		dst = make([]uint32, count)
	}
	for i := 0; i < count; i++ {
		dst[i] = StepValue(seed, start+uint64(i))
	}
	return dst[:count]
}
