package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// CommitmentPrefix is prepended to every published seed digest.
const CommitmentPrefix = "0x"

// CommitmentStatus is the outcome of checking a seed against its commitment.
type CommitmentStatus int

const (
	// CommitmentUnverifiable means no claim was made: seed or commitment is empty.
	CommitmentUnverifiable CommitmentStatus = iota
	CommitmentVerified
	CommitmentFailed
)

func (s CommitmentStatus) String() string {
	switch s {
	case CommitmentVerified:
		return "verified"
	case CommitmentFailed:
		return "failed"
	default:
		return "unverifiable"
	}
}

// MarshalText renders the status as its lowercase name.
func (s CommitmentStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Digest returns the commitment for a seed: "0x" + lowercase hex SHA-256
// of the seed bytes.
func Digest(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return CommitmentPrefix + hex.EncodeToString(sum[:])
}

// VerifyCommitment checks a revealed seed against the commitment published
// before play. Comparison is case-insensitive.
func VerifyCommitment(seed, commitment string) CommitmentStatus {
	if seed == "" || commitment == "" {
		return CommitmentUnverifiable
	}
	if strings.EqualFold(Digest(seed), commitment) {
		return CommitmentVerified
	}
	return CommitmentFailed
}
