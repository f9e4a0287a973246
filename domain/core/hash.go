package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// InputFingerprint identifies a solver input. Identical inputs always map to
// the same fingerprint, so callers can deduplicate repeated calculations.
type InputFingerprint Hash

func (h InputFingerprint) String() string { return Hash(h).String() }

// ComputeInputFingerprint hashes a solver kind plus its labelled scalar and
// row inputs. Floats are encoded with the shortest exact representation.
func ComputeInputFingerprint(kind string, labels []string, scalars []float64, rows [][]float64) InputFingerprint {
	var data strings.Builder
	data.WriteString(kind)
	for _, l := range labels {
		data.WriteByte('|')
		data.WriteString(l)
	}
	for _, v := range scalars {
		data.WriteByte('|')
		data.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	for _, row := range rows {
		data.WriteByte(';')
		for i, v := range row {
			if i > 0 {
				data.WriteByte(',')
			}
			data.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return InputFingerprint(NewHash([]byte(data.String())))
}
