package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
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

// Short returns the first 12 hex characters, enough to tell families apart in logs.
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// ComputeFamilyHash identifies a family of comparisons that share one
// multiple-testing correction. Variable order does not matter.
func ComputeFamilyHash(stage string, method string, adjust string, variables []VariableKey) Hash {
	keys := make([]string, len(variables))
	for i, v := range variables {
		keys[i] = string(v)
	}
	sort.Strings(keys)

	var data strings.Builder
	data.WriteString(fmt.Sprintf("%s|%s|%s|", stage, method, adjust))
	data.WriteString(strings.Join(keys, ","))

	return NewHash([]byte(data.String()))
}
