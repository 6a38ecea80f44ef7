// Package digest computes content-addressed fingerprints for meso runs.
//
// Values are serialized with RFC 8785 canonical JSON and hashed with
// SHA-256 under a versioned domain prefix, so the same number list always
// yields the same digest regardless of where it came from.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes. The version suffix leaves room for algorithm changes.
const (
	DomainInput  = "meso/input/v1"
	DomainOutput = "meso/output/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Input fingerprints the number list as read, before sorting.
func Input(values []int32) (string, error) {
	canonical, err := MarshalCanonical(values)
	if err != nil {
		return "", fmt.Errorf("input digest: %w", err)
	}
	return hashWithDomain(DomainInput, canonical), nil
}

// Output fingerprints a sort result: the ordered values, the algorithm that
// produced them and its comparison count.
func Output(values []int32, algorithm string, comparisons int64) (string, error) {
	obj := map[string]any{
		"algorithm":   algorithm,
		"comparisons": comparisons,
		"values":      values,
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("output digest: %w", err)
	}
	return hashWithDomain(DomainOutput, canonical), nil
}
