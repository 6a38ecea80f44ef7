package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/meso/internal/digest"
)

// marshalValues converts a number list to canonical JSON TEXT for storage.
func marshalValues(values []int32) (string, error) {
	if values == nil {
		values = []int32{}
	}
	data, err := digest.MarshalCanonical(values)
	if err != nil {
		return "", fmt.Errorf("marshal values: %w", err)
	}
	return string(data), nil
}

// unmarshalValues parses a stored number list. Out-of-range values are
// rejected by encoding/json when decoding into int32.
func unmarshalValues(data string) ([]int32, error) {
	values := []int32{}
	if data == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, fmt.Errorf("unmarshal values: %w", err)
	}
	return values, nil
}
