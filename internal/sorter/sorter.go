// Package sorter implements the comparison sorts behind meso and counts
// every pairwise comparison they perform.
//
// Exchange is the default and reproduces the classic count of n*(n+1)/2
// comparisons for any input of length n, self-comparisons included. Merge
// is a top-down merge sort that fans out into goroutines for its first
// levels of recursion; its count is merge sort's natural one.
package sorter

import (
	"cmp"
	"fmt"
	"strings"
)

// Algorithm names a sort routine.
type Algorithm string

const (
	AlgorithmExchange Algorithm = "exchange"
	AlgorithmMerge    Algorithm = "merge"
)

// DefaultDepth is the merge fan-out depth used when none is given (2^2 = 4 workers).
const DefaultDepth = 2

// Algorithms lists the accepted algorithm names.
var Algorithms = []Algorithm{AlgorithmExchange, AlgorithmMerge}

// ParseAlgorithm resolves a user-supplied algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range Algorithms {
		if string(a) == name {
			return a, nil
		}
	}
	names := make([]string, len(Algorithms))
	for i, a := range Algorithms {
		names[i] = string(a)
	}
	return "", fmt.Errorf("unknown algorithm %q: must be one of %s", name, strings.Join(names, ", "))
}

// Options tunes the sort routines. The zero value is valid.
type Options struct {
	// Depth is the number of merge recursion levels that split into two
	// goroutines. Ignored by Exchange.
	Depth int
}

// Sort reorders data in non-descending order using alg and returns the
// number of comparisons performed.
func Sort[T cmp.Ordered](alg Algorithm, data []T, opts Options) (int64, error) {
	switch alg {
	case AlgorithmExchange, "":
		return Exchange(data), nil
	case AlgorithmMerge:
		return Merge(data, opts.Depth), nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q", alg)
	}
}

// Exchange sorts data in place by comparing the element at each position i
// with every element at positions j >= i and swapping when data[i] > data[j].
// Every comparison is counted, including j == i, so the result is always
// n*(n+1)/2.
func Exchange[T cmp.Ordered](data []T) int64 {
	var count int64
	n := len(data)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if data[i] > data[j] {
				data[i], data[j] = data[j], data[i]
			}
			count++
		}
	}
	return count
}

// ExchangeComparisons returns the comparison count Exchange performs for n elements.
func ExchangeComparisons(n int) int64 {
	return int64(n) * int64(n+1) / 2
}
