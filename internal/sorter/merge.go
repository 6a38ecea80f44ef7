package sorter

import (
	"cmp"
	"sync"
	"sync/atomic"
)

// Merge sorts data with a stable top-down merge sort and returns the number
// of comparisons performed. The first depth levels of recursion sort their
// halves concurrently, giving up to 2^depth workers on disjoint sub-slices.
func Merge[T cmp.Ordered](data []T, depth int) int64 {
	var count atomic.Int64
	scratch := make([]T, len(data))
	mergeSort(data, scratch, depth, &count)
	return count.Load()
}

func mergeSort[T cmp.Ordered](data, scratch []T, depth int, count *atomic.Int64) {
	if len(data) < 2 {
		return
	}
	mid := len(data) / 2

	if depth > 0 {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			mergeSort(data[:mid], scratch[:mid], depth-1, count)
		}()
		go func() {
			defer wg.Done()
			mergeSort(data[mid:], scratch[mid:], depth-1, count)
		}()
		wg.Wait()
	} else {
		mergeSort(data[:mid], scratch[:mid], 0, count)
		mergeSort(data[mid:], scratch[mid:], 0, count)
	}

	count.Add(merge(data, scratch, mid))
}

// merge combines the sorted runs data[:mid] and data[mid:] using scratch
// and returns the comparisons it made.
func merge[T cmp.Ordered](data, scratch []T, mid int) int64 {
	copy(scratch, data)
	left, right := scratch[:mid], scratch[mid:len(data)]

	var n int64
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		n++
		// Ties take from the left run to keep the sort stable.
		if right[j] < left[i] {
			data[k] = right[j]
			j++
		} else {
			data[k] = left[i]
			i++
		}
		k++
	}
	k += copy(data[k:], left[i:])
	copy(data[k:], right[j:])
	return n
}
