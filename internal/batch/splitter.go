// Package batch partitions an ordered sequence of rows into contiguous,
// fixed-maximum-size batches.
package batch

import "fmt"

// Range is a half-open row index range [Start, End)
type Range struct {
	Start int
	End   int
}

// Len returns the number of rows covered by the range
func (r Range) Len() int {
	return r.End - r.Start
}

// String formats the range as [start, end)
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Slice returns the items covered by the range
func Slice[T any](items []T, r Range) []T {
	return items[r.Start:r.End]
}

// Count returns the number of batches needed for n rows
func Count(n, size int) int {
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Split returns ceil(n/size) ranges covering [0, n) in order.
// The last range may be shorter than size. Split panics if size < 1.
func Split(n, size int) []Range {
	if size < 1 {
		panic(fmt.Sprintf("batch: invalid batch size %d", size))
	}

	ranges := make([]Range, 0, Count(n, size))
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}
	return ranges
}
