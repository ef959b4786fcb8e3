package segment

import (
	"fmt"
	"math"
)

// DefaultLength is the default segment length in seconds. At mono 64 kbps
// ten minutes renders to roughly 4.8 MB, well under the remote payload limit.
const DefaultLength = 600.0

// Range is one contiguous slice of a recording, in seconds.
type Range struct {
	Index  int
	Start  float64
	Length float64
}

// End returns the exclusive end of the range.
func (r Range) End() float64 {
	return r.Start + r.Length
}

// String returns a human-readable representation for logging.
func (r Range) String() string {
	return fmt.Sprintf("segment %d [%.2fs, %.2fs)", r.Index, r.Start, r.End())
}

// Plan cuts [0, total) into consecutive ranges of at most length seconds.
// Starts are 0, length, 2*length, ...; the last range is clamped so lengths
// sum to total. A zero total yields no ranges. Invalid input (negative or
// non-finite total, non-positive length) also yields no ranges.
func Plan(total, length float64) []Range {
	if !(length > 0) || math.IsInf(length, 0) || !(total > 0) || math.IsInf(total, 0) {
		return nil
	}

	count := int(math.Ceil(total / length))
	ranges := make([]Range, 0, count)
	for i := 0; ; i++ {
		// i*length instead of accumulating, so starts don't drift.
		start := float64(i) * length
		if start >= total {
			break
		}
		ranges = append(ranges, Range{
			Index:  i,
			Start:  start,
			Length: math.Min(length, total-start),
		})
	}
	return ranges
}
