package scan

// BlockRange is one inclusive chunk of blocks for a single log query.
type BlockRange struct {
	From uint64
	To   uint64
}

// Size returns the number of blocks the range covers
func (r BlockRange) Size() uint64 {
	return r.To - r.From + 1
}

// PlanRanges partitions [from, to] into consecutive inclusive ranges of at
// most chunkSize blocks, preserving order and covering every block exactly
// once; the final chunk is shorter when the span is not a multiple of
// chunkSize. Providers cap log-range size and result count, so every log
// query is bounded by one planned range. Pure function, no side effects.
func PlanRanges(from, to, chunkSize uint64) []BlockRange {
	if to < from {
		return nil
	}
	if chunkSize == 0 {
		chunkSize = 1
	}

	ranges := make([]BlockRange, 0, (to-from)/chunkSize+1)
	for start := from; start <= to; {
		end := start + chunkSize - 1
		if end > to || end < start { // overflow guard near MaxUint64
			end = to
		}
		ranges = append(ranges, BlockRange{From: start, To: end})
		if end == to {
			break
		}
		start = end + 1
	}
	return ranges
}
