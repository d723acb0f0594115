package scan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRangesExactMultiple(t *testing.T) {
	ranges := PlanRanges(100, 399, 100)

	require.Len(t, ranges, 3)
	assert.Equal(t, BlockRange{From: 100, To: 199}, ranges[0])
	assert.Equal(t, BlockRange{From: 200, To: 299}, ranges[1])
	assert.Equal(t, BlockRange{From: 300, To: 399}, ranges[2])
}

func TestPlanRangesShortTail(t *testing.T) {
	ranges := PlanRanges(0, 250, 100)

	require.Len(t, ranges, 3)
	assert.Equal(t, BlockRange{From: 0, To: 99}, ranges[0])
	assert.Equal(t, BlockRange{From: 100, To: 199}, ranges[1])
	assert.Equal(t, BlockRange{From: 200, To: 250}, ranges[2])
	assert.Equal(t, uint64(51), ranges[2].Size())
}

func TestPlanRangesSingleBlock(t *testing.T) {
	ranges := PlanRanges(42, 42, 3000)

	require.Len(t, ranges, 1)
	assert.Equal(t, BlockRange{From: 42, To: 42}, ranges[0])
	assert.Equal(t, uint64(1), ranges[0].Size())
}

func TestPlanRangesEmptySpan(t *testing.T) {
	assert.Nil(t, PlanRanges(100, 99, 3000))
	assert.Nil(t, PlanRanges(math.MaxUint64, 0, 3000))
}

func TestPlanRangesZeroChunkSize(t *testing.T) {
	ranges := PlanRanges(5, 7, 0)

	require.Len(t, ranges, 3)
	for i, r := range ranges {
		assert.Equal(t, uint64(5+i), r.From)
		assert.Equal(t, r.From, r.To)
	}
}

func TestPlanRangesCoversEveryBlockOnce(t *testing.T) {
	ranges := PlanRanges(17, 1234, 97)

	var next uint64 = 17
	for _, r := range ranges {
		assert.Equal(t, next, r.From)
		assert.LessOrEqual(t, r.Size(), uint64(97))
		next = r.To + 1
	}
	assert.Equal(t, uint64(1235), next)
}

func TestPlanRangesOverflowGuard(t *testing.T) {
	ranges := PlanRanges(math.MaxUint64-5, math.MaxUint64, 100)

	require.Len(t, ranges, 1)
	assert.Equal(t, BlockRange{From: math.MaxUint64 - 5, To: math.MaxUint64}, ranges[0])
}
