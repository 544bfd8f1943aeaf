package synteny_api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRefLen   = int64(2000000)
	testQueryLen = int64(300000)
)

// seg builds an alignment of the given coordinates between ptg1 and the
// given haplotig
func seg(refStart, refEnd, queryStart, queryEnd int64, identity float64, query string) AlignmentSegment {
	queryLen := queryEnd - queryStart + 1
	if queryStart > queryEnd {
		queryLen = queryStart - queryEnd + 1
	}
	return AlignmentSegment{
		RefStart:       refStart,
		RefEnd:         refEnd,
		QueryStart:     queryStart,
		QueryEnd:       queryEnd,
		RefLen:         refEnd - refStart + 1,
		QueryLen:       queryLen,
		Identity:       identity,
		RefContigLen:   testRefLen,
		QueryContigLen: testQueryLen,
		RefContig:      "ptg1",
		QueryContig:    query,
	}
}

func defaultTestConfig() *Config {
	return &Config{
		MaxGap:           DefaultMaxGap,
		OverlapTolerance: DefaultOverlapTolerance,
		TieBreak:         TieBreakOrder,
	}
}

func TestChainMergesProximateForwardSegments(t *testing.T) {
	segments := []AlignmentSegment{
		seg(1, 100, 1, 100, 99.0, "ptg1_1"),
		seg(105, 200, 106, 201, 95.0, "ptg1_1"),
	}

	blocks, err := Chain(segments, defaultTestConfig(), 1)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	block := blocks[0]
	assert.Equal(t, int64(1), block.RefStart)
	assert.Equal(t, int64(200), block.RefEnd)
	assert.Equal(t, int64(1), block.QueryStart)
	assert.Equal(t, int64(201), block.QueryEnd)
	assert.False(t, block.Reverse)
	assert.Len(t, block.Segments, 2)

	// identity is weighted by the reference span of each member
	expected := (99.0*100 + 95.0*96) / 196.0
	assert.InDelta(t, expected, block.Identity, 1e-9)
}

func TestChainLoneReverseSegment(t *testing.T) {
	segments := []AlignmentSegment{
		seg(1, 50, 500, 450, 97.5, "ptg1_1"),
	}

	blocks, err := Chain(segments, defaultTestConfig(), 1)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	block := blocks[0]
	assert.True(t, block.Reverse)
	assert.Equal(t, int64(1), block.RefStart)
	assert.Equal(t, int64(50), block.RefEnd)
	assert.Equal(t, int64(450), block.QueryStart)
	assert.Equal(t, int64(500), block.QueryEnd)
	assert.InDelta(t, 97.5, block.Identity, 1e-9)
}

func TestChainSplitsOnLargeGap(t *testing.T) {
	segments := []AlignmentSegment{
		seg(1, 50, 1, 50, 99.0, "ptg1_1"),
		seg(1000, 1050, 1000, 1050, 99.0, "ptg1_1"),
	}

	config := defaultTestConfig()
	config.MaxGap = 100

	blocks, err := Chain(segments, config, 1)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, int64(1), blocks[0].RefStart)
	assert.Equal(t, int64(1000), blocks[1].RefStart)
}

func TestChainMergesReverseSegments(t *testing.T) {
	// reverse chains travel down the query as the reference advances
	segments := []AlignmentSegment{
		seg(1, 100, 1000, 901, 98.0, "ptg1_1"),
		seg(110, 200, 895, 805, 98.0, "ptg1_1"),
	}

	blocks, err := Chain(segments, defaultTestConfig(), 1)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	block := blocks[0]
	assert.True(t, block.Reverse)
	assert.Equal(t, int64(1), block.RefStart)
	assert.Equal(t, int64(200), block.RefEnd)
	assert.Equal(t, int64(805), block.QueryStart)
	assert.Equal(t, int64(1000), block.QueryEnd)
}

func TestChainNeverMixesOrientations(t *testing.T) {
	// same reference neighbourhood, opposite query directions
	segments := []AlignmentSegment{
		seg(1, 100, 1, 100, 99.0, "ptg1_1"),
		seg(105, 200, 900, 801, 99.0, "ptg1_1"),
		seg(205, 300, 205, 300, 99.0, "ptg1_1"),
	}

	blocks, err := Chain(segments, defaultTestConfig(), 1)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	for _, block := range blocks {
		for _, member := range block.Segments {
			assert.Equal(t, block.Reverse, member.Reverse())
		}
	}
}

func TestChainClosesBlockOnQueryBacktrack(t *testing.T) {
	// the second alignment jumps back on the query, collinearity is broken
	// even though the reference gap is tiny
	segments := []AlignmentSegment{
		seg(1, 100, 5000, 5100, 99.0, "ptg1_1"),
		seg(105, 200, 1000, 1100, 99.0, "ptg1_1"),
	}

	blocks, err := Chain(segments, defaultTestConfig(), 1)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
}

func mixedFixture() []AlignmentSegment {
	return []AlignmentSegment{
		seg(1, 10000, 1, 10050, 99.1, "ptg1_1"),
		seg(10500, 20000, 10600, 20100, 98.2, "ptg1_1"),
		seg(60000, 70000, 30000, 40000, 97.0, "ptg1_1"),
		seg(100, 5000, 80000, 75100, 96.3, "ptg1_1"),
		seg(5500, 9000, 74900, 71400, 95.8, "ptg1_1"),
		seg(1, 8000, 1, 8000, 99.9, "ptg1_2"),
		seg(8100, 9000, 8090, 8990, 99.5, "ptg1_2"),
		seg(500000, 501000, 100000, 101000, 90.0, "ptg1_2"),
	}
}

func TestChainProperties(t *testing.T) {
	segments := mixedFixture()

	blocks, err := Chain(segments, defaultTestConfig(), 1)
	require.NoError(t, err)

	// every input alignment ends up in exactly one block
	members := 0
	for _, block := range blocks {
		members += len(block.Segments)
	}
	assert.Equal(t, len(segments), members)

	for _, block := range blocks {
		refStart, refEnd := block.Segments[0].RefStart, block.Segments[0].RefEnd
		queryLow, queryHigh := block.Segments[0].QueryLow(), block.Segments[0].QueryHigh()

		for i, member := range block.Segments {
			assert.Equal(t, block.RefContig, member.RefContig)
			assert.Equal(t, block.QueryContig, member.QueryContig)
			assert.Equal(t, block.Reverse, member.Reverse())

			if i > 0 {
				assert.GreaterOrEqual(t, member.RefStart, block.Segments[i-1].RefStart)
			}
			if member.RefStart < refStart {
				refStart = member.RefStart
			}
			if member.RefEnd > refEnd {
				refEnd = member.RefEnd
			}
			if member.QueryLow() < queryLow {
				queryLow = member.QueryLow()
			}
			if member.QueryHigh() > queryHigh {
				queryHigh = member.QueryHigh()
			}
		}

		// the block envelope is exactly the min/max over its members
		assert.Equal(t, refStart, block.RefStart)
		assert.Equal(t, refEnd, block.RefEnd)
		assert.Equal(t, queryLow, block.QueryStart)
		assert.Equal(t, queryHigh, block.QueryEnd)
	}
}

func TestChainIdempotentOnOwnOutput(t *testing.T) {
	config := defaultTestConfig()

	blocks, err := Chain(mixedFixture(), config, 1)
	require.NoError(t, err)

	rechained := make([]AlignmentSegment, len(blocks))
	for i, block := range blocks {
		queryStart, queryEnd := block.QueryStart, block.QueryEnd
		if block.Reverse {
			queryStart, queryEnd = queryEnd, queryStart
		}
		rechained[i] = AlignmentSegment{
			RefStart:       block.RefStart,
			RefEnd:         block.RefEnd,
			QueryStart:     queryStart,
			QueryEnd:       queryEnd,
			RefLen:         block.RefSpan(),
			QueryLen:       block.QuerySpan(),
			Identity:       block.Identity,
			RefContigLen:   block.RefContigLen,
			QueryContigLen: block.QueryContigLen,
			RefContig:      block.RefContig,
			QueryContig:    block.QueryContig,
		}
	}

	again, err := Chain(rechained, config, 1)
	require.NoError(t, err)
	require.Len(t, again, len(blocks))
	for i, block := range again {
		assert.Equal(t, blocks[i].RefStart, block.RefStart)
		assert.Equal(t, blocks[i].RefEnd, block.RefEnd)
		assert.Equal(t, blocks[i].QueryStart, block.QueryStart)
		assert.Equal(t, blocks[i].QueryEnd, block.QueryEnd)
		assert.Equal(t, blocks[i].Reverse, block.Reverse)
	}
}

func TestChainTieBreakPolicies(t *testing.T) {
	// two alignments starting on the same reference position but pointing at
	// distant query regions, only one can win extension rights
	segments := []AlignmentSegment{
		seg(100, 200, 100, 200, 90.0, "ptg1_1"),
		seg(100, 200, 50000, 50100, 99.0, "ptg1_1"),
	}

	config := defaultTestConfig()
	blocks, err := Chain(segments, config, 1)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, int64(100), blocks[0].QueryStart)

	config.TieBreak = TieBreakIdentity
	blocks, err = Chain(segments, config, 1)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, int64(50000), blocks[0].QueryStart)
}

func TestChainGroupOrderFollowsInput(t *testing.T) {
	segments := []AlignmentSegment{
		seg(1, 100, 1, 100, 99.0, "ptg1_2"),
		seg(1, 100, 1, 100, 99.0, "ptg1_1"),
	}

	blocks, err := Chain(segments, defaultTestConfig(), 1)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "ptg1_2", blocks[0].QueryContig)
	assert.Equal(t, "ptg1_1", blocks[1].QueryContig)
}

func TestChainParallelMatchesSequential(t *testing.T) {
	sequential, err := Chain(mixedFixture(), defaultTestConfig(), 1)
	require.NoError(t, err)

	parallel, err := Chain(mixedFixture(), defaultTestConfig(), 4)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestChainContigMetadataConflict(t *testing.T) {
	segments := []AlignmentSegment{
		seg(1, 100, 1, 100, 99.0, "ptg1_1"),
		seg(200, 300, 200, 300, 99.0, "ptg1_1"),
	}
	segments[1].QueryContigLen = testQueryLen + 1

	_, err := Chain(segments, defaultTestConfig(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContigMetadataConflict))
	assert.Contains(t, err.Error(), "ptg1_1")
}

func TestChainEmptyInput(t *testing.T) {
	blocks, err := Chain(nil, defaultTestConfig(), 1)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}
