package synteny_api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockStringIsCoordsShaped(t *testing.T) {
	blocks, err := Chain([]AlignmentSegment{
		seg(1, 100, 1, 100, 99.0, "ptg1_1"),
		seg(105, 200, 106, 201, 95.0, "ptg1_1"),
	}, defaultTestConfig(), 1)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	expected := "1\t200\t1\t201\t200\t201\t97.04\t2000000\t300000\tptg1\tptg1_1"
	assert.Equal(t, expected, blocks[0].String())

	// the output parses back as a coords record
	segment, err := parseCoordsLine(blocks[0].String(), 1)
	require.NoError(t, err)
	assert.Equal(t, blocks[0].RefStart, segment.RefStart)
	assert.Equal(t, blocks[0].QueryContig, segment.QueryContig)
}

func TestBlockStringKeepsReverseOrientation(t *testing.T) {
	blocks, err := Chain([]AlignmentSegment{
		seg(1, 50, 500, 450, 97.5, "ptg1_1"),
	}, defaultTestConfig(), 1)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	segment, err := parseCoordsLine(blocks[0].String(), 1)
	require.NoError(t, err)
	assert.True(t, segment.Reverse())
	assert.Equal(t, int64(500), segment.QueryStart)
	assert.Equal(t, int64(450), segment.QueryEnd)
}

func TestSummaryHeader(t *testing.T) {
	expected := "Primary\tHaplotig\tPrimary_Start\tPrimary_End\tHaplotig_Start\tHaplotig_End\tHaplotig_Length"
	assert.Equal(t, expected, summaryHeader())
}

func TestWriteSummaryUsesReferenceLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.tsv")
	file, err := os.Create(path)
	require.NoError(t, err)

	rows := []SummaryRow{
		{QueryContig: "ptg1_1", RefStart: 1, RefEnd: 320, QueryStart: 1, QueryEnd: 320, QueryContigLen: 300000},
	}
	writeSummary(rows, "ptg1", file, false)
	require.NoError(t, file.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := summaryHeader() + "\n" + "ptg1\tptg1_1\t1\t320\t1\t320\t300000\n"
	assert.Equal(t, expected, string(content))
}
