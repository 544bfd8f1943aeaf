package synteny_api

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// A reference contig and query contig pairing, the unit of chaining
type contigPair struct {
	ref   string
	query string
}

// Chain groups the alignments by contig pair and chains every group into
// synteny blocks. Blocks are returned in group order (first appearance of the
// pair in the input) and chain order within a group. Independent pairs are
// chained concurrently when threads is bigger than one.
func Chain(segments []AlignmentSegment, config *Config, threads int) ([]SyntenyBlock, error) {
	if err := checkContigLengths(segments); err != nil {
		return nil, err
	}

	pairs, groups := groupByPair(segments)

	results := make([][]SyntenyBlock, len(pairs))
	if threads < 1 {
		threads = 1
	}

	group := errgroup.Group{}
	group.SetLimit(threads)
	for i, pair := range pairs {
		i, pair := i, pair
		group.Go(func() error {
			results[i] = chainPair(groups[pair], config)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	blocks := []SyntenyBlock{}
	for _, result := range results {
		blocks = append(blocks, result...)
	}
	return blocks, nil
}

// Group the alignments by contig pair, keeping the order in which the pairs
// first appear in the input
func groupByPair(segments []AlignmentSegment) ([]contigPair, map[contigPair][]AlignmentSegment) {
	pairs := []contigPair{}
	groups := map[contigPair][]AlignmentSegment{}

	for _, segment := range segments {
		pair := contigPair{ref: segment.RefContig, query: segment.QueryContig}
		if _, ok := groups[pair]; !ok {
			pairs = append(pairs, pair)
		}
		groups[pair] = append(groups[pair], segment)
	}

	return pairs, groups
}

// Every alignment mentioning a contig has to agree on its total length
func checkContigLengths(segments []AlignmentSegment) error {
	lengths := map[string]int64{}
	for _, segment := range segments {
		for _, contig := range []struct {
			id     string
			length int64
		}{
			{segment.RefContig, segment.RefContigLen},
			{segment.QueryContig, segment.QueryContigLen},
		} {
			known, ok := lengths[contig.id]
			if !ok {
				lengths[contig.id] = contig.length
				continue
			}
			if known != contig.length {
				return fmt.Errorf("%w: contig %s has length %d on one record and %d on another", ErrContigMetadataConflict, contig.id, known, contig.length)
			}
		}
	}
	return nil
}

// Chain one contig pair. Forward and reverse alignments never merge, the
// forward blocks are emitted first.
func chainPair(segments []AlignmentSegment, config *Config) []SyntenyBlock {
	forward := []AlignmentSegment{}
	reverse := []AlignmentSegment{}
	for _, segment := range segments {
		if segment.Reverse() {
			reverse = append(reverse, segment)
		} else {
			forward = append(forward, segment)
		}
	}

	blocks := chainOriented(forward, false, config)
	blocks = append(blocks, chainOriented(reverse, true, config)...)
	return blocks
}

// Sort one orientation subset and run the greedy merge over it
func chainOriented(segments []AlignmentSegment, reversed bool, config *Config) []SyntenyBlock {
	sortSegments(segments, reversed, config.TieBreak)

	blocks := []SyntenyBlock{}
	var current *SyntenyBlock
	for i := range segments {
		segment := segments[i]
		if current == nil {
			current = newBlock(segment)
			continue
		}
		if current.canExtend(&segment, config) {
			current.extend(segment)
		} else {
			blocks = append(blocks, *current.seal())
			current = newBlock(segment)
		}
	}
	if current != nil {
		blocks = append(blocks, *current.seal())
	}
	return blocks
}

// Order by reference start; ties go to the higher identity under the
// identity policy, then follow the query in the direction of travel
func sortSegments(segments []AlignmentSegment, reversed bool, tieBreak string) {
	sort.SliceStable(segments, func(i, j int) bool {
		a, b := segments[i], segments[j]
		if a.RefStart != b.RefStart {
			return a.RefStart < b.RefStart
		}
		if tieBreak == TieBreakIdentity && a.Identity != b.Identity {
			return a.Identity > b.Identity
		}
		if reversed {
			return a.QueryStart > b.QueryStart
		}
		return a.QueryStart < b.QueryStart
	})
}

// Open a block holding a single alignment
func newBlock(segment AlignmentSegment) *SyntenyBlock {
	return &SyntenyBlock{
		RefContig:      segment.RefContig,
		QueryContig:    segment.QueryContig,
		RefStart:       segment.RefStart,
		RefEnd:         segment.RefEnd,
		QueryStart:     segment.QueryLow(),
		QueryEnd:       segment.QueryHigh(),
		Reverse:        segment.Reverse(),
		RefContigLen:   segment.RefContigLen,
		QueryContigLen: segment.QueryContigLen,
		Segments:       []AlignmentSegment{segment},
	}
}

// Whether the alignment is collinear with and close enough to the trailing
// edge of the block
func (block *SyntenyBlock) canExtend(segment *AlignmentSegment, config *Config) bool {
	refGap := segment.RefStart - block.RefEnd
	if refGap > config.MaxGap || refGap < -config.OverlapTolerance {
		return false
	}

	var queryGap int64
	if block.Reverse {
		// travelling down the query, the trailing edge is the low end
		queryGap = block.QueryStart - segment.QueryHigh()
	} else {
		queryGap = segment.QueryLow() - block.QueryEnd
	}
	if queryGap > config.MaxGap || queryGap < -config.OverlapTolerance {
		return false
	}

	// no backtracking behind the block's own start on either axis
	if segment.RefStart < block.RefStart-config.OverlapTolerance {
		return false
	}
	if block.Reverse {
		if segment.QueryHigh() > block.QueryEnd+config.OverlapTolerance {
			return false
		}
	} else {
		if segment.QueryLow() < block.QueryStart-config.OverlapTolerance {
			return false
		}
	}

	return true
}

// Extend the envelope of the block with the alignment
func (block *SyntenyBlock) extend(segment AlignmentSegment) {
	if segment.RefEnd > block.RefEnd {
		block.RefEnd = segment.RefEnd
	}
	if segment.QueryLow() < block.QueryStart {
		block.QueryStart = segment.QueryLow()
	}
	if segment.QueryHigh() > block.QueryEnd {
		block.QueryEnd = segment.QueryHigh()
	}
	block.Segments = append(block.Segments, segment)
}

// Close the block and compute its RefLen weighted identity
func (block *SyntenyBlock) seal() *SyntenyBlock {
	var weighted float64
	var total int64
	for _, segment := range block.Segments {
		weighted += segment.Identity * float64(segment.RefLen)
		total += segment.RefLen
	}
	if total > 0 {
		block.Identity = weighted / float64(total)
	}
	return block
}

// The lengths of the block envelope on the reference and the query
func (block *SyntenyBlock) RefSpan() int64 {
	return block.RefEnd - block.RefStart + 1
}

func (block *SyntenyBlock) QuerySpan() int64 {
	return block.QueryEnd - block.QueryStart + 1
}
