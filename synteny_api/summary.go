package synteny_api

import "sort"

// One aggressively clustered region of a haplotig against the primary contig.
// The primary column of the output table carries the reference label from the
// command line, so only the query side is kept here.
type SummaryRow struct {
	QueryContig    string
	RefStart       int64
	RefEnd         int64
	QueryStart     int64
	QueryEnd       int64
	QueryContigLen int64
}

// A half open run of alignment spans on one axis
type span struct {
	start int64
	end   int64
}

// Summarize clusters every contig pair into one region per axis: starting
// from the largest alignment, neighbours are absorbed while the gap to them
// stays below dist. The distance doubles until the clustered query region
// covers at least 95% of the haplotig or stops growing, which keeps large
// mostly-syntenic haplotigs from being split over small alignment gaps.
func Summarize(segments []AlignmentSegment, dist int64) ([]SummaryRow, error) {
	if err := checkContigLengths(segments); err != nil {
		return nil, err
	}

	pairs, groups := groupByPair(segments)

	rows := make([]SummaryRow, 0, len(pairs))
	for _, pair := range pairs {
		group := groups[pair]

		refSpans := make([]span, len(group))
		querySpans := make([]span, len(group))
		for i, segment := range group {
			refSpans[i] = span{start: segment.RefStart, end: segment.RefEnd}
			querySpans[i] = span{start: segment.QueryLow(), end: segment.QueryHigh()}
		}
		sort.Slice(querySpans, func(i, j int) bool {
			if querySpans[i].start != querySpans[j].start {
				return querySpans[i].start < querySpans[j].start
			}
			return querySpans[i].end < querySpans[j].end
		})

		refRegion, queryRegion := clusterPair(refSpans, querySpans, group[0].QueryContigLen, dist)
		rows = append(rows, SummaryRow{
			QueryContig:    pair.query,
			RefStart:       refRegion.start,
			RefEnd:         refRegion.end,
			QueryStart:     queryRegion.start,
			QueryEnd:       queryRegion.end,
			QueryContigLen: group[0].QueryContigLen,
		})
	}

	return rows, nil
}

// Cluster both axes of one contig pair, doubling the distance until the query
// region covers 95% of the haplotig or stops growing
func clusterPair(refSpans, querySpans []span, queryContigLen, dist int64) (span, span) {
	var lastQuerySize int64
	for {
		refRegion := clusterRegions(refSpans, dist)
		queryRegion := clusterRegions(querySpans, dist)
		querySize := queryRegion.end - queryRegion.start
		if float64(querySize)/float64(queryContigLen) >= 0.95 || querySize == lastQuerySize {
			return refRegion, queryRegion
		}
		dist *= 2
		lastQuerySize = querySize
	}
}

// Absorb neighbours of the largest span on one axis while the gap to them is
// smaller than dist, and return the envelope of what was absorbed
func clusterRegions(spans []span, dist int64) span {
	gaps := make([]int64, len(spans)-1)
	for i := range gaps {
		gaps[i] = spans[i+1].start - spans[i].end
	}

	center := 0
	for i, s := range spans {
		if s.end-s.start > spans[center].end-spans[center].start {
			center = i
		}
	}

	first := scanReverse(gaps, center, dist)
	last := scanForward(gaps, center, dist)
	return envelope(spans[first:last])
}

// Walk from the center span towards the first span and stop at the first gap
// of dist or more
func scanReverse(gaps []int64, center int, dist int64) int {
	for i := center - 1; i >= 0; i-- {
		if gaps[i] >= dist {
			return i + 1
		}
	}
	return 0
}

// Walk from the center span towards the last span and stop at the first gap
// of dist or more
func scanForward(gaps []int64, center int, dist int64) int {
	for i := center; i < len(gaps); i++ {
		if gaps[i] >= dist {
			return i + 1
		}
	}
	return len(gaps) + 1
}

func envelope(spans []span) span {
	result := spans[0]
	for _, s := range spans[1:] {
		if s.start < result.start {
			result.start = s.start
		}
		if s.end > result.end {
			result.end = s.end
		}
	}
	return result
}
