package synteny_api

// A struct representing one alignment from the coords file in a parseable format
type AlignmentSegment struct {
	// The 1-based inclusive start and end positions on the reference (primary) contig
	RefStart int64
	RefEnd   int64

	// The 1-based inclusive start and end positions on the query (haplotig) contig
	// QueryStart > QueryEnd signals a reverse oriented alignment
	QueryStart int64
	QueryEnd   int64

	// The lengths of the aligned spans on the reference and the query
	RefLen   int64
	QueryLen int64

	// The percent identity of the alignment (0-100)
	Identity float64

	// The total lengths of the reference and the query contigs
	RefContigLen   int64
	QueryContigLen int64

	// The identifiers of the reference and the query contigs
	RefContig   string
	QueryContig string
}

// Whether the alignment is reverse oriented on the query
func (segment *AlignmentSegment) Reverse() bool {
	return segment.QueryStart > segment.QueryEnd
}

// The lower of the two query positions
func (segment *AlignmentSegment) QueryLow() int64 {
	if segment.Reverse() {
		return segment.QueryEnd
	}
	return segment.QueryStart
}

// The higher of the two query positions
func (segment *AlignmentSegment) QueryHigh() int64 {
	if segment.Reverse() {
		return segment.QueryStart
	}
	return segment.QueryEnd
}

// A struct representing a chain of collinear alignments between one reference
// contig and one query contig
type SyntenyBlock struct {
	// The identifiers of the reference and the query contigs
	RefContig   string
	QueryContig string

	// The envelope of the member alignments on the reference
	RefStart int64
	RefEnd   int64

	// The envelope of the member alignments on the query, always stored low to high
	QueryStart int64
	QueryEnd   int64

	// Whether all member alignments are reverse oriented
	Reverse bool

	// The RefLen weighted mean of the member identities
	Identity float64

	// The total lengths of the reference and the query contigs
	RefContigLen   int64
	QueryContigLen int64

	// The member alignments in chaining order
	Segments []AlignmentSegment
}

//
// Config structs
//

// Tie-break policies for alignments starting on the same reference position
const (
	// Keep the input sort order
	TieBreakOrder = "order"

	// Order by identity, highest first
	TieBreakIdentity = "identity"
)

// Defaults for the chaining tunables
const (
	// The default maximal distance between two alignments for them to be
	// chained, taken over from the clustering distance of the upstream
	// purge pipeline
	DefaultMaxGap = 15000

	// The default maximal overlap between two alignments for them to be chained
	DefaultOverlapTolerance = 1000
)

// The resolved chaining tunables, built from the defaults, the YAML
// configuration file and the command line flags
type Config struct {
	// The maximal distance between the trailing edge of a block and the next
	// alignment for the alignment to be chained into the block
	MaxGap int64

	// How far the next alignment may reach back into the block on either axis
	OverlapTolerance int64

	// How to order alignments that start on the same reference position
	// Must be one of: order, identity
	TieBreak string
}
