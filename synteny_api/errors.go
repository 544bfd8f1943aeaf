package synteny_api

import "errors"

// The two failure modes of the chaining step. Both abort the run, a coords
// file with bad lines would silently corrupt the synteny result if lines
// were skipped instead.
var (
	// A coords line has too few fields or a field that doesn't parse
	ErrMalformedRecord = errors.New("malformed record")

	// Two alignments of the same contig pair disagree on a contig length
	ErrContigMetadataConflict = errors.New("contig metadata conflict")
)
