package synteny_api

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/hts/bgzf"
)

// Read a coords file (show-coords -r -T -l -d -c output with the headers
// stripped) and return its alignments in input order. The file can be plain
// text or bgzip compressed, '-' reads plain text from stdin.
func ReadCoords(file string) ([]AlignmentSegment, error) {
	if file == "-" {
		return readCoordsPlain(os.Stdin)
	}

	openFile, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer openFile.Close()

	if strings.HasSuffix(file, ".gz") {
		return readCoordsBgzip(openFile)
	}
	return readCoordsPlain(openFile)
}

func readCoordsPlain(input io.Reader) ([]AlignmentSegment, error) {
	segments := []AlignmentSegment{}

	scanner := bufio.NewScanner(input)
	const maxCapacity = 8 * 1000000 // 8 MB
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		segment, err := parseCoordsLine(line, lineNumber)
		if err != nil {
			return nil, err
		}
		segments = append(segments, segment)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return segments, nil
}

func readCoordsBgzip(input *os.File) ([]AlignmentSegment, error) {
	segments := []AlignmentSegment{}

	bgReader, err := bgzf.NewReader(input, 1)
	if err != nil {
		return nil, err
	}
	defer bgReader.Close()

	lineNumber := 0
	for {
		b, _, err := readBgzipLine(bgReader)
		if err != nil && err != io.EOF {
			return nil, err
		}

		// a final line without a trailing newline arrives together with EOF
		if len(b) > 0 {
			lineNumber++
			line := string(bytes.TrimSpace(b[:]))
			if line != "" {
				segment, parseErr := parseCoordsLine(line, lineNumber)
				if parseErr != nil {
					return nil, parseErr
				}
				segments = append(segments, segment)
			}
		}

		if err == io.EOF {
			break
		}
	}

	return segments, nil
}

// readBgzipLine reads a line from a bgzip file
func readBgzipLine(r *bgzf.Reader) ([]byte, bgzf.Chunk, error) {
	tx := r.Begin()
	var (
		data []byte
		b    byte
		err  error
	)
	for {
		b, err = r.ReadByte()
		if err != nil {
			break
		}
		data = append(data, b)
		if b == '\n' {
			break
		}
	}
	chunk := tx.End()
	return data, chunk, err
}

// Decode one coords line into an AlignmentSegment. The first nine fields are
// numeric and positional, the contig identifiers are the last two fields so
// the optional frame and coverage columns in between don't matter.
func parseCoordsLine(line string, lineNumber int) (AlignmentSegment, error) {
	fields := strings.Fields(line)
	if len(fields) < 11 {
		return AlignmentSegment{}, fmt.Errorf("%w: line %d has %d fields, expected at least 11: %q", ErrMalformedRecord, lineNumber, len(fields), line)
	}

	numbers := make([]int64, 9)
	for i := range numbers {
		if i == 6 {
			continue
		}
		value, err := strconv.ParseInt(fields[i], 10, 64)
		if err != nil {
			return AlignmentSegment{}, fmt.Errorf("%w: line %d field %d %q is not an integer", ErrMalformedRecord, lineNumber, i+1, fields[i])
		}
		numbers[i] = value
	}

	identity, err := strconv.ParseFloat(fields[6], 64)
	if err != nil {
		return AlignmentSegment{}, fmt.Errorf("%w: line %d field 7 %q is not a number", ErrMalformedRecord, lineNumber, fields[6])
	}

	segment := AlignmentSegment{
		RefStart:       numbers[0],
		RefEnd:         numbers[1],
		QueryStart:     numbers[2],
		QueryEnd:       numbers[3],
		RefLen:         numbers[4],
		QueryLen:       numbers[5],
		Identity:       identity,
		RefContigLen:   numbers[7],
		QueryContigLen: numbers[8],
		RefContig:      fields[len(fields)-2],
		QueryContig:    fields[len(fields)-1],
	}

	if segment.RefEnd < segment.RefStart {
		return AlignmentSegment{}, fmt.Errorf("%w: line %d reference end %d is before reference start %d", ErrMalformedRecord, lineNumber, segment.RefEnd, segment.RefStart)
	}
	if segment.Identity < 0 || segment.Identity > 100 {
		return AlignmentSegment{}, fmt.Errorf("%w: line %d identity %s is not between 0 and 100", ErrMalformedRecord, lineNumber, fields[6])
	}
	if segment.RefContigLen <= 0 || segment.QueryContigLen <= 0 {
		return AlignmentSegment{}, fmt.Errorf("%w: line %d contig lengths must be positive", ErrMalformedRecord, lineNumber)
	}

	return segment, nil
}
