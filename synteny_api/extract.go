package synteny_api

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/biogo/hts/bgzf"
	cli "github.com/urfave/cli/v2"
)

// Extract runs the extract command: split a combined FASTA file into the
// primary contig (exact identifier match) and its haplotigs (identifiers of
// the form <primary>_<number>). Records belonging to other contigs are
// dropped, sequence lines are copied through unchanged.
func Extract(Cctx *cli.Context) error {
	logger := log.New(os.Stderr, "", 0)

	primaryFile, err := os.Create(Cctx.String("out-primary"))
	if err != nil {
		logger.Fatalf("Failed to create the primary contig file: %v", err)
	}
	defer primaryFile.Close()

	haplotigFile, err := os.Create(Cctx.String("out-haplotigs"))
	if err != nil {
		logger.Fatalf("Failed to create the haplotigs file: %v", err)
	}
	defer haplotigFile.Close()

	splitter := newSplitter(Cctx.String("contig"), primaryFile, haplotigFile)

	file := Cctx.String("input")
	if file == "-" {
		err = splitter.splitPlain(os.Stdin)
	} else {
		inputFasta, openErr := os.Open(file)
		if openErr != nil {
			logger.Fatal(openErr)
		}
		defer inputFasta.Close()

		if strings.HasSuffix(file, ".gz") {
			err = splitter.splitBgzip(inputFasta)
		} else {
			err = splitter.splitPlain(inputFasta)
		}
	}
	if err != nil {
		return err
	}

	if err := splitter.flush(); err != nil {
		return err
	}
	if !splitter.primarySeen {
		return fmt.Errorf("the primary contig %s was not found in %s", Cctx.String("contig"), file)
	}
	return nil
}

// Routes FASTA records to the primary or haplotig output based on their
// identifier
type fastaSplitter struct {
	primary     string
	haplotig    *regexp.Regexp
	primaryOut  *bufio.Writer
	haplotigOut *bufio.Writer
	current     *bufio.Writer // nil while inside a dropped record
	primarySeen bool
}

func newSplitter(primary string, primaryOut, haplotigOut io.Writer) *fastaSplitter {
	return &fastaSplitter{
		primary:     primary,
		haplotig:    regexp.MustCompile("^" + regexp.QuoteMeta(primary) + `_[0-9]+$`),
		primaryOut:  bufio.NewWriter(primaryOut),
		haplotigOut: bufio.NewWriter(haplotigOut),
	}
}

func (splitter *fastaSplitter) splitPlain(input io.Reader) error {
	scanner := bufio.NewScanner(input)
	const maxCapacity = 8 * 1000000 // 8 MB
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)
	for scanner.Scan() {
		if err := splitter.line(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (splitter *fastaSplitter) splitBgzip(input *os.File) error {
	bgReader, err := bgzf.NewReader(input, 1)
	if err != nil {
		return err
	}
	defer bgReader.Close()

	for {
		b, _, err := readBgzipLine(bgReader)
		if err != nil && err != io.EOF {
			return err
		}

		// a final line without a trailing newline arrives together with EOF
		if len(b) > 0 {
			if lineErr := splitter.line(string(bytes.TrimSpace(b[:]))); lineErr != nil {
				return lineErr
			}
		}

		if err == io.EOF {
			return nil
		}
	}
}

func (splitter *fastaSplitter) line(line string) error {
	if strings.HasPrefix(line, ">") {
		id := ""
		if fields := strings.Fields(strings.TrimPrefix(line, ">")); len(fields) > 0 {
			id = fields[0]
		}
		switch {
		case id == splitter.primary:
			splitter.current = splitter.primaryOut
			splitter.primarySeen = true
		case splitter.haplotig.MatchString(id):
			splitter.current = splitter.haplotigOut
		default:
			splitter.current = nil
		}
	}

	if splitter.current == nil {
		return nil
	}
	_, err := splitter.current.WriteString(line + "\n")
	return err
}

func (splitter *fastaSplitter) flush() error {
	if err := splitter.primaryOut.Flush(); err != nil {
		return err
	}
	return splitter.haplotigOut.Flush()
}
