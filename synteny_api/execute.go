package synteny_api

import (
	"log"
	"os"

	cli "github.com/urfave/cli/v2"
)

// Execute runs the chain command: load the coords file, chain every contig
// pair and write the result to the output file or stdout
func Execute(Cctx *cli.Context, config *Config) error {
	logger := log.New(os.Stderr, "", 0)

	if Cctx.Bool("summary") {
		logger.Printf("Clustering homologous regions of %s that are within %d bp.", Cctx.String("ref"), config.MaxGap)
	} else {
		logger.Printf("Chaining alignments of %s that are within %d bp.", Cctx.String("ref"), config.MaxGap)
	}

	segments, err := ReadCoords(Cctx.String("input"))
	if err != nil {
		return err
	}

	stdout := true
	var outputFile *os.File
	if Cctx.String("output") != "" {
		stdout = false
		outputFile, err = os.Create(Cctx.String("output"))
		if err != nil {
			logger.Fatalf("Failed to create the output file: %v", err)
		}
		defer outputFile.Close()
	}

	if Cctx.Bool("summary") {
		rows, err := Summarize(segments, config.MaxGap)
		if err != nil {
			return err
		}
		writeSummary(rows, Cctx.String("ref"), outputFile, stdout)
		return nil
	}

	blocks, err := Chain(segments, config, Cctx.Int("threads"))
	if err != nil {
		return err
	}
	writeBlocks(blocks, outputFile, stdout)
	return nil
}
