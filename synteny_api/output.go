package synteny_api

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The summary table columns, title cased into the output header
var summaryColumns = []string{"primary", "haplotig", "primary_start", "primary_end", "haplotig_start", "haplotig_end", "haplotig_length"}

// Format the block as a coords record so the output can be fed back into the
// same tooling. Reverse blocks print their query coordinates high to low.
func (block *SyntenyBlock) String() string {
	queryStart := block.QueryStart
	queryEnd := block.QueryEnd
	if block.Reverse {
		queryStart, queryEnd = queryEnd, queryStart
	}

	fields := []string{
		strconv.FormatInt(block.RefStart, 10),
		strconv.FormatInt(block.RefEnd, 10),
		strconv.FormatInt(queryStart, 10),
		strconv.FormatInt(queryEnd, 10),
		strconv.FormatInt(block.RefSpan(), 10),
		strconv.FormatInt(block.QuerySpan(), 10),
		strconv.FormatFloat(block.Identity, 'f', 2, 64),
		strconv.FormatInt(block.RefContigLen, 10),
		strconv.FormatInt(block.QueryContigLen, 10),
		block.RefContig,
		block.QueryContig,
	}
	return strings.Join(fields, "\t")
}

// Write the chained blocks to the output file
func writeBlocks(blocks []SyntenyBlock, file *os.File, stdout bool) {
	for i := range blocks {
		writeLine(blocks[i].String(), file, stdout)
	}
}

// Write the summary table to the output file. The reference label from the
// command line fills the primary column, like the upstream pipeline does.
func writeSummary(rows []SummaryRow, refLabel string, file *os.File, stdout bool) {
	writeLine(summaryHeader(), file, stdout)
	for _, row := range rows {
		line := fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%d\t%d",
			refLabel, row.QueryContig, row.RefStart, row.RefEnd, row.QueryStart, row.QueryEnd, row.QueryContigLen)
		writeLine(line, file, stdout)
	}
}

func summaryHeader() string {
	caser := cases.Title(language.English, cases.Compact)
	columns := make([]string, len(summaryColumns))
	for i, column := range summaryColumns {
		words := strings.Split(column, "_")
		for j, word := range words {
			words[j] = caser.String(word)
		}
		columns[i] = strings.Join(words, "_")
	}
	return strings.Join(columns, "\t")
}

// Write a line to stdout or the output file
func writeLine(line string, file *os.File, stdout bool) {
	if stdout {
		fmt.Println(line)
	} else {
		file.WriteString(line + "\n")
	}
}
