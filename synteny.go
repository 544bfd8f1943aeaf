package main

import (
	"log"
	"os"
	"slices"
	"strings"

	"github.com/nvnieuwk/synteny/synteny_api"
	cli "github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:            "synteny",
		Usage:           "A tool to chain syntenic blocks between a primary contig and its haplotigs from MUMmer coords files",
		HideHelpCommand: true,
		Version:         "0.1.0dev",
		Commands: []*cli.Command{
			{
				Name:  "chain",
				Usage: "Chain collinear alignments from a coords file into synteny blocks",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "The coords file to chain (show-coords -r -T -l -d -c output without headers), '-' for stdin",
						Required: true,
						Category: "Required",
					},
					&cli.StringFlag{
						Name:     "ref",
						Aliases:  []string{"r"},
						Usage:    "The primary contig identifier, used to label the output",
						Required: true,
						Category: "Required",
					},
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Configuration file (YAML) with the chaining tunables",
						Category: "Optional",
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "The location of the output file, defaults to stdout",
						Category: "Optional",
					},
					&cli.IntFlag{
						Name:     "dist",
						Aliases:  []string{"d"},
						Usage:    "Maximal distance between two alignments for them to be chained",
						Value:    synteny_api.DefaultMaxGap,
						Category: "Optional",
					},
					&cli.IntFlag{
						Name:     "overlap",
						Usage:    "Maximal overlap between two alignments for them to be chained",
						Value:    synteny_api.DefaultOverlapTolerance,
						Category: "Optional",
					},
					&cli.StringFlag{
						Name:     "tie-break",
						Usage:    "How to order alignments that start on the same reference position. Must be one of: order, identity",
						Category: "Optional",
						Action: func(c *cli.Context, input string) error {
							validPolicies := []string{synteny_api.TieBreakOrder, synteny_api.TieBreakIdentity}
							if slices.Contains(validPolicies, input) {
								return nil
							}
							return cli.Exit("Invalid tie-break policy '"+input+"', must be one of: "+strings.Join(validPolicies, ", "), 1)
						},
					},
					&cli.IntFlag{
						Name:     "threads",
						Aliases:  []string{"t"},
						Usage:    "Number of contig pairs to chain concurrently",
						Value:    1,
						Category: "Optional",
					},
					&cli.BoolFlag{
						Name:     "summary",
						Aliases:  []string{"s"},
						Usage:    "Output one aggressively clustered region per haplotig instead of the chained blocks",
						Category: "Optional",
					},
				},
				Action: func(Cctx *cli.Context) error {
					config := synteny_api.ReadConfig(Cctx)
					return synteny_api.Execute(Cctx, config)
				},
			},
			{
				Name:  "extract",
				Usage: "Split a combined FASTA file into a primary contig file and a haplotigs file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "The combined FASTA file holding the primary contig and its haplotigs, '-' for stdin",
						Required: true,
						Category: "Required",
					},
					&cli.StringFlag{
						Name:     "contig",
						Aliases:  []string{"c"},
						Usage:    "The identifier of the primary contig",
						Required: true,
						Category: "Required",
					},
					&cli.StringFlag{
						Name:     "out-primary",
						Aliases:  []string{"p"},
						Usage:    "The location of the primary contig FASTA file",
						Required: true,
						Category: "Required",
					},
					&cli.StringFlag{
						Name:     "out-haplotigs",
						Aliases:  []string{"H"},
						Usage:    "The location of the haplotigs FASTA file",
						Required: true,
						Category: "Required",
					},
				},
				Action: func(Cctx *cli.Context) error {
					return synteny_api.Extract(Cctx)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New(os.Stderr, "", 0).Fatal(err)
	}
}
