package synteny_api

import (
	"log"
	"os"

	cli "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

// The configuration file fields. Pointers keep an explicit `maxGap: 0`
// (gapless chaining) apart from an absent key.
type configFile struct {
	MaxGap           *int64  `yaml:"maxGap"`
	OverlapTolerance *int64  `yaml:"overlapTolerance"`
	TieBreak         *string `yaml:"tieBreak"`
}

// Read the configuration file, cast it to its struct and validate
func ReadConfig(Cctx *cli.Context) *Config {
	logger := log.New(os.Stderr, "", 0)

	config := &Config{
		MaxGap:           DefaultMaxGap,
		OverlapTolerance: DefaultOverlapTolerance,
		TieBreak:         TieBreakOrder,
	}

	if path := Cctx.String("config"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Fatalf("Failed to open the config file: %v", err)
		}

		var file configFile
		if err := yaml.Unmarshal(content, &file); err != nil {
			logger.Fatalf("Failed to parse the config file: %v", err)
		}

		if file.MaxGap != nil {
			config.MaxGap = *file.MaxGap
		}
		if file.OverlapTolerance != nil {
			config.OverlapTolerance = *file.OverlapTolerance
		}
		if file.TieBreak != nil {
			config.TieBreak = *file.TieBreak
		}
	}

	config.applyFlags(Cctx)

	if config.TieBreak != TieBreakOrder && config.TieBreak != TieBreakIdentity {
		logger.Fatalf("Invalid tie-break policy '%s', must be one of: %s, %s", config.TieBreak, TieBreakOrder, TieBreakIdentity)
	}
	if config.MaxGap < 0 {
		logger.Fatalf("The maximal chaining distance can't be negative (got %d)", config.MaxGap)
	}
	if config.OverlapTolerance < 0 {
		logger.Fatalf("The overlap tolerance can't be negative (got %d)", config.OverlapTolerance)
	}

	return config
}

// Command line flags take precedence over the config file
func (config *Config) applyFlags(Cctx *cli.Context) {
	if Cctx.IsSet("dist") {
		config.MaxGap = int64(Cctx.Int("dist"))
	}
	if Cctx.IsSet("overlap") {
		config.OverlapTolerance = int64(Cctx.Int("overlap"))
	}
	if Cctx.IsSet("tie-break") {
		config.TieBreak = Cctx.String("tie-break")
	}
}
