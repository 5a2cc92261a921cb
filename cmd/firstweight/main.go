// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command firstweight compares the birth weights of first babies and
// other live births in the NSFG 2002 female pregnancy file.
//
// It reads the Stata dictionary and fixed-width data file, keeps live
// births, splits them by birth order, and prints the mean, variance,
// and standard deviation of total birth weight along with Cohen's
// effect size between first babies and others. Histograms are saved as
// SVG files in the output directory:
//
//	first_totalwgt_lb_hist.svg  - weights of all live births
//	first_nsfg_hist_live.svg    - the same, titled, for the extremes
//	first_weight_nsfg_hist.svg  - first babies next to others
//
// Settings may also be given in a YAML file with --config; flags
// override the file. Any positional arguments are ignored.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "firstweight: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		configPath  string
		checkCounts bool
		flagCfg     = DefaultConfig()
	)

	cmd := &cobra.Command{
		Use:           "firstweight [flags]",
		Short:         "Compare birth weights of first babies and others",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := DefaultConfig()
			if configPath != "" {
				if err := LoadConfig(configPath, &cfg); err != nil {
					return err
				}
			}
			flags := cmd.Flags()
			if flags.Changed("dictionary") {
				cfg.Dictionary = flagCfg.Dictionary
			}
			if flags.Changed("data") {
				cfg.Data = flagCfg.Data
			}
			if flags.Changed("output-dir") {
				cfg.OutputDir = flagCfg.OutputDir
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = flagCfg.LogLevel
			}
			if flags.Changed("extremes") {
				cfg.Extremes = flagCfg.Extremes
			}
			if flags.Changed("comparison-width") {
				cfg.ComparisonWidth = flagCfg.ComparisonWidth
			}
			if !checkCounts {
				cfg.Expect.Live, cfg.Expect.Firsts, cfg.Expect.Others = 0, 0, 0
			}
			if err := cfg.validate(); err != nil {
				return err
			}

			log := logrus.New()
			log.SetOutput(stderr)
			level, err := logrus.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)

			a := &analysis{cfg: cfg, out: stdout, log: log}
			return a.run()
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "read settings from YAML `file`")
	flags.StringVar(&flagCfg.Dictionary, "dictionary", flagCfg.Dictionary, "Stata dictionary `file` describing the data")
	flags.StringVar(&flagCfg.Data, "data", flagCfg.Data, "fixed-width pregnancy data `file` (may be gzipped)")
	flags.StringVar(&flagCfg.OutputDir, "output-dir", flagCfg.OutputDir, "write SVG charts to `dir`")
	flags.StringVar(&flagCfg.LogLevel, "log-level", flagCfg.LogLevel, "log `level` (debug, info, warn, error)")
	flags.IntVar(&flagCfg.Extremes, "extremes", flagCfg.Extremes, "print the `n` smallest and largest weights")
	flags.Float64Var(&flagCfg.ComparisonWidth, "comparison-width", flagCfg.ComparisonWidth, "bar `width` in pounds of the first babies versus others chart")
	flags.BoolVar(&checkCounts, "check-counts", true, "verify live, firsts, and others record counts")
	return cmd
}
