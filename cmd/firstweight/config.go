// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/thinkstats/firstweight/nsfg"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of a run. Values come from defaults, then
// an optional YAML file, then command-line flags.
type Config struct {
	Dictionary string `yaml:"dictionary"`
	Data       string `yaml:"data"`
	OutputDir  string `yaml:"output_dir"`
	LogLevel   string `yaml:"log_level"`

	// Expect gives the partition sizes to verify. Zero counts
	// are not checked.
	Expect nsfg.Expect `yaml:"expect"`

	// Extremes is how many of the smallest and largest weights
	// to print.
	Extremes int `yaml:"extremes"`

	// ComparisonWidth is the bar width of the first babies versus
	// others histogram, in pounds.
	ComparisonWidth float64 `yaml:"comparison_width"`
}

// DefaultConfig returns the settings that reproduce the analysis of
// the 2002 pregnancy file in the current directory.
func DefaultConfig() Config {
	return Config{
		Dictionary:      nsfg.FemPregDictionary,
		Data:            nsfg.FemPregData,
		OutputDir:       ".",
		LogLevel:        "info",
		Expect:          nsfg.FemPregExpect,
		Extremes:        10,
		ComparisonWidth: 0.05,
	}
}

// LoadConfig reads the YAML file at path into cfg. Fields absent
// from the file keep their current values. Unknown fields are an
// error.
func LoadConfig(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "reading config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg.validate()
}

func (c *Config) validate() error {
	if c.Extremes < 0 {
		return errors.Errorf("extremes must be non-negative, got %d", c.Extremes)
	}
	if c.ComparisonWidth <= 0 {
		return errors.Errorf("comparison_width must be positive, got %g", c.ComparisonWidth)
	}
	return nil
}
