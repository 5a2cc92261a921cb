// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/thinkstats/firstweight/nsfg"
	"github.com/thinkstats/firstweight/plot"
	"github.com/thinkstats/firstweight/stats"
)

const weightColumn = "totalwgt_lb"

// analysis compares the birth weights of first babies and others.
// Results are printed to out and charts are saved in cfg.OutputDir.
type analysis struct {
	cfg Config
	out io.Writer
	log logrus.FieldLogger
}

func (a *analysis) run() error {
	preg, err := nsfg.ReadFemPreg(a.cfg.Dictionary, a.cfg.Data, a.log)
	if err != nil {
		return err
	}
	live, firsts, others, err := nsfg.MakeFrames(preg, a.cfg.Expect)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"live":   live.Len(),
		"firsts": firsts.Len(),
		"others": others.Len(),
	}).Info("partitioned pregnancies")

	liveW, err := live.Sample(weightColumn)
	if err != nil {
		return err
	}
	firstW, err := firsts.Sample(weightColumn)
	if err != nil {
		return err
	}
	otherW, err := others.Sample(weightColumn)
	if err != nil {
		return err
	}

	if err := a.makeHists(liveW); err != nil {
		return err
	}
	if err := a.printExtremes(liveW); err != nil {
		return err
	}
	if err := a.makeComparison(firstW, otherW); err != nil {
		return err
	}
	return a.summarize(liveW, firstW, otherW)
}

func (a *analysis) save(root string, opts plot.Options, series ...plot.Series) error {
	path := filepath.Join(a.cfg.OutputDir, root+".svg")
	if err := plot.Save(path, opts, series...); err != nil {
		return err
	}
	a.log.WithField("file", path).Info("wrote chart")
	return nil
}

// makeHists plots the histogram of live birth weights.
func (a *analysis) makeHists(live []float64) error {
	hist := stats.NewHist(live, weightColumn)
	return a.save("first_totalwgt_lb_hist",
		plot.Options{XLabel: "lbs", YLabel: "frequency"},
		plot.HistSeries(hist))
}

// printExtremes plots the live birth weights and prints the smallest
// and largest values with their frequencies.
func (a *analysis) printExtremes(live []float64) error {
	hist := stats.NewHist(live, "live births")
	err := a.save("first_nsfg_hist_live",
		plot.Options{Title: "Histogram", XLabel: "lbs", YLabel: "frequency"},
		plot.HistSeries(hist))
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Smallest weights:")
	for _, it := range hist.Smallest(a.cfg.Extremes) {
		fmt.Fprintln(a.out, it.Value, it.Freq)
	}
	fmt.Fprintln(a.out, "Largest weights:")
	for _, it := range hist.Largest(a.cfg.Extremes) {
		fmt.Fprintln(a.out, it.Value, it.Freq)
	}
	return nil
}

// makeComparison plots first babies and others side by side.
func (a *analysis) makeComparison(firsts, others []float64) error {
	first := plot.HistSeries(stats.NewHist(firsts, "first"))
	first.Align, first.Width = plot.AlignRight, a.cfg.ComparisonWidth
	other := plot.HistSeries(stats.NewHist(others, "other"))
	other.Align, other.Width = plot.AlignLeft, a.cfg.ComparisonWidth

	return a.save("first_weight_nsfg_hist",
		plot.Options{Title: "Histogram", XLabel: "lbs", YLabel: "frequency"},
		first, other)
}

// summarize prints summary statistics of live births and the
// difference between first babies and others.
func (a *analysis) summarize(live, firsts, others []float64) error {
	all, err := stats.Summarize(live)
	if err != nil {
		return errors.Wrap(err, "live births")
	}
	fmt.Fprintln(a.out, "Live mean", all.Mean)
	fmt.Fprintln(a.out, "Live variance", all.Variance)
	fmt.Fprintln(a.out, "Live std", all.StdDev)

	c, err := stats.Compare(firsts, others)
	if err != nil {
		return errors.Wrap(err, "first babies vs others")
	}
	fmt.Fprintln(a.out, "Mean")
	fmt.Fprintln(a.out, "First babies", c.A.Mean)
	fmt.Fprintln(a.out, "Others", c.B.Mean)

	fmt.Fprintln(a.out, "Variance")
	fmt.Fprintln(a.out, "First babies", c.A.Variance)
	fmt.Fprintln(a.out, "Others", c.B.Variance)

	fmt.Fprintln(a.out, "Difference in lbs", c.Delta)
	fmt.Fprintln(a.out, "Cohen d", c.D)
	return nil
}
