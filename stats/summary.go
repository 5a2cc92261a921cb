// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats computes descriptive statistics over samples of
// measurements and compares pairs of samples.
//
// Variances are population variances: the sum of squared deviations
// is divided by the sample size, not the size minus one.
package stats

import (
	"math"

	mstats "github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"
)

var (
	// ErrEmptySample is returned when a statistic is requested of
	// a sample with no values. The mean of an empty sample is
	// undefined, so this is an error rather than NaN.
	ErrEmptySample = errors.New("empty sample")

	// ErrInsufficientData is returned by CohenEffectSize when the
	// two samples together have two or fewer values, which leaves
	// the pooled variance with no degrees of freedom.
	ErrInsufficientData = errors.New("insufficient data for pooled variance")
)

// A Summary describes a single sample.
type Summary struct {
	N        int
	Mean     float64
	Variance float64
	StdDev   float64
}

// Summarize computes the mean, population variance, and standard
// deviation of xs. xs is not modified.
func Summarize(xs []float64) (Summary, error) {
	if len(xs) == 0 {
		return Summary{}, ErrEmptySample
	}
	samp := mstats.Sample{Xs: xs}
	mean := samp.Mean()

	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	variance := ss / float64(len(xs))

	return Summary{
		N:        len(xs),
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}, nil
}

// PooledStdDev returns the standard deviation pooled from two
// summaries, weighting each variance by its degrees of freedom.
func PooledStdDev(a, b Summary) (float64, error) {
	df := a.N + b.N - 2
	if df <= 0 {
		return 0, ErrInsufficientData
	}
	pooled := (float64(a.N-1)*a.Variance + float64(b.N-1)*b.Variance) / float64(df)
	return math.Sqrt(pooled), nil
}

// CohenEffectSize returns Cohen's d for samples a and b: the
// difference of their means in units of their pooled standard
// deviation. The result is positive when a has the larger mean.
//
// If both samples are constant the pooled standard deviation is zero.
// The result is then 0 if the means are equal and ±Inf otherwise.
func CohenEffectSize(a, b []float64) (float64, error) {
	c, err := Compare(a, b)
	if err != nil {
		return 0, err
	}
	return c.D, nil
}

func effectSize(sa, sb Summary) (float64, error) {
	pooled, err := PooledStdDev(sa, sb)
	if err != nil {
		return 0, err
	}
	diff := sa.Mean - sb.Mean
	if pooled == 0 {
		switch {
		case diff > 0:
			return math.Inf(1), nil
		case diff < 0:
			return math.Inf(-1), nil
		}
		return 0, nil
	}
	return diff / pooled, nil
}

// A Comparison summarizes two samples and the difference between
// them.
type Comparison struct {
	A, B Summary

	// Delta is A.Mean - B.Mean.
	Delta float64

	// D is Cohen's effect size of A relative to B.
	D float64
}

// Compare summarizes a and b and computes their effect size. It fails
// with ErrInsufficientData if a and b together have two or fewer
// values and with ErrEmptySample if either is empty.
func Compare(a, b []float64) (Comparison, error) {
	if len(a)+len(b) <= 2 {
		return Comparison{}, ErrInsufficientData
	}
	sa, err := Summarize(a)
	if err != nil {
		return Comparison{}, errors.Wrap(err, "first sample")
	}
	sb, err := Summarize(b)
	if err != nil {
		return Comparison{}, errors.Wrap(err, "second sample")
	}
	d, err := effectSize(sa, sb)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{A: sa, B: sb, Delta: sa.Mean - sb.Mean, D: d}, nil
}
