// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestSummarize(t *testing.T) {
	a, err := Summarize([]float64{5, 7, 9})
	require.NoError(t, err)
	assert.Equal(t, 3, a.N)
	assert.Equal(t, 7.0, a.Mean)
	assert.InDelta(t, 8.0/3, a.Variance, 1e-12)
	assert.InDelta(t, math.Sqrt(8.0/3), a.StdDev, 1e-12)

	b, err := Summarize([]float64{6, 6, 6})
	require.NoError(t, err)
	assert.Equal(t, 6.0, b.Mean)
	assert.Equal(t, 0.0, b.Variance)
	assert.Equal(t, 0.0, b.StdDev)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil)
	assert.True(t, errors.Is(err, ErrEmptySample), "got %v", err)
	_, err = Summarize([]float64{})
	assert.Equal(t, ErrEmptySample, errors.Cause(err))
}

func TestSummarizeSingle(t *testing.T) {
	for _, x := range []float64{0, -3.5, 7.4375, 1e9} {
		s, err := Summarize([]float64{x})
		require.NoError(t, err)
		assert.Equal(t, x, s.Mean)
		assert.Equal(t, 0.0, s.Variance, "variance of [%v]", x)
	}
}

func TestSummarizeNonNegative(t *testing.T) {
	samples := [][]float64{
		{1},
		{1, 1, 1, 1},
		{0.1, 0.2, 0.3},
		{-100, 100},
		{1e8 + 0.1, 1e8 + 0.1, 1e8 + 0.1},
		{7.5, 8.25, 6.5, 9, 7.0625, 8.8125},
	}
	for _, xs := range samples {
		s, err := Summarize(xs)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.Variance, 0.0, "variance of %v", xs)
	}
}

func TestSummarizeMatchesGonum(t *testing.T) {
	xs := []float64{7.5, 8.25, 6.5, 9, 7.0625, 8.8125, 5.5, 10.125}
	s, err := Summarize(xs)
	require.NoError(t, err)

	n := float64(len(xs))
	assert.InDelta(t, stat.Mean(xs, nil), s.Mean, 1e-12)
	// gonum's Variance is the unbiased estimator.
	assert.InDelta(t, stat.Variance(xs, nil)*(n-1)/n, s.Variance, 1e-12)
}

func TestSummarizeDoesNotModify(t *testing.T) {
	xs := []float64{3, 1, 2}
	_, err := Summarize(xs)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}

func TestCohenEffectSize(t *testing.T) {
	a := []float64{5, 7, 9}
	b := []float64{6, 6, 6}

	// Pooled variance is (2*8/3 + 2*0) / 4 = 4/3.
	d, err := CohenEffectSize(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt(4.0/3), d, 1e-12)

	pooled, err := PooledStdDev(Summary{N: 3, Variance: 8.0 / 3}, Summary{N: 3})
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(4.0/3), pooled, 1e-12)
}

func TestCohenEffectSizeSelf(t *testing.T) {
	for _, xs := range [][]float64{{1, 2}, {5, 7, 9}, {6, 6, 6}, {7.5, 8.25, 6.5, 9}} {
		d, err := CohenEffectSize(xs, xs)
		require.NoError(t, err)
		assert.Equal(t, 0.0, d, "d(%v, %v)", xs, xs)
	}
}

func TestCohenEffectSizeAntisymmetric(t *testing.T) {
	check := func(a, b []float64) {
		t.Helper()
		dab, err := CohenEffectSize(a, b)
		require.NoError(t, err)
		dba, err := CohenEffectSize(b, a)
		require.NoError(t, err)
		assert.Equal(t, dab, -dba, "d(a,b) = %v, d(b,a) = %v", dab, dba)
	}
	check([]float64{5, 7, 9}, []float64{6, 6, 6})
	check([]float64{1}, []float64{2, 3, 5})
	check([]float64{8.8125, 6.5, 7.5}, []float64{7, 9, 8.25, 7.4375})
}

func TestCohenEffectSizeErrors(t *testing.T) {
	check := func(a, b []float64, want error) {
		t.Helper()
		_, err := CohenEffectSize(a, b)
		assert.Equal(t, want, errors.Cause(err), "d(%v, %v)", a, b)
	}
	check(nil, nil, ErrInsufficientData)
	check([]float64{1}, []float64{2}, ErrInsufficientData)
	check([]float64{1, 2}, nil, ErrInsufficientData)
	check(nil, []float64{1, 2, 3}, ErrEmptySample)
	check([]float64{1, 2, 3}, nil, ErrEmptySample)
}

func TestCohenEffectSizeConstant(t *testing.T) {
	check := func(a, b []float64, want float64) {
		t.Helper()
		d, err := CohenEffectSize(a, b)
		require.NoError(t, err, "d(%v, %v)", a, b)
		assert.Equal(t, want, d, "d(%v, %v)", a, b)
	}
	check([]float64{6, 6, 6}, []float64{6, 6, 6}, 0)
	check([]float64{4, 4}, []float64{4, 4}, 0)
	check([]float64{4, 4}, []float64{4, 4, 4}, 0)
	check([]float64{5, 5}, []float64{4, 4, 4}, math.Inf(1))
	check([]float64{4, 4}, []float64{5, 5, 5}, math.Inf(-1))
}

func TestCompare(t *testing.T) {
	c, err := Compare([]float64{5, 7, 9}, []float64{6, 6, 6})
	require.NoError(t, err)
	assert.Equal(t, 7.0, c.A.Mean)
	assert.Equal(t, 6.0, c.B.Mean)
	assert.Equal(t, 1.0, c.Delta)

	d, err := CohenEffectSize([]float64{5, 7, 9}, []float64{6, 6, 6})
	require.NoError(t, err)
	assert.Equal(t, d, c.D)

	_, err = Compare([]float64{1}, []float64{1})
	assert.Equal(t, ErrInsufficientData, errors.Cause(err))
}
