// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	mstats "github.com/aclements/go-moremath/stats"
)

// A Hist counts how often each distinct value occurs in a sample.
//
// The zero value is an empty histogram ready to use.
type Hist struct {
	// Label names the sample, for legends.
	Label string

	freqs map[float64]int
	total int
}

// HistItem is one distinct value and its frequency.
type HistItem struct {
	Value float64
	Freq  int
}

// NewHist returns a histogram of xs. NaN values are ignored.
func NewHist(xs []float64, label string) *Hist {
	h := &Hist{Label: label}
	for _, x := range xs {
		h.Add(x)
	}
	return h
}

// Add records one occurrence of x. NaN is ignored.
func (h *Hist) Add(x float64) {
	if math.IsNaN(x) {
		return
	}
	if h.freqs == nil {
		h.freqs = make(map[float64]int)
	}
	h.freqs[x]++
	h.total++
}

// Freq returns the number of times x was added.
func (h *Hist) Freq(x float64) int {
	return h.freqs[x]
}

// Total returns the number of values added.
func (h *Hist) Total() int {
	return h.total
}

// Values returns the distinct values in ascending order.
func (h *Hist) Values() []float64 {
	samp := mstats.Sample{Xs: make([]float64, 0, len(h.freqs))}
	for x := range h.freqs {
		samp.Xs = append(samp.Xs, x)
	}
	samp.Sort()
	return samp.Xs
}

// Items returns every distinct value with its frequency, in
// ascending order of value.
func (h *Hist) Items() []HistItem {
	vals := h.Values()
	items := make([]HistItem, len(vals))
	for i, x := range vals {
		items[i] = HistItem{x, h.freqs[x]}
	}
	return items
}

// Bounds returns the smallest and largest values. If the histogram
// is empty, both are NaN.
func (h *Hist) Bounds() (lo, hi float64) {
	if h.total == 0 {
		return math.NaN(), math.NaN()
	}
	samp := mstats.Sample{Xs: h.Values(), Sorted: true}
	return samp.Bounds()
}

// Smallest returns up to n items with the smallest values, smallest
// first.
func (h *Hist) Smallest(n int) []HistItem {
	items := h.Items()
	if n < 0 {
		n = 0
	}
	if n < len(items) {
		items = items[:n]
	}
	return items
}

// Largest returns up to n items with the largest values, largest
// first.
func (h *Hist) Largest(n int) []HistItem {
	items := h.Items()
	if n < 0 {
		n = 0
	}
	if n < len(items) {
		items = items[len(items)-n:]
	}
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}
