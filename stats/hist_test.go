// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHist(t *testing.T) {
	h := NewHist([]float64{7.5, 8, 7.5, math.NaN(), 6.25, 8, 7.5, 11}, "live")

	assert.Equal(t, "live", h.Label)
	assert.Equal(t, 7, h.Total())
	assert.Equal(t, 3, h.Freq(7.5))
	assert.Equal(t, 2, h.Freq(8))
	assert.Equal(t, 0, h.Freq(9))
	assert.Equal(t, []float64{6.25, 7.5, 8, 11}, h.Values())

	lo, hi := h.Bounds()
	assert.Equal(t, 6.25, lo)
	assert.Equal(t, 11.0, hi)

	assert.Equal(t, []HistItem{{6.25, 1}, {7.5, 3}}, h.Smallest(2))
	assert.Equal(t, []HistItem{{11, 1}, {8, 2}, {7.5, 3}}, h.Largest(3))
	assert.Len(t, h.Smallest(10), 4)
	assert.Equal(t, []HistItem{{11, 1}, {8, 2}, {7.5, 3}, {6.25, 1}}, h.Largest(10))
	assert.Empty(t, h.Largest(0))
}

func TestHistEmpty(t *testing.T) {
	var h Hist
	assert.Equal(t, 0, h.Total())
	assert.Empty(t, h.Values())
	assert.Empty(t, h.Smallest(10))
	lo, hi := h.Bounds()
	assert.True(t, math.IsNaN(lo) && math.IsNaN(hi))

	h.Add(math.NaN())
	assert.Equal(t, 0, h.Total())
}
