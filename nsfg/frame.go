// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nsfg

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/thinkstats/firstweight/nsfg/internal/query"
)

// ErrNoColumn is returned when a Frame has no column of the requested
// name.
var ErrNoColumn = errors.New("no such column")

// A Frame is a table of records stored column by column. Missing
// numeric values are NaN.
//
// Frames are not modified once built: Filter and Where return new
// Frames, and Column returns a copy.
type Frame struct {
	names []string // numeric column order
	cols  map[string][]float64
	text  map[string][]string
	n     int
}

// NewFrame returns an empty Frame with a column for each variable in
// dict.
func NewFrame(dict *Dictionary) *Frame {
	f := &Frame{
		cols: make(map[string][]float64),
		text: make(map[string][]string),
	}
	for _, v := range dict.Vars {
		if v.Numeric {
			f.names = append(f.names, v.Name)
			f.cols[v.Name] = nil
		} else {
			f.text[v.Name] = nil
		}
	}
	return f
}

// ReadFrame reads every record from r into a new Frame. Malformed
// lines are logged to log and skipped; I/O errors are returned.
func ReadFrame(r io.Reader, fileName string, dict *Dictionary, log logrus.FieldLogger) (*Frame, error) {
	f := NewFrame(dict)
	reader := NewReader(r, fileName, dict)
	skipped := 0
	for reader.Scan() {
		rec, err := reader.Record()
		if err != nil {
			// Non-fatal record parse error. Warn
			// but keep going.
			log.WithError(err).Warn("skipping record")
			skipped++
			continue
		}
		f.append(rec)
	}
	if err := reader.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", fileName)
	}
	log.WithFields(logrus.Fields{
		"file":    fileName,
		"records": f.n,
		"skipped": skipped,
	}).Debug("read data file")
	return f, nil
}

func (f *Frame) append(rec *Record) {
	for i, v := range rec.dict.Vars {
		if v.Numeric {
			f.cols[v.Name] = append(f.cols[v.Name], rec.vals[i])
		} else {
			f.text[v.Name] = append(f.text[v.Name], rec.strs[i])
		}
	}
	f.n++
}

// Len returns the number of records in f.
func (f *Frame) Len() int {
	return f.n
}

// Names returns the names of the numeric columns of f.
func (f *Frame) Names() []string {
	return append([]string(nil), f.names...)
}

// Column returns a copy of the numeric column called name.
func (f *Frame) Column(name string) ([]float64, error) {
	col, ok := f.cols[name]
	if !ok {
		return nil, errors.Wrap(ErrNoColumn, name)
	}
	return append([]float64(nil), col...), nil
}

// Text returns a copy of the string column called name.
func (f *Frame) Text(name string) ([]string, error) {
	col, ok := f.text[name]
	if !ok {
		return nil, errors.Wrap(ErrNoColumn, name)
	}
	return append([]string(nil), col...), nil
}

// Value returns the value of numeric column name in record i, or NaN
// if there is no such column.
func (f *Frame) Value(i int, name string) float64 {
	col, ok := f.cols[name]
	if !ok {
		return math.NaN()
	}
	return col[i]
}

// Sample returns the non-missing values of the numeric column called
// name, in record order.
func (f *Frame) Sample(name string) ([]float64, error) {
	col, ok := f.cols[name]
	if !ok {
		return nil, errors.Wrap(ErrNoColumn, name)
	}
	xs := make([]float64, 0, len(col))
	for _, x := range col {
		if !math.IsNaN(x) {
			xs = append(xs, x)
		}
	}
	return xs, nil
}

// WithColumn returns a copy of f with the numeric column name set to
// vals, adding the column if it does not exist.
func (f *Frame) WithColumn(name string, vals []float64) (*Frame, error) {
	if len(vals) != f.n {
		return nil, errors.Errorf("column %s has %d values, want %d", name, len(vals), f.n)
	}
	g := f.shallowCopy()
	if _, ok := g.cols[name]; !ok {
		g.names = append(g.names, name)
	}
	g.cols[name] = append([]float64(nil), vals...)
	return g, nil
}

func (f *Frame) shallowCopy() *Frame {
	g := &Frame{
		names: append([]string(nil), f.names...),
		cols:  make(map[string][]float64, len(f.cols)),
		text:  make(map[string][]string, len(f.text)),
		n:     f.n,
	}
	for k, v := range f.cols {
		g.cols[k] = v
	}
	for k, v := range f.text {
		g.text[k] = v
	}
	return g
}

// Filter returns a new Frame containing the records of f for which
// keep returns true, in their original order.
func (f *Frame) Filter(keep func(i int) bool) *Frame {
	var idx []int
	for i := 0; i < f.n; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}

	g := &Frame{
		names: append([]string(nil), f.names...),
		cols:  make(map[string][]float64, len(f.cols)),
		text:  make(map[string][]string, len(f.text)),
		n:     len(idx),
	}
	for name, col := range f.cols {
		out := make([]float64, len(idx))
		for j, i := range idx {
			out[j] = col[i]
		}
		g.cols[name] = out
	}
	for name, col := range f.text {
		out := make([]string, len(idx))
		for j, i := range idx {
			out[j] = col[i]
		}
		g.text[name] = out
	}
	return g
}

// Where returns the records of f matching the query q. See package
// query for the syntax; for example, "outcome:1 -birthord:1" selects
// live births other than first births.
func (f *Frame) Where(q string) (*Frame, error) {
	parsed, err := query.Parse(q)
	if err != nil {
		return nil, err
	}
	for _, m := range query.Keys(parsed) {
		if _, ok := f.cols[m.Key]; !ok {
			return nil, errors.Wrapf(ErrNoColumn, "query %q: %s", q, m.Key)
		}
	}
	return f.Filter(func(i int) bool {
		return parsed.Match(frameRow{f, i})
	}), nil
}

type frameRow struct {
	f *Frame
	i int
}

func (r frameRow) Value(key string) float64 {
	return r.f.Value(r.i, key)
}
