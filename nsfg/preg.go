// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nsfg

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Default locations of the 2002 female pregnancy file.
const (
	FemPregDictionary = "2002FemPreg.dct"
	FemPregData       = "2002FemPreg.dat.gz"
)

// Queries partitioning pregnancy records.
const (
	LiveQuery   = "outcome:1"
	FirstsQuery = "birthord:1"
	OthersQuery = "-birthord:1"
)

// ReadFemPreg reads and cleans the pregnancy file described by the
// dictionary at dctPath.
func ReadFemPreg(dctPath, datPath string, log logrus.FieldLogger) (*Frame, error) {
	dict, err := readDictionaryFile(dctPath)
	if err != nil {
		return nil, err
	}

	r, err := Open(datPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f, err := ReadFrame(r, datPath, dict, log)
	if err != nil {
		return nil, err
	}
	return CleanFemPreg(f)
}

func readDictionaryFile(path string) (*Dictionary, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadDictionary(r, path)
}

// Special codes in the pregnancy file meaning "not ascertained",
// "refused", and "don't know".
var naCodes = []float64{97, 98, 99}

// CleanFemPreg recodes special values in the pregnancy records and
// derives totalwgt_lb, the birth weight in pounds, from birthwgt_lb
// and birthwgt_oz. The birthwgt columns are required; other recoded
// columns are cleaned if present.
func CleanFemPreg(f *Frame) (*Frame, error) {
	lb, err := f.Column("birthwgt_lb")
	if err != nil {
		return nil, err
	}
	oz, err := f.Column("birthwgt_oz")
	if err != nil {
		return nil, err
	}

	for i, x := range lb {
		if x > 20 {
			lb[i] = math.NaN()
		}
	}
	replace(lb, naCodes)
	replace(oz, naCodes)

	total := make([]float64, len(lb))
	for i := range total {
		total[i] = lb[i] + oz[i]/16
	}

	if f, err = f.WithColumn("birthwgt_lb", lb); err != nil {
		return nil, err
	}
	if f, err = f.WithColumn("birthwgt_oz", oz); err != nil {
		return nil, err
	}

	optional := []struct {
		name  string
		codes []float64
		div   float64
	}{
		{"agepreg", nil, 100},
		{"hpagelb", naCodes, 1},
		{"babysex", []float64{7, 9}, 1},
		{"nbrnaliv", []float64{9}, 1},
	}
	for _, o := range optional {
		col, err := f.Column(o.name)
		if errors.Cause(err) == ErrNoColumn {
			continue
		} else if err != nil {
			return nil, err
		}
		replace(col, o.codes)
		for i := range col {
			col[i] /= o.div
		}
		if f, err = f.WithColumn(o.name, col); err != nil {
			return nil, err
		}
	}

	return f.WithColumn("totalwgt_lb", total)
}

// replace sets every element of xs that equals one of codes to NaN.
func replace(xs []float64, codes []float64) {
	for i, x := range xs {
		for _, c := range codes {
			if x == c {
				xs[i] = math.NaN()
				break
			}
		}
	}
}

// Expect gives the expected sizes of the partitions produced by
// MakeFrames. A zero count is not checked.
type Expect struct {
	Live   int `yaml:"live"`
	Firsts int `yaml:"firsts"`
	Others int `yaml:"others"`
}

// FemPregExpect holds the partition sizes of the 2002 pregnancy file.
var FemPregExpect = Expect{Live: 9148, Firsts: 4413, Others: 4735}

// A CountError reports a partition whose size differs from the
// expected size.
type CountError struct {
	Name      string
	Got, Want int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("%s: got %d records, want %d", e.Name, e.Got, e.Want)
}

// MakeFrames partitions pregnancy records into live births, first
// babies, and other live births.
func MakeFrames(preg *Frame, expect Expect) (live, firsts, others *Frame, err error) {
	if live, err = preg.Where(LiveQuery); err != nil {
		return nil, nil, nil, err
	}
	if firsts, err = live.Where(FirstsQuery); err != nil {
		return nil, nil, nil, err
	}
	if others, err = live.Where(OthersQuery); err != nil {
		return nil, nil, nil, err
	}

	check := func(name string, f *Frame, want int) error {
		if want != 0 && f.Len() != want {
			return &CountError{name, f.Len(), want}
		}
		return nil
	}
	if err := check("live", live, expect.Live); err != nil {
		return nil, nil, nil, err
	}
	if err := check("firsts", firsts, expect.Firsts); err != nil {
		return nil, nil, nil, err
	}
	if err := check("others", others, expect.Others); err != nil {
		return nil, nil, nil, err
	}
	return live, firsts, others, nil
}
