// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nsfg reads the National Survey of Family Growth data files
// and prepares the pregnancy records for analysis.
//
// NSFG releases each data file as fixed-width text with a Stata
// dictionary giving the column layout. A Reader decodes one record per
// line, a Frame holds decoded records column by column, and
// ReadFemPreg and MakeFrames produce the cleaned and partitioned
// pregnancy records.
package nsfg

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Reader reads records from a fixed-width data file.
//
// Its API is modeled on bufio.Scanner. A Reader retains ownership of
// the Record it returns; a caller should copy anything it needs to
// retain.
//
// The zero value of the Reader is a valid Reader, but the user must
// call Reset before using it.
type Reader struct {
	s        *bufio.Scanner
	dict     *Dictionary
	fileName string
	lineNum  int
	err      error // current I/O error

	rec    Record
	recErr error
}

// SyntaxError represents a syntax error on a particular line of a
// dictionary or data file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

var noRecord = errors.New("Reader.Scan has not been called")

// NewReader constructs a reader to parse fixed-width records laid out
// according to dict from r. fileName is used in error messages; it is
// purely diagnostic.
func NewReader(r io.Reader, fileName string, dict *Dictionary) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName, dict)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string, dict *Dictionary) {
	r.s = bufio.NewScanner(ior)
	// NSFG lines are several kilobytes long.
	r.s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.dict = dict
	r.fileName = fileName
	r.lineNum = 0
	r.err = nil
	r.recErr = noRecord
	r.rec = Record{dict: dict}
}

// Scan advances the reader to the next record and returns true if a
// record was read. The caller should use the Record method to get the
// record. If an I/O error occurs, or this reaches the end of the
// file, it returns false and the caller should use the Err method to
// check for errors. Blank lines are skipped.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	for r.s.Scan() {
		r.lineNum++
		line := r.s.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.recErr = r.parseLine(line)
		return true
	}
	if err := r.s.Err(); err != nil {
		r.err = err
		return false
	}
	r.err = io.EOF
	return false
}

func (r *Reader) parseLine(line string) error {
	rec := &r.rec
	rec.Line = r.lineNum
	if cap(rec.vals) < len(r.dict.Vars) {
		rec.vals = make([]float64, len(r.dict.Vars))
		rec.strs = make([]string, len(r.dict.Vars))
	}
	rec.vals = rec.vals[:len(r.dict.Vars)]
	rec.strs = rec.strs[:len(r.dict.Vars)]

	for i, v := range r.dict.Vars {
		field := strings.TrimSpace(slice(line, v.Start-1, v.Start-1+v.Width))
		rec.strs[i] = ""
		rec.vals[i] = math.NaN()
		if !v.Numeric {
			rec.strs[i] = field
			continue
		}
		if field == "" {
			continue
		}
		val, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return &SyntaxError{r.fileName, r.lineNum, fmt.Sprintf("bad value %q for %s", field, v.Name)}
		}
		rec.vals[i] = val
	}
	return nil
}

// slice returns line[lo:hi], clipped to the length of line. A short
// line has blank trailing fields.
func slice(line string, lo, hi int) string {
	if lo >= len(line) {
		return ""
	}
	if hi > len(line) {
		hi = len(line)
	}
	return line[lo:hi]
}

// Record returns the record that was just read, or an error if the
// line was malformed.
//
// Parse errors are non-fatal, so the caller can continue to call
// Scan.
//
// The caller should not retain the Record, as it will be overwritten
// by the next call to Scan.
func (r *Reader) Record() (*Record, error) {
	if r.recErr != nil {
		return nil, r.recErr
	}
	return &r.rec, nil
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	if r.err == io.EOF {
		return nil
	}
	return r.err
}

// A Record is one decoded line of a data file.
type Record struct {
	// Line is the 1-based line number of this record.
	Line int

	dict *Dictionary
	vals []float64 // NaN for missing and string fields
	strs []string  // "" for numeric fields
}

// Value returns the value of the numeric field called name. It
// returns NaN if the field is missing or not numeric, and false if
// there is no such field.
func (r *Record) Value(name string) (float64, bool) {
	i, ok := r.dict.Lookup(name)
	if !ok {
		return math.NaN(), false
	}
	return r.vals[i], true
}

// Text returns the value of the string field called name.
func (r *Record) Text(name string) (string, bool) {
	i, ok := r.dict.Lookup(name)
	if !ok || r.dict.Vars[i].Numeric {
		return "", false
	}
	return r.strs[i], true
}
