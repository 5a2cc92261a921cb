// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nsfg

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Dictionary describes the layout of a fixed-width data file. It
// is read from a Stata "infile dictionary".
type Dictionary struct {
	Vars []Var

	index map[string]int
}

// A Var is one column of a fixed-width data file.
type Var struct {
	Name string
	Type string // Stata storage type, such as "byte" or "str12"

	// Start is the 1-based column at which the field begins and
	// Width is the field's width in bytes.
	Start, Width int

	// Numeric is false for string-typed fields.
	Numeric bool

	Desc string
}

// Lookup returns the position of the variable called name in d.Vars.
func (d *Dictionary) Lookup(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

var columnLine = regexp.MustCompile(`^\s*_column\((\d+)\)\s+(\S+)\s+(\S+)\s+%(\d+)(?:\.\d+)?([a-z])\s*(?:"(.*)")?\s*$`)

// ReadDictionary parses a Stata dictionary. fileName is used in
// error messages.
//
// Each variable is declared on its own line:
//
//	_column(13)  byte  pregordr  %2f  "PREGNANCY ORDER (NUMBER)"
//
// The field width comes from the display format.
func ReadDictionary(r io.Reader, fileName string) (*Dictionary, error) {
	d := &Dictionary{index: make(map[string]int)}
	s := bufio.NewScanner(r)
	lineNum := 0
	for s.Scan() {
		lineNum++
		line := strings.TrimSpace(s.Text())
		if line == "" || line == "}" || strings.HasPrefix(line, "infile dictionary") {
			continue
		}
		serr := func(format string, args ...interface{}) error {
			return &SyntaxError{fileName, lineNum, fmt.Sprintf(format, args...)}
		}
		m := columnLine.FindStringSubmatch(line)
		if m == nil {
			return nil, serr("malformed dictionary line %q", line)
		}
		start, err := strconv.Atoi(m[1])
		if err != nil || start < 1 {
			return nil, serr("bad column %q", m[1])
		}
		width, err := strconv.Atoi(m[4])
		if err != nil || width < 1 {
			return nil, serr("bad width in format for %s", m[3])
		}
		v := Var{
			Name:  m[3],
			Type:  m[2],
			Start: start,
			Width: width,
			Desc:  m[6],
		}
		switch {
		case v.Type == "byte" || v.Type == "int" || v.Type == "long" || v.Type == "float" || v.Type == "double":
			v.Numeric = true
		case strings.HasPrefix(v.Type, "str"):
			v.Numeric = false
		default:
			return nil, serr("unknown type %q for %s", v.Type, v.Name)
		}
		if _, ok := d.index[v.Name]; ok {
			return nil, serr("duplicate variable %s", v.Name)
		}
		d.index[v.Name] = len(d.Vars)
		d.Vars = append(d.Vars, v)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", fileName)
	}
	if len(d.Vars) == 0 {
		return nil, &SyntaxError{fileName, lineNum, "no variables in dictionary"}
	}
	return d, nil
}
