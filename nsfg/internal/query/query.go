// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// A Row supplies field values to a Query. Value returns NaN for a
// missing field.
type Row interface {
	Value(key string) float64
}

// Query is a node in the query tree: a *Cond, And, Or, or *Not.
type Query interface {
	isQuery()
	String() string

	// Match reports whether row satisfies the query.
	Match(row Row) bool
}

// Cmp is the comparison a Cond applies to a field value.
type Cmp int

const (
	Equal Cmp = iota
	Less
	LessEqual
	Greater
	GreaterEqual
	Between // Val <= x <= Hi
)

var cmpText = [...]string{
	Equal:        "",
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",
}

// Cond is a leaf of a Query tree that compares one field to a
// constant.
type Cond struct {
	Off int // Byte offset of the field name in the query
	Key string
	Cmp Cmp
	Val float64
	Hi  float64 // Upper bound if Cmp is Between
}

func (c *Cond) isQuery() {}

func (c *Cond) String() string {
	key := quoteKey(c.Key)
	if c.Cmp == Between {
		return key + ":" + formatNum(c.Val) + ".." + formatNum(c.Hi)
	}
	return key + ":" + cmpText[c.Cmp] + formatNum(c.Val)
}

// quoteKey quotes key if it would not lex back as a single word.
func quoteKey(key string) string {
	needsQuote := func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(`"():<>*`, r)
	}
	_, err := strconv.ParseFloat(key, 64)
	if key == "" || err == nil || key == "AND" || key == "OR" || key[0] == '-' ||
		strings.Contains(key, "..") || strings.IndexFunc(key, needsQuote) >= 0 {
		return strconv.Quote(key)
	}
	return key
}

func formatNum(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Match compares row's value of c.Key with c.Val. A missing value
// is equal to nan and fails every ordered comparison.
func (c *Cond) Match(row Row) bool {
	x := row.Value(c.Key)
	switch c.Cmp {
	case Equal:
		if math.IsNaN(c.Val) {
			return math.IsNaN(x)
		}
		return x == c.Val
	case Less:
		return x < c.Val
	case LessEqual:
		return x <= c.Val
	case Greater:
		return x > c.Val
	case GreaterEqual:
		return x >= c.Val
	case Between:
		return c.Val <= x && x <= c.Hi
	}
	return false
}

// And matches rows that match every element. An empty And matches
// every row and prints as "*".
type And []Query

func (And) isQuery() {}

func (q And) String() string {
	if len(q) == 0 {
		return "*"
	}
	return join(q, " AND ")
}

func (q And) Match(row Row) bool {
	for _, x := range q {
		if !x.Match(row) {
			return false
		}
	}
	return true
}

// Or matches rows that match any element.
type Or []Query

func (Or) isQuery() {}

func (q Or) String() string {
	return join(q, " OR ")
}

func (q Or) Match(row Row) bool {
	for _, x := range q {
		if x.Match(row) {
			return true
		}
	}
	return false
}

// Not matches rows that X does not match.
type Not struct {
	X Query
}

func (*Not) isQuery() {}

func (q *Not) String() string {
	return "-" + q.X.String()
}

func (q *Not) Match(row Row) bool {
	return !q.X.Match(row)
}

func join(xs []Query, sep string) string {
	var buf strings.Builder
	buf.WriteByte('(')
	for i, x := range xs {
		if i > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(x.String())
	}
	buf.WriteByte(')')
	return buf.String()
}

// Keys returns the first Cond for each distinct field tested by q,
// in query order.
func Keys(q Query) []*Cond {
	var keys []*Cond
	seen := make(map[string]bool)
	var walk func(q Query)
	walk = func(q Query) {
		switch q := q.(type) {
		case *Cond:
			if !seen[q.Key] {
				seen[q.Key] = true
				keys = append(keys, q)
			}
		case And:
			for _, x := range q {
				walk(x)
			}
		case Or:
			for _, x := range q {
				walk(x)
			}
		case *Not:
			walk(q.X)
		}
	}
	walk(q)
	return keys
}
