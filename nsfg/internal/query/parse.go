// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query implements a small query language for selecting
// records by the numeric values of their fields.
//
// Syntax:
//
//	query = expr .
//	expr  = conj {"OR" conj} .
//	conj  = unary {["AND"] unary} .
//	unary = "-" unary | "(" expr ")" | "*" | cond .
//	cond  = field ":" (pred | "(" pred {pred} ")") .
//	pred  = number | number ".." number | ("<" | "<=" | ">" | ">=") number .
//	field = word | "\"" [^"]* "\"" .
//
// Juxtaposed terms are joined by AND, which binds tighter than OR.
// A parenthesized list of predicates matches any of them. Values are
// compared numerically, so "birthord:1" and "birthord:1.0" are the
// same query; "lo..hi" is an inclusive range. The number "nan"
// matches a missing field and no ordered comparison matches one.
//
// For example, "outcome:1 birthord:>1" selects live births other
// than first births, and "agepreg:(<20 >=35)" selects young and old
// mothers.
package query

import (
	"fmt"
	"strconv"
	"unicode"
)

// Parse parses a query string into a Query tree.
func Parse(q string) (Query, error) {
	toks, err := lex(q)
	if err != nil {
		return nil, err
	}
	p := &parser{q: q, toks: toks}
	if p.peek().kind == tokEOF {
		return nil, p.errorf(p.peek(), "nothing to match")
	}
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %s", strconv.Quote(tok.text))
	}
	return x, nil
}

// SyntaxError is an error produced by parsing a malformed query
// string.
type SyntaxError struct {
	Query string // The query string
	Off   int    // Byte offset of the error in Query
	Msg   string // Error message
}

func (e *SyntaxError) Error() string {
	// Translate byte offset to a rune offset.
	pos := 0
	for i, r := range e.Query {
		if i >= e.Off {
			break
		}
		if unicode.IsGraphic(r) {
			pos++
		}
	}
	return fmt.Sprintf("syntax error: %s\n\t%s\n\t%*s^", e.Msg, e.Query, pos, "")
}

type parser struct {
	q    string
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(tok token, format string, args ...interface{}) error {
	return &SyntaxError{p.q, tok.off, fmt.Sprintf(format, args...)}
}

func (p *parser) expr() (Query, error) {
	x, err := p.conj()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokOr {
		return x, nil
	}
	or := Or{x}
	for p.peek().kind == tokOr {
		p.next()
		if x, err = p.conj(); err != nil {
			return nil, err
		}
		or = append(or, x)
	}
	return or, nil
}

// startsUnary reports whether a unary term can begin with tok.
func startsUnary(tok token) bool {
	switch tok.kind {
	case tokNot, tokLParen, tokAll, tokWord, tokNumber:
		return true
	}
	return false
}

func (p *parser) conj() (Query, error) {
	var and And
	for {
		tok := p.peek()
		if tok.kind == tokAnd {
			if len(and) == 0 {
				return nil, p.errorf(tok, "nothing to match")
			}
			p.next()
			if tok = p.peek(); !startsUnary(tok) {
				return nil, p.errorf(tok, "nothing to match")
			}
		} else if !startsUnary(tok) {
			break
		}
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		and = append(and, x)
	}
	switch len(and) {
	case 0:
		return nil, p.errorf(p.peek(), "nothing to match")
	case 1:
		return and[0], nil
	}
	return and, nil
}

func (p *parser) unary() (Query, error) {
	tok := p.next()
	switch tok.kind {
	case tokNot:
		if !startsUnary(p.peek()) {
			return nil, p.errorf(p.peek(), "nothing to negate")
		}
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Not{x}, nil
	case tokLParen:
		if p.peek().kind == tokRParen {
			return nil, p.errorf(p.peek(), "nothing to match")
		}
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, p.errorf(p.peek(), "missing \")\"")
		}
		p.next()
		return x, nil
	case tokAll:
		return And{}, nil
	case tokWord:
		return p.cond(tok)
	}
	return nil, p.errorf(tok, "expected field name")
}

func (p *parser) cond(field token) (Query, error) {
	if p.peek().kind != tokColon {
		return nil, p.errorf(field, "expected field:value")
	}
	p.next()
	if p.peek().kind != tokLParen {
		return p.pred(field)
	}

	open := p.next()
	var or Or
	for p.peek().kind != tokRParen {
		if p.peek().kind == tokEOF {
			return nil, p.errorf(p.peek(), "missing \")\"")
		}
		c, err := p.pred(field)
		if err != nil {
			return nil, err
		}
		or = append(or, c)
	}
	if len(or) == 0 {
		return nil, p.errorf(open, "nothing to match")
	}
	p.next()
	if len(or) == 1 {
		return or[0], nil
	}
	return or, nil
}

var cmpOps = map[tokKind]Cmp{
	tokLT: Less,
	tokLE: LessEqual,
	tokGT: Greater,
	tokGE: GreaterEqual,
}

func (p *parser) pred(field token) (*Cond, error) {
	c := &Cond{Off: field.off, Key: field.text}
	if cmp, ok := cmpOps[p.peek().kind]; ok {
		p.next()
		c.Cmp = cmp
	}
	v, err := p.number()
	if err != nil {
		return nil, err
	}
	c.Val = v
	if c.Cmp == Equal && p.peek().kind == tokRange {
		p.next()
		if c.Hi, err = p.number(); err != nil {
			return nil, err
		}
		c.Cmp = Between
	}
	return c, nil
}

func (p *parser) number() (float64, error) {
	tok := p.peek()
	switch tok.kind {
	case tokNumber:
		p.next()
		return tok.num, nil
	case tokWord:
		return 0, p.errorf(tok, "invalid number %s", strconv.Quote(tok.text))
	}
	return 0, p.errorf(tok, "expected value")
}
