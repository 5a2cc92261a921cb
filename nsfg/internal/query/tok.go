// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokKind int

const (
	tokEOF    tokKind = iota
	tokWord           // field name or quoted string
	tokNumber         // numeric literal, including nan
	tokLParen
	tokRParen
	tokColon
	tokNot
	tokAll
	tokAnd
	tokOr
	tokRange // ..
	tokLT
	tokLE
	tokGT
	tokGE
)

// A token is one lexical element of a query. Numbers are decoded
// while lexing so the parser only sees typed values.
type token struct {
	kind tokKind
	off  int // Byte offset in the query
	text string
	num  float64
}

var punct = []struct {
	text string
	kind tokKind
}{
	// Longest first.
	{"..", tokRange},
	{"<=", tokLE},
	{">=", tokGE},
	{"<", tokLT},
	{">", tokGT},
	{"(", tokLParen},
	{")", tokRParen},
	{":", tokColon},
	{"*", tokAll},
}

// lex splits q into tokens, ending with a tokEOF token that carries
// the length of q as its offset.
func lex(q string) ([]token, error) {
	var toks []token
	pos := 0
	for pos < len(q) {
		r, size := utf8.DecodeRuneInString(q[pos:])
		if unicode.IsSpace(r) {
			pos += size
			continue
		}
		rest := q[pos:]

		if tok, ok := lexPunct(rest); ok {
			tok.off = pos
			toks = append(toks, tok)
			pos += len(tok.text)
			continue
		}
		// A "-" starting a number is a sign, otherwise negation.
		if rest[0] == '-' && !startsNumber(rest[1:]) {
			toks = append(toks, token{kind: tokNot, off: pos, text: "-"})
			pos++
			continue
		}
		if rest[0] == '"' {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				return nil, &SyntaxError{q, pos, "missing end quote"}
			}
			toks = append(toks, token{kind: tokWord, off: pos, text: rest[1 : end+1]})
			pos += end + 2
			continue
		}

		word := rest[:wordLen(rest)]
		tok := token{kind: tokWord, off: pos, text: word}
		switch word {
		case "AND":
			tok.kind = tokAnd
		case "OR":
			tok.kind = tokOr
		default:
			if v, err := strconv.ParseFloat(word, 64); err == nil {
				tok.kind, tok.num = tokNumber, v
			}
		}
		toks = append(toks, tok)
		pos += len(word)
	}
	return append(toks, token{kind: tokEOF, off: len(q)}), nil
}

func lexPunct(s string) (token, bool) {
	for _, p := range punct {
		if strings.HasPrefix(s, p.text) {
			return token{kind: p.kind, text: p.text}, true
		}
	}
	return token{}, false
}

func startsNumber(s string) bool {
	return s != "" && (s[0] == '.' || '0' <= s[0] && s[0] <= '9')
}

// wordLen returns the length of the unquoted word at the start of s.
// A word ends at white space, a quote, a punctuation token, or a
// range operator, so "1..3" is three tokens.
func wordLen(s string) int {
	for i, r := range s {
		if i == 0 {
			continue
		}
		if unicode.IsSpace(r) || r == '"' {
			return i
		}
		if _, ok := lexPunct(s[i:]); ok && r != '*' {
			return i
		}
	}
	return len(s)
}
