// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scan turns the text of a derived-quantity expression into tokens.
package scan // import "github.com/splosh/splosh/scan"

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/splosh/splosh/value"
)

// Token represents a token or text string returned from the scanner.
type Token struct {
	Type   Type    // The type of this item.
	Offset int     // Byte offset of the token in the input.
	Text   string  // The text of this item.
	Num    float64 // The value of a Number.
}

// Type identifies the type of lex items.
type Type int

const (
	EOF        Type = iota // zero value
	Error                  // error occurred; value is text of error
	Operator               // one of + - * / ^
	LeftParen              // '('
	RightParen             // ')'
	Bar                    // '|', either side of a magnitude
	Number                 // floating-point literal
	Identifier             // known variable name
)

var typeName = [...]string{
	EOF:        "EOF",
	Error:      "Error",
	Operator:   "Operator",
	LeftParen:  "LeftParen",
	RightParen: "RightParen",
	Bar:        "Bar",
	Number:     "Number",
	Identifier: "Identifier",
}

func (t Type) String() string {
	if 0 <= t && int(t) < len(typeName) {
		return typeName[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func (i Token) String() string {
	switch {
	case i.Type == EOF:
		return "EOF"
	case i.Type == Error:
		return "error: " + i.Text
	case len(i.Text) > 10:
		return fmt.Sprintf("%s: %.10q...", i.Type, i.Text)
	}
	return fmt.Sprintf("%s: %q", i.Type, i.Text)
}

// IsGlyph reports whether the token is a single-character operator or
// bracket.
func (i Token) IsGlyph() bool {
	switch i.Type {
	case Operator, LeftParen, RightParen, Bar:
		return true
	}
	return false
}

// reserved may not appear in an expression.
const reserved = '!'

const eof = -1

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*Scanner) stateFn

// Scanner holds the state of the scanner.
type Scanner struct {
	input  string          // the expression being scanned
	known  map[string]bool // variables that may appear
	start  int             // start position of this item
	pos    int             // current position in the input
	width  int             // width of last byte read; 0 at end of input
	tokens []Token
	err    *Token
}

// New creates a scanner for one expression. Identifiers must be keys
// of known with a true value.
func New(input string, known map[string]bool) *Scanner {
	return &Scanner{
		input: input,
		known: known,
	}
}

// Tokenize scans the whole expression.
func Tokenize(input string, known map[string]bool) ([]Token, error) {
	return New(input, known).All()
}

// All runs the scanner to the end of the input and returns the tokens,
// or the first error.
func (l *Scanner) All() ([]Token, error) {
	if len(l.input) == 0 {
		return nil, value.Error("empty expression")
	}
	if i := strings.IndexRune(l.input, reserved); i >= 0 {
		return nil, value.Errorf("%q not permitted in expression (offset %d)", reserved, i)
	}
	for state := lexAny; state != nil; {
		state = state(l)
	}
	if l.err != nil {
		return nil, value.Error(l.err.Text)
	}
	return l.tokens, nil
}

// next returns the next byte in the input, or eof.
func (l *Scanner) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	c := l.input[l.pos]
	l.width = 1
	l.pos++
	return rune(c)
}

// peek returns but does not consume the next byte in the input.
func (l *Scanner) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back one byte. Should only be called once per call of next.
func (l *Scanner) backup() {
	l.pos -= l.width
}

// accept consumes the next byte if it's from the valid set.
func (l *Scanner) accept(valid string) bool {
	if r := l.next(); r != eof && strings.ContainsRune(valid, r) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a run of bytes from the valid set and reports how
// many it took.
func (l *Scanner) acceptRun(valid string) int {
	n := 0
	for l.accept(valid) {
		n++
	}
	return n
}

// emit records the pending text as a token of type t.
func (l *Scanner) emit(t Type) {
	l.tokens = append(l.tokens, Token{Type: t, Offset: l.start, Text: l.input[l.start:l.pos]})
	l.start = l.pos
}

// errorf records an error token and stops the scan.
func (l *Scanner) errorf(format string, args ...interface{}) stateFn {
	l.err = &Token{Type: Error, Offset: l.start, Text: fmt.Sprintf(format, args...)}
	return nil
}

// state functions

// lexAny scans non-space items.
func lexAny(l *Scanner) stateFn {
	switch r := l.next(); {
	case r == eof:
		return nil
	case isSpace(r):
		l.start = l.pos
		return lexAny
	case r == '*' && l.peek() == '*':
		// ** is another spelling of ^.
		l.next()
		l.tokens = append(l.tokens, Token{Type: Operator, Offset: l.start, Text: "^"})
		l.start = l.pos
		return lexAny
	case r == '+' || r == '-' || r == '*' || r == '/' || r == '^':
		l.emit(Operator)
		return lexAny
	case r == '(':
		l.emit(LeftParen)
		return lexAny
	case r == ')':
		l.emit(RightParen)
		return lexAny
	case r == '|':
		l.emit(Bar)
		return lexAny
	case r == '.' || isDigit(r):
		l.backup()
		return lexNumber
	case isLetter(r):
		l.backup()
		return lexIdentifier
	default:
		r, _ = utf8.DecodeRuneInString(l.input[l.start:])
		return l.errorf("invalid character %#U at offset %d", r, l.start)
	}
}

// lexNumber scans a decimal literal with an optional exponent.
func lexNumber(l *Scanner) stateFn {
	l.acceptRun(digits + ".")
	if l.accept("eE") {
		l.accept("-")
		if l.acceptRun(digits) == 0 {
			return l.errorf("incorrectly formatted exponent: %s", l.input[l.start:l.pos])
		}
		if l.peek() == '.' {
			l.next()
			return l.errorf("bad number syntax: %s", l.input[l.start:l.pos])
		}
	}
	text := l.input[l.start:l.pos]
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return l.errorf("bad number syntax: %s", text)
	}
	l.tokens = append(l.tokens, Token{Type: Number, Offset: l.start, Text: text, Num: x})
	l.start = l.pos
	return lexAny
}

// lexIdentifier scans a variable name, which must be known.
func lexIdentifier(l *Scanner) stateFn {
	for isLetter(l.peek()) {
		l.next()
	}
	word := l.input[l.start:l.pos]
	if !l.known[word] {
		return l.errorf("unknown variable %s", word)
	}
	l.emit(Identifier)
	return lexAny
}

const digits = "0123456789"

// isSpace reports whether r is a space character.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// isDigit reports whether r is an ASCII digit.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isLetter reports whether r may appear in a variable name.
func isLetter(r rune) bool {
	return r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}
