// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse builds expression trees from the text of a derived
// quantity such as "(x^2 + y^2)^0.5" or "|vel_x| * rho".
package parse // import "github.com/splosh/splosh/parse"

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/splosh/splosh/config"
	"github.com/splosh/splosh/scan"
	"github.com/splosh/splosh/value"
)

// Parser stores the state for the expression parser: the names that
// may appear in an expression.
type Parser struct {
	conf  *config.Config
	known map[string]bool
}

// NewParser returns a parser that accepts the given variable names.
// The configuration controls debugging output and may be nil.
func NewParser(conf *config.Config, known ...string) *Parser {
	p := &Parser{conf: conf}
	p.SetVariables(known...)
	return p
}

// Parse is a convenience wrapper for a one-off parse.
func Parse(text string, known ...string) (value.Expr, error) {
	return NewParser(nil, known...).Parse(text)
}

// SetVariables replaces the set of variable names the parser accepts.
// Empty names are ignored.
func (p *Parser) SetVariables(known ...string) {
	p.known = make(map[string]bool, len(known))
	for _, name := range known {
		if name != "" {
			p.known[name] = true
		}
	}
}

// Variables returns the accepted names in sorted order.
func (p *Parser) Variables() []string {
	names := make([]string, 0, len(p.known))
	for name := range p.known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Parser) debug(flag string) bool {
	return p.conf != nil && p.conf.Debug(flag)
}

// Parse parses the expression. On failure it returns no tree at all.
func (p *Parser) Parse(text string) (e value.Expr, err error) {
	defer value.Recover(&err)
	toks, err := tokens(p, text)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		errorf("empty expression")
	}
	items := nestBars(markBars(nestRound(fromTokens(toks))))
	e = reduce(items)
	if p.debug("parse") {
		fmt.Fprintln(p.conf.Output(), value.Tree(e))
	}
	return e, nil
}

func tokens(p *Parser, text string) ([]scan.Token, error) {
	toks, err := scan.Tokenize(text, p.known)
	if err != nil {
		return nil, err
	}
	if p.debug("tokens") {
		for _, tok := range toks {
			fmt.Fprintf(p.conf.Output(), "%d: %s\n", tok.Offset, tok)
		}
	}
	return toks, nil
}

func errorf(format string, args ...interface{}) {
	panic(value.Errorf(format, args...))
}

// item is an element of a partially built expression: an operator or
// bracket glyph, a bracketed span not yet reduced, or a finished node.
type item struct {
	op      byte       // the glyph, when glyph is set
	glyph   bool       // an operator or bracket
	isGroup bool       // group holds the contents of a bracketed span
	abs     bool       // the span was |...|
	group   []item
	node    value.Expr // finished operand
	off     int        // offset in the input
}

// Internal markers for the two sides of a magnitude.
const (
	openBar  = '{'
	closeBar = '}'
)

func (it item) String() string {
	switch {
	case it.glyph:
		return string(it.op)
	case it.isGroup:
		s := make([]string, len(it.group))
		for i, g := range it.group {
			s[i] = g.String()
		}
		if it.abs {
			return "|" + strings.Join(s, " ") + "|"
		}
		return "[" + strings.Join(s, " ") + "]"
	case it.node != nil:
		return it.node.String()
	}
	return "<nil>"
}

func fromTokens(toks []scan.Token) []item {
	items := make([]item, len(toks))
	for i, tok := range toks {
		switch tok.Type {
		case scan.Number:
			items[i] = item{node: value.Number(tok.Num), off: tok.Offset}
		case scan.Identifier:
			items[i] = item{node: value.Var(tok.Text), off: tok.Offset}
		default:
			if !tok.IsGlyph() {
				errorf("unexpected %s at offset %d", tok, tok.Offset)
			}
			items[i] = item{op: tok.Text[0], glyph: true, off: tok.Offset}
		}
	}
	return items
}

// nestRound cuts balanced (...) spans out of items, innermost first,
// replacing each by a group.
func nestRound(items []item) []item {
	return nest(items, '(', ')', false)
}

// nestBars is nestRound for magnitudes, after markBars has told the two
// sides apart.
func nestBars(items []item) []item {
	return nest(items, openBar, closeBar, true)
}

func nest(items []item, open, close byte, abs bool) []item {
	var (
		out    []item
		stack  [][]item // enclosing levels
		starts []int    // offset of each pending open bracket
	)
	for _, it := range items {
		if it.isGroup {
			it.group = nest(it.group, open, close, abs)
		}
		switch {
		case !it.glyph:
			out = append(out, it)
		case it.op == open:
			stack = append(stack, out)
			starts = append(starts, it.off)
			out = nil
		case it.op == close:
			if len(stack) == 0 {
				errorf("unmatched %s at offset %d", bracketName(close), it.off)
			}
			inner := out
			n := len(stack) - 1
			out = stack[n]
			out = append(out, item{isGroup: true, abs: abs, group: inner, off: starts[n]})
			stack, starts = stack[:n], starts[:n]
		default:
			out = append(out, it)
		}
	}
	if len(stack) > 0 {
		errorf("unmatched %s at offset %d", bracketName(open), starts[len(starts)-1])
	}
	return out
}

func bracketName(c byte) string {
	switch c {
	case openBar, closeBar:
		return "magnitude bar"
	}
	return fmt.Sprintf("%q", c)
}

// markBars rewrites each '|' at this level and below as the opening or
// closing side of a magnitude. A bar opens at the start of a span or
// before an operand; it closes at the end of a span or before an
// operator. Two bars in a row are rejected.
func markBars(items []item) []item {
	out := slices.Clone(items)
	for i := range out {
		it := &out[i]
		if it.isGroup {
			it.group = markBars(it.group)
			continue
		}
		if !it.glyph || it.op != '|' {
			continue
		}
		if i+1 < len(out) && out[i+1].glyph && out[i+1].op == '|' {
			errorf("'||' not allowed at offset %d", it.off)
		}
		switch {
		case i == 0:
			it.op = openBar
		case i == len(out)-1:
			it.op = closeBar
		case out[i+1].glyph:
			it.op = closeBar
		default:
			it.op = openBar
		}
	}
	return out
}

// reduce turns one level of items into a single node, reducing the
// groups it holds first.
func reduce(items []item) value.Expr {
	flat := make([]item, len(items))
	for i, it := range items {
		if it.isGroup {
			if len(it.group) == 0 {
				errorf("empty brackets at offset %d", it.off)
			}
			e := reduce(it.group)
			if it.abs {
				e = &value.UnaryExpr{Op: '|', Right: e}
			}
			it = item{node: e, off: it.off}
		}
		flat[i] = it
	}
	flat = bindBinary(bindUnary(flat))
	if len(flat) != 1 {
		errorf("missing operator at offset %d", flat[1].off)
	}
	return flat[0].node
}

// bindUnary binds signs to the operand that follows them. A sign is
// unary at the start of a level or after *, / or ^. Unary plus is
// dropped.
func bindUnary(items []item) []item {
	out := make([]item, 0, len(items))
	for i := 0; i < len(items); i++ {
		it := items[i]
		if !isSign(it) {
			out = append(out, it)
			continue
		}
		if i == len(items)-1 {
			errorf("cannot end with operator %c", it.op)
		}
		if len(out) > 0 {
			prev := out[len(out)-1]
			if !prev.glyph {
				// Binary; bound later.
				out = append(out, it)
				continue
			}
			if isSign(prev) {
				errorf("too many sequential operators at offset %d", it.off)
			}
		}
		next := items[i+1]
		if next.glyph {
			errorf("too many sequential operators at offset %d", next.off)
		}
		if it.op == '-' {
			next = item{node: &value.UnaryExpr{Op: '-', Right: next.node}, off: it.off}
		}
		out = append(out, next)
		i++
	}
	return out
}

func isSign(it item) bool {
	return it.glyph && (it.op == '+' || it.op == '-')
}

// precedence lists the binary operators from tightest to loosest.
var precedence = [][]byte{
	{'^'},
	{'*', '/'},
	{'+', '-'},
}

// bindBinary binds binary operators to their neighbors, tier by tier,
// left to right within a tier.
func bindBinary(items []item) []item {
	out := slices.Clone(items)
	for _, tier := range precedence {
		for i := 0; i < len(out); i++ {
			op := out[i].op
			if !out[i].glyph || !slices.Contains(tier, op) {
				continue
			}
			if i == 0 || i == len(out)-1 {
				errorf("cannot begin or end with binary operator %c", op)
			}
			left, right := out[i-1], out[i+1]
			if left.glyph || right.glyph {
				errorf("too many sequential operators at offset %d", out[i].off)
			}
			node := item{node: &value.BinaryExpr{Op: op, Left: left.node, Right: right.node}, off: left.off}
			out = slices.Replace(out, i-1, i+2, node)
			i--
		}
	}
	return out
}
