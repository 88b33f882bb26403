// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is a node of a parsed expression. The only implementations are
// *Leaf, *UnaryExpr and *BinaryExpr; a type switch over those three is
// exhaustive.
type Expr interface {
	String() string

	expr()
}

// Leaf is a terminal of the tree: a numeric literal or a variable
// name. Operands of operators are always Exprs, so a leaf subtree is
// always a *Leaf. The walker hands out the *Leaf itself so a caller may
// rewrite its name in place.
type Leaf struct {
	num    float64
	name   string
	isName bool
}

// Number returns a literal leaf.
func Number(x float64) *Leaf {
	return &Leaf{num: x}
}

// Var returns a variable leaf.
func Var(name string) *Leaf {
	return &Leaf{name: name, isName: true}
}

// IsVar reports whether the leaf names a variable.
func (l *Leaf) IsVar() bool {
	return l.isName
}

// Name returns the variable name, or "" for a literal.
func (l *Leaf) Name() string {
	return l.name
}

// Float returns the literal value, or 0 for a variable.
func (l *Leaf) Float() float64 {
	return l.num
}

// SetName replaces the variable the leaf refers to.
// It panics if the leaf is a literal.
func (l *Leaf) SetName(name string) {
	if !l.isName {
		panic(Errorf("internal error: renaming literal leaf %s", l))
	}
	l.name = name
}

func (l *Leaf) String() string {
	if l.isName {
		return l.name
	}
	return strconv.FormatFloat(l.num, 'g', -1, 64)
}

func (*Leaf) expr() {}

// UnaryExpr is negation ('-') or magnitude ('|').
type UnaryExpr struct {
	Op    byte
	Right Expr
}

func (u *UnaryExpr) String() string {
	if u.Op == '|' {
		return fmt.Sprintf("|%s|", u.Right)
	}
	return fmt.Sprintf("(%c%s)", u.Op, u.Right)
}

func (*UnaryExpr) expr() {}

// BinaryExpr is one of + - * / ^ applied to two operands.
type BinaryExpr struct {
	Op    byte
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s%c%s)", b.Left, b.Op, b.Right)
}

func (*BinaryExpr) expr() {}

// IsUnary reports whether op is a unary operator.
func IsUnary(op byte) bool {
	return op == '-' || op == '|'
}

// IsBinary reports whether op is a binary operator.
func IsBinary(op byte) bool {
	switch op {
	case '+', '-', '*', '/', '^':
		return true
	}
	return false
}

// Tree formats an expression in an unambiguous form for debugging.
func Tree(e Expr) string {
	var b strings.Builder
	tree(&b, e)
	return b.String()
}

func tree(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *Leaf:
		if e.isName {
			fmt.Fprintf(b, "<var %s>", e.name)
		} else {
			fmt.Fprintf(b, "<float %s>", e)
		}
	case *UnaryExpr:
		fmt.Fprintf(b, "(%c ", e.Op)
		tree(b, e.Right)
		b.WriteByte(')')
	case *BinaryExpr:
		b.WriteByte('(')
		tree(b, e.Left)
		fmt.Fprintf(b, " %c ", e.Op)
		tree(b, e.Right)
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "<unknown %T>", e)
	}
}
