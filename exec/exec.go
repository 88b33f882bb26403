// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exec reduces expression trees to values. The same evaluator
// serves any value type: numeric arrays, physical units, or anything
// else with an operator table.
package exec // import "github.com/splosh/splosh/exec"

import (
	"io"

	"github.com/splosh/splosh/value"
)

// Ops is an operator table: it says what the literals and operators of
// an expression mean for values of type T.
type Ops[T any] interface {
	// Literal converts a number written in the expression.
	Literal(x float64) T
	// Unary applies '-' or '|'.
	Unary(op byte, x T) (T, error)
	// Binary applies one of + - * / ^.
	Binary(op byte, x, y T) (T, error)
}

// Binding associates a variable key with a value. If Produce is set it
// is called, with the arguments given to Eval, instead of using Value.
type Binding[T any] struct {
	Key     string
	Value   T
	Produce func(args ...any) (T, error)
}

// Table is the substitution table for an evaluation. The first binding
// with a matching key wins.
type Table[T any] []Binding[T]

// Lookup returns the binding for key.
func (t Table[T]) Lookup(key string) (Binding[T], bool) {
	for _, b := range t {
		if b.Key == key {
			return b, true
		}
	}
	return Binding[T]{}, false
}

// Keys returns the keys in table order.
func (t Table[T]) Keys() []string {
	keys := make([]string, len(t))
	for i, b := range t {
		keys[i] = b.Key
	}
	return keys
}

// Evaluator is an expression bound to a table and an operator set.
// It holds no state between calls to Eval.
type Evaluator[T any] struct {
	expr  value.Expr
	table Table[T]
	ops   Ops[T]
	trace io.Writer
}

// New returns an evaluator for e.
func New[T any](e value.Expr, table Table[T], ops Ops[T]) *Evaluator[T] {
	return &Evaluator[T]{
		expr:  e,
		table: table,
		ops:   ops,
	}
}

// Expr returns the expression being evaluated.
func (ev *Evaluator[T]) Expr() value.Expr {
	return ev.expr
}

// SetTrace makes Eval print each node and its value to w. A nil w
// turns tracing off.
func (ev *Evaluator[T]) SetTrace(w io.Writer) {
	ev.trace = w
}

// Eval reduces the expression. The arguments are passed on to every
// producer in the table.
func (ev *Evaluator[T]) Eval(args ...any) (T, error) {
	return ev.eval(ev.expr, args, 0)
}

func (ev *Evaluator[T]) eval(e value.Expr, args []any, depth int) (result T, err error) {
	if ev.trace != nil {
		defer func() {
			ev.traceNode(e, depth, result, err)
		}()
	}
	switch e := e.(type) {
	case *value.Leaf:
		return ev.leaf(e, args)
	case *value.UnaryExpr:
		if !value.IsUnary(e.Op) {
			return result, value.Errorf("invalid unary operator %q", e.Op)
		}
		x, err := ev.eval(e.Right, args, depth+1)
		if err != nil {
			return x, err
		}
		return ev.ops.Unary(e.Op, x)
	case *value.BinaryExpr:
		if !value.IsBinary(e.Op) {
			return result, value.Errorf("invalid binary operator %q", e.Op)
		}
		x, err := ev.eval(e.Left, args, depth+1)
		if err != nil {
			return x, err
		}
		y, err := ev.eval(e.Right, args, depth+1)
		if err != nil {
			return y, err
		}
		return ev.ops.Binary(e.Op, x, y)
	}
	return result, value.Errorf("unexpected expression node %T", e)
}

func (ev *Evaluator[T]) leaf(l *value.Leaf, args []any) (T, error) {
	if !l.IsVar() {
		return ev.ops.Literal(l.Float()), nil
	}
	b, ok := ev.table.Lookup(l.Name())
	if !ok {
		var zero T
		return zero, value.Errorf("value not found: %s", l.Name())
	}
	if b.Produce != nil {
		return b.Produce(args...)
	}
	return b.Value, nil
}
