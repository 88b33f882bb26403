// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import "iter"

// Walk returns the leaves of e, depth first and left to right.
// Every range over the result walks the tree afresh.
func Walk(e Expr) iter.Seq[*Leaf] {
	return func(yield func(*Leaf) bool) {
		walk(e, yield)
	}
}

// walk reports whether the iteration should continue.
func walk(e Expr, yield func(*Leaf) bool) bool {
	switch e := e.(type) {
	case *Leaf:
		return yield(e)
	case *UnaryExpr:
		return walk(e.Right, yield)
	case *BinaryExpr:
		return walk(e.Left, yield) && walk(e.Right, yield)
	}
	panic(Errorf("internal error: walk of %T", e))
}

// Names returns the variable names in e in order of appearance,
// duplicates included.
func Names(e Expr) []string {
	var names []string
	for leaf := range Walk(e) {
		if leaf.IsVar() {
			names = append(names, leaf.Name())
		}
	}
	return names
}
