// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"math"

	"github.com/splosh/splosh/value"
)

// Array is a column of samples of one quantity, one per cell or
// particle. An Array of length one is a scalar and is broadcast against
// longer arrays.
type Array []float64

// Scalar returns a one-element Array.
func Scalar(x float64) Array {
	return Array{x}
}

// At returns element i, or the scalar value if a has length one.
func (a Array) At(i int) float64 {
	if len(a) == 1 {
		return a[0]
	}
	return a[i]
}

// Arithmetic is the operator table for ordinary arithmetic on arrays:
// '|' is absolute value and '^' is math.Pow, elementwise.
var Arithmetic Ops[Array] = arithmetic{}

type arithmetic struct{}

func (arithmetic) Literal(x float64) Array {
	return Scalar(x)
}

var unaryFuncs = map[byte]func(float64) float64{
	'-': func(x float64) float64 { return -x },
	'|': math.Abs,
}

var binaryFuncs = map[byte]func(float64, float64) float64{
	'+': func(x, y float64) float64 { return x + y },
	'-': func(x, y float64) float64 { return x - y },
	'*': func(x, y float64) float64 { return x * y },
	'/': func(x, y float64) float64 { return x / y },
	'^': math.Pow,
}

func (arithmetic) Unary(op byte, x Array) (Array, error) {
	fn, ok := unaryFuncs[op]
	if !ok {
		return nil, value.Errorf("unary operator %c not implemented", op)
	}
	z := make(Array, len(x))
	for i, v := range x {
		z[i] = fn(v)
	}
	return z, nil
}

func (arithmetic) Binary(op byte, x, y Array) (Array, error) {
	fn, ok := binaryFuncs[op]
	if !ok {
		return nil, value.Errorf("binary operator %c not implemented", op)
	}
	n := len(x)
	switch {
	case len(x) == len(y):
	case len(x) == 1:
		n = len(y)
	case len(y) == 1:
	default:
		return nil, value.Errorf("array length mismatch: %d %c %d", len(x), op, len(y))
	}
	z := make(Array, n)
	for i := range z {
		z[i] = fn(x.At(i), y.At(i))
	}
	return z, nil
}
