// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package units

import (
	"github.com/splosh/splosh/exec"
	"github.com/splosh/splosh/value"
)

// Propagation is the operator table that computes the unit of an
// expression from the units of its variables. Negation and magnitude
// leave a unit unchanged. Addition and subtraction need operands of the
// same unit; multiplication, division and powers combine them.
var Propagation exec.Ops[Unit] = propagation{}

type propagation struct{}

func (propagation) Literal(x float64) Unit {
	return Number(x)
}

func (propagation) Unary(op byte, x Unit) (Unit, error) {
	if !x.Bare {
		return x, nil
	}
	// A bare number may yet be an exponent, so keep its value right.
	switch op {
	case '-':
		return Number(-x.Scale), nil
	case '|':
		if x.Scale < 0 {
			return Number(-x.Scale), nil
		}
		return x, nil
	}
	return x, value.Errorf("unary operator %c not implemented", op)
}

func (propagation) Binary(op byte, x, y Unit) (Unit, error) {
	switch op {
	case '+', '-':
		return addSubtract(op, x, y)
	case '*':
		return x.Mul(y), nil
	case '/':
		return x.Div(y), nil
	case '^':
		if !y.Bare {
			return x, value.Errorf("invalid unit operation: exponent %s is not a number", y)
		}
		return x.Pow(y.Scale), nil
	}
	return x, value.Errorf("binary operator %c not implemented", op)
}

func addSubtract(op byte, x, y Unit) (Unit, error) {
	switch {
	case x.Bare && y.Bare:
		if op == '+' {
			return Number(x.Scale + y.Scale), nil
		}
		return Number(x.Scale - y.Scale), nil
	case x.Bare:
		return y, nil
	case y.Bare:
		return x, nil
	case !x.Same(y):
		return x, value.Errorf("invalid unit operation: add/subtract %s and %s", x, y)
	}
	return x, nil
}
