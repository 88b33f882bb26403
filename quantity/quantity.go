// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package quantity manages derived quantities: named expressions over
// the components of a snapshot's fields, such as
//
//	speed = (vel_x^2 + vel_y^2 + vel_z^2)^0.5
//
// A defined quantity knows its physical unit and can compute its
// samples from any field.Source.
package quantity // import "github.com/splosh/splosh/quantity"

import (
	"github.com/pkg/errors"

	"github.com/splosh/splosh/exec"
	"github.com/splosh/splosh/field"
	"github.com/splosh/splosh/units"
	"github.com/splosh/splosh/value"
)

// Quantity is a compiled derived quantity. Its expression refers to
// field components by Key.
type Quantity struct {
	Name       string
	Expression string // as written
	expr       value.Expr
	keys       []Key
	field      *field.Field
}

// Expr returns the compiled expression; its variables are Key strings.
func (q *Quantity) Expr() value.Expr {
	return q.expr
}

// Keys returns the field components the quantity depends on.
func (q *Quantity) Keys() []Key {
	return q.keys
}

// Field returns the derived field describing the quantity.
func (q *Quantity) Field() *field.Field {
	return q.field
}

// Unit returns the SI value of one unit of the quantity, as computed
// from the code units of its fields.
func (q *Quantity) Unit() units.Unit {
	return q.field.Unit
}

// Data returns an evaluator for the samples of the quantity. Its Eval
// method must be called with a field.Source as its first argument.
func (q *Quantity) Data() *exec.Evaluator[exec.Array] {
	table := make(exec.Table[exec.Array], len(q.keys))
	for i, k := range q.keys {
		table[i] = exec.Binding[exec.Array]{
			Key: k.String(),
			Produce: func(args ...any) (exec.Array, error) {
				if len(args) == 0 {
					return nil, errors.Errorf("data for %s needs a source", k.Name)
				}
				src, ok := args[0].(field.Source)
				if !ok {
					return nil, errors.Errorf("data for %s: %T is not a field.Source", k.Name, args[0])
				}
				return src.Component(k.Name, k.Index)
			},
		}
	}
	return exec.New(q.expr, table, exec.Arithmetic)
}

// Eval computes the samples of the quantity from src.
func (q *Quantity) Eval(src field.Source) (exec.Array, error) {
	return q.Data().Eval(src)
}

// unitOf propagates the code units of the fields in e through it.
func unitOf(e value.Expr, keys []Key, fieldUnit func(name string) units.Unit) (units.Unit, error) {
	table := make(exec.Table[units.Unit], len(keys))
	for i, k := range keys {
		table[i] = exec.Binding[units.Unit]{Key: k.String(), Value: fieldUnit(k.Name)}
	}
	u, err := exec.New(e, table, units.Propagation).Eval()
	if err != nil {
		return u, err
	}
	if u.Bare {
		return units.Dimensionless, nil
	}
	return u, nil
}
