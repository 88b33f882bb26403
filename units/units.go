// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package units represents physical units and propagates them through
// expressions, so the unit of a derived quantity follows from the units
// of the fields it is built from.
package units // import "github.com/splosh/splosh/units"

import (
	"math"
	"strconv"
	"strings"

	"github.com/splosh/splosh/value"
)

// Dimensions holds the exponents of the SI base units, in the order
// kg, m, s, K, A, mol.
type Dimensions [6]float64

var symbols = [6]string{"kg", "m", "s", "K", "A", "mol"}

// Unit is a physical unit: Scale SI units of dimension Dim. A bare unit
// is a plain number appearing in an expression; its Scale is the number
// itself.
type Unit struct {
	Dim   Dimensions
	Scale float64
	Bare  bool
}

var (
	Dimensionless = Unit{Scale: 1}
	Kilogram      = Unit{Dim: Dimensions{1, 0, 0, 0, 0, 0}, Scale: 1}
	Metre         = Unit{Dim: Dimensions{0, 1, 0, 0, 0, 0}, Scale: 1}
	Second        = Unit{Dim: Dimensions{0, 0, 1, 0, 0, 0}, Scale: 1}
	Kelvin        = Unit{Dim: Dimensions{0, 0, 0, 1, 0, 0}, Scale: 1}
	Ampere        = Unit{Dim: Dimensions{0, 0, 0, 0, 1, 0}, Scale: 1}
	Mole          = Unit{Dim: Dimensions{0, 0, 0, 0, 0, 1}, Scale: 1}
)

// named lists the unit symbols Parse accepts.
var named = map[string]Unit{
	"kg":  Kilogram,
	"g":   Kilogram.Times(1e-3),
	"m":   Metre,
	"cm":  Metre.Times(1e-2),
	"km":  Metre.Times(1e3),
	"s":   Second,
	"K":   Kelvin,
	"A":   Ampere,
	"mol": Mole,
}

// Number returns the bare unit for the number x.
func Number(x float64) Unit {
	return Unit{Scale: x, Bare: true}
}

// Times returns u with its scale multiplied by x.
func (u Unit) Times(x float64) Unit {
	u.Scale *= x
	return u
}

// unit returns u as a unit, making a bare number dimensionless.
func (u Unit) unit() Unit {
	if u.Bare {
		return Dimensionless
	}
	return u
}

// Mul returns the product of two units. Bare numbers carry no unit, so
// the product of a bare number and a unit is the unit.
func (u Unit) Mul(v Unit) Unit {
	switch {
	case u.Bare && v.Bare:
		return Number(u.Scale * v.Scale)
	case u.Bare:
		return v
	case v.Bare:
		return u
	}
	for i := range u.Dim {
		u.Dim[i] += v.Dim[i]
	}
	u.Scale *= v.Scale
	return u
}

// Div returns the quotient of two units. A bare number divided by a
// unit is the reciprocal of the unit.
func (u Unit) Div(v Unit) Unit {
	switch {
	case u.Bare && v.Bare:
		return Number(u.Scale / v.Scale)
	case v.Bare:
		return u
	}
	u = u.unit()
	for i := range u.Dim {
		u.Dim[i] -= v.Dim[i]
	}
	u.Scale /= v.Scale
	return u
}

// Pow returns u raised to the power x.
func (u Unit) Pow(x float64) Unit {
	if u.Bare {
		return Number(math.Pow(u.Scale, x))
	}
	for i := range u.Dim {
		u.Dim[i] *= x
	}
	u.Scale = math.Pow(u.Scale, x)
	return u
}

// Same reports whether u and v have the same dimensions and, to
// rounding error, the same scale. Bare numbers are the same only as
// each other.
func (u Unit) Same(v Unit) bool {
	if u.Bare || v.Bare {
		return u.Bare && v.Bare
	}
	return u.Dim == v.Dim && closeEnough(u.Scale, v.Scale)
}

func closeEnough(x, y float64) bool {
	if x == y {
		return true
	}
	return math.Abs(x-y) <= 1e-12*math.Max(math.Abs(x), math.Abs(y))
}

// String renders the unit as a scale followed by SI symbols, as in
// "1000 kg m^-3". Parse reads this form back.
func (u Unit) String() string {
	s := strconv.FormatFloat(u.Scale, 'g', -1, 64)
	if u.Bare {
		return s
	}
	var b strings.Builder
	b.WriteString(s)
	for i, exp := range u.Dim {
		if exp == 0 {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(symbols[i])
		if exp != 1 {
			b.WriteByte('^')
			b.WriteString(strconv.FormatFloat(exp, 'g', -1, 64))
		}
	}
	return b.String()
}

// Parse reads a unit written as an optional leading scale followed by
// space-separated symbols with optional exponents: "kg m^-3",
// "1e-3 kg", "cm s^-1". The empty string is Dimensionless.
func Parse(s string) (Unit, error) {
	u := Dimensionless
	for i, word := range strings.Fields(s) {
		if x, err := strconv.ParseFloat(word, 64); err == nil {
			if i != 0 {
				return Unit{}, value.Errorf("unit %q: scale must come first", s)
			}
			u = u.Times(x)
			continue
		}
		sym, exp := word, 1.0
		if i := strings.IndexByte(word, '^'); i >= 0 {
			x, err := strconv.ParseFloat(word[i+1:], 64)
			if err != nil {
				return Unit{}, value.Errorf("unit %q: bad exponent in %s", s, word)
			}
			sym, exp = word[:i], x
		}
		v, ok := named[sym]
		if !ok {
			return Unit{}, value.Errorf("unit %q: unknown symbol %s", s, sym)
		}
		u = u.Mul(v.Pow(exp))
	}
	return u, nil
}
