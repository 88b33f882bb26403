// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field describes the data fields of a simulation snapshot and
// the named scalar components that expressions refer to.
package field // import "github.com/splosh/splosh/field"

import (
	"strconv"
	"strings"

	"github.com/splosh/splosh/units"
)

// Flags mark fields that need special handling.
type Flags uint8

const (
	Vector   Flags = 1 << iota // width equals the number of dimensions
	Position                   // the virtual cell-position field
	Extra                      // a derived quantity, not in the data
)

var flagNames = []string{"vector", "position", "extra"}

func (f Flags) String() string {
	var s []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			s = append(s, name)
		}
	}
	return "[" + strings.Join(s, " ") + "]"
}

// Field is one data field. A field of width greater than one holds that
// many components per sample.
type Field struct {
	Name  string
	Width int
	Flags Flags
	Unit  units.Unit // one code unit in SI
}

// PositionName is the name of the virtual position field.
const PositionName = "position"

var axes = []string{"x", "y", "z"}

// ValidName reports whether name can be used as a field name without
// colliding with the component titles built from other fields: it may
// not be an axis name or "position", and may not end in an underscore
// followed by an axis name or digits.
func ValidName(name string) bool {
	if name == PositionName || isAxis(name) {
		return false
	}
	if i := strings.LastIndexByte(name, '_'); i >= 0 {
		last := name[i+1:]
		if isAxis(last) || isDigits(last) {
			return false
		}
	}
	return true
}

func isAxis(s string) bool {
	for _, a := range axes {
		if s == a {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

// Mapping names one scalar component of a field. Expressions refer to
// components by Title.
type Mapping struct {
	Title string
	Field *Field
	Index int
}

// mappings returns the component titles of f: x, y, z for position,
// name_x... for vectors, name_0... for other wide fields and the plain
// name for scalars.
func mappings(f *Field, ndim int) []Mapping {
	if f.Width == 1 && f.Flags&Position == 0 {
		return []Mapping{{Title: f.Name, Field: f}}
	}
	m := make([]Mapping, f.Width)
	for i := range m {
		var title string
		switch {
		case f.Flags&Position != 0:
			title = axes[i]
		case f.Width == ndim:
			title = f.Name + "_" + axes[i]
		default:
			title = f.Name + "_" + strconv.Itoa(i)
		}
		m[i] = Mapping{Title: title, Field: f, Index: i}
	}
	return m
}
