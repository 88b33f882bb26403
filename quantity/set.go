// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quantity

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/splosh/splosh/config"
	"github.com/splosh/splosh/field"
	"github.com/splosh/splosh/parse"
	"github.com/splosh/splosh/units"
	"github.com/splosh/splosh/value"
)

// Set holds the component titles of a catalogue and the quantities
// defined over them. Quantities may refer only to data components, not
// to each other.
type Set struct {
	conf      *config.Config
	catalogue *field.Catalogue
	mappings  []field.Mapping
	parser    *parse.Parser
	extras    []*Quantity
}

// NewSet returns a Set with no quantities for the catalogue. The
// configuration may be nil.
func NewSet(conf *config.Config, c *field.Catalogue) *Set {
	s := &Set{
		conf:      conf,
		catalogue: c,
		mappings:  c.Mappings(),
	}
	s.parser = parse.NewParser(conf, s.Titles()...)
	return s
}

// Titles returns the component titles an expression may use.
func (s *Set) Titles() []string {
	titles := make([]string, len(s.mappings))
	for i, m := range s.mappings {
		titles[i] = m.Title
	}
	return titles
}

// Mapping returns the data component with the given title.
func (s *Set) Mapping(title string) (field.Mapping, bool) {
	for _, m := range s.mappings {
		if m.Title == title {
			return m, true
		}
	}
	return field.Mapping{}, false
}

// Lookup returns the named quantity, or nil.
func (s *Set) Lookup(name string) *Quantity {
	for _, q := range s.extras {
		if q.Name == name {
			return q
		}
	}
	return nil
}

// Extras returns the defined quantities in order of definition.
func (s *Set) Extras() []*Quantity {
	return s.extras
}

// Compile parses expression and rewrites each variable to the Key of
// the component it names, giving a quantity that is not added to the
// set.
func (s *Set) Compile(name, expression string) (*Quantity, error) {
	e, err := s.parser.Parse(expression)
	if err != nil {
		return nil, err
	}
	for leaf := range value.Walk(e) {
		if !leaf.IsVar() {
			continue
		}
		m, ok := s.Mapping(leaf.Name())
		if !ok {
			return nil, value.Errorf("unknown variable %s", leaf.Name())
		}
		leaf.SetName(Key{Name: m.Field.Name, Index: m.Index, Width: m.Field.Width}.String())
	}
	keys, err := FieldKeys(e)
	if err != nil {
		return nil, err
	}
	u, err := unitOf(e, keys, s.fieldUnit)
	if err != nil {
		return nil, err
	}
	q := &Quantity{
		Name:       name,
		Expression: expression,
		expr:       e,
		keys:       keys,
		field:      &field.Field{Name: name, Width: 1, Flags: field.Extra, Unit: u},
	}
	if s.conf != nil && s.conf.Debug("units") {
		fmt.Fprintf(s.conf.Output(), "%s: %s\n", name, u)
	}
	return q, nil
}

func (s *Set) fieldUnit(name string) units.Unit {
	if f := s.catalogue.Field(name); f != nil {
		return f.Unit
	}
	return units.Dimensionless
}

// Add defines, or redefines, the named quantity. A data component
// cannot be redefined.
func (s *Set) Add(name, expression string) (*Quantity, error) {
	name = strings.TrimSpace(name)
	expression = strings.TrimSpace(expression)
	if name == "" {
		return nil, errors.New("quantity has no name")
	}
	if _, ok := s.Mapping(name); ok {
		return nil, errors.Errorf("cannot edit datafile quantity %s", name)
	}
	q, err := s.Compile(name, expression)
	if err != nil {
		return nil, errors.Wrapf(err, "quantity %s", name)
	}
	for i, old := range s.extras {
		if old.Name == name {
			s.extras[i] = q
			slog.Info("redefined quantity", "name", name, "expression", expression, "unit", q.Unit().String())
			return q, nil
		}
	}
	s.extras = append(s.extras, q)
	slog.Info("defined quantity", "name", name, "expression", expression, "unit", q.Unit().String())
	return q, nil
}

// Define adds a quantity written as "name = expression".
func (s *Set) Define(line string) (*Quantity, error) {
	if strings.Count(line, "=") != 1 {
		return nil, errors.New("use one equals sign")
	}
	name, expression, _ := strings.Cut(line, "=")
	return s.Add(name, expression)
}

// AddDefaults defines the quantities recorded in a defaults file.
// Quantities that fail to compile are logged and skipped.
func (s *Set) AddDefaults(extras []config.Extra) int {
	n := 0
	for _, x := range extras {
		if _, err := s.Add(x.Name, x.Expression); err != nil {
			slog.Warn("skipping extra quantity", "name", x.Name, "error", err)
			continue
		}
		n++
	}
	return n
}

// Remove deletes the named quantity.
func (s *Set) Remove(name string) error {
	if _, ok := s.Mapping(name); ok {
		return errors.Errorf("cannot remove datafile quantity %s", name)
	}
	for i, q := range s.extras {
		if q.Name == name {
			s.extras = append(s.extras[:i], s.extras[i+1:]...)
			slog.Debug("removed quantity", "name", name)
			return nil
		}
	}
	return errors.Errorf("unknown quantity %s", name)
}

// Clear deletes every quantity.
func (s *Set) Clear() {
	s.extras = nil
	slog.Debug("cleared quantities")
}
