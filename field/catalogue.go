// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/splosh/splosh/units"
)

// Catalogue lists the fields of a snapshot and the code units they are
// stored in.
type Catalogue struct {
	NDim      int
	CodeUnits map[string]units.Unit
	Fields    []*Field
}

// catalogueFile is the YAML form of a catalogue:
//
//	ndim: 3
//	units:
//	  length: 3.0857e19 m
//	  density: 1.67e-21 kg m^-3
//	fields:
//	  - name: rho
//	  - name: vel
//	    width: 3
type catalogueFile struct {
	NDim   int               `yaml:"ndim"`
	Units  map[string]string `yaml:"units"`
	Fields []struct {
		Name  string `yaml:"name"`
		Width int    `yaml:"width"`
	} `yaml:"fields"`
}

// LoadCatalogue reads a YAML catalogue file.
func LoadCatalogue(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalogue %s", path)
	}
	c, err := ReadCatalogue(data)
	return c, errors.Wrapf(err, "parsing catalogue %s", path)
}

// ReadCatalogue parses the YAML text of a catalogue. Unknown keys are
// an error.
func ReadCatalogue(data []byte) (*Catalogue, error) {
	var f catalogueFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decoding yaml")
	}
	code := make(map[string]units.Unit, len(f.Units))
	for name, text := range f.Units {
		u, err := units.Parse(text)
		if err != nil {
			return nil, errors.Wrapf(err, "code unit %s", name)
		}
		code[name] = u
	}
	fields := make([]Field, len(f.Fields))
	for i, ff := range f.Fields {
		if ff.Name == "" {
			return nil, errors.Errorf("field %d has no name", i+1)
		}
		fields[i] = Field{Name: ff.Name, Width: ff.Width}
	}
	return NewCatalogue(f.NDim, code, fields...)
}

// NewCatalogue builds a catalogue from the fields stored in a snapshot.
// A field whose name would collide with a component title is renamed
// with a "__" suffix, a field as wide as the snapshot has dimensions is
// marked as a vector, and the virtual position field is put first.
func NewCatalogue(ndim int, codeUnits map[string]units.Unit, fields ...Field) (*Catalogue, error) {
	if ndim < 1 || ndim > len(axes) {
		return nil, errors.Errorf("invalid number of dimensions %d", ndim)
	}
	c := &Catalogue{
		NDim:      ndim,
		CodeUnits: codeUnits,
	}
	c.Fields = append(c.Fields, &Field{
		Name:  PositionName,
		Width: ndim,
		Flags: Position,
		Unit:  GuessCodeUnits(codeUnits, PositionName),
	})
	for _, f := range fields {
		if f.Width == 0 {
			f.Width = 1
		}
		if f.Width < 0 {
			return nil, errors.Errorf("field %s has width %d", f.Name, f.Width)
		}
		if !ValidName(f.Name) {
			f.Name += "__"
		}
		if c.Field(f.Name) != nil {
			return nil, errors.Errorf("duplicate field %s", f.Name)
		}
		if f.Width == ndim && f.Width > 1 {
			f.Flags |= Vector
		}
		f.Unit = GuessCodeUnits(codeUnits, f.Name)
		c.Fields = append(c.Fields, &f)
	}
	return c, nil
}

// Field returns the named field, or nil.
func (c *Catalogue) Field(name string) *Field {
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Mappings returns the component titles of every field, in field order.
func (c *Catalogue) Mappings() []Mapping {
	var m []Mapping
	for _, f := range c.Fields {
		m = append(m, mappings(f, c.NDim)...)
	}
	return m
}

// codeUnitGuesses says which code unit each well-known RAMSES field is
// stored in.
var codeUnitGuesses = map[string]string{
	"time":       "time",
	PositionName: "length",
	"rho":        "density",
	"vel":        "velocity",
	"P":          "pressure",
}

// GuessCodeUnits returns the SI value of one code unit of the named
// field. Fields it does not know are logged and taken as dimensionless.
func GuessCodeUnits(codeUnits map[string]units.Unit, name string) units.Unit {
	if name == "g" {
		length, ok1 := codeUnits["length"]
		time, ok2 := codeUnits["time"]
		if ok1 && ok2 {
			return length.Div(time.Pow(2))
		}
		slog.Warn("missing code units for acceleration", "field", name)
		return units.Dimensionless
	}
	key, ok := codeUnitGuesses[name]
	if !ok {
		slog.Warn("unknown data type", "field", name)
		return units.Dimensionless
	}
	u, ok := codeUnits[key]
	if !ok {
		slog.Warn("missing code unit", "field", name, "unit", key)
		return units.Dimensionless
	}
	return u
}
