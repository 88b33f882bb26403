// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"bytes"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/splosh/splosh/exec"
)

// Source supplies sample data: one array per field component.
type Source interface {
	Component(name string, index int) (exec.Array, error)
}

// MemSource is a Source held in memory.
type MemSource struct {
	columns map[string][]exec.Array
}

// NewMemSource returns an empty MemSource.
func NewMemSource() *MemSource {
	return &MemSource{columns: make(map[string][]exec.Array)}
}

// Set stores the components of the named field, replacing any
// previous data.
func (m *MemSource) Set(name string, components ...exec.Array) {
	m.columns[name] = components
}

// Names returns the stored field names in sorted order.
func (m *MemSource) Names() []string {
	names := make([]string, 0, len(m.columns))
	for name := range m.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *MemSource) Component(name string, index int) (exec.Array, error) {
	c, ok := m.columns[name]
	if !ok {
		return nil, errors.Errorf("no data for field %s", name)
	}
	if index < 0 || index >= len(c) {
		return nil, errors.Errorf("field %s has no component %d", name, index)
	}
	return c[index], nil
}

// LoadMemSource reads a YAML data file. See ReadMemSource.
func LoadMemSource(path string) (*MemSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading data %s", path)
	}
	m, err := ReadMemSource(data)
	return m, errors.Wrapf(err, "parsing data %s", path)
}

// ReadMemSource parses YAML data mapping each field to its samples: a
// list of numbers for a scalar field, or a list of lists, one per
// component, for a wide one.
//
//	rho: [1, 2.5, 4]
//	position:
//	  - [0, 1, 2]
//	  - [0, 0, 1]
func ReadMemSource(data []byte) (*MemSource, error) {
	var doc map[string]yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding yaml")
	}
	m := NewMemSource()
	for name, node := range doc {
		if node.Kind != yaml.SequenceNode {
			return nil, errors.Errorf("field %s: expected a list at line %d", name, node.Line)
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			var cols [][]float64
			if err := node.Decode(&cols); err != nil {
				return nil, errors.Wrapf(err, "field %s", name)
			}
			arrays := make([]exec.Array, len(cols))
			for i, c := range cols {
				arrays[i] = c
			}
			m.Set(name, arrays...)
			continue
		}
		var col []float64
		if err := node.Decode(&col); err != nil {
			return nil, errors.Wrapf(err, "field %s", name)
		}
		m.Set(name, col)
	}
	return m, nil
}
