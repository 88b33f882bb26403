// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quantity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/splosh/splosh/value"
)

// Key identifies one component of one field. Its string form,
// ('rho', 0, 1), is the name a variable leaf carries once a quantity
// has been defined.
type Key struct {
	Name  string
	Index int
	Width int
}

func (k Key) String() string {
	return fmt.Sprintf("('%s', %d, %d)", k.Name, k.Index, k.Width)
}

// ParseKey is the inverse of Key.String.
func ParseKey(s string) (Key, error) {
	inner, ok := strings.CutPrefix(s, "(")
	if ok {
		inner, ok = strings.CutSuffix(inner, ")")
	}
	parts := strings.Split(inner, ", ")
	if !ok || len(parts) != 3 {
		return Key{}, errors.Errorf("malformed key %q", s)
	}
	name, ok := strings.CutPrefix(parts[0], "'")
	if ok {
		name, ok = strings.CutSuffix(name, "'")
	}
	if !ok || name == "" {
		return Key{}, errors.Errorf("malformed key %q: bad name", s)
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil {
		return Key{}, errors.Errorf("malformed key %q: bad index", s)
	}
	width, err := strconv.Atoi(parts[2])
	if err != nil {
		return Key{}, errors.Errorf("malformed key %q: bad width", s)
	}
	return Key{Name: name, Index: index, Width: width}, nil
}

// FieldKeys returns the distinct keys named by the variable leaves of
// e, in order of first appearance. Every variable must be a key.
func FieldKeys(e value.Expr) ([]Key, error) {
	var keys []Key
	seen := make(map[Key]bool)
	for leaf := range value.Walk(e) {
		if !leaf.IsVar() {
			continue
		}
		k, err := ParseKey(leaf.Name())
		if err != nil {
			return nil, err
		}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// FieldNames returns the distinct field names used by e, sorted.
func FieldNames(e value.Expr) ([]string, error) {
	keys, err := FieldKeys(e)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, k := range keys {
		if !seen[k.Name] {
			seen[k.Name] = true
			names = append(names, k.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}
