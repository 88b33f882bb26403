// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the runtime settings shared by the parser,
// the quantity set and the interactive driver.
package config // import "github.com/splosh/splosh/config"

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// DebugFlags lists the names accepted by SetDebug.
var DebugFlags = []string{
	"cpu",    // print the CPU time of each evaluation
	"parse",  // print the tree of each parsed expression
	"tokens", // print each token as it is scanned
	"trace",  // print each node as it is evaluated
	"units",  // print the inferred unit of each defined quantity
}

type Config struct {
	prompt    string
	format    string
	noUnits   bool
	debug     map[string]bool
	output    io.Writer
	errOutput io.Writer
	units     map[string]Unit
	extras    []Extra
}

// Unit is the display setting for one field: values are multiplied by
// Multiplier and labelled with Suffix.
type Unit struct {
	Multiplier float64
	Suffix     string
}

// Extra is a derived quantity recorded in the defaults file.
type Extra struct {
	Name       string
	Expression string
}

// Format returns the format used for printing numbers.
func (c *Config) Format() string {
	if c.format == "" {
		return "%g"
	}
	return c.format
}

func (c *Config) SetFormat(s string) {
	c.format = s
}

// Debug reports whether the named debugging flag is set.
func (c *Config) Debug(s string) bool {
	return c.debug[s]
}

func (c *Config) SetDebug(s string, state bool) {
	if c.debug == nil {
		c.debug = make(map[string]bool)
	}
	c.debug[s] = state
}

// DebugSettings returns "name=0|1" for every known flag, in order.
func (c *Config) DebugSettings() []string {
	names := append([]string(nil), DebugFlags...)
	sort.Strings(names)
	s := make([]string, len(names))
	for i, name := range names {
		v := 0
		if c.debug[name] {
			v = 1
		}
		s[i] = fmt.Sprintf("%s=%d", name, v)
	}
	return s
}

func (c *Config) Prompt() string {
	return c.prompt
}

func (c *Config) SetPrompt(prompt string) {
	c.prompt = prompt
}

// UseUnits reports whether unit multipliers and suffixes apply.
func (c *Config) UseUnits() bool {
	return !c.noUnits
}

func (c *Config) SetUseUnits(use bool) {
	c.noUnits = !use
}

// Output returns the writer for regular output; the default is os.Stdout.
func (c *Config) Output() io.Writer {
	if c.output == nil {
		return os.Stdout
	}
	return c.output
}

func (c *Config) SetOutput(w io.Writer) {
	c.output = w
}

// ErrOutput returns the writer for error reports; the default is os.Stderr.
func (c *Config) ErrOutput() io.Writer {
	if c.errOutput == nil {
		return os.Stderr
	}
	return c.errOutput
}

func (c *Config) SetErrOutput(w io.Writer) {
	c.errOutput = w
}

// Unit returns the display unit for the named field. Without a setting,
// or when units are switched off, it is a multiplier of 1 and no suffix.
func (c *Config) Unit(field string) Unit {
	if u, ok := c.units[field]; ok && c.UseUnits() {
		return u
	}
	return Unit{Multiplier: 1}
}

func (c *Config) SetUnit(field string, u Unit) {
	if c.units == nil {
		c.units = make(map[string]Unit)
	}
	c.units[field] = u
}

// Extras returns the derived quantities named in the defaults file,
// sorted by name.
func (c *Config) Extras() []Extra {
	return c.extras
}
