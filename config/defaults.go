// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/gcfg.v1"
)

// DefaultsFile is the name of the defaults file when SPLOSH_DEFAULTS
// is not set.
const DefaultsFile = "splosh.defaults"

// DefaultsEnv names the environment variable that overrides DefaultsFile.
const DefaultsEnv = "SPLOSH_DEFAULTS"

// ExampleDefaults shows every setting the defaults file understands.
const ExampleDefaults = `[data]
use-units = true

[extra "vel"]
expression = (vel_x^2 + vel_y^2 + vel_z^2)^0.5

[units "rho"]
multiplier = 1.0
suffix = g/cm^3
`

type defaultsFile struct {
	Data struct {
		UseUnits bool `gcfg:"use-units"`
	}
	Extra map[string]*struct {
		Expression string
	}
	Units map[string]*struct {
		Multiplier float64
		Suffix     string
	}
}

// DefaultsPath returns the defaults file to read: $SPLOSH_DEFAULTS if
// set, otherwise DefaultsFile in the current directory.
func DefaultsPath() string {
	if path := os.Getenv(DefaultsEnv); path != "" {
		return path
	}
	return DefaultsFile
}

// LoadDefaults reads the named defaults file into c. A missing file is
// not an error; the configuration is left as it was.
func (c *Config) LoadDefaults(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "reading defaults %s", path)
	}
	return errors.Wrapf(c.ReadDefaults(string(data)), "parsing defaults %s", path)
}

// ReadDefaults applies the text of a defaults file to c.
func (c *Config) ReadDefaults(text string) error {
	var f defaultsFile
	f.Data.UseUnits = c.UseUnits()
	if err := gcfg.FatalOnly(gcfg.ReadStringInto(&f, text)); err != nil {
		return err
	}
	c.SetUseUnits(f.Data.UseUnits)
	for name, u := range f.Units {
		mult := u.Multiplier
		if mult == 0 {
			mult = 1
		}
		c.SetUnit(name, Unit{Multiplier: mult, Suffix: u.Suffix})
	}
	for name, x := range f.Extra {
		expr := strings.TrimSpace(x.Expression)
		if expr == "" {
			return errors.Errorf("extra %q has no expression", name)
		}
		c.setExtra(Extra{Name: name, Expression: expr})
	}
	sort.Slice(c.extras, func(i, j int) bool {
		return c.extras[i].Name < c.extras[j].Name
	})
	return nil
}

// setExtra adds x, replacing any earlier extra of the same name.
func (c *Config) setExtra(x Extra) {
	for i := range c.extras {
		if c.extras[i].Name == x.Name {
			c.extras[i] = x
			return
		}
	}
	c.extras = append(c.extras, x)
}
