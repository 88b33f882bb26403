// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"fmt"
	"slices"
	"strings"

	"github.com/splosh/splosh/config"
	"github.com/splosh/splosh/value"
)

const helpText = `Lines are one of:
	name = expression   define (or redefine) a derived quantity
	expression          evaluate an expression over the data fields
	name                evaluate a derived quantity
Expressions use + - * / ^ (or **), parentheses and |x| for magnitude.
Special commands:
	)help               this text
	)debug [flag [0|1]] show, toggle or set a debugging flag
	)format ["fmt"]     show or set the number format, e.g. %.3g
	)list               list the derived quantities
	)remove name        remove a derived quantity
	)clear              remove every derived quantity
	)units [on|off]     show or set whether units are printed
	)vars               list the data components expressions may use
`

func (r *Runner) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.conf.Output(), format, args...)
}

func (r *Runner) special(words []string) error {
	if len(words) == 0 {
		return value.Error("missing command after )")
	}
	conf := r.conf
	cmd, args := words[0], words[1:]
	switch cmd {
	case "help":
		r.printf("%s", helpText)
	case "debug":
		if len(args) == 0 {
			for _, s := range conf.DebugSettings() {
				r.printf("%s\n", s)
			}
			break
		}
		name := args[0]
		if !slices.Contains(config.DebugFlags, name) {
			return value.Errorf("no such debug flag: %s", name)
		}
		switch {
		case len(args) == 1:
			// Toggle the value
			conf.SetDebug(name, !conf.Debug(name))
		case args[1] == "0" || args[1] == "1":
			conf.SetDebug(name, args[1] == "1")
		default:
			return value.Errorf("illegal value %s", args[1])
		}
		r.printf("%s=%d\n", name, truth(conf.Debug(name)))
	case "format":
		if len(args) == 0 {
			r.printf("%q\n", conf.Format())
			break
		}
		conf.SetFormat(strings.Trim(strings.Join(args, " "), `"`))
	case "list":
		extras := r.set.Extras()
		if len(extras) == 0 {
			r.printf("None\n")
		}
		for i, q := range extras {
			r.printf(" %d) %s = %s %s\n", i+1, q.Name, q.Expression, unitString(q.Unit().String()))
		}
	case "remove":
		if len(args) != 1 {
			return value.Error("usage: )remove name")
		}
		return r.set.Remove(args[0])
	case "clear":
		r.set.Clear()
	case "units":
		switch {
		case len(args) == 0:
		case args[0] == "on":
			conf.SetUseUnits(true)
		case args[0] == "off":
			conf.SetUseUnits(false)
		default:
			return value.Errorf("illegal value %s", args[0])
		}
		r.printf("units %s\n", onOff(conf.UseUnits()))
	case "vars":
		r.printf("%s\n", strings.Join(r.set.Titles(), " "))
	default:
		return value.Errorf(")%s: unknown command", cmd)
	}
	return nil
}

func truth(x bool) int {
	if x {
		return 1
	}
	return 0
}

func onOff(x bool) string {
	if x {
		return "on"
	}
	return "off"
}
