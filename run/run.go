// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package run provides the execution control for splosh: a loop that
// reads lines, defines quantities and evaluates expressions.
// It is factored out of main so it can be used for tests.
package run // import "github.com/splosh/splosh/run"

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/splosh/splosh/config"
	"github.com/splosh/splosh/exec"
	"github.com/splosh/splosh/field"
	"github.com/splosh/splosh/quantity"
	"github.com/splosh/splosh/value"
)

// Runner holds what a session works on.
type Runner struct {
	conf *config.Config
	set  *quantity.Set
	src  field.Source
}

// New returns a Runner that evaluates against src, which may be nil if
// only definitions are wanted.
func New(conf *config.Config, set *quantity.Set, src field.Source) *Runner {
	return &Runner{conf: conf, set: set, src: src}
}

// Run reads lines from r until EOF. A line of the form "name = expr"
// defines a quantity, a line starting with ')' is a special command and
// anything else is an expression or quantity name to evaluate.
// Errors are reported to the configured error output and the loop
// continues. The return value says whether every line succeeded.
func (r *Runner) Run(in io.Reader, interactive bool) (success bool) {
	success = true
	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(r.conf.Output(), r.conf.Prompt())
		}
		if !scanner.Scan() {
			break
		}
		if err := r.Line(scanner.Text()); err != nil {
			fmt.Fprintln(r.conf.ErrOutput(), err)
			success = false
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(r.conf.ErrOutput(), err)
		return false
	}
	if interactive {
		fmt.Fprintln(r.conf.Output())
	}
	return success
}

// Line executes one line of input.
func (r *Runner) Line(line string) (err error) {
	defer value.Recover(&err)
	line = strings.TrimSpace(line)
	switch {
	case line == "" || strings.HasPrefix(line, "#"):
		return nil
	case strings.HasPrefix(line, ")"):
		return r.special(strings.Fields(line[1:]))
	case strings.Contains(line, "="):
		q, err := r.set.Define(line)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.conf.Output(), "%s = %s %s\n", q.Name, q.Expression, unitString(q.Unit().String()))
		return nil
	}
	return r.eval(line)
}

// eval evaluates a quantity by name, or an expression over the data
// components, and prints the samples.
func (r *Runner) eval(text string) error {
	q := r.set.Lookup(text)
	if q == nil {
		var err error
		q, err = r.set.Compile("", text)
		if err != nil {
			return err
		}
	}
	if r.src == nil {
		return value.Error("no data loaded")
	}
	ev := q.Data()
	if r.conf.Debug("trace") {
		ev.SetTrace(r.conf.Output())
	}
	user, sys := cpuTime()
	samples, err := ev.Eval(r.src)
	if err != nil {
		return err
	}
	r.printSamples(text, samples, q.Unit().String())
	if r.conf.Debug("cpu") {
		u, s := cpuTime()
		r.printf("(%s user, %s sys)\n", u-user, s-sys)
	}
	return nil
}

// cpuTime reports the CPU time used so far; it is zero on systems
// without getrusage.
var cpuTime = func() (user, sys time.Duration) {
	return 0, 0
}

// printSamples neatly prints the values, followed by their unit and a
// newline. Display units set in the configuration apply by name.
func (r *Runner) printSamples(name string, samples exec.Array, si string) {
	w := r.conf.Output()
	disp := r.conf.Unit(name)
	for i, x := range samples {
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprintf(w, r.conf.Format(), x*disp.Multiplier)
	}
	switch {
	case !r.conf.UseUnits():
	case disp.Suffix != "":
		fmt.Fprint(w, " ", disp.Suffix)
	default:
		fmt.Fprint(w, " ", unitString(si))
	}
	fmt.Fprintln(w)
}

func unitString(si string) string {
	return "[" + si + "]"
}
