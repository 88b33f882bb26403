// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/splosh/splosh/config"
	"github.com/splosh/splosh/exec"
	"github.com/splosh/splosh/field"
	"github.com/splosh/splosh/parse"
	"github.com/splosh/splosh/quantity"
	"github.com/splosh/splosh/run"
	"github.com/splosh/splosh/value"
)

// Globals are the flags shared by every command.
type Globals struct {
	Defaults string   `help:"Defaults file (${defaults_env} overrides the default)." default:"${defaults}"`
	Format   string   `help:"Format string for printing numbers." default:"%g"`
	Prompt   string   `help:"Command prompt." default:"splosh> "`
	Debug    []string `help:"Debugging flags to set: ${debug_flags}."`
	LogLevel string   `help:"Log level." default:"warn" enum:"debug,info,warn,error"`
	LogFile  string   `help:"Also log to this file, rotated."`

	conf *config.Config `kong:"-"`
}

var cli struct {
	Globals

	Parse ParseCmd `cmd:"" help:"Parse an expression and print its tree."`
	Eval  EvalCmd  `cmd:"" help:"Evaluate an expression over numbers given on the command line."`
	Units UnitsCmd `cmd:"" help:"Print the unit of an expression over catalogue fields."`
	Run   RunCmd   `cmd:"" help:"Define and evaluate quantities interactively."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("splosh"),
		kong.Description("Derived quantities for RAMSES snapshots."),
		kong.Vars{
			"debug_flags":  strings.Join(config.DebugFlags, ", "),
			"defaults":     config.DefaultsPath(),
			"defaults_env": config.DefaultsEnv,
		},
	)
	closer, err := cli.Globals.setup()
	if err == nil {
		err = kctx.Run(&cli.Globals)
	}
	if closer != nil {
		closer.Close()
	}
	kctx.FatalIfErrorf(err)
}

// setup builds the configuration and installs the logger.
func (g *Globals) setup() (io.Closer, error) {
	closer := config.InitLogger(os.Stderr, config.LoggerConfig{
		Level:      g.LogLevel,
		Filename:   g.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
	})
	g.conf = new(config.Config)
	if err := g.conf.LoadDefaults(g.Defaults); err != nil {
		return closer, err
	}
	g.conf.SetFormat(g.Format)
	g.conf.SetPrompt(g.Prompt)
	for _, flag := range g.Debug {
		g.conf.SetDebug(flag, true)
	}
	return closer, nil
}

// catalogueSet loads a catalogue and defines the quantities from the
// defaults file over it.
func (g *Globals) catalogueSet(path string) (*quantity.Set, error) {
	c, err := field.LoadCatalogue(path)
	if err != nil {
		return nil, err
	}
	set := quantity.NewSet(g.conf, c)
	set.AddDefaults(g.conf.Extras())
	return set, nil
}

type ParseCmd struct {
	Vars []string `short:"V" help:"Variable names the expression may use." sep:","`
	Repr bool     `help:"Dump the Go structure of the tree."`
	Expr string   `arg:"" help:"Expression."`
}

func (c *ParseCmd) Run(g *Globals) error {
	e, err := parse.NewParser(g.conf, c.Vars...).Parse(c.Expr)
	if err != nil {
		return err
	}
	w := g.conf.Output()
	if c.Repr {
		fmt.Fprintln(w, repr.String(e, repr.Indent("  ")))
		return nil
	}
	fmt.Fprintln(w, e)
	fmt.Fprintln(w, value.Tree(e))
	return nil
}

type EvalCmd struct {
	Var  map[string]string `short:"v" help:"Variable values, as name=1,2,3." mapsep:";"`
	Expr string            `arg:"" help:"Expression."`
}

func (c *EvalCmd) Run(g *Globals) error {
	var (
		names []string
		table exec.Table[exec.Array]
	)
	for name := range c.Var {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var a exec.Array
		for _, s := range strings.Split(c.Var[name], ",") {
			x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return errors.Wrapf(err, "value of %s", name)
			}
			a = append(a, x)
		}
		table = append(table, exec.Binding[exec.Array]{Key: name, Value: a})
	}
	e, err := parse.NewParser(g.conf, names...).Parse(c.Expr)
	if err != nil {
		return err
	}
	ev := exec.New(e, table, exec.Arithmetic)
	if g.conf.Debug("trace") {
		ev.SetTrace(g.conf.Output())
	}
	z, err := ev.Eval()
	if err != nil {
		return err
	}
	w := g.conf.Output()
	for i, x := range z {
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprintf(w, g.conf.Format(), x)
	}
	fmt.Fprintln(w)
	return nil
}

type UnitsCmd struct {
	Catalogue string `short:"c" help:"Field catalogue (YAML)." required:"" type:"existingfile"`
	Expr      string `arg:"" help:"Expression or quantity name."`
}

func (c *UnitsCmd) Run(g *Globals) error {
	set, err := g.catalogueSet(c.Catalogue)
	if err != nil {
		return err
	}
	q := set.Lookup(c.Expr)
	if q == nil {
		q, err = set.Compile("", c.Expr)
		if err != nil {
			return err
		}
	}
	fmt.Fprintln(g.conf.Output(), q.Unit())
	return nil
}

type RunCmd struct {
	Catalogue string   `short:"c" help:"Field catalogue (YAML)." required:"" type:"existingfile"`
	Data      string   `short:"d" help:"Sample data (YAML)." type:"existingfile"`
	Files     []string `arg:"" optional:"" help:"Files of lines to run; standard input if none."`
}

func (c *RunCmd) Run(g *Globals) error {
	set, err := g.catalogueSet(c.Catalogue)
	if err != nil {
		return err
	}
	var src field.Source
	if c.Data != "" {
		m, err := field.LoadMemSource(c.Data)
		if err != nil {
			return err
		}
		src = m
	}
	runner := run.New(g.conf, set, src)
	if len(c.Files) == 0 {
		interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		if !runner.Run(os.Stdin, interactive) && !interactive {
			return errors.New("errors in input")
		}
		return nil
	}
	for _, name := range c.Files {
		fd, err := os.Open(name)
		if err != nil {
			return errors.Wrapf(err, "opening %s", name)
		}
		ok := runner.Run(fd, false)
		fd.Close()
		if !ok {
			return errors.Errorf("errors in %s", name)
		}
	}
	return nil
}
