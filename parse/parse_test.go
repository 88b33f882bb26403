// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splosh/splosh/config"
	"github.com/splosh/splosh/value"
)

var testVars = []string{"a", "b", "c", "x", "y", "z", "rho", "vel_x"}

// example is one case from a testdata file: an input line followed by
// a tab-indented line of expected output.
type example struct {
	line  int
	input string
	want  string
}

func readExamples(t *testing.T, name string) []example {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	var examples []example
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		require.False(t, strings.HasPrefix(line, "\t"), "%s:%d: output without input", name, i+1)
		require.Less(t, i+1, len(lines), "%s:%d: input without output", name, i+1)
		out := lines[i+1]
		require.True(t, strings.HasPrefix(out, "\t"), "%s:%d: expected tab-indented output", name, i+2)
		examples = append(examples, example{line: i + 1, input: line, want: out[1:]})
		i++
	}
	return examples
}

func TestParseFile(t *testing.T) {
	p := NewParser(nil, testVars...)
	for _, ex := range readExamples(t, "parse.txt") {
		e, err := p.Parse(ex.input)
		if !assert.NoError(t, err, "parse.txt:%d: %s", ex.line, ex.input) {
			continue
		}
		assert.Equal(t, ex.want, e.String(), "parse.txt:%d: %s", ex.line, ex.input)
	}
}

func TestErrorFile(t *testing.T) {
	p := NewParser(nil, testVars...)
	for _, ex := range readExamples(t, "errors.txt") {
		e, err := p.Parse(ex.input)
		if !assert.Error(t, err, "errors.txt:%d: %q", ex.line, ex.input) {
			continue
		}
		assert.Nil(t, e)
		assert.IsType(t, value.Error(""), err)
		assert.Contains(t, err.Error(), ex.want, "errors.txt:%d: %q", ex.line, ex.input)
	}
}

func TestEmpty(t *testing.T) {
	_, err := Parse("", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

// Every variable written in the input shows up as a leaf, in order.
func TestLeavesMatchInput(t *testing.T) {
	tests := []struct {
		input string
		names []string
	}{
		{"a", []string{"a"}},
		{"a+a*a", []string{"a", "a", "a"}},
		{"(x^2 + y^2 + z^2)^0.5", []string{"x", "y", "z"}},
		{"|rho - b| / -c + 3", []string{"rho", "b", "c"}},
		{"2*3", nil},
	}
	for _, test := range tests {
		e, err := Parse(test.input, testVars...)
		require.NoError(t, err, test.input)
		assert.Equal(t, test.names, value.Names(e), test.input)
	}
}

func TestSetVariables(t *testing.T) {
	p := NewParser(nil, "a", "", "b")
	assert.Equal(t, []string{"a", "b"}, p.Variables())
	_, err := p.Parse("a+b")
	require.NoError(t, err)

	p.SetVariables("c")
	_, err = p.Parse("a+b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown variable a")
	_, err = p.Parse("c")
	require.NoError(t, err)
}

func TestDebugOutput(t *testing.T) {
	var conf config.Config
	var out bytes.Buffer
	conf.SetOutput(&out)
	conf.SetDebug("parse", true)
	p := NewParser(&conf, "a")
	_, err := p.Parse("-a+1")
	require.NoError(t, err)
	assert.Equal(t, "((- <var a>) + <float 1>)\n", out.String())

	out.Reset()
	conf.SetDebug("parse", false)
	conf.SetDebug("tokens", true)
	_, err = p.Parse("a*2")
	require.NoError(t, err)
	assert.Equal(t, "0: Identifier: \"a\"\n1: Operator: \"*\"\n2: Number: \"2\"\n", out.String())
}

// The passes are pure: each can be run on its own and leaves its input
// untouched.

func items(t *testing.T, input string) []item {
	t.Helper()
	p := NewParser(nil, testVars...)
	toks, err := tokens(p, input)
	require.NoError(t, err)
	return fromTokens(toks)
}

func show(items []item) string {
	s := make([]string, len(items))
	for i, it := range items {
		s[i] = it.String()
	}
	return strings.Join(s, " ")
}

func TestNestRound(t *testing.T) {
	in := items(t, "a*(b+(c))-(x)")
	before := show(in)
	out := nestRound(in)
	assert.Equal(t, "a * [b + [c]] - [x]", show(out))
	assert.Equal(t, before, show(in))
}

func TestMarkBars(t *testing.T) {
	out := markBars(nestRound(items(t, "|a|*(|b|-c)")))
	assert.Equal(t, "{ a } * [{ b } - c]", show(out))
	assert.Equal(t, "|a| * [|b| - c]", show(nestBars(out)))
}

func TestBindUnary(t *testing.T) {
	out := bindUnary(items(t, "-a*+b^-c"))
	assert.Equal(t, "(-a) * b ^ (-c)", show(out))
}

func TestBindBinary(t *testing.T) {
	out := bindBinary(items(t, "a-b*c^x/y+z"))
	require.Len(t, out, 1)
	assert.Equal(t, "((a-((b*(c^x))/y))+z)", out[0].node.String())
}

func TestErrorsArePanicFree(t *testing.T) {
	// Failures inside the passes surface as errors from Parse.
	assert.NotPanics(t, func() {
		_, err := Parse("(((a)", "a")
		assert.Error(t, err)
	})
}

func TestPowerSpelling(t *testing.T) {
	e, err := Parse("a ** b", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "(a^b)", e.String())

	// Offsets after ** count both stars.
	_, err = Parse("a**b@", "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at offset 4")

	_, err = Parse("a**+b", "a", "b")
	require.NoError(t, err)
	_, err = Parse("a**-b)", "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmatched ')' at offset 5")
}
