// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quantity

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splosh/splosh/config"
	"github.com/splosh/splosh/exec"
	"github.com/splosh/splosh/field"
	"github.com/splosh/splosh/parse"
	"github.com/splosh/splosh/units"
)

var (
	length   = units.Metre.Times(10)
	time     = units.Second.Times(2)
	density  = units.Kilogram.Mul(units.Metre.Pow(-3))
	velocity = length.Div(time)
)

func newSet(t *testing.T, conf *config.Config) *Set {
	t.Helper()
	code := map[string]units.Unit{
		"length":   length,
		"time":     time,
		"density":  density,
		"velocity": velocity,
	}
	c, err := field.NewCatalogue(3, code,
		field.Field{Name: "rho"},
		field.Field{Name: "vel", Width: 3},
		field.Field{Name: "temp"},
	)
	require.NoError(t, err)
	return NewSet(conf, c)
}

func source() *field.MemSource {
	src := field.NewMemSource()
	src.Set("rho", exec.Array{1, 2})
	src.Set("vel", exec.Array{3, 0}, exec.Array{4, 0}, exec.Array{0, 5})
	src.Set("position", exec.Array{1, 1}, exec.Array{2, 2}, exec.Array{2, 3})
	return src
}

func TestKey(t *testing.T) {
	k := Key{Name: "vel", Index: 2, Width: 3}
	assert.Equal(t, "('vel', 2, 3)", k.String())
	back, err := ParseKey(k.String())
	require.NoError(t, err)
	assert.Equal(t, k, back)

	for _, bad := range []string{"vel", "('vel', 2)", "(vel, 2, 3)", "('vel', x, 3)", "('vel', 2, y)", "('', 0, 1)", "('vel', 2, 3"} {
		_, err := ParseKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestTitles(t *testing.T) {
	s := newSet(t, nil)
	assert.Equal(t, []string{"x", "y", "z", "rho", "vel_x", "vel_y", "vel_z", "temp"}, s.Titles())
	m, ok := s.Mapping("vel_z")
	require.True(t, ok)
	assert.Equal(t, 2, m.Index)
}

func TestAdd(t *testing.T) {
	s := newSet(t, nil)
	q, err := s.Add("speed", "(vel_x^2 + vel_y^2 + vel_z^2)^0.5")
	require.NoError(t, err)
	assert.Equal(t, "speed", q.Name)
	assert.Equal(t, "((((('vel', 0, 3)^2)+(('vel', 1, 3)^2))+(('vel', 2, 3)^2))^0.5)", q.Expr().String())
	assert.Equal(t, []Key{{"vel", 0, 3}, {"vel", 1, 3}, {"vel", 2, 3}}, q.Keys())
	assert.True(t, q.Unit().Same(velocity), q.Unit().String())
	assert.Equal(t, field.Extra, q.Field().Flags)
	assert.Same(t, q, s.Lookup("speed"))

	z, err := q.Eval(source())
	require.NoError(t, err)
	assert.Equal(t, exec.Array{5, 5}, z)
}

func TestRedefine(t *testing.T) {
	s := newSet(t, nil)
	_, err := s.Add("a", "rho*2")
	require.NoError(t, err)
	_, err = s.Add("b", "rho")
	require.NoError(t, err)
	q, err := s.Add("a", "rho*3")
	require.NoError(t, err)
	require.Len(t, s.Extras(), 2)
	assert.Same(t, q, s.Extras()[0])
	z, err := q.Eval(source())
	require.NoError(t, err)
	assert.Equal(t, exec.Array{3, 6}, z)
}

func TestAddErrors(t *testing.T) {
	s := newSet(t, nil)
	tests := []struct {
		name, expr, want string
	}{
		{"rho", "vel_x", "cannot edit datafile quantity rho"},
		{"", "rho", "no name"},
		{"q", "rho+", "cannot end with operator"},
		{"q", "speed*2", "unknown variable speed"},
		{"q", "rho+vel_x", "invalid unit operation"},
		{"q", "", "empty expression"},
	}
	for _, test := range tests {
		_, err := s.Add(test.name, test.expr)
		require.Error(t, err, test.expr)
		assert.Contains(t, err.Error(), test.want, test.expr)
	}
	assert.Empty(t, s.Extras())
}

func TestQuantitiesDoNotNest(t *testing.T) {
	s := newSet(t, nil)
	_, err := s.Add("speed", "|vel_x|")
	require.NoError(t, err)
	_, err = s.Add("twice", "2*speed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown variable speed")
}

func TestDefine(t *testing.T) {
	s := newSet(t, nil)
	q, err := s.Define(" r = (x^2 + y^2 + z^2)^0.5 ")
	require.NoError(t, err)
	assert.Equal(t, "r", q.Name)
	assert.Equal(t, "(x^2 + y^2 + z^2)^0.5", q.Expression)
	assert.True(t, q.Unit().Same(length))
	z, err := q.Eval(source())
	require.NoError(t, err)
	assert.Equal(t, exec.Array{3, 3.7416573867739413}, z)

	_, err = s.Define("r (x^2)")
	assert.Error(t, err)
	_, err = s.Define("r = x = y")
	assert.Error(t, err)
}

func TestUnits(t *testing.T) {
	s := newSet(t, nil)
	tests := []struct {
		expr string
		want units.Unit
	}{
		{"rho", density},
		{"rho*vel_x^2", density.Mul(velocity.Pow(2))},
		{"x/vel_x", time},
		{"2*3", units.Dimensionless},
		{"temp*rho", density},
		{"1/rho", density.Pow(-1)},
	}
	for _, test := range tests {
		q, err := s.Compile("", test.expr)
		require.NoError(t, err, test.expr)
		assert.True(t, q.Unit().Same(test.want), "%s: got %s want %s", test.expr, q.Unit(), test.want)
	}
	assert.Empty(t, s.Extras())
}

func TestUnitsDebug(t *testing.T) {
	var conf config.Config
	var out bytes.Buffer
	conf.SetOutput(&out)
	conf.SetDebug("units", true)
	s := newSet(t, &conf)
	_, err := s.Add("mom", "rho*vel_x")
	require.NoError(t, err)
	assert.Equal(t, "mom: 5 kg m^-2 s^-1\n", out.String())
}

func TestRemoveAndClear(t *testing.T) {
	s := newSet(t, nil)
	for _, name := range []string{"a", "b", "c"} {
		_, err := s.Add(name, "rho")
		require.NoError(t, err)
	}
	require.NoError(t, s.Remove("b"))
	var names []string
	for _, q := range s.Extras() {
		names = append(names, q.Name)
	}
	assert.Equal(t, []string{"a", "c"}, names)
	assert.Nil(t, s.Lookup("b"))

	err := s.Remove("b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown quantity")
	err = s.Remove("rho")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot remove datafile quantity")

	s.Clear()
	assert.Empty(t, s.Extras())
}

func TestAddDefaults(t *testing.T) {
	s := newSet(t, nil)
	n := s.AddDefaults([]config.Extra{
		{Name: "ok", Expression: "rho*2"},
		{Name: "bad", Expression: "rho*"},
		{Name: "also", Expression: "|vel_y|"},
	})
	assert.Equal(t, 2, n)
	assert.NotNil(t, s.Lookup("ok"))
	assert.Nil(t, s.Lookup("bad"))
}

func TestFieldNames(t *testing.T) {
	s := newSet(t, nil)
	q, err := s.Compile("", "rho*(vel_x + vel_x*x/y)")
	require.NoError(t, err)
	names, err := FieldNames(q.Expr())
	require.NoError(t, err)
	assert.Equal(t, []string{"position", "rho", "vel"}, names)
	assert.Equal(t, []Key{{"rho", 0, 1}, {"vel", 0, 3}, {"position", 0, 3}, {"position", 1, 3}}, q.Keys())

	e, err := parse.Parse("a+1", "a")
	require.NoError(t, err)
	_, err = FieldNames(e)
	assert.Error(t, err)
}

func TestDataNeedsSource(t *testing.T) {
	s := newSet(t, nil)
	q, err := s.Compile("", "rho")
	require.NoError(t, err)
	_, err = q.Data().Eval()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a source")
	_, err = q.Data().Eval("not a source")
	require.Error(t, err)

	q, err = s.Compile("", "temp")
	require.NoError(t, err)
	_, err = q.Eval(source())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data for field temp")
}
