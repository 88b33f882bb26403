// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Splosh computes derived quantities from the fields of a RAMSES snapshot.
A derived quantity is a name bound to an arithmetic expression over the
data components, such as

	speed = (vel_x^2 + vel_y^2 + vel_z^2)^0.5

Its physical unit is inferred from the code units of the fields it uses,
and a mismatch (adding a density to a velocity, say) is an error at
definition time rather than a silently wrong plot.

Expressions.

Operands are numbers (1, 0.5, 1e-3, .25) and data components. A scalar
field is named by itself (rho, P). A vector field whose width matches the
number of dimensions has one component per axis (vel_x, vel_y, vel_z);
any other multi-component field is numbered from zero (metals_0,
metals_1). Positions are x, y and z.

The operators, from loosest to tightest binding:

	+ -       addition, subtraction
	* /       multiplication, division
	^ **      power
	- |x|     negation, magnitude

All binary operators associate to the left, so a^b^c is (a^b)^c.
Negation binds tighter than power: -a^2 is (-a)^2. Two operators may not
follow each other (a+-b is an error; write a+(-b)), and magnitude bars may
not touch (||a|| is rejected; write |(|a|)|). A bar followed by an operator
closes a magnitude, so a sign just inside an opening bar needs parentheses,
as in 2*|(-x)|, unless the bar starts the expression or a bracketed span:
|-x| and (|-x|) are fine.

Units.

Every quantity carries an SI unit: a scale and the exponents of kg, m, s,
K, A and mol. Sums need equal units, products combine them and a power
needs a plain number as exponent. Plain numbers take the unit of whatever
they meet, so 2*rho is a density and x^(1/2) works.

Commands.

	splosh parse [-V names] [--repr] expr
		print the parsed tree of an expression
	splosh eval [-v name=1,2,3;...] expr
		evaluate an expression over numbers given on the command line
	splosh units -c fields.yaml expr
		print the unit of an expression or defined quantity
	splosh run -c fields.yaml [-d data.yaml] [file...]
		read lines from the files, or standard input, defining and
		evaluating quantities

The catalogue names the fields of the snapshot and the SI value of each
code unit:

	ndim: 3
	units:
	  length: 3.08e22 m
	  time: 3.15e16 s
	  density: 1.67e-21 kg m^-3
	  velocity: 1e6 m s^-1
	fields:
	  - name: rho
	  - name: vel
	    width: 3

Sample data maps each field to its values, one list per component:

	rho: [1, 2, 4]
	vel:
	  - [3, 0, -1]
	  - [4, 1, 0]
	  - [0, 0, 0]

Interactive lines.

	name = expression   define (or redefine) a derived quantity
	expression          evaluate an expression over the data
	name                evaluate a derived quantity
	# text              a comment

Lines starting with a right parenthesis are special commands:

	)help               summarize the commands
	)debug [flag [0|1]] show, toggle or set a debugging flag
	                    (cpu, parse, tokens, trace, units)
	)format ["fmt"]     show or set the number format, e.g. %.3g
	)list               list the derived quantities
	)remove name        remove a derived quantity
	)clear              remove every derived quantity
	)units [on|off]     show or set whether units are printed
	)vars               list the data components expressions may use

Defaults.

At startup splosh reads an INI-style defaults file, splosh.defaults in the
current directory or the file named by $SPLOSH_DEFAULTS, if it exists:

	[data]
	use-units = true

	[extra "vel"]
	expression = (vel_x^2 + vel_y^2 + vel_z^2)^0.5

	[units "rho"]
	multiplier = 1
	suffix = g/cm^3

Each extra section defines a quantity for every catalogue; each units
section sets how a field or quantity is displayed.
*/
package main
