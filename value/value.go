// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value holds the parsed form of a derived-quantity expression:
// the node types, the leaf walker and the error type shared by the
// scanner, parser and evaluators.
package value // import "github.com/splosh/splosh/value"

import "fmt"

// Error is the type of a failure to scan, parse or evaluate an
// expression. Inside the scanner and parser it is raised with panic
// and recovered at the package boundary; see Recover.
type Error string

func (err Error) Error() string {
	return string(err)
}

// Errorf formats an Error.
func Errorf(format string, args ...interface{}) Error {
	return Error(fmt.Sprintf(format, args...))
}

// Recover converts a panic carrying an Error into a returned error.
// It must be called directly by a deferred function. Any other panic
// is re-raised.
//
//	defer value.Recover(&err)
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(Error); ok {
		*errp = err
		return
	}
	panic(r)
}
