// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"fmt"
	"strings"

	"github.com/splosh/splosh/value"
)

// traceNode prints one evaluated node, innermost first, indented by
// its depth in the tree.
func (ev *Evaluator[T]) traceNode(e value.Expr, depth int, result T, err error) {
	if err != nil {
		fmt.Fprintf(ev.trace, "%s%s: %s\n", traceIndent(depth), e, err)
		return
	}
	fmt.Fprintf(ev.trace, "%s%s = %s\n", traceIndent(depth), e, short(fmt.Sprint(result)))
}

// short returns its argument, truncating if it's too long.
func short(s string) string {
	if len(s) > 50 {
		s = s[:50] + "..."
	}
	return s
}

var indent = "| "

// traceIndent returns an indentation marker showing the depth of the tree.
func traceIndent(depth int) string {
	n := 2 * depth
	if len(indent) < n {
		indent = strings.Repeat("| ", depth+10)
	}
	return indent[:n]
}
