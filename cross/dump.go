// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import (
	"fmt"
	"strings"

	"github.com/gogpu/shdc"
	"github.com/gogpu/shdc/refl"
)

// DumpDebug renders the pass result in a readable form: target
// language, pass error state, and per-snippet translated source plus
// reflection. Pure formatting; the caller owns the destination.
func (r *Result) DumpDebug(errFmt shdc.MsgFormat) string {
	var b strings.Builder

	fmt.Fprintf(&b, "cross (%s):\n", r.Slang)
	if r.Error != nil {
		fmt.Fprintf(&b, "  error: %s\n", r.Error.Msg.String(errFmt))
	} else {
		b.WriteString("  error: not set\n")
	}
	for i := range r.Sources {
		src := &r.Sources[i]
		fmt.Fprintf(&b, "    source for snippet %d:\n", src.SnippetIndex)
		for _, line := range strings.Split(strings.TrimRight(src.Code, "\n"), "\n") {
			fmt.Fprintf(&b, "      %s\n", line)
		}
		fmt.Fprintf(&b, "    reflection for snippet %d:\n", src.SnippetIndex)
		b.WriteString(refl.Text(&src.Refl, "      "))
	}
	b.WriteString("\n")
	return b.String()
}
