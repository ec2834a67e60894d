// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package refl

import (
	"fmt"
	"strings"
)

// Text renders the reflection in the stable diagnostic form. Each
// nesting level is indented by two spaces beyond the given prefix;
// the field labels are a compatibility surface for tooling that greps
// the debug dump.
func Text(r *Reflection, indent string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%sstage: %s\n", indent, r.Stage)
	fmt.Fprintf(&b, "%sentry: %s\n", indent, r.EntryPoint)

	fmt.Fprintf(&b, "%sinputs:\n", indent)
	for _, a := range r.Inputs {
		if a.Slot >= 0 {
			fmt.Fprintf(&b, "%s  %s: slot=%d, sem_name=%s, sem_index=%d\n",
				indent, a.Name, a.Slot, a.SemName, a.SemIndex)
		}
	}

	fmt.Fprintf(&b, "%soutputs:\n", indent)
	for _, a := range r.Outputs {
		if a.Slot >= 0 {
			fmt.Fprintf(&b, "%s  %s: slot=%d, sem_name=%s, sem_index=%d\n",
				indent, a.Name, a.Slot, a.SemName, a.SemIndex)
		}
	}

	for _, ub := range r.UniformBlocks {
		fmt.Fprintf(&b, "%suniform block: %s, slot: %d, size: %d\n",
			indent, ub.Name, ub.Slot, ub.Size)
		for _, u := range ub.Uniforms {
			fmt.Fprintf(&b, "%s  member: %s, type: %s, array_count: %d, offset: %d\n",
				indent, u.Name, u.Type, u.ArrayCount, u.Offset)
		}
	}

	for _, img := range r.Images {
		fmt.Fprintf(&b, "%simage: %s, slot: %d, type: %s, basetype: %s\n",
			indent, img.Name, img.Slot, img.Type, img.BaseType)
	}

	b.WriteString("\n")
	return b.String()
}
