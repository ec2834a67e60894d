// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import (
	"fmt"
	"sort"

	"github.com/gogpu/shdc"
	"github.com/gogpu/shdc/refl"
)

// validateLinking checks, for every declared program, that the vertex
// shader's output attributes match the fragment shader's input
// attributes slot for slot. Unused slots trivially match. Attribute
// value types are not compared, only slot, name and semantic
// identity.
func validateLinking(inp *shdc.Input, r *Result) *Error {
	// sorted for deterministic diagnostics
	names := make([]string, 0, len(inp.Programs))
	for name := range inp.Programs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prog := inp.Programs[name]
		vsSnippetIndex, ok := inp.VSMap[prog.VSName]
		if !ok {
			continue
		}
		fsSnippetIndex, ok := inp.FSMap[prog.FSName]
		if !ok {
			continue
		}
		vsSrcIndex := r.FindSourceBySnippetIndex(vsSnippetIndex)
		fsSrcIndex := r.FindSourceBySnippetIndex(fsSnippetIndex)
		if vsSrcIndex < 0 || fsSrcIndex < 0 {
			continue
		}
		vsSrc := &r.Sources[vsSrcIndex]
		fsSrc := &r.Sources[fsSrcIndex]
		for i := 0; i < refl.MaxAttrs; i++ {
			vsOut := vsSrc.Refl.Outputs[i]
			fsInp := fsSrc.Refl.Inputs[i]
			if !vsOut.Equal(fsInp) {
				msg := inp.Error(prog.LineIndex, fmt.Sprintf(
					"outputs of vs '%s' don't match inputs of fs '%s' for attr #%d (vs=%s,fs=%s)",
					prog.VSName, prog.FSName, i, vsOut.Name, fsInp.Name))
				return passError(ErrInterfaceMismatch, msg)
			}
		}
	}
	return nil
}
