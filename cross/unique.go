// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import (
	"fmt"

	"github.com/gogpu/shdc"
)

// The dedup pools grow per target pass: the first occurrence of a
// named resource is appended, later structurally identical
// occurrences reuse its index, and a structurally different occurrence
// under the same name is a fatal conflict. Binding slots are not part
// of the structural comparison.

func (r *Result) findUniqueUniformBlock(name string) int {
	for i := range r.UniqueUniformBlocks {
		if r.UniqueUniformBlocks[i].Name == name {
			return i
		}
	}
	return -1
}

func (r *Result) findUniqueImage(name string) int {
	for i := range r.UniqueImages {
		if r.UniqueImages[i].Name == name {
			return i
		}
	}
	return -1
}

// gatherUniqueUniformBlocks folds one source's uniform blocks into the
// pass pool, assigning each block its unique index.
func gatherUniqueUniformBlocks(inp *shdc.Input, r *Result, src *Source) *Error {
	for i := range src.Refl.UniformBlocks {
		ub := &src.Refl.UniformBlocks[i]
		other := r.findUniqueUniformBlock(ub.Name)
		switch {
		case other < 0:
			// a new unique uniform block
			ub.UniqueIndex = len(r.UniqueUniformBlocks)
			r.UniqueUniformBlocks = append(r.UniqueUniformBlocks, *ub)
		case ub.Equal(r.UniqueUniformBlocks[other]):
			ub.UniqueIndex = other
		default:
			msg := inp.Error(0, fmt.Sprintf("conflicting uniform block definitions found for '%s'", ub.Name))
			return passError(ErrConflictingDeclaration, msg)
		}
	}
	return nil
}

// gatherUniqueImages folds one source's images into the pass pool,
// assigning each image its unique index.
func gatherUniqueImages(inp *shdc.Input, r *Result, src *Source) *Error {
	for i := range src.Refl.Images {
		img := &src.Refl.Images[i]
		other := r.findUniqueImage(img.Name)
		switch {
		case other < 0:
			// a new unique image
			img.UniqueIndex = len(r.UniqueImages)
			r.UniqueImages = append(r.UniqueImages, *img)
		case img.Equal(r.UniqueImages[other]):
			img.UniqueIndex = other
		default:
			msg := inp.Error(0, fmt.Sprintf("conflicting texture definitions found for '%s'", img.Name))
			return passError(ErrConflictingDeclaration, msg)
		}
	}
	return nil
}
