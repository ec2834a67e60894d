// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import (
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/shdc/refl"
)

// For the Vulkan binding convention, fragment shader uniform blocks
// live in the same descriptor set as vertex shader uniform blocks but
// are offset by 4:
//
//	set=0, binding=0..3: vertex shader uniform blocks
//	set=0, binding=4..7: fragment shader uniform blocks
const vkFSUniformBindingOffset = 4

// assignBindSlots overwrites the set/binding decoration of every
// uniform block and sampled image:
//
//   - uniform blocks go into set=0 and count up from binding=0 in
//     declaration order; with Vulkan binding semantics, fragment
//     shader blocks start at the fixed offset instead so both stages
//     can share one descriptor set
//   - images go into set=1 (vertex) or set=2 (fragment) and count up
//     from binding=0
//
// Existing binding definitions are always overwritten.
func assignBindSlots(m Module, stage refl.Stage, vulkanBindings bool) {
	ubSlot := uint32(0)
	if vulkanBindings && stage == refl.StageFS {
		ubSlot = vkFSUniformBindingOffset
	}
	for _, ub := range m.UniformBlocks() {
		ub.Set = 0
		ub.Binding = ubSlot
		ubSlot++
	}

	imgSet := uint32(2)
	if stage == refl.StageVS {
		imgSet = 1
	}
	imgSlot := uint32(0)
	for _, img := range m.Images() {
		img.Set = imgSet
		img.Binding = imgSlot
		imgSlot++
	}
}

// forceColMajor marks every float matrix member of every uniform
// block column-major. Targets that default to row-major storage would
// otherwise silently invert the multiplication order.
func forceColMajor(m Module) {
	for _, ub := range m.UniformBlocks() {
		for i := range ub.Members {
			member := &ub.Members[i]
			if member.Scalar == ir.ScalarFloat && member.VecSize > 1 && member.Columns > 1 {
				member.ColMajor = true
			}
		}
	}
}

// flattenUniformBlocks marks every uniform block for rewriting into a
// flat vector array, for targets without native uniform buffer
// objects.
func flattenUniformBlocks(m Module) {
	for _, ub := range m.UniformBlocks() {
		ub.Flattened = true
	}
}
