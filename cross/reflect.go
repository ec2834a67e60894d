// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import (
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/shdc/refl"
)

// semName is the synthetic semantic tag assigned to every attribute;
// the semantic index carries the slot.
const semName = "TEXCOORD"

// uniformType maps a block member's shape to the reflection value
// type. Shapes outside the supported set degrade to UniformInvalid
// rather than failing.
func uniformType(m *BlockMember) refl.UniformType {
	if m.Scalar != ir.ScalarFloat {
		return refl.UniformInvalid
	}
	if m.Columns == 1 {
		// scalar or vector
		switch m.VecSize {
		case 1:
			return refl.UniformFloat
		case 2:
			return refl.UniformFloat2
		case 3:
			return refl.UniformFloat3
		case 4:
			return refl.UniformFloat4
		}
	} else if m.VecSize == 4 && m.Columns == 4 {
		return refl.UniformMat4
	}
	return refl.UniformInvalid
}

// imageType maps dimensionality and array-ness to the reflection
// image type. Only 2D images may be arrayed.
func imageType(d *ImageDecl) refl.ImageType {
	if d.Arrayed {
		if d.Dim == ir.Dim2D {
			return refl.ImageArray
		}
		return refl.ImageInvalid
	}
	switch d.Dim {
	case ir.Dim2D:
		return refl.Image2D
	case ir.DimCube:
		return refl.ImageCube
	case ir.Dim3D:
		return refl.Image3D
	default:
		return refl.ImageInvalid
	}
}

// imageBaseType maps the sampled component's scalar class.
func imageBaseType(k ir.ScalarKind) refl.ImageBaseType {
	switch k {
	case ir.ScalarSint:
		return refl.ImageBaseSint
	case ir.ScalarUint:
		return refl.ImageBaseUint
	default:
		return refl.ImageBaseFloat
	}
}

// parseReflection builds the normalized reflection record from a
// translated module. Attribute slots outside the supported range are
// skipped; unsupported value and image shapes are tagged invalid and
// left for downstream consumers to reject.
func parseReflection(m Module, vulkanBindings bool) refl.Reflection {
	out := refl.New()

	out.Stage = m.Stage()
	for _, ep := range m.EntryPoints() {
		if ep.Stage == out.Stage {
			out.EntryPoint = ep.Name
			break
		}
	}

	for _, attr := range m.Inputs() {
		if attr.Location < 0 || attr.Location >= refl.MaxAttrs {
			continue
		}
		out.Inputs[attr.Location] = refl.Attr{
			Slot:     attr.Location,
			Name:     attr.Name,
			SemName:  semName,
			SemIndex: attr.Location,
		}
	}
	for _, attr := range m.Outputs() {
		if attr.Location < 0 || attr.Location >= refl.MaxAttrs {
			continue
		}
		out.Outputs[attr.Location] = refl.Attr{
			Slot:     attr.Location,
			Name:     attr.Name,
			SemName:  semName,
			SemIndex: attr.Location,
		}
	}

	for _, ub := range m.UniformBlocks() {
		slot := int(ub.Binding)
		// shift fragment shader uniform blocks back to their logical slot
		if vulkanBindings && slot >= vkFSUniformBindingOffset {
			slot -= vkFSUniformBindingOffset
		}
		rub := refl.UniformBlock{
			Name:        ub.Name,
			Slot:        slot,
			Size:        ub.Size,
			UniqueIndex: -1,
		}
		for i := range ub.Members {
			member := &ub.Members[i]
			rub.Uniforms = append(rub.Uniforms, refl.Uniform{
				Name:       member.Name,
				Type:       uniformType(member),
				ArrayCount: member.ArrayCount,
				Offset:     member.Offset,
			})
		}
		out.UniformBlocks = append(out.UniformBlocks, rub)
	}

	for _, img := range m.Images() {
		out.Images = append(out.Images, refl.Image{
			Name:        img.Name,
			Slot:        int(img.Binding),
			Type:        imageType(img),
			BaseType:    imageBaseType(img.Sampled),
			UniqueIndex: -1,
		})
	}

	return out
}
