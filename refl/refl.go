// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package refl defines the normalized shader reflection model.
//
// A Reflection describes one translated shader's interface — stage,
// entry point, vertex attributes, uniform blocks and sampled images —
// independently of the target shading language it was translated to.
// The model has a versioned binary encoding (binary.go), a
// human-readable text rendering (dump.go) and an LZ4-compressed
// multi-record container (bundle.go).
package refl

// MaxAttrs is the number of vertex attribute slots.
const MaxAttrs = 16

// SlotUnused marks an unoccupied attribute slot.
const SlotUnused = -1

// Stage identifies the shader stage of a reflection record.
type Stage uint8

const (
	// StageInvalid marks a stage the pipeline does not handle.
	StageInvalid Stage = iota

	// StageVS is the vertex stage.
	StageVS

	// StageFS is the fragment stage.
	StageFS
)

// String returns the stage tag.
func (s Stage) String() string {
	switch s {
	case StageVS:
		return "vs"
	case StageFS:
		return "fs"
	default:
		return "invalid"
	}
}

// Attr is one vertex shader input or output attribute.
type Attr struct {
	// Slot is the attribute location, or SlotUnused.
	Slot int

	// Name is the attribute's declared name.
	Name string

	// SemName is the HLSL-style semantic name.
	SemName string

	// SemIndex is the HLSL-style semantic index.
	SemIndex int
}

// Equal reports identity of slot, name and semantics. Two unused
// attributes compare equal. The attribute's value type is not part of
// the comparison.
func (a Attr) Equal(o Attr) bool {
	return a.Slot == o.Slot &&
		a.Name == o.Name &&
		a.SemName == o.SemName &&
		a.SemIndex == o.SemIndex
}

// UniformType is the value type of a uniform block member.
type UniformType uint8

const (
	// UniformInvalid marks a member type outside the supported set.
	UniformInvalid UniformType = iota

	// UniformFloat is a scalar 32-bit float.
	UniformFloat

	// UniformFloat2 is a 2-component float vector.
	UniformFloat2

	// UniformFloat3 is a 3-component float vector.
	UniformFloat3

	// UniformFloat4 is a 4-component float vector.
	UniformFloat4

	// UniformMat4 is a 4x4 float matrix.
	UniformMat4
)

// String returns the uniform type tag.
func (t UniformType) String() string {
	switch t {
	case UniformFloat:
		return "float"
	case UniformFloat2:
		return "float2"
	case UniformFloat3:
		return "float3"
	case UniformFloat4:
		return "float4"
	case UniformMat4:
		return "mat4"
	default:
		return "invalid"
	}
}

// Uniform is one member of a uniform block.
type Uniform struct {
	// Name is the member name.
	Name string

	// Type is the member's value type.
	Type UniformType

	// ArrayCount is the array element count, 0 for scalars.
	ArrayCount int

	// Offset is the member's byte offset within the block.
	Offset int
}

// UniformBlock is one uniform buffer declaration.
type UniformBlock struct {
	// Name is the block's declared name.
	Name string

	// Slot is the block's binding slot.
	Slot int

	// Size is the declared byte size of the block.
	Size int

	// Uniforms holds the members in declaration order.
	Uniforms []Uniform

	// UniqueIndex is the index into the pass's deduplicated block
	// pool, -1 until assigned.
	UniqueIndex int
}

// Equal reports structural identity: same name, size and member list.
// The binding slot is not part of the comparison.
func (ub UniformBlock) Equal(o UniformBlock) bool {
	if ub.Name != o.Name || ub.Size != o.Size || len(ub.Uniforms) != len(o.Uniforms) {
		return false
	}
	for i := range ub.Uniforms {
		if ub.Uniforms[i] != o.Uniforms[i] {
			return false
		}
	}
	return true
}

// ImageType is the dimensionality of a sampled image.
type ImageType uint8

const (
	// ImageInvalid marks an image shape outside the supported set.
	ImageInvalid ImageType = iota

	// Image2D is a two-dimensional texture.
	Image2D

	// ImageCube is a cube map texture.
	ImageCube

	// Image3D is a three-dimensional texture.
	Image3D

	// ImageArray is a two-dimensional array texture.
	ImageArray
)

// String returns the image type tag.
func (t ImageType) String() string {
	switch t {
	case Image2D:
		return "2d"
	case ImageCube:
		return "cube"
	case Image3D:
		return "3d"
	case ImageArray:
		return "array"
	default:
		return "invalid"
	}
}

// ImageBaseType is the scalar class of an image's sampled component.
type ImageBaseType uint8

const (
	// ImageBaseFloat samples floating point components.
	ImageBaseFloat ImageBaseType = iota

	// ImageBaseSint samples signed integer components.
	ImageBaseSint

	// ImageBaseUint samples unsigned integer components.
	ImageBaseUint
)

// String returns the base type tag.
func (t ImageBaseType) String() string {
	switch t {
	case ImageBaseSint:
		return "sint"
	case ImageBaseUint:
		return "uint"
	default:
		return "float"
	}
}

// Image is one sampled image declaration.
type Image struct {
	// Name is the image's declared name.
	Name string

	// Slot is the image's binding slot.
	Slot int

	// Type is the image dimensionality.
	Type ImageType

	// BaseType is the sampled component class.
	BaseType ImageBaseType

	// UniqueIndex is the index into the pass's deduplicated image
	// pool, -1 until assigned.
	UniqueIndex int
}

// Equal reports structural identity: same name, dimensionality and
// base type. The binding slot is not part of the comparison.
func (img Image) Equal(o Image) bool {
	return img.Name == o.Name && img.Type == o.Type && img.BaseType == o.BaseType
}

// Reflection is the normalized interface description of one
// translated shader.
type Reflection struct {
	// Stage is the shader stage.
	Stage Stage

	// EntryPoint is the entry point name in the generated source.
	EntryPoint string

	// Inputs holds the stage input attributes, indexed by slot.
	Inputs [MaxAttrs]Attr

	// Outputs holds the stage output attributes, indexed by slot.
	Outputs [MaxAttrs]Attr

	// UniformBlocks holds the uniform blocks in declaration order.
	UniformBlocks []UniformBlock

	// Images holds the sampled images in declaration order.
	Images []Image
}

// New returns a Reflection with all attribute slots marked unused.
func New() Reflection {
	var r Reflection
	for i := range r.Inputs {
		r.Inputs[i].Slot = SlotUnused
		r.Outputs[i].Slot = SlotUnused
	}
	return r
}
