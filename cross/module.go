// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import (
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/shdc"
	"github.com/gogpu/shdc/refl"
	"github.com/gogpu/shdc/slang"
)

// Config selects the target dialect and per-snippet options for one
// translation.
type Config struct {
	// Slang is the output shading language.
	Slang slang.Slang

	// Stage selects which entry point of the blob to translate.
	Stage refl.Stage

	// Options holds the snippet's option bits for this slang.
	Options shdc.Option
}

// EntryPoint is one (stage, name) pair reported by the translator.
type EntryPoint struct {
	Stage refl.Stage
	Name  string
}

// StageAttr is a stage input or output as seen through the
// translator. Location is a live decoration.
type StageAttr struct {
	// Name is the attribute's declared name.
	Name string

	// Location is the attribute's location decoration.
	Location int
}

// BlockMember is one uniform block member as seen through the
// translator. ColMajor is a live decoration the pass may set before
// emission.
type BlockMember struct {
	// Name is the member name.
	Name string

	// Scalar is the component scalar class.
	Scalar ir.ScalarKind

	// VecSize is the number of vector rows (1 for scalars).
	VecSize int

	// Columns is the number of matrix columns (1 for non-matrices).
	Columns int

	// ArrayCount is the array element count, 0 for non-arrays.
	ArrayCount int

	// Offset is the member's byte offset within the block.
	Offset int

	// ColMajor marks the member for column-major matrix layout.
	ColMajor bool
}

// BlockDecl is one uniform block as seen through the translator.
// Set, Binding and Flattened are live decorations.
type BlockDecl struct {
	// Name is the block's declared name.
	Name string

	// Set is the descriptor set decoration.
	Set uint32

	// Binding is the binding index decoration.
	Binding uint32

	// Size is the declared byte size of the block.
	Size int

	// Members holds the block members in declaration order.
	Members []BlockMember

	// Flattened marks the block for rewriting into a flat vector
	// array on targets without native uniform buffers.
	Flattened bool
}

// ImageDecl is one sampled image as seen through the translator.
// Set and Binding are live decorations.
type ImageDecl struct {
	// Name is the image's declared name.
	Name string

	// Set is the descriptor set decoration.
	Set uint32

	// Binding is the binding index decoration.
	Binding uint32

	// Dim is the image dimensionality.
	Dim ir.ImageDimension

	// Arrayed is true for array textures.
	Arrayed bool

	// Sampled is the scalar class of the sampled component.
	Sampled ir.ScalarKind
}

// Module is one shader seen through the translator between load and
// final code emission. The pass mutates the decoration fields of the
// returned declarations in place; Emit produces the target source
// honoring the mutated state.
type Module interface {
	// Stage returns the execution model of the loaded entry point.
	Stage() refl.Stage

	// EntryPoints returns the translator's entry point list. After
	// Emit the names reflect any renaming the target required.
	EntryPoints() []EntryPoint

	// Inputs returns the stage input attributes.
	Inputs() []*StageAttr

	// Outputs returns the stage output attributes.
	Outputs() []*StageAttr

	// UniformBlocks returns the uniform blocks in declaration order.
	UniformBlocks() []*BlockDecl

	// Images returns the sampled images in declaration order.
	Images() []*ImageDecl

	// Emit generates the target language source.
	Emit() (string, error)
}

// Translator is the external translation collaborator. It parses a
// blob for one target configuration and exposes its resource
// metadata for decoration before emission.
type Translator interface {
	Load(blob *shdc.Blob, cfg Config) (Module, error)
}
