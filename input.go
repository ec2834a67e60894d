// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shdc

import "github.com/gogpu/shdc/slang"

// SnippetType classifies a shader snippet.
type SnippetType uint8

const (
	// SnippetInvalid marks an uninitialized snippet.
	SnippetInvalid SnippetType = iota

	// SnippetVS is a vertex shader snippet.
	SnippetVS

	// SnippetFS is a fragment shader snippet.
	SnippetFS
)

// String returns the snippet type tag.
func (t SnippetType) String() string {
	switch t {
	case SnippetVS:
		return "vs"
	case SnippetFS:
		return "fs"
	default:
		return "invalid"
	}
}

// Option is a per-snippet code generation option bit.
type Option uint32

const (
	// OptionFixupClipspace adjusts gl_Position for targets whose clip
	// space differs from the source convention.
	OptionFixupClipspace Option = 1 << iota

	// OptionFlipVertY flips the vertical axis in the vertex stage.
	OptionFlipVertY
)

// Snippet is one vertex or fragment shader source unit prior to
// translation. Snippets are produced by the upstream frontend and are
// read-only for the cross-compilation pass.
type Snippet struct {
	// Name is the snippet's declared name.
	Name string

	// Type is the shader stage of the snippet.
	Type SnippetType

	// Options holds the per-target option bits, indexed by slang.
	Options [slang.Num]Option

	// LineIndex is the snippet's first line in the source file,
	// used for diagnostics.
	LineIndex int
}

// Program declares a vertex+fragment shader pair whose interface must
// link.
type Program struct {
	// Name is the program's declared name.
	Name string

	// VSName is the name of the vertex shader snippet.
	VSName string

	// FSName is the name of the fragment shader snippet.
	FSName string

	// LineIndex is the program declaration's source line.
	LineIndex int
}

// Input is the parsed source file content handed to a translation
// pass. It is owned by the upstream parser.
type Input struct {
	// Path is the source file path, used for diagnostics.
	Path string

	// Snippets holds all shader snippets in declaration order.
	Snippets []Snippet

	// VSMap maps vertex snippet names to snippet indices.
	VSMap map[string]int

	// FSMap maps fragment snippet names to snippet indices.
	FSMap map[string]int

	// Programs maps program names to program declarations.
	Programs map[string]Program
}

// Error creates an ErrMsg pointing at a line of this input.
func (inp *Input) Error(line int, msg string) ErrMsg {
	return ErrorAt(inp.Path, line, msg)
}
