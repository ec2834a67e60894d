// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shdc holds the shared input model for the shader
// cross-compilation pipeline.
//
// The pipeline takes shader snippets that were already lowered to IR
// by the naga frontend and, per target shading language, assigns
// binding slots, invokes the translator, extracts normalized
// reflection metadata, deduplicates resources across shaders and
// validates vertex/fragment interfaces. The heavy lifting lives in
// the cross package:
//
//	res := cross.Translate(inp, blobs, slang.GLSL330, cross.NewNagaTranslator())
//	if res.Error != nil {
//	    log.Fatal(res.Error.Msg.String(shdc.FormatGCC))
//	}
//
// The refl package defines the normalized reflection model plus its
// binary and text renderings.
package shdc

import (
	"github.com/gogpu/naga/ir"
)

// Blob is one shader snippet handed to the translator.
//
// The interchange artifact is the naga IR module lowered upstream
// from the snippet's source; SPIR-V word emission is the job of the
// spirv backend and never enters this pipeline.
type Blob struct {
	// SnippetIndex identifies the originating snippet in Input.Snippets.
	SnippetIndex int

	// Module is the lowered shader module. Read-only for the pipeline;
	// translators may decorate a private copy of its resource bindings.
	Module *ir.Module
}
