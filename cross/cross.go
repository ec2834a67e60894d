// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package cross runs one target-language translation pass over a set
// of shader blobs: binding slot assignment, layout fixups, code
// emission through an injected Translator, reflection extraction,
// cross-shader resource deduplication and vertex/fragment interface
// validation.
//
// A pass either fully succeeds or fails with a single diagnostic;
// the first failure aborts the remainder of the pass.
package cross

import (
	"fmt"

	"github.com/gogpu/shdc"
	"github.com/gogpu/shdc/refl"
	"github.com/gogpu/shdc/slang"
)

// Source is the translation result for one (snippet, slang) pair.
type Source struct {
	// Valid is true once translation succeeded.
	Valid bool

	// SnippetIndex identifies the originating snippet.
	SnippetIndex int

	// Code is the generated target language source text.
	Code string

	// Refl is the normalized reflection record.
	Refl refl.Reflection
}

// Result is the outcome of one target pass. The dedup pools and the
// error slot accumulate while the pass runs; they are never shared
// across targets.
type Result struct {
	// Slang is the pass's target language.
	Slang slang.Slang

	// Sources holds one entry per successfully translated snippet, in
	// processing order.
	Sources []Source

	// UniqueUniformBlocks is the deduplicated uniform block pool.
	UniqueUniformBlocks []refl.UniformBlock

	// UniqueImages is the deduplicated image pool.
	UniqueImages []refl.Image

	// Error is set by the first failure; a nil Error means the pass
	// fully succeeded.
	Error *Error
}

// FindSourceBySnippetIndex returns the index into Sources for a
// snippet, or -1.
func (r *Result) FindSourceBySnippetIndex(snippetIndex int) int {
	for i := range r.Sources {
		if r.Sources[i].SnippetIndex == snippetIndex {
			return i
		}
	}
	return -1
}

func snippetStage(t shdc.SnippetType) refl.Stage {
	switch t {
	case shdc.SnippetVS:
		return refl.StageVS
	case shdc.SnippetFS:
		return refl.StageFS
	default:
		return refl.StageInvalid
	}
}

// Translate runs one pass: every blob is translated to lang in
// declaration order, reflected and folded into the dedup pools, then
// every declared program's vertex/fragment interface is validated.
// Processing stops at the first failure with Result.Error set.
func Translate(inp *shdc.Input, blobs []shdc.Blob, lang slang.Slang, tr Translator) *Result {
	res := &Result{Slang: lang}
	vulkan := lang.VulkanBindings()

	for i := range blobs {
		blob := &blobs[i]
		snippet := &inp.Snippets[blob.SnippetIndex]
		stage := snippetStage(snippet.Type)
		cfg := Config{
			Slang:   lang,
			Stage:   stage,
			Options: snippet.Options[lang],
		}

		m, err := tr.Load(blob, cfg)
		if err != nil {
			res.Error = translationFailure(inp, snippet, lang, err)
			return res
		}

		assignBindSlots(m, stage, vulkan)
		if !lang.IsMSL() {
			forceColMajor(m)
		}
		if lang.FlattenUniformBlocks() {
			flattenUniformBlocks(m)
		}

		code, err := m.Emit()
		if err != nil || code == "" {
			res.Error = translationFailure(inp, snippet, lang, err)
			return res
		}

		src := Source{
			Valid:        true,
			SnippetIndex: blob.SnippetIndex,
			Code:         code,
			Refl:         parseReflection(m, vulkan),
		}
		if lang.IsMSL() {
			// Metal entry point functions get a "0" suffix because
			// main() is reserved
			src.Refl.EntryPoint += "0"
		}
		res.Sources = append(res.Sources, src)

		if err := gatherUniqueUniformBlocks(inp, res, &res.Sources[len(res.Sources)-1]); err != nil {
			res.Error = err
			return res
		}
		if err := gatherUniqueImages(inp, res, &res.Sources[len(res.Sources)-1]); err != nil {
			res.Error = err
			return res
		}
	}

	// check that vertex shader outputs match their fragment shader inputs
	if err := validateLinking(inp, res); err != nil {
		res.Error = err
		return res
	}
	return res
}

func translationFailure(inp *shdc.Input, snippet *shdc.Snippet, lang slang.Slang, cause error) *Error {
	msg := fmt.Sprintf("Failed to cross-compile to %s.", lang)
	if cause != nil {
		msg = fmt.Sprintf("Failed to cross-compile to %s: %v.", lang, cause)
	}
	return passError(ErrTranslationFailure, inp.Error(snippet.LineIndex, msg))
}
