// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import "github.com/gogpu/shdc"

// ErrorKind categorizes pass failures. Every kind is fatal to the
// current target pass: no further shaders are processed and nothing
// is serialized.
type ErrorKind uint8

const (
	// ErrTranslationFailure indicates the translator rejected a
	// shader for this target.
	ErrTranslationFailure ErrorKind = iota

	// ErrConflictingDeclaration indicates a same-named uniform block
	// or image with a different structure in another shader.
	ErrConflictingDeclaration

	// ErrInterfaceMismatch indicates vertex shader outputs that do
	// not match the fragment shader inputs of a declared program.
	ErrInterfaceMismatch
)

// String returns a human-readable kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrTranslationFailure:
		return "TranslationFailure"
	case ErrConflictingDeclaration:
		return "ConflictingResourceDeclaration"
	case ErrInterfaceMismatch:
		return "InterfaceMismatch"
	default:
		return "Unknown"
	}
}

// Error is a fatal pass error carrying its source diagnostic.
type Error struct {
	// Kind categorizes the failure.
	Kind ErrorKind

	// Msg locates and describes the failure.
	Msg shdc.ErrMsg
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Msg.String(shdc.FormatGCC)
}

func passError(kind ErrorKind, msg shdc.ErrMsg) *Error {
	return &Error{Kind: kind, Msg: msg}
}
