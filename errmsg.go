// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shdc

import "fmt"

// MsgFormat selects the rendering convention for diagnostics.
type MsgFormat uint8

const (
	// FormatGCC renders "file:line:0: error: msg".
	FormatGCC MsgFormat = iota

	// FormatMSVC renders "file(line): error: msg".
	FormatMSVC
)

// ErrMsg is one pass-level diagnostic. The zero value is "no error";
// a translation pass carries at most one live ErrMsg, set by the
// first failure.
type ErrMsg struct {
	// Valid is true if the message is set.
	Valid bool

	// File is the source file path.
	File string

	// Line is the 1-based source line.
	Line int

	// Msg is the human-readable message.
	Msg string
}

// ErrorAt creates a valid ErrMsg for the given location.
func ErrorAt(file string, line int, msg string) ErrMsg {
	return ErrMsg{
		Valid: true,
		File:  file,
		Line:  line,
		Msg:   msg,
	}
}

// String renders the message in the requested format.
func (e ErrMsg) String(f MsgFormat) string {
	if f == FormatMSVC {
		return fmt.Sprintf("%s(%d): error: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d:0: error: %s", e.File, e.Line, e.Msg)
}
