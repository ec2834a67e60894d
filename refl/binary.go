// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package refl

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Magic is the binary reflection record signature.
const Magic = "SHDC"

// BinaryVersion is the current binary format version.
const BinaryVersion uint16 = 1

// The binary format is fixed-width and little-endian. Strings are a
// u16 length followed by that many bytes. Only attributes with an
// occupied slot are serialized. Uniform block records carry only the
// member list; block names and slots travel in the code generation
// path, not in the binary record.

type binWriter struct {
	w   io.Writer
	err error
}

func (bw *binWriter) raw(p []byte) {
	if bw.err != nil {
		return
	}
	_, bw.err = bw.w.Write(p)
}

func (bw *binWriter) u8(v uint8) {
	bw.raw([]byte{v})
}

func (bw *binWriter) u16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	bw.raw(buf[:])
}

func (bw *binWriter) str(s string) {
	if len(s) >= math.MaxUint16 {
		panic(fmt.Sprintf("refl: string %q exceeds the 16-bit length limit", s[:32]))
	}
	bw.u16(uint16(len(s)))
	bw.raw([]byte(s))
}

func (bw *binWriter) attr(a Attr) {
	bw.str(a.Name)
	bw.u16(uint16(a.Slot))
	bw.str(a.SemName)
	bw.u8(uint8(a.SemIndex))
}

func (bw *binWriter) uniformBlock(ub UniformBlock) {
	bw.u16(uint16(len(ub.Uniforms)))
	for _, u := range ub.Uniforms {
		bw.str(u.Name)
		bw.u8(uint8(u.Type))
		bw.u16(uint16(u.ArrayCount))
		bw.u16(uint16(u.Offset))
	}
}

func (bw *binWriter) image(img Image) {
	bw.str(img.Name)
	bw.u16(uint16(img.Slot))
	bw.u8(uint8(img.Type))
	bw.u8(uint8(img.BaseType))
}

func countUsed(attrs *[MaxAttrs]Attr) int {
	n := 0
	for _, a := range attrs {
		if a.Slot >= 0 {
			n++
		}
	}
	return n
}

// Encode writes the binary reflection record for r.
//
// Strings longer than 65535 bytes violate the format contract and
// panic; they cannot occur for well-formed shader identifiers.
func Encode(w io.Writer, r *Reflection) error {
	bw := &binWriter{w: w}

	bw.raw([]byte(Magic))
	bw.u16(BinaryVersion)

	bw.u8(uint8(r.Stage))
	bw.str(r.EntryPoint)

	bw.u16(uint16(countUsed(&r.Inputs)))
	for _, a := range r.Inputs {
		if a.Slot >= 0 {
			bw.attr(a)
		}
	}

	bw.u16(uint16(countUsed(&r.Outputs)))
	for _, a := range r.Outputs {
		if a.Slot >= 0 {
			bw.attr(a)
		}
	}

	bw.u16(uint16(len(r.UniformBlocks)))
	for _, ub := range r.UniformBlocks {
		bw.uniformBlock(ub)
	}

	bw.u16(uint16(len(r.Images)))
	for _, img := range r.Images {
		bw.image(img)
	}

	return bw.err
}

type binReader struct {
	r   io.Reader
	err error
}

func (br *binReader) raw(n int) []byte {
	if br.err != nil {
		return nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(br.r, buf); err != nil {
		br.err = err
		return nil
	}
	return buf
}

func (br *binReader) u8() uint8 {
	buf := br.raw(1)
	if buf == nil {
		return 0
	}
	return buf[0]
}

func (br *binReader) u16() uint16 {
	buf := br.raw(2)
	if buf == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(buf)
}

func (br *binReader) str() string {
	n := int(br.u16())
	return string(br.raw(n))
}

func (br *binReader) attr() Attr {
	var a Attr
	a.Name = br.str()
	a.Slot = int(br.u16())
	a.SemName = br.str()
	a.SemIndex = int(br.u8())
	return a
}

// Decode parses a binary reflection record produced by Encode.
//
// Uniform blocks come back with only their member lists populated and
// UniqueIndex set to -1, mirroring what the format carries.
func Decode(r io.Reader) (*Reflection, error) {
	br := &binReader{r: r}

	if magic := string(br.raw(4)); br.err == nil && magic != Magic {
		return nil, fmt.Errorf("refl: bad magic %q", magic)
	}
	if version := br.u16(); br.err == nil && version != BinaryVersion {
		return nil, fmt.Errorf("refl: unsupported binary version %d", version)
	}

	out := New()
	out.Stage = Stage(br.u8())
	out.EntryPoint = br.str()

	for i, n := 0, int(br.u16()); i < n && br.err == nil; i++ {
		a := br.attr()
		if a.Slot >= 0 && a.Slot < MaxAttrs {
			out.Inputs[a.Slot] = a
		}
	}
	for i, n := 0, int(br.u16()); i < n && br.err == nil; i++ {
		a := br.attr()
		if a.Slot >= 0 && a.Slot < MaxAttrs {
			out.Outputs[a.Slot] = a
		}
	}

	for i, n := 0, int(br.u16()); i < n && br.err == nil; i++ {
		ub := UniformBlock{UniqueIndex: -1}
		for j, m := 0, int(br.u16()); j < m && br.err == nil; j++ {
			var u Uniform
			u.Name = br.str()
			u.Type = UniformType(br.u8())
			u.ArrayCount = int(br.u16())
			u.Offset = int(br.u16())
			ub.Uniforms = append(ub.Uniforms, u)
		}
		out.UniformBlocks = append(out.UniformBlocks, ub)
	}

	for i, n := 0, int(br.u16()); i < n && br.err == nil; i++ {
		img := Image{UniqueIndex: -1}
		img.Name = br.str()
		img.Slot = int(br.u16())
		img.Type = ImageType(br.u8())
		img.BaseType = ImageBaseType(br.u8())
		out.Images = append(out.Images, img)
	}

	if br.err != nil {
		return nil, fmt.Errorf("refl: truncated record: %w", br.err)
	}
	return &out, nil
}
