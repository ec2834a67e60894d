// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package refl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleReflection() Reflection {
	r := New()
	r.Stage = StageVS
	r.EntryPoint = "main"
	r.Inputs[0] = Attr{Slot: 0, Name: "pos", SemName: "TEXCOORD", SemIndex: 0}
	r.Inputs[2] = Attr{Slot: 2, Name: "uv", SemName: "TEXCOORD", SemIndex: 2}
	r.Outputs[0] = Attr{Slot: 0, Name: "color", SemName: "TEXCOORD", SemIndex: 0}
	r.UniformBlocks = []UniformBlock{
		{
			Name: "params",
			Slot: 0,
			Size: 80,
			Uniforms: []Uniform{
				{Name: "mvp", Type: UniformMat4, ArrayCount: 0, Offset: 0},
				{Name: "tint", Type: UniformFloat4, ArrayCount: 2, Offset: 64},
			},
			UniqueIndex: 0,
		},
	}
	r.Images = []Image{
		{Name: "tex", Slot: 0, Type: Image2D, BaseType: ImageBaseFloat, UniqueIndex: 0},
	}
	return r
}

// TestEncode_Golden pins the exact little-endian byte layout.
func TestEncode_Golden(t *testing.T) {
	r := New()
	r.Stage = StageFS
	r.EntryPoint = "main"
	r.Inputs[0] = Attr{Slot: 0, Name: "uv", SemName: "TEXCOORD", SemIndex: 0}
	r.UniformBlocks = []UniformBlock{
		{Name: "params", Uniforms: []Uniform{
			{Name: "mvp", Type: UniformMat4, ArrayCount: 0, Offset: 0},
		}},
	}
	r.Images = []Image{
		{Name: "tex", Slot: 3, Type: ImageCube, BaseType: ImageBaseUint},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, &r); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := []byte{
		'S', 'H', 'D', 'C', // magic
		0x01, 0x00, // version 1
		0x02,                     // stage fs
		0x04, 0x00, 'm', 'a', 'i', 'n', // entry point
		0x01, 0x00, // input count
		0x02, 0x00, 'u', 'v', // input name
		0x00, 0x00, // input slot
		0x08, 0x00, 'T', 'E', 'X', 'C', 'O', 'O', 'R', 'D', // sem name
		0x00,       // sem index
		0x00, 0x00, // output count
		0x01, 0x00, // uniform block count
		0x01, 0x00, // member count
		0x03, 0x00, 'm', 'v', 'p', // member name
		0x05,       // member type mat4
		0x00, 0x00, // array count
		0x00, 0x00, // offset
		0x01, 0x00, // image count
		0x03, 0x00, 't', 'e', 'x', // image name
		0x03, 0x00, // image slot
		0x02, // image type cube
		0x02, // image base type uint
	}
	if diff := cmp.Diff(want, buf.Bytes()); diff != "" {
		t.Errorf("Encode() byte mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	r := sampleReflection()

	var buf bytes.Buffer
	if err := Encode(&buf, &r); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	got, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	// the block record carries only the member list
	want := r
	want.UniformBlocks = []UniformBlock{
		{Uniforms: r.UniformBlocks[0].Uniforms, UniqueIndex: -1},
	}
	want.Images = []Image{
		{Name: "tex", Slot: 0, Type: Image2D, BaseType: ImageBaseFloat, UniqueIndex: -1},
	}
	if diff := cmp.Diff(&want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	r := sampleReflection()

	var a, b bytes.Buffer
	if err := Encode(&a, &r); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if err := Encode(&b, &r); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("repeated Encode() produced different bytes")
	}
}

func TestEncode_SkipsUnusedSlots(t *testing.T) {
	r := New()
	r.Stage = StageVS
	r.EntryPoint = "main"
	r.Inputs[5] = Attr{Slot: 5, Name: "pos", SemName: "TEXCOORD", SemIndex: 5}

	var buf bytes.Buffer
	if err := Encode(&buf, &r); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	used := 0
	for _, a := range got.Inputs {
		if a.Slot >= 0 {
			used++
		}
	}
	if used != 1 {
		t.Errorf("decoded %d used inputs, want 1", used)
	}
	if !got.Inputs[5].Equal(r.Inputs[5]) {
		t.Errorf("Inputs[5] = %+v, want %+v", got.Inputs[5], r.Inputs[5])
	}
}

func TestDecode_BadMagic(t *testing.T) {
	_, err := Decode(strings.NewReader("NOPExxxxxxxx"))
	if err == nil {
		t.Fatal("Decode() accepted a bad magic")
	}
}

func TestDecode_Truncated(t *testing.T) {
	r := sampleReflection()
	var buf bytes.Buffer
	if err := Encode(&buf, &r); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	_, err := Decode(bytes.NewReader(buf.Bytes()[:buf.Len()/2]))
	if err == nil {
		t.Fatal("Decode() accepted a truncated record")
	}
}

func TestEncode_OversizedStringPanics(t *testing.T) {
	r := New()
	r.EntryPoint = strings.Repeat("x", 70000)

	defer func() {
		if recover() == nil {
			t.Error("Encode() did not panic on an oversized string")
		}
	}()
	_ = Encode(&bytes.Buffer{}, &r)
}
