// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package refl

import "testing"

func TestStage_String(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageInvalid, "invalid"},
		{StageVS, "vs"},
		{StageFS, "fs"},
		{Stage(99), "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.stage.String(); got != tt.want {
				t.Errorf("Stage.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUniformType_String(t *testing.T) {
	tests := []struct {
		typ  UniformType
		want string
	}{
		{UniformInvalid, "invalid"},
		{UniformFloat, "float"},
		{UniformFloat2, "float2"},
		{UniformFloat3, "float3"},
		{UniformFloat4, "float4"},
		{UniformMat4, "mat4"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("UniformType.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImageType_String(t *testing.T) {
	tests := []struct {
		typ  ImageType
		want string
	}{
		{ImageInvalid, "invalid"},
		{Image2D, "2d"},
		{ImageCube, "cube"},
		{Image3D, "3d"},
		{ImageArray, "array"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("ImageType.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAttr_Equal(t *testing.T) {
	base := Attr{Slot: 0, Name: "color", SemName: "TEXCOORD", SemIndex: 0}

	tests := []struct {
		name string
		a    Attr
		b    Attr
		want bool
	}{
		{"identical", base, base, true},
		{"both unused", Attr{Slot: SlotUnused}, Attr{Slot: SlotUnused}, true},
		{"different name", base, Attr{Slot: 0, Name: "uv", SemName: "TEXCOORD", SemIndex: 0}, false},
		{"different slot", base, Attr{Slot: 1, Name: "color", SemName: "TEXCOORD", SemIndex: 0}, false},
		{"different sem index", base, Attr{Slot: 0, Name: "color", SemName: "TEXCOORD", SemIndex: 1}, false},
		{"used vs unused", base, Attr{Slot: SlotUnused}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUniformBlock_Equal(t *testing.T) {
	params := UniformBlock{
		Name: "params",
		Slot: 0,
		Size: 16,
		Uniforms: []Uniform{
			{Name: "mvp", Type: UniformFloat4, ArrayCount: 0, Offset: 0},
		},
	}

	tests := []struct {
		name string
		a    UniformBlock
		b    UniformBlock
		want bool
	}{
		{"identical", params, params, true},
		{
			// binding slots may differ before slot assignment
			"different slot is still equal",
			params,
			UniformBlock{Name: "params", Slot: 3, Size: 16, Uniforms: params.Uniforms},
			true,
		},
		{
			"different name",
			params,
			UniformBlock{Name: "other", Size: 16, Uniforms: params.Uniforms},
			false,
		},
		{
			"different size",
			params,
			UniformBlock{Name: "params", Size: 32, Uniforms: params.Uniforms},
			false,
		},
		{
			"different member count",
			params,
			UniformBlock{Name: "params", Size: 16, Uniforms: []Uniform{
				{Name: "mvp", Type: UniformFloat4},
				{Name: "tint", Type: UniformFloat4, Offset: 16},
			}},
			false,
		},
		{
			"different member type",
			params,
			UniformBlock{Name: "params", Size: 16, Uniforms: []Uniform{
				{Name: "mvp", Type: UniformMat4},
			}},
			false,
		},
		{
			"different member offset",
			params,
			UniformBlock{Name: "params", Size: 16, Uniforms: []Uniform{
				{Name: "mvp", Type: UniformFloat4, Offset: 4},
			}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestImage_Equal(t *testing.T) {
	tex := Image{Name: "tex", Slot: 0, Type: Image2D, BaseType: ImageBaseFloat}

	tests := []struct {
		name string
		a    Image
		b    Image
		want bool
	}{
		{"identical", tex, tex, true},
		{
			"different slot is still equal",
			tex,
			Image{Name: "tex", Slot: 2, Type: Image2D, BaseType: ImageBaseFloat},
			true,
		},
		{"different name", tex, Image{Name: "cube", Type: Image2D}, false},
		{"different type", tex, Image{Name: "tex", Type: ImageCube}, false},
		{"different base type", tex, Image{Name: "tex", Type: Image2D, BaseType: ImageBaseUint}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	r := New()
	for i := 0; i < MaxAttrs; i++ {
		if r.Inputs[i].Slot != SlotUnused {
			t.Errorf("Inputs[%d].Slot = %d, want %d", i, r.Inputs[i].Slot, SlotUnused)
		}
		if r.Outputs[i].Slot != SlotUnused {
			t.Errorf("Outputs[%d].Slot = %d, want %d", i, r.Outputs[i].Slot, SlotUnused)
		}
	}
}
