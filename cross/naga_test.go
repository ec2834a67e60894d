// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import (
	"strings"
	"testing"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shdc"
	"github.com/gogpu/shdc/refl"
	"github.com/gogpu/shdc/slang"
)

const testShader = `
struct Params {
    mvp: mat4x4<f32>,
};
@group(0) @binding(0) var<uniform> params: Params;

struct VSOut {
    @builtin(position) pos: vec4<f32>,
    @location(0) color: vec4<f32>,
};

@vertex
fn vs_main(@location(0) position: vec4<f32>) -> VSOut {
    var out: VSOut;
    out.pos = params.mvp * position;
    out.color = position;
    return out;
}

@fragment
fn fs_main(@location(0) color: vec4<f32>) -> @location(0) vec4<f32> {
    return color;
}
`

func compileTestShader(t *testing.T) *ir.Module {
	t.Helper()
	ast, err := naga.Parse(testShader)
	require.NoError(t, err)
	mod, err := naga.LowerWithSource(ast, testShader)
	require.NoError(t, err)
	return mod
}

func nagaInput() *shdc.Input {
	return &shdc.Input{
		Path: "test.wgsl",
		Snippets: []shdc.Snippet{
			{Name: "vs_main", Type: shdc.SnippetVS, LineIndex: 1},
			{Name: "fs_main", Type: shdc.SnippetFS, LineIndex: 20},
		},
		VSMap: map[string]int{"vs_main": 0},
		FSMap: map[string]int{"fs_main": 1},
		Programs: map[string]shdc.Program{
			"prog": {Name: "prog", VSName: "vs_main", FSName: "fs_main", LineIndex: 30},
		},
	}
}

func TestNagaTranslator_Targets(t *testing.T) {
	mod := compileTestShader(t)
	blobs := []shdc.Blob{
		{SnippetIndex: 0, Module: mod},
		{SnippetIndex: 1, Module: mod},
	}

	targets := []slang.Slang{
		slang.GLSL330,
		slang.GLSL300ES,
		slang.HLSL5,
		slang.MetalMacOS,
		slang.WGPU,
	}

	for _, lang := range targets {
		t.Run(lang.String(), func(t *testing.T) {
			res := Translate(nagaInput(), blobs, lang, NewNagaTranslator())
			require.Nil(t, res.Error)
			require.Len(t, res.Sources, 2)
			for i := range res.Sources {
				require.True(t, res.Sources[i].Valid)
				require.NotEmpty(t, res.Sources[i].Code)
				require.NotEmpty(t, res.Sources[i].Refl.EntryPoint)
			}
		})
	}
}

func TestNagaTranslator_Reflection(t *testing.T) {
	mod := compileTestShader(t)
	blobs := []shdc.Blob{
		{SnippetIndex: 0, Module: mod},
		{SnippetIndex: 1, Module: mod},
	}

	res := Translate(nagaInput(), blobs, slang.GLSL330, NewNagaTranslator())
	require.Nil(t, res.Error)

	vs := &res.Sources[0].Refl
	require.Equal(t, refl.StageVS, vs.Stage)
	require.Equal(t, "position", vs.Inputs[0].Name)
	require.Equal(t, 0, vs.Inputs[0].Slot)
	require.Equal(t, "color", vs.Outputs[0].Name)

	require.Len(t, vs.UniformBlocks, 1)
	ub := vs.UniformBlocks[0]
	require.Equal(t, "params", ub.Name)
	require.Equal(t, 0, ub.Slot)
	require.Equal(t, 64, ub.Size)
	require.Len(t, ub.Uniforms, 1)
	require.Equal(t, "mvp", ub.Uniforms[0].Name)
	require.Equal(t, refl.UniformMat4, ub.Uniforms[0].Type)
	require.Equal(t, 0, ub.Uniforms[0].Offset)

	fs := &res.Sources[1].Refl
	require.Equal(t, refl.StageFS, fs.Stage)
	require.Equal(t, "color", fs.Inputs[0].Name)

	// both stages fold the shared block into one pool entry
	require.Len(t, res.UniqueUniformBlocks, 1)
	require.Equal(t, 0, vs.UniformBlocks[0].UniqueIndex)
	require.Equal(t, 0, fs.UniformBlocks[0].UniqueIndex)
}

func TestNagaTranslator_MetalEntrySuffix(t *testing.T) {
	mod := compileTestShader(t)
	blobs := []shdc.Blob{{SnippetIndex: 0, Module: mod}}
	inp := nagaInput()
	inp.Programs = nil

	res := Translate(inp, blobs, slang.MetalMacOS, NewNagaTranslator())
	require.Nil(t, res.Error)
	require.True(t, strings.HasSuffix(res.Sources[0].Refl.EntryPoint, "0"))
}

func TestNagaTranslator_SharedBlobUnchanged(t *testing.T) {
	mod := compileTestShader(t)
	blobs := []shdc.Blob{
		{SnippetIndex: 0, Module: mod},
		{SnippetIndex: 1, Module: mod},
	}

	// running WGPU first must not leak its offset bindings into a
	// later flat-binding pass over the same blobs
	res := Translate(nagaInput(), blobs, slang.WGPU, NewNagaTranslator())
	require.Nil(t, res.Error)
	res = Translate(nagaInput(), blobs, slang.GLSL330, NewNagaTranslator())
	require.Nil(t, res.Error)
	require.Equal(t, 0, res.Sources[1].Refl.UniformBlocks[0].Slot)
}

func TestNagaTranslator_MissingModule(t *testing.T) {
	_, err := NewNagaTranslator().Load(&shdc.Blob{SnippetIndex: 3}, Config{
		Slang: slang.GLSL330,
		Stage: refl.StageVS,
	})
	require.Error(t, err)
}

func TestNagaTranslator_MissingEntryPoint(t *testing.T) {
	ast, err := naga.Parse(`
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`)
	require.NoError(t, err)
	mod, err := naga.Lower(ast)
	require.NoError(t, err)

	_, err = NewNagaTranslator().Load(&shdc.Blob{Module: mod}, Config{
		Slang: slang.GLSL330,
		Stage: refl.StageVS,
	})
	require.Error(t, err)
}
