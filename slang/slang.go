// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package slang enumerates the target shading languages of the
// cross-compilation pipeline.
package slang

// Slang identifies one output shading language dialect.
type Slang uint8

const (
	// GLSL330 is desktop OpenGL 3.3 Core GLSL.
	GLSL330 Slang = iota

	// GLSL100 is WebGL 1 / GLES2 GLSL.
	GLSL100

	// GLSL300ES is WebGL 2 / GLES3 GLSL.
	GLSL300ES

	// HLSL5 is Direct3D 11 HLSL Shader Model 5.
	HLSL5

	// MetalMacOS is Metal Shading Language for macOS.
	MetalMacOS

	// MetalIOS is Metal Shading Language for iOS devices.
	MetalIOS

	// MetalSim is Metal Shading Language for the iOS simulator.
	MetalSim

	// WGPU is the WebGPU-style target using Vulkan binding semantics.
	WGPU

	// Num is the number of target languages.
	Num
)

// String returns the slang tag used in diagnostics and file names.
func (s Slang) String() string {
	switch s {
	case GLSL330:
		return "glsl330"
	case GLSL100:
		return "glsl100"
	case GLSL300ES:
		return "glsl300es"
	case HLSL5:
		return "hlsl5"
	case MetalMacOS:
		return "metal_macos"
	case MetalIOS:
		return "metal_ios"
	case MetalSim:
		return "metal_sim"
	case WGPU:
		return "wgpu"
	default:
		return "invalid"
	}
}

// Parse returns the Slang for a tag produced by String.
func Parse(tag string) (Slang, bool) {
	for s := Slang(0); s < Num; s++ {
		if s.String() == tag {
			return s, true
		}
	}
	return Num, false
}

// IsGLSL returns true for the plain GLSL dialects (not WGPU).
func (s Slang) IsGLSL() bool {
	return s == GLSL330 || s == GLSL100 || s == GLSL300ES
}

// IsHLSL returns true for the HLSL dialect.
func (s Slang) IsHLSL() bool {
	return s == HLSL5
}

// IsMSL returns true for the Metal dialects.
func (s Slang) IsMSL() bool {
	return s == MetalMacOS || s == MetalIOS || s == MetalSim
}

// VulkanBindings returns true for targets using the Vulkan binding
// convention, where fragment shader uniform blocks share descriptor
// set 0 with vertex shader uniform blocks at a fixed binding offset.
func (s Slang) VulkanBindings() bool {
	return s == WGPU
}

// FlattenUniformBlocks returns true for targets whose uniform blocks
// are rewritten into flat vector arrays before emission.
func (s Slang) FlattenUniformBlocks() bool {
	return s.IsGLSL()
}
