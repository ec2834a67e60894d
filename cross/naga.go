// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import (
	"fmt"

	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/hlsl"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/msl"

	"github.com/gogpu/shdc"
	"github.com/gogpu/shdc/refl"
	"github.com/gogpu/shdc/slang"
)

// NagaTranslator is the production Translator, backed by the naga
// backends. The WGPU target emits GLSL 450 text so the reflection and
// dump paths stay uniform across all targets.
//
// TODO: plumb OptionFixupClipspace and OptionFlipVertY through once
// the naga backends grow vertex transform options.
type NagaTranslator struct{}

// NewNagaTranslator returns a translator over the naga backends.
func NewNagaTranslator() *NagaTranslator {
	return &NagaTranslator{}
}

// Load selects the entry point for cfg.Stage and exposes the module's
// resource metadata for decoration.
func (t *NagaTranslator) Load(blob *shdc.Blob, cfg Config) (Module, error) {
	if blob.Module == nil {
		return nil, fmt.Errorf("naga: blob %d carries no module", blob.SnippetIndex)
	}

	// Shallow copy with private globals, so decoration writes never
	// leak into the shared blob.
	mod := *blob.Module
	mod.GlobalVariables = append([]ir.GlobalVariable(nil), blob.Module.GlobalVariables...)

	nm := &nagaModule{ir: &mod, cfg: cfg}
	if err := nm.load(); err != nil {
		return nil, err
	}
	return nm, nil
}

type nagaModule struct {
	ir  *ir.Module
	cfg Config

	entryName string
	inputs    []*StageAttr
	outputs   []*StageAttr

	blocks    []*BlockDecl
	blockVars []int // index into ir.GlobalVariables per block
	images    []*ImageDecl
	imageVars []int
}

func irStage(s refl.Stage) (ir.ShaderStage, bool) {
	switch s {
	case refl.StageVS:
		return ir.StageVertex, true
	case refl.StageFS:
		return ir.StageFragment, true
	default:
		return 0, false
	}
}

func stageOf(s ir.ShaderStage) refl.Stage {
	switch s {
	case ir.StageVertex:
		return refl.StageVS
	case ir.StageFragment:
		return refl.StageFS
	default:
		return refl.StageInvalid
	}
}

func (m *nagaModule) load() error {
	want, ok := irStage(m.cfg.Stage)
	if !ok {
		return fmt.Errorf("naga: unsupported stage %s", m.cfg.Stage)
	}

	var entry *ir.EntryPoint
	for i := range m.ir.EntryPoints {
		if m.ir.EntryPoints[i].Stage == want {
			entry = &m.ir.EntryPoints[i]
			break
		}
	}
	if entry == nil {
		return fmt.Errorf("naga: module has no %s entry point", m.cfg.Stage)
	}
	m.entryName = entry.Name

	fn := &entry.Function
	for i := range fn.Arguments {
		arg := &fn.Arguments[i]
		m.inputs = append(m.inputs, m.ioAttrs(arg.Name, arg.Type, arg.Binding)...)
	}
	if fn.Result != nil {
		m.outputs = m.ioAttrs("out", fn.Result.Type, fn.Result.Binding)
	}

	for i := range m.ir.GlobalVariables {
		gv := &m.ir.GlobalVariables[i]
		switch gv.Space {
		case ir.SpaceUniform:
			st, ok := m.typeInner(gv.Type).(ir.StructType)
			if !ok {
				continue
			}
			decl := &BlockDecl{
				Name: gv.Name,
				Size: int(st.Span),
			}
			if gv.Binding != nil {
				decl.Set = gv.Binding.Group
				decl.Binding = gv.Binding.Binding
			}
			for j := range st.Members {
				member := &st.Members[j]
				bm := BlockMember{
					Name:   member.Name,
					Offset: int(member.Offset),
				}
				bm.Scalar, bm.VecSize, bm.Columns, bm.ArrayCount = m.memberShape(member.Type)
				decl.Members = append(decl.Members, bm)
			}
			m.blocks = append(m.blocks, decl)
			m.blockVars = append(m.blockVars, i)
		case ir.SpaceHandle:
			it, ok := m.typeInner(gv.Type).(ir.ImageType)
			if !ok || it.Class == ir.ImageClassStorage {
				continue
			}
			decl := &ImageDecl{
				Name:    gv.Name,
				Dim:     it.Dim,
				Arrayed: it.Arrayed,
				// ir.ImageType does not carry the sampled scalar kind
				Sampled: ir.ScalarFloat,
			}
			if gv.Binding != nil {
				decl.Set = gv.Binding.Group
				decl.Binding = gv.Binding.Binding
			}
			m.images = append(m.images, decl)
			m.imageVars = append(m.imageVars, i)
		}
	}
	return nil
}

func (m *nagaModule) typeInner(h ir.TypeHandle) ir.TypeInner {
	if int(h) >= len(m.ir.Types) {
		return nil
	}
	return m.ir.Types[h].Inner
}

// ioAttrs flattens one function argument or result into located stage
// attributes. Builtin bindings carry no location and are skipped.
func (m *nagaModule) ioAttrs(name string, h ir.TypeHandle, binding *ir.Binding) []*StageAttr {
	if binding != nil {
		if loc, ok := (*binding).(ir.LocationBinding); ok {
			return []*StageAttr{{Name: name, Location: int(loc.Location)}}
		}
		return nil
	}
	st, ok := m.typeInner(h).(ir.StructType)
	if !ok {
		return nil
	}
	var attrs []*StageAttr
	for i := range st.Members {
		member := &st.Members[i]
		if member.Binding == nil {
			continue
		}
		if loc, ok := (*member.Binding).(ir.LocationBinding); ok {
			attrs = append(attrs, &StageAttr{Name: member.Name, Location: int(loc.Location)})
		}
	}
	return attrs
}

// memberShape resolves a block member type to (scalar, rows, columns,
// array count). Unsupported shapes come back with zero rows/columns
// so the extractor tags them invalid.
func (m *nagaModule) memberShape(h ir.TypeHandle) (ir.ScalarKind, int, int, int) {
	switch inner := m.typeInner(h).(type) {
	case ir.ScalarType:
		return inner.Kind, 1, 1, 0
	case ir.VectorType:
		return inner.Scalar.Kind, int(inner.Size), 1, 0
	case ir.MatrixType:
		return inner.Scalar.Kind, int(inner.Rows), int(inner.Columns), 0
	case ir.ArrayType:
		scalar, vec, cols, _ := m.memberShape(inner.Base)
		count := 0
		if inner.Size.Constant != nil {
			count = int(*inner.Size.Constant)
		}
		return scalar, vec, cols, count
	default:
		return ir.ScalarFloat, 0, 0, 0
	}
}

func (m *nagaModule) Stage() refl.Stage {
	return m.cfg.Stage
}

func (m *nagaModule) EntryPoints() []EntryPoint {
	eps := make([]EntryPoint, 0, len(m.ir.EntryPoints))
	for i := range m.ir.EntryPoints {
		ep := EntryPoint{
			Stage: stageOf(m.ir.EntryPoints[i].Stage),
			Name:  m.ir.EntryPoints[i].Name,
		}
		if ep.Stage == m.cfg.Stage {
			ep.Name = m.entryName
		}
		eps = append(eps, ep)
	}
	return eps
}

func (m *nagaModule) Inputs() []*StageAttr {
	return m.inputs
}

func (m *nagaModule) Outputs() []*StageAttr {
	return m.outputs
}

func (m *nagaModule) UniformBlocks() []*BlockDecl {
	return m.blocks
}

func (m *nagaModule) Images() []*ImageDecl {
	return m.images
}

// Emit writes the mutated set/binding decorations back into the
// module and generates target source through the matching naga
// backend.
func (m *nagaModule) Emit() (string, error) {
	for k, idx := range m.blockVars {
		m.ir.GlobalVariables[idx].Binding = &ir.ResourceBinding{
			Group:   m.blocks[k].Set,
			Binding: m.blocks[k].Binding,
		}
	}
	for k, idx := range m.imageVars {
		m.ir.GlobalVariables[idx].Binding = &ir.ResourceBinding{
			Group:   m.images[k].Set,
			Binding: m.images[k].Binding,
		}
	}

	switch m.cfg.Slang {
	case slang.GLSL330:
		return m.emitGLSL(glsl.Version330)
	case slang.GLSL100:
		return m.emitGLSL(glsl.Version{Major: 1, Minor: 0, ES: true})
	case slang.GLSL300ES:
		return m.emitGLSL(glsl.VersionES300)
	case slang.WGPU:
		return m.emitGLSL(glsl.Version450)
	case slang.HLSL5:
		return m.emitHLSL()
	case slang.MetalMacOS, slang.MetalIOS, slang.MetalSim:
		return m.emitMSL()
	default:
		return "", fmt.Errorf("naga: unsupported slang %s", m.cfg.Slang)
	}
}

func (m *nagaModule) emitGLSL(version glsl.Version) (string, error) {
	code, info, err := glsl.Compile(m.ir, glsl.Options{
		LangVersion: version,
		EntryPoint:  m.entryName,
	})
	if err != nil {
		return "", err
	}
	m.renameEntry(info.EntryPointNames)
	return code, nil
}

func (m *nagaModule) emitHLSL() (string, error) {
	bindings := make(map[hlsl.ResourceBinding]hlsl.BindTarget)
	for _, ub := range m.blocks {
		key := hlsl.ResourceBinding{Group: ub.Set, Binding: ub.Binding}
		bindings[key] = hlsl.BindTarget{Space: uint8(ub.Set), Register: ub.Binding}
	}
	for _, img := range m.images {
		key := hlsl.ResourceBinding{Group: img.Set, Binding: img.Binding}
		bindings[key] = hlsl.BindTarget{Space: uint8(img.Set), Register: img.Binding}
	}

	code, info, err := hlsl.Compile(m.ir, &hlsl.Options{
		ShaderModel:         hlsl.ShaderModel5_0,
		BindingMap:          bindings,
		FakeMissingBindings: true,
		EntryPoint:          m.entryName,
	})
	if err != nil {
		return "", err
	}
	if info != nil {
		m.renameEntry(info.EntryPointNames)
	}
	return code, nil
}

func (m *nagaModule) emitMSL() (string, error) {
	stage, _ := irStage(m.cfg.Stage)
	code, info, err := msl.CompileWithPipeline(m.ir, msl.DefaultOptions(), msl.PipelineOptions{
		EntryPoint: &msl.EntryPointSelector{
			Stage: stage,
			Name:  m.entryName,
		},
	})
	if err != nil {
		return "", err
	}
	m.renameEntry(info.EntryPointNames)
	return code, nil
}

func (m *nagaModule) renameEntry(names map[string]string) {
	if generated, ok := names[m.entryName]; ok && generated != "" {
		m.entryName = generated
	}
}
