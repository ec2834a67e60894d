// Command shdc cross-compiles a WGSL shader and emits its binding
// reflection.
//
// Usage:
//
//	shdc [options] <input.wgsl>
//
// Examples:
//
//	shdc -slang glsl330 shader.wgsl            # Dump translated source + reflection
//	shdc -slang hlsl5 -o shader.refl shader.wgsl   # Write the reflection bundle
//	shdc -slang metal_macos -dump shader.wgsl  # Metal with debug dump
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/shdc"
	"github.com/gogpu/shdc/cross"
	"github.com/gogpu/shdc/refl"
	"github.com/gogpu/shdc/slang"
)

var (
	slangTag = flag.String("slang", "glsl330", "target shading language")
	output   = flag.String("o", "", "reflection bundle output file")
	dump     = flag.Bool("dump", false, "print the debug dump")
	msvc     = flag.Bool("msvc", false, "use MSVC style error messages")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}
	inputPath := args[0]

	lang, ok := slang.Parse(*slangTag)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown slang %q\n", *slangTag)
		os.Exit(1)
	}

	errFmt := shdc.FormatGCC
	if *msvc {
		errFmt = shdc.FormatMSVC
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	ast, err := naga.Parse(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
		os.Exit(1)
	}
	module, err := naga.LowerWithSource(ast, string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lowering error: %v\n", err)
		os.Exit(1)
	}

	inp, blobs := buildInput(inputPath, module)
	if len(blobs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no vertex or fragment entry point found")
		os.Exit(1)
	}

	res := cross.Translate(inp, blobs, lang, cross.NewNagaTranslator())
	if res.Error != nil {
		fmt.Fprintln(os.Stderr, res.Error.Msg.String(errFmt))
		os.Exit(1)
	}

	if *dump || *output == "" {
		fmt.Print(res.DumpDebug(errFmt))
	}

	if *output != "" {
		if err := writeBundle(*output, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d records)\n", *output, len(res.Sources))
	}
}

// buildInput derives the pass input from the module's entry points:
// one snippet per vertex/fragment entry, plus one linked program when
// both stages are present.
func buildInput(path string, module *ir.Module) (*shdc.Input, []shdc.Blob) {
	inp := &shdc.Input{
		Path:     path,
		VSMap:    make(map[string]int),
		FSMap:    make(map[string]int),
		Programs: make(map[string]shdc.Program),
	}
	var blobs []shdc.Blob
	var vsName, fsName string

	for _, ep := range module.EntryPoints {
		var snippetType shdc.SnippetType
		switch ep.Stage {
		case ir.StageVertex:
			snippetType = shdc.SnippetVS
		case ir.StageFragment:
			snippetType = shdc.SnippetFS
		default:
			continue
		}
		index := len(inp.Snippets)
		inp.Snippets = append(inp.Snippets, shdc.Snippet{
			Name: ep.Name,
			Type: snippetType,
		})
		blobs = append(blobs, shdc.Blob{SnippetIndex: index, Module: module})
		if snippetType == shdc.SnippetVS {
			inp.VSMap[ep.Name] = index
			vsName = ep.Name
		} else {
			inp.FSMap[ep.Name] = index
			fsName = ep.Name
		}
	}

	if vsName != "" && fsName != "" {
		inp.Programs["main"] = shdc.Program{
			Name:   "main",
			VSName: vsName,
			FSName: fsName,
		}
	}
	return inp, blobs
}

func writeBundle(path string, res *cross.Result) error {
	records := make([]*refl.Reflection, 0, len(res.Sources))
	for i := range res.Sources {
		records = append(records, &res.Sources[i].Refl)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := refl.WriteBundle(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: shdc [options] <input.wgsl>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  shdc shader.wgsl                       Dump to stdout\n")
	fmt.Fprintf(os.Stderr, "  shdc -slang hlsl5 -o s.refl shader.wgsl  Write reflection bundle\n")
	fmt.Fprintf(os.Stderr, "  shdc -slang metal_macos -dump shader.wgsl  Metal with dump\n")
}
