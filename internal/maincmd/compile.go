package maincmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mna/mainer"
	"github.com/mna/nenuphar/lang/compiler"
	"github.com/mna/nenuphar/lang/parser"
)

// Compile is the "compile" subcommand: it runs the full pipeline (scan,
// parse, codegen, encode) over each file and writes the bytecode artifact
// next to it (spec §6.3 "Process surface").
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	out := c.Output
	if out == "" && len(args) == 1 {
		out = defaultOutputPath(args[0])
	}
	return CompileFiles(stdio, out, args...)
}

// defaultOutputPath replaces everything from the last '.' in path with
// ".nbc" (nenuphar bytecode), so "a.nen" becomes "a.nbc"; if path has no '.'
// after its first byte, ".nbc" is appended instead.
func defaultOutputPath(path string) string {
	if i := strings.LastIndexByte(path, '.'); i > 0 {
		return path[:i] + ".nbc"
	}
	return path + ".nbc"
}

// CompileFiles compiles each file independently (spec §1's single
// flat-program scope: there is no cross-file linking) and writes its
// bytecode artifact. outOverride, if non-empty, is only honored when
// exactly one file is given.
//
// On any diagnostic for a given file, spec §7 requires that "the output
// artifact MUST NOT be written or MUST be truncated/removed": this
// implementation never opens the output file until compilation has fully
// succeeded, so a failed compile simply never creates (or touches) it.
func CompileFiles(stdio mainer.Stdio, outOverride string, files ...string) error {
	var failed bool
	for _, path := range files {
		var out string
		if len(files) == 1 {
			out = outOverride
		}
		if out == "" {
			out = defaultOutputPath(path)
		}
		if err := compileOne(stdio, path, out); err != nil {
			failed = true
		}
	}
	if failed {
		return errDiagnosed
	}
	return nil
}

func compileOne(stdio mainer.Stdio, srcPath, outPath string) error {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", srcPath, err)
		return err
	}

	prog, err := parser.Parse(src)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", srcPath, err)
		return err
	}

	compiled, err := compiler.Compile(prog)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", srcPath, err)
		return err
	}

	bin, err := compiler.Encode(compiled)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", srcPath, err)
		return err
	}

	if err := os.WriteFile(outPath, bin, 0o644); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: writing %s: %s\n", srcPath, outPath, err)
		return err
	}

	fmt.Fprintf(stdio.Stdout, "%s: %d constant(s), %d function(s), %d extern(s)\n",
		srcPath, len(compiled.Constants), len(compiled.Functions), len(compiled.Externs))
	return nil
}
