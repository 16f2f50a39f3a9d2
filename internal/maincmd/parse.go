package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/nenuphar/lang/ast"
	"github.com/mna/nenuphar/lang/parser"
)

// errDiagnosed marks a command failure whose diagnostics have already been
// printed to stderr by the command itself, so Main doesn't print anything
// more (it only needs a non-nil error to pick mainer.Failure).
var errDiagnosed = errors.New("maincmd: diagnostics reported")

// Parse is the "parse" subcommand: it parses each file and prints the
// resulting AST (spec §4.2 "Parser").
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(stdio, c.WithPos, args...)
}

// ParseFiles parses each named file and prints its AST to stdio.Stdout.
// Parse errors for one file do not stop the others from being attempted;
// ParseFiles returns a non-nil error if any file failed to read or parse.
func ParseFiles(stdio mainer.Stdio, withPos bool, files ...string) error {
	var failed bool
	printer := ast.Printer{Output: stdio.Stdout, WithPos: withPos}

	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			failed = true
			continue
		}

		prog, parseErr := parser.Parse(src)
		if err := printer.Print(prog); err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			failed = true
		}
		if parseErr != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, parseErr)
			failed = true
		}
	}
	if failed {
		return errDiagnosed
	}
	return nil
}
