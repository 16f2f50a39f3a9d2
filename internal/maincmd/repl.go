package maincmd

import (
	"context"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/mna/mainer"
	"github.com/mna/nenuphar/lang/ast"
	"github.com/mna/nenuphar/lang/parser"
	"github.com/mna/nenuphar/lang/scanner"
)

// Repl is the "repl" subcommand: a line-editing read-eval-print loop that
// tokenizes (or, with --parse, parses) each line typed interactively and
// prints the result. This is pure front-end exploration: there is no
// virtual machine in scope (spec §1) to actually execute anything.
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "nenuphar> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	defer rl.Close()

	printer := ast.Printer{Output: stdio.Stdout, WithPos: c.WithPos}

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
		if line == "" {
			continue
		}

		if c.ReplParse {
			replParseLine(stdio, &printer, line)
		} else {
			replTokenizeLine(stdio, line)
		}
	}
}

func replTokenizeLine(stdio mainer.Stdio, line string) {
	toks, err := scanner.ScanAll([]byte(line))
	for _, tv := range toks {
		fmt.Fprintf(stdio.Stdout, "%s: %s", tv.Value.Pos, tv.Token)
		if lit := tv.Token.Literal(tv.Value); lit != "" {
			fmt.Fprintf(stdio.Stdout, " %s", lit)
		}
		fmt.Fprintln(stdio.Stdout)
	}
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
	}
}

func replParseLine(stdio mainer.Stdio, printer *ast.Printer, line string) {
	prog, err := parser.Parse([]byte(line))
	if perr := printer.Print(prog); perr != nil {
		fmt.Fprintln(stdio.Stderr, perr)
	}
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
	}
}
