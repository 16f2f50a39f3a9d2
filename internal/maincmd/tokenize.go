package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/nenuphar/lang/scanner"
)

// Tokenize is the "tokenize" subcommand: it scans each file and prints its
// token stream (spec §4.1), one token per line.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args...)
}

// TokenizeFiles scans each named file in turn and prints its tokens to
// stdio.Stdout. It keeps scanning subsequent files even if one produces lex
// errors (LexError is non-fatal, spec §7), but returns a non-nil error if
// any file failed to read or scan cleanly (the diagnostics themselves are
// printed to stdio.Stderr).
func TokenizeFiles(stdio mainer.Stdio, files ...string) error {
	var failed bool
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			failed = true
			continue
		}

		toks, err := scanner.ScanAll(src)
		for _, tv := range toks {
			fmt.Fprintf(stdio.Stdout, "%s:%s: %s", path, tv.Value.Pos, tv.Token)
			if lit := tv.Token.Literal(tv.Value); lit != "" {
				fmt.Fprintf(stdio.Stdout, " %s", lit)
			}
			fmt.Fprintln(stdio.Stdout)
		}
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			failed = true
		}
	}
	if failed {
		return errDiagnosed
	}
	return nil
}
