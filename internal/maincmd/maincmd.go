// Package maincmd wires the compiler pipeline to a command-line interface
// (spec §6.3 "Process surface" — a collaborator, not part of the core
// spec). It follows the teacher's reflection-based command dispatch: every
// exported method of Cmd matching the (context.Context, mainer.Stdio,
// []string) error shape becomes a subcommand named after the method, in
// lowercase.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "nenuphar"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

Compiler toolchain for the %[1]s toy imperative language (scanner, parser,
type-checking code generator and bytecode encoder; spec.md §§1-9).

The <command> can be one of:
       tokenize                  Scan the given file(s) and print their
                                 token stream.
       parse                     Parse the given file(s) and print the
                                 resulting abstract syntax tree.
       compile                   Run the full pipeline (scan, parse,
                                 codegen, encode) and write the bytecode
                                 artifact.
       repl                      Start an interactive line editor that
                                 tokenizes (or parses) each line typed.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --with-pos                Include source positions in "parse"
                                 output.
       -o --output <path>        Output path for "compile" (default:
                                 input path with its extension
                                 replaced by ".nbc").
       --parse                   In "repl", parse each line instead of
                                 only tokenizing it.

More information on the %[1]s language:
       see spec.md at the root of this repository.
`, binName)
)

// Cmd holds the flags and dispatches the subcommand, built the same way as
// the teacher's maincmd.Cmd: a flat struct with `flag:"..."` tags consumed
// by mainer.Parser, and a cmdFn resolved by reflection in Validate.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	WithPos   bool   `flag:"with-pos"`
	Output    string `flag:"o,output"`
	ReplParse bool   `flag:"parse"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]
	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	switch cmdName {
	case "tokenize", "parse", "compile":
		if len(c.args[1:]) == 0 {
			return fmt.Errorf("%s: at least one file must be provided", cmdName)
		}
	}
	if cmdName == "compile" && len(c.args[1:]) > 1 && c.Output != "" {
		return errors.New("compile: --output requires a single input file")
	}
	if c.flags["with-pos"] && cmdName != "parse" {
		return fmt.Errorf("%s: invalid flag '--with-pos'", cmdName)
	}
	if c.flags["parse"] && cmdName != "repl" {
		return fmt.Errorf("%s: invalid flag '--parse'", cmdName)
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: binName + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		// each command prints its own diagnostics; just report failure here
		return mainer.Failure
	}
	return mainer.Success
}

// buildCmds mirrors the teacher's reflection-based dispatch table: any
// exported method of v shaped like a subcommand handler is registered under
// its lowercased name.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
