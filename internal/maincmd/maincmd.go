// Package maincmd implements the luci command-line surface: flag parsing,
// compile/run dispatch and the REPL fallback, following the teacher's
// mainer.Cmd shape (internal/maincmd/maincmd.go, cmd/nenuphar/main.go)
// adapted to Luci's own flag set (spec.md §6: -h -v -n -g -p -c -V).
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/luci/internal/config"
	"github.com/mna/luci/internal/repl"
	"github.com/mna/luci/lang/ast"
	"github.com/mna/luci/lang/compiler"
	"github.com/mna/luci/lang/rt"
)

const binName = "luci"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<path>]

Compiler and interpreter for the %[1]s scripting language. With a <path>
argument, compiles and runs that source file; with none, starts an
interactive REPL reading from stdin.

Valid flag options are:
       -h --help                 Show this help and exit.
       -V --version              Print version and exit.
       -v --verbose              Set the runtime's verbose flag; no
                                 extra output is produced.
       -n --no-exec              Compile but do not execute.
       -g --dot                  Print the parsed AST as a Graphviz DOT
                                 graph instead of running it.
       -p --disasm               Print the compiled bytecode disassembly
                                 instead of running it.
       -c --compile <out>        Write serialized bytecode to <out>
                                 instead of running it.
`, binName)
)

// Cmd is the mainer.Cmd implementation for the luci binary.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"V,version"`
	Verbose bool `flag:"v,verbose"`
	NoExec  bool `flag:"n,no-exec"`
	Dot     bool `flag:"g,dot"`
	Disasm  bool `flag:"p,disasm"`
	Compile string `flag:"c,compile"`

	args []string
}

func (c *Cmd) SetArgs(args []string)          { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) {}

// Validate enforces that at most one source path is given, and that the
// AST/bytecode inspection flags are not combined in ways that don't make
// sense together.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) > 1 {
		return errors.New("at most one source path may be given")
	}
	n := 0
	for _, set := range []bool{c.Dot, c.Disasm, c.Compile != ""} {
		if set {
			n++
		}
	}
	if n > 1 {
		return errors.New("only one of --dot, --disasm or --compile may be given")
	}
	return nil
}

// Main is the mainer entry point: parse flags, then dispatch to either the
// one-shot file pipeline or the REPL.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: true, EnvPrefix: "LUCI_"}
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
	if err := c.run(ctx, stdio); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}
	return mainer.Success
}

// loadConfig resolves and loads .lucirc (current directory, then home),
// applying LUCI_* environment overrides. A missing file is not an error:
// env vars (and zero-value defaults) still apply on their own.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(config.Resolve())
	if err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

func (c *Cmd) run(ctx context.Context, stdio mainer.Stdio) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(c.args) == 0 {
		return repl.Run(ctx, stdio.Stdin, stdio.Stdout, stdio.Stderr, cfg)
	}
	return c.runFile(c.args[0], stdio, cfg)
}

func (c *Cmd) runFile(path string, stdio mainer.Stdio, cfg config.Config) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	runtime := rt.New()
	runtime.Verbose = c.Verbose
	runtime.Stdout = stdio.Stdout
	runtime.Stderr = stdio.Stderr
	runtime.Stdin = stdio.Stdin
	runtime.MaxSteps = cfg.MaxSteps

	block, prog, err := runtime.Compile(path, src)
	if err != nil {
		return err
	}

	switch {
	case c.Dot:
		ast.WriteDOT(stdio.Stdout, path, block)
		return nil
	case c.Disasm:
		return compiler.Disassemble(stdio.Stdout, prog.Main)
	case c.Compile != "":
		return writeCompiled(c.Compile, prog)
	case c.NoExec:
		return nil
	}

	_, err = runtime.RunProgram(prog)
	return err
}

func writeCompiled(path string, prog *compiler.Program) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return compiler.EncodeProgram(f, prog)
}
