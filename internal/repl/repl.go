// Package repl implements luci's interactive top-level: read one line of
// source at a time, then compile and run it against a single long-lived
// Runtime. Each line is compiled as a program of its own, so its top-level
// variables and functions do not carry over to the next line; the lines
// share only the Runtime's builtins, heap and streams. A construct spanning
// several lines cannot be entered. Expression statements are not echoed:
// only a non-nil value returned by a top-level return statement is printed.
//
// Line editing and history are delegated to chzyer/readline, the library
// the pack's own scripting-VM repos (alongside canonical-starlark's own
// terminal handling) consistently reach for instead of a hand-rolled
// bufio.Scanner loop.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/mna/luci/internal/config"
	"github.com/mna/luci/lang/rt"
	"github.com/mna/luci/lang/value"
)

const (
	prompt             = "luci> "
	defaultHistorySize = 500
)

// Run starts the REPL, reading from in and writing results/diagnostics to
// out/errw. cfg supplies the history file/size and the per-statement step
// limit (see internal/config); a zero Config falls back to an in-memory
// history of defaultHistorySize entries and no step limit. It returns when
// in reaches EOF or
// ctx is canceled.
func Run(ctx context.Context, in io.Reader, out, errw io.Writer, cfg config.Config) error {
	historySize := cfg.HistorySize
	if historySize <= 0 {
		historySize = defaultHistorySize
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		Stdin:           io.NopCloser(in),
		Stdout:          out,
		Stderr:          errw,
		HistoryFile:     cfg.HistoryFile,
		HistoryLimit:    historySize,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	runtime := rt.New()
	runtime.Stdout = out
	runtime.Stderr = errw
	runtime.Stdin = in
	runtime.MaxSteps = cfg.MaxSteps

	count := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		count++
		name := fmt.Sprintf("<repl:%d>", count)
		v, err := runtime.Run(name, []byte(line))
		if err != nil {
			fmt.Fprintln(errw, err)
			continue
		}
		if v != nil && v != value.Nil {
			fmt.Fprintln(out, value.Repr(v))
		}
	}
}
