// Package stdlib implements Luci's builtin function set (the library
// function ABI of component "standard library dispatch"): every entry is a
// *value.LibFunc of signature func(args []value.Value) (value.Value, error),
// registered by name into the top-level frame's locals before the program
// runs, mirroring the way the teacher's Thread.Predeclared/universe.go
// inject built-ins ahead of execution.
package stdlib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/mna/luci/lang/ast"
	"github.com/mna/luci/lang/gc"
	"github.com/mna/luci/lang/value"
)

// New returns the builtin set bound to the given streams and heap, ready to
// be merged into a Runtime's globals map.
func New(stdout io.Writer, stdin io.Reader, heap *gc.Heap) map[string]value.Value {
	b := &builtins{stdout: stdout, stdin: bufio.NewReader(stdin), heap: heap}

	fns := map[string]func(args []value.Value) (value.Value, error){
		"print":    b.print,
		"println":  b.println,
		"open":     b.open,
		"close":    b.close,
		"read":     b.read,
		"readline": b.readline,
		"write":    b.write,
		"len":      b.len,
		"range":    b.rangeFn,
		"sum":      b.sum,
		"type":     b.typeFn,
		"str":      b.str,
		"int":      b.intFn,
		"float":    b.floatFn,
		"append":   b.appendFn,
		"keys":     b.keys,
		"sorted":   b.sorted,
	}

	out := make(map[string]value.Value, len(fns))
	for name, fn := range fns {
		out[name] = &value.LibFunc{FuncName: name, Fn: fn}
	}
	return out
}

type builtins struct {
	stdout io.Writer
	stdin  *bufio.Reader
	heap   *gc.Heap
}

func arityErr(name string, want string, got int) error {
	return fmt.Errorf("%s: expected %s argument(s), got %d", name, want, got)
}

func (b *builtins) print(args []value.Value) (value.Value, error) {
	for i, a := range args {
		if i > 0 {
			io.WriteString(b.stdout, " ")
		}
		value.Print(b.stdout, a)
	}
	return value.Nil, nil
}

func (b *builtins) println(args []value.Value) (value.Value, error) {
	if _, err := b.print(args); err != nil {
		return nil, err
	}
	io.WriteString(b.stdout, "\n")
	return value.Nil, nil
}

func (b *builtins) open(args []value.Value) (value.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, arityErr("open", "1 or 2", len(args))
	}
	path, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("open: path must be a string, got %s", value.TypeName(args[0]))
	}
	mode := "r"
	if len(args) == 2 {
		m, ok := args[1].(value.String)
		if !ok {
			return nil, fmt.Errorf("open: mode must be a string, got %s", value.TypeName(args[1]))
		}
		mode = string(m)
	}

	var flag int
	switch mode {
	case "r":
		flag = os.O_RDONLY
	case "w":
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case "a":
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return nil, fmt.Errorf("open: unknown mode %q", mode)
	}

	f, err := value.OpenFile(string(path), flag, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	return b.heap.Alloc(f).(value.Value), nil
}

func (b *builtins) close(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("close", "1", len(args))
	}
	f, ok := args[0].(*value.File)
	if !ok {
		return nil, fmt.Errorf("close: expected a file, got %s", value.TypeName(args[0]))
	}
	return value.Nil, f.Close()
}

func (b *builtins) read(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("read", "1", len(args))
	}
	f, ok := args[0].(*value.File)
	if !ok {
		return nil, fmt.Errorf("read: expected a file, got %s", value.TypeName(args[0]))
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return value.String(data), nil
}

// readline reads a line from the file given as the sole argument, or from
// the runtime's stdin when called with no arguments; in the REPL that is
// the same stream the REPL reads its input lines from.
func (b *builtins) readline(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		line, err := b.stdin.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("readline: %w", err)
		}
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		if line == "" && err == io.EOF {
			return value.Nil, nil
		}
		return value.String(line), nil
	}
	if len(args) != 1 {
		return nil, arityErr("readline", "0 or 1", len(args))
	}
	f, ok := args[0].(*value.File)
	if !ok {
		return nil, fmt.Errorf("readline: expected a file, got %s", value.TypeName(args[0]))
	}
	line, err := f.ReadLine()
	if err == io.EOF {
		return value.Nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("readline: %w", err)
	}
	return value.String(line), nil
}

func (b *builtins) write(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityErr("write", "2", len(args))
	}
	f, ok := args[0].(*value.File)
	if !ok {
		return nil, fmt.Errorf("write: expected a file, got %s", value.TypeName(args[0]))
	}
	s, ok := args[1].(value.String)
	if !ok {
		return nil, fmt.Errorf("write: expected a string, got %s", value.TypeName(args[1]))
	}
	n, err := f.Write([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	return value.Int(n), nil
}

func (b *builtins) len(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("len", "1", len(args))
	}
	n, ok := value.Len(args[0])
	if !ok {
		return nil, fmt.Errorf("len: type %s has no length", value.TypeName(args[0]))
	}
	return value.Int(n), nil
}

// rangeFn builds a list the way range(stop), range(start, stop) and
// range(start, stop, step) do in the pack's scripting languages: eagerly
// materialized rather than lazily generated, since Luci's only iteration
// protocol (MKITER/ITERJUMP) already expects a concrete container.
func (b *builtins) rangeFn(args []value.Value) (value.Value, error) {
	var start, stop, step int64 = 0, 0, 1
	switch len(args) {
	case 1:
		n, ok := args[0].(value.Int)
		if !ok {
			return nil, fmt.Errorf("range: argument must be an int, got %s", value.TypeName(args[0]))
		}
		stop = int64(n)
	case 2, 3:
		n0, ok0 := args[0].(value.Int)
		n1, ok1 := args[1].(value.Int)
		if !ok0 || !ok1 {
			return nil, fmt.Errorf("range: arguments must be ints")
		}
		start, stop = int64(n0), int64(n1)
		if len(args) == 3 {
			n2, ok2 := args[2].(value.Int)
			if !ok2 {
				return nil, fmt.Errorf("range: step must be an int")
			}
			step = int64(n2)
		}
	default:
		return nil, arityErr("range", "1, 2 or 3", len(args))
	}
	if step == 0 {
		return nil, fmt.Errorf("range: step must not be zero")
	}

	var items []value.Value
	if step > 0 {
		for i := start; i < stop; i += step {
			items = append(items, value.Int(i))
		}
	} else {
		for i := start; i > stop; i += step {
			items = append(items, value.Int(i))
		}
	}
	return b.heap.Alloc(value.NewList(items)).(value.Value), nil
}

func (b *builtins) sum(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("sum", "1", len(args))
	}
	it, err := value.Iterate(args[0])
	if err != nil {
		return nil, fmt.Errorf("sum: %w", err)
	}
	var total value.Value = value.Int(0)
	var cur value.Value
	for it.Next(&cur) {
		total, err = value.Binary(ast.OpAdd, total, cur)
		if err != nil {
			return nil, fmt.Errorf("sum: %w", err)
		}
	}
	return total, nil
}

func (b *builtins) typeFn(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("type", "1", len(args))
	}
	return value.String(value.TypeName(args[0])), nil
}

func (b *builtins) str(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("str", "1", len(args))
	}
	if s, ok := args[0].(value.String); ok {
		return s, nil
	}
	return value.String(value.Repr(args[0])), nil
}

func (b *builtins) intFn(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("int", "1", len(args))
	}
	switch v := args[0].(type) {
	case value.Int:
		return v, nil
	case value.Float:
		return value.Int(int64(v)), nil
	case value.String:
		return value.ParseInt(string(v))
	default:
		return nil, fmt.Errorf("int: cannot convert %s to int", value.TypeName(args[0]))
	}
}

func (b *builtins) floatFn(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("float", "1", len(args))
	}
	switch v := args[0].(type) {
	case value.Float:
		return v, nil
	case value.Int:
		return value.Float(float64(v)), nil
	case value.String:
		return value.ParseFloat(string(v))
	default:
		return nil, fmt.Errorf("float: cannot convert %s to float", value.TypeName(args[0]))
	}
}

// appendFn grows lst in place, mirroring the teacher's own builtins that
// mutate the receiver rather than allocate a fresh list for every push.
func (b *builtins) appendFn(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityErr("append", "2", len(args))
	}
	l, ok := args[0].(*value.List)
	if !ok {
		return nil, fmt.Errorf("append: expected a list, got %s", value.TypeName(args[0]))
	}
	l.Items = append(l.Items, args[1])
	return l, nil
}

func (b *builtins) keys(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("keys", "1", len(args))
	}
	it, err := value.Iterate(args[0])
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	var items []value.Value
	var cur value.Value
	for it.Next(&cur) {
		items = append(items, cur)
	}
	return b.heap.Alloc(value.NewList(items)).(value.Value), nil
}

func (b *builtins) sorted(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("sorted", "1", len(args))
	}
	it, err := value.Iterate(args[0])
	if err != nil {
		return nil, fmt.Errorf("sorted: %w", err)
	}
	var items []value.Value
	var cur value.Value
	for it.Next(&cur) {
		items = append(items, cur)
	}
	var sortErr error
	sort.SliceStable(items, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		lt, err := value.Binary(ast.OpLt, items[i], items[j])
		if err != nil {
			sortErr = err
			return false
		}
		return value.AsBool(lt)
	})
	if sortErr != nil {
		return nil, fmt.Errorf("sorted: %w", sortErr)
	}
	return b.heap.Alloc(value.NewList(items)).(value.Value), nil
}
