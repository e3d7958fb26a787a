// Package machine implements the stack-based bytecode interpreter
// (component C8): a single shared operand stack plus a frame stack
// (threaded through Go's own call stack via runFrame's recursion on CALL),
// dispatching each fixed-width instruction decoded from a component C6
// FuncProto.
package machine

import (
	"fmt"
	"io"
	"os"

	"github.com/mna/luci/lang/compiler"
	"github.com/mna/luci/lang/gc"
	"github.com/mna/luci/lang/value"
)

// Thread is one independent execution context: its own operand stack, call
// stack and step counter. Nothing here locks, and a Heap holds a single
// root-scanning callback (see gc.Heap.SetRoots), so Threads that share a
// Heap must not run concurrently.
type Thread struct {
	Name string

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	Heap *gc.Heap

	// MaxSteps bounds the number of executed instructions before the thread
	// aborts with an error; zero means unbounded.
	MaxSteps uint64

	stack  []value.Value
	frames []*Frame
	steps  uint64
}

func (th *Thread) init() {
	if th.Stdout == nil {
		th.Stdout = os.Stdout
	}
	if th.Stderr == nil {
		th.Stderr = os.Stderr
	}
	if th.Stdin == nil {
		th.Stdin = os.Stdin
	}
	if th.Heap == nil {
		th.Heap = gc.NewHeap(4096, func() []gc.Cell { return th.Roots() })
	}
}

// Roots reports every heap cell directly reachable from this thread's live
// state: every value on the operand stack, and every local of every active
// frame. It is the root-scanning callback component C1's collector needs.
func (th *Thread) Roots() []gc.Cell {
	var roots []gc.Cell
	for _, v := range th.stack {
		if c, ok := v.(gc.Cell); ok {
			roots = append(roots, c)
		}
	}
	for _, fr := range th.frames {
		for _, v := range fr.locals {
			if c, ok := v.(gc.Cell); ok {
				roots = append(roots, c)
			}
		}
	}
	return roots
}

// Run executes proto's top-level function to completion, returning the
// value of its implicit final return.
func (th *Thread) Run(proto *compiler.FuncProto) (value.Value, error) {
	th.init()
	top := value.NewFunction(proto, nil)
	return th.Call(top, nil)
}

// RunProgram runs prog's top-level function, seeding any of its local slots
// whose name matches an entry of globals before execution starts. The
// top-level function has no enclosing scope of its own to fall back to, so
// builtins are bound as ordinary locals of the top level (pre-reserved by
// the compiler, see lang/compiler.Compile's globals parameter) and filled
// in here; a nested function then sees them the same way it sees any other
// enclosing-scope name, via a single LOADG hop.
func (th *Thread) RunProgram(prog *compiler.Program, globals map[string]value.Value) (value.Value, error) {
	th.init()
	proto := prog.Main

	locals := make([]value.Value, proto.NumLocals)
	for i := range locals {
		locals[i] = value.Nil
	}
	for i, name := range proto.Locals {
		if v, ok := globals[name]; ok {
			locals[i] = v
		}
	}

	fr := &Frame{proto: proto, locals: locals}
	return th.runFrame(fr)
}

func (th *Thread) push(v value.Value) { th.stack = append(th.stack, v) }

func (th *Thread) pop() value.Value {
	v := th.stack[len(th.stack)-1]
	th.stack = th.stack[:len(th.stack)-1]
	return v
}

func (th *Thread) peek() value.Value { return th.stack[len(th.stack)-1] }

// Call invokes callee (a *value.Function or *value.LibFunc) with args,
// enforcing component C8's arity check and copy-on-call argument binding
// for Luci functions.
func (th *Thread) Call(callee value.Value, args []value.Value) (value.Value, error) {
	switch fn := callee.(type) {
	case *value.LibFunc:
		return fn.Fn(args)
	case *value.Function:
		return th.callFunction(fn, args)
	default:
		return nil, fmt.Errorf("attempt to call a non-function value of type %s", value.TypeName(callee))
	}
}

func (th *Thread) callFunction(fn *value.Function, args []value.Value) (value.Value, error) {
	proto := fn.Proto
	if len(args) != proto.NumParams {
		return nil, fmt.Errorf("%s: expected %d argument(s), got %d", frameName(proto), proto.NumParams, len(args))
	}

	locals := make([]value.Value, proto.NumLocals)
	for i := range locals {
		locals[i] = value.Nil
	}
	for i, a := range args {
		locals[i] = value.Deepcopy(a)
	}

	fr := &Frame{proto: proto, locals: locals, globals: fn.Globals}
	return th.runFrame(fr)
}

func frameName(p *compiler.FuncProto) string {
	if p.Name == "" {
		return "<anonymous>"
	}
	return p.Name
}
