package machine

import (
	"github.com/mna/luci/lang/compiler"
	"github.com/mna/luci/lang/value"
)

// Frame records one active invocation: the function being executed, its
// program counter, and its locals slice (component C7's per-invocation
// state, as opposed to the immutable FuncProto it was built from).
type Frame struct {
	proto  *compiler.FuncProto
	locals []value.Value
	// globals is the enclosing frame's locals slice at the moment this
	// frame's function was constructed (value.Function.Globals), read by
	// the LOADG opcode for identifiers one lexical scope up. Nil for the
	// top-level frame; every function value built by LOADK captures its
	// defining frame's locals, whether or not its body refers to them.
	globals []value.Value
	pc      int
}

// Position returns the source position of this frame's function
// definition. The implementation keeps only a function-level position
// rather than a full program-counter-to-line table (component C6's
// compiler does not emit one). Nothing in the machine calls it: runtime
// errors are prefixed with the function's name only (see runtimeErr).
func (fr *Frame) Position() int { return int(fr.proto.Pos) }

// Name returns the frame's function name, or "<main>" for the implicit
// top-level program frame.
func (fr *Frame) Name() string {
	if fr.proto.Name == "" {
		return "<main>"
	}
	return fr.proto.Name
}
