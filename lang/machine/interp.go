package machine

import (
	"fmt"

	"github.com/mna/luci/lang/ast"
	"github.com/mna/luci/lang/compiler"
	"github.com/mna/luci/lang/value"
)

// runFrame is the fetch-decode-execute loop for one invocation. A nested
// call (the CALL opcode) recurses into runFrame for the callee, so the Go
// call stack mirrors the Luci call stack; th.frames is kept in parallel so
// that Thread.Roots can report every active frame's locals to the
// collector.
func (th *Thread) runFrame(fr *Frame) (value.Value, error) {
	th.frames = append(th.frames, fr)
	defer func() { th.frames = th.frames[:len(th.frames)-1] }()

	code := fr.proto.Code
	for {
		th.steps++
		if th.MaxSteps > 0 && th.steps > th.MaxSteps {
			return nil, fmt.Errorf("%s: exceeded maximum step count", frameName(fr.proto))
		}

		ins, n := compiler.Decode(code, fr.pc)
		nextPC := fr.pc + n

		switch ins.Op {
		case compiler.HALT:
			return value.Nil, nil

		case compiler.LOADK:
			th.push(th.constValue(fr, ins.Arg))

		case compiler.LOADLOCAL:
			th.push(fr.locals[ins.Arg])

		case compiler.STORELOCAL:
			fr.locals[ins.Arg] = th.pop()

		case compiler.LOADG:
			th.push(fr.globals[ins.Arg])

		case compiler.POP:
			th.pop()

		case compiler.DUP:
			th.push(th.peek())

		case compiler.UNOP:
			v := th.pop()
			res, err := execUnary(compiler.UnOp(ins.Arg), v)
			if err != nil {
				return nil, th.runtimeErr(fr, err)
			}
			th.push(res)

		case compiler.BINOP:
			y := th.pop()
			x := th.pop()
			res, err := value.Binary(ast.BinOp(ins.Arg), x, y)
			if err != nil {
				return nil, th.runtimeErr(fr, err)
			}
			th.push(res)

		case compiler.CGET:
			idx := th.pop()
			c := th.pop()
			res, err := value.CGet(c, idx)
			if err != nil {
				return nil, th.runtimeErr(fr, err)
			}
			th.push(res)

		case compiler.CPUT:
			idx := th.pop()
			c := th.pop()
			v := th.pop()
			if err := value.CPut(c, idx, v); err != nil {
				return nil, th.runtimeErr(fr, err)
			}

		case compiler.MKLIST:
			// Operands stay on th.stack, not just in items, until after Alloc:
			// Alloc can trigger Collect, and Thread.Roots only scans th.stack and
			// frame locals, not Go-level scratch slices. Popping first would let a
			// nested collection see these cells as unreachable and finalize them
			// out from under this still-in-flight construction.
			count := int(ins.Arg)
			items := make([]value.Value, count)
			copy(items, th.stack[len(th.stack)-count:])
			cell := th.Heap.Alloc(value.NewList(items)).(value.Value)
			th.stack = th.stack[:len(th.stack)-count]
			th.push(cell)

		case compiler.MKMAP:
			count := int(ins.Arg)
			base := len(th.stack) - 2*count
			pairs := th.stack[base:]
			m := value.NewMap()
			for i := 0; i < count; i++ {
				k := pairs[2*i]
				v := pairs[2*i+1]
				if err := value.CPut(m, k, v); err != nil {
					return nil, th.runtimeErr(fr, err)
				}
			}
			// See MKLIST: keep the key/value operands rooted on th.stack through
			// Alloc, which may collect before the map itself is reachable.
			cell := th.Heap.Alloc(m).(value.Value)
			th.stack = th.stack[:base]
			th.push(cell)

		case compiler.CALL:
			// args and callee stay on th.stack until the call returns: a callee
			// that allocates past the collection threshold must still find its
			// own arguments (and itself) through Roots, not through this opcode's
			// local copies.
			nargs := int(ins.Arg)
			args := make([]value.Value, nargs)
			copy(args, th.stack[len(th.stack)-nargs:])
			calleeIdx := len(th.stack) - nargs - 1
			callee := th.stack[calleeIdx]
			res, err := th.Call(callee, args)
			if err != nil {
				return nil, th.runtimeErr(fr, err)
			}
			th.stack = th.stack[:calleeIdx]
			th.push(res)

		case compiler.RETURN:
			return th.pop(), nil

		case compiler.JUMP:
			fr.pc = int(ins.Arg)
			continue

		case compiler.POPJUMP:
			th.pop()
			fr.pc = int(ins.Arg)
			continue

		case compiler.JUMPZ:
			v := th.pop()
			if !value.AsBool(v) {
				fr.pc = int(ins.Arg)
				continue
			}

		case compiler.MKITER:
			c := th.pop()
			it, err := value.NewIterState(c)
			if err != nil {
				return nil, th.runtimeErr(fr, err)
			}
			th.push(th.Heap.Alloc(it).(value.Value))

		case compiler.ITERJUMP:
			it := th.peek().(*value.IterState)
			if v, ok := it.Next(); ok {
				th.push(v)
			} else {
				th.pop()
				fr.pc = int(ins.Arg)
				continue
			}

		default:
			return nil, th.runtimeErr(fr, fmt.Errorf("unimplemented opcode %s", ins.Op))
		}

		fr.pc = nextPC
	}
}

// constValue materializes a bytecode constant as a runtime value.Value. A
// *compiler.FuncProto constant becomes a fresh *value.Function bound to
// fr's locals: Luci has no dedicated "make function" opcode, so closure
// construction piggybacks on LOADK, the only instruction that ever turns a
// constant-pool entry into a runtime value.
func (th *Thread) constValue(fr *Frame, ix uint32) value.Value {
	switch c := fr.proto.Consts[ix].(type) {
	case int64:
		return value.Int(c)
	case float64:
		return value.Float(c)
	case string:
		return value.String(c)
	case compiler.NilConst:
		return value.Nil
	case *compiler.FuncProto:
		return th.Heap.Alloc(value.NewFunction(c, fr.locals)).(value.Value)
	default:
		panic(fmt.Sprintf("machine: unexpected constant type %T", c))
	}
}

func execUnary(op compiler.UnOp, v value.Value) (value.Value, error) {
	switch op {
	case compiler.OpNeg:
		return value.Neg(v)
	case compiler.OpLgNot:
		return value.LgNot(v), nil
	case compiler.OpBwNot:
		return value.BwNot(v)
	}
	return nil, fmt.Errorf("unknown unary operator %d", op)
}

func (th *Thread) runtimeErr(fr *Frame, err error) error {
	return fmt.Errorf("%s: %w", frameName(fr.proto), err)
}
