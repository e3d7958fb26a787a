package compiler

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Disassemble writes a human-readable listing of proto's bytecode to w, one
// instruction per line: its word offset, mnemonic, and decoded operand
// (resolved to the constant or local name it refers to where that helps
// readability). Nested function prototypes found in the constant pool are
// listed recursively, each under its own header.
func Disassemble(w io.Writer, proto *FuncProto) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := disasm(tw, proto); err != nil {
		return err
	}
	return tw.Flush()
}

func disasm(w *tabwriter.Writer, proto *FuncProto) error {
	name := proto.Name
	if name == "" {
		name = "<main>"
	}
	fmt.Fprintf(w, "function %s(%d params, %d locals)\n", name, proto.NumParams, proto.NumLocals)

	var nested []*FuncProto
	pc := 0
	for pc < len(proto.Code) {
		ins, n := Decode(proto.Code, pc)
		fmt.Fprintf(w, "  %4d\t%s\t%s\n", pc, ins.Op, operandRepr(proto, ins))
		if ins.Op == LOADK {
			if fp, ok := proto.Consts[ins.Arg].(*FuncProto); ok {
				nested = append(nested, fp)
			}
		}
		pc += n
	}
	fmt.Fprintln(w)

	for _, fp := range nested {
		if err := disasm(w, fp); err != nil {
			return err
		}
	}
	return nil
}

func operandRepr(proto *FuncProto, ins Instr) string {
	switch ins.Op {
	case LOADK:
		if int(ins.Arg) < len(proto.Consts) {
			return fmt.Sprintf("; %#v", proto.Consts[ins.Arg])
		}
	case LOADLOCAL, STORELOCAL:
		if int(ins.Arg) < len(proto.Locals) {
			return fmt.Sprintf("; %s", proto.Locals[ins.Arg])
		}
	case LOADG:
		return fmt.Sprintf("; enclosing slot %d", ins.Arg)
	case UNOP:
		return fmt.Sprintf("; %s", unOpName(UnOp(ins.Arg)))
	case BINOP:
		return fmt.Sprintf("; binop %d", ins.Arg)
	case JUMP, POPJUMP, JUMPZ, ITERJUMP:
		return fmt.Sprintf("-> %d", ins.Arg)
	}
	if !jumpOpcode(ins.Op) && ins.Arg == 0 {
		return ""
	}
	return fmt.Sprintf("%d", ins.Arg)
}

func unOpName(op UnOp) string {
	switch op {
	case OpNeg:
		return "neg"
	case OpLgNot:
		return "not"
	case OpBwNot:
		return "bwnot"
	}
	return "?"
}
