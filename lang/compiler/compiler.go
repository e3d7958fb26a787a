package compiler

import (
	"fmt"

	"github.com/mna/luci/lang/ast"
	"github.com/mna/luci/lang/symtab"
	"github.com/mna/luci/lang/token"
)

// Error is a compile-time error (e.g. break/continue outside of a loop),
// annotated with the offending position.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("compile error at %d: %s", e.Pos, e.Msg) }

// NilConst is the sentinel stored in a FuncProto's constant table to
// represent the nil literal; package machine's LOADK handling recognizes it
// and pushes its own nil value, keeping this package free of a dependency
// on package value.
type NilConst struct{}

// loopCtx tracks the backpatch state of one enclosing loop.
type loopCtx struct {
	continueTarget int
	breakPatches   []int
}

// fcomp holds the compilation state of a single function (component C6's
// translation unit): its own symbol table, constant pool and code buffer.
// Nested function literals get their own fcomp, chained via parent: an
// identifier that misses fc's own symbol table falls back to a single
// lookup in parent's table (parent's locals double as this scope's
// globals, per the LOADG opcode), and only fails to compile if that also
// misses.
type fcomp struct {
	parent *fcomp
	file   *token.File
	name   string

	syms   *symtab.Table
	consts *symtab.Constants
	code   []uint32
	loops  []loopCtx
}

// pcomp drives compilation of a whole source file.
type pcomp struct {
	file *token.File
}

// Compile translates block (the top-level statements of file) into a
// Program. Like the parser, compile errors are reported by panicking with
// *Error and recovering at this entry point.
// globals names every identifier the top-level function's symbol table is
// pre-seeded with (the standard library builtins), so that a reference to
// one resolves the same way whether or not the program itself ever assigns
// to that name: as a local slot at the top level, and via a single LOADG
// hop for anything nested one function deep.
func Compile(file *token.File, filename string, block *ast.Statements, globals []string) (prog *Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*Error); ok {
				err = ce
				return
			}
			panic(r)
		}
	}()

	pc := &pcomp{file: file}
	main := pc.compileFunc(nil, "", nil, block, globals)
	return &Program{Filename: filename, Main: main}, nil
}

func (pc *pcomp) compileFunc(parent *fcomp, name string, params []string, body *ast.Statements, preBind []string) *FuncProto {
	fc := &fcomp{parent: parent, file: pc.file, name: name, syms: symtab.New(), consts: symtab.NewConstants()}
	for _, p := range params {
		fc.syms.Bind(p)
	}
	for _, g := range preBind {
		fc.syms.Bind(g)
	}
	fc.compileStatements(body)
	// implicit "return nil" if control falls off the end of the function.
	fc.emit(LOADK, fc.consts.Add(NilConst{}))
	fc.emit(RETURN, 0)

	return &FuncProto{
		Name:      name,
		Params:    params,
		NumParams: len(params),
		NumLocals: fc.syms.Len(),
		Locals:    fc.syms.Names(),
		Code:      fc.code,
		Consts:    fc.consts.Values(),
		Pos:       body.Pos(),
	}
}

// --- instruction emission helpers ---

// emit appends ins and returns the word index of its first word, usable as
// a jump target or later backpatch site.
func (fc *fcomp) emit(op Opcode, arg uint32) int {
	start := len(fc.code)
	fc.code = append(fc.code, Encode(Instr{Op: op, Arg: arg})...)
	return start
}

// patch rewrites the jump instruction starting at word index start to
// target the (already-known) absolute word index target.
func (fc *fcomp) patch(start int, target uint32) {
	op := Opcode(fc.code[start] >> 24)
	words := Encode(Instr{Op: op, Arg: target})
	fc.code[start] = words[0]
	fc.code[start+1] = words[1]
}

func (fc *fcomp) here() uint32 { return uint32(len(fc.code)) }

func (fc *fcomp) fail(pos token.Pos, format string, args ...interface{}) {
	panic(&Error{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// --- statement compilation ---

// compileStatements implements the three-pass contract for a block:
// function-statement names are pre-bound first (so forward references and
// recursion resolve correctly), then every non-function statement compiles
// in source order, and finally every function statement's closure is built
// and stored into its pre-bound slot. This means a function statement
// always becomes callable only after the rest of its block has run, by
// design: it keeps slot allocation and store emission entirely mechanical,
// with no separate hoisting analysis pass.
func (fc *fcomp) compileStatements(b *ast.Statements) {
	var funcStmts []*ast.FuncDef
	for _, s := range b.List {
		if fd, ok := s.(*ast.FuncDef); ok {
			if fd.Name != "" {
				fc.syms.Bind(fd.Name)
			}
			funcStmts = append(funcStmts, fd)
			continue
		}
	}
	for _, s := range b.List {
		if _, ok := s.(*ast.FuncDef); ok {
			continue
		}
		fc.compileStmt(s)
	}
	for _, fd := range funcStmts {
		fc.compileFuncDefStmt(fd)
	}
}

func (fc *fcomp) compileFuncDefStmt(fd *ast.FuncDef) {
	proto := compileNested(fc, fd)
	fc.emit(LOADK, fc.consts.Add(proto))
	if fd.Name != "" {
		ix, _ := fc.syms.Lookup(fd.Name)
		fc.emit(STORELOCAL, uint32(ix))
	} else {
		fc.emit(POP, 0) // anonymous func statement: constructed, then discarded
	}
}

func compileNested(parent *fcomp, fd *ast.FuncDef) *FuncProto {
	pc := &pcomp{file: parent.file}
	return pc.compileFunc(parent, fd.Name, fd.Params, fd.Body, nil)
}

func (fc *fcomp) compileStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.Statements:
		fc.compileStatements(st)
	case *ast.ExprStmt:
		fc.compileExpr(st.X)
		fc.emit(POP, 0)
	case *ast.Assign:
		fc.compileAssign(st)
		fc.emit(POP, 0)
	case *ast.ContainerPut:
		fc.compileContainerPut(st)
		fc.emit(POP, 0)
	case *ast.While:
		fc.compileWhile(st)
	case *ast.For:
		fc.compileFor(st)
	case *ast.IfElse:
		fc.compileIf(st)
	case *ast.Break:
		if len(fc.loops) == 0 {
			fc.fail(st.Pos(), "break outside of a loop")
		}
		ix := fc.emit(JUMP, 0)
		top := len(fc.loops) - 1
		fc.loops[top].breakPatches = append(fc.loops[top].breakPatches, ix)
	case *ast.Continue:
		if len(fc.loops) == 0 {
			fc.fail(st.Pos(), "continue outside of a loop")
		}
		target := fc.loops[len(fc.loops)-1].continueTarget
		fc.emit(JUMP, uint32(target))
	case *ast.Return:
		if st.Value != nil {
			fc.compileExpr(st.Value)
		} else {
			fc.emit(LOADK, fc.consts.Add(NilConst{}))
		}
		fc.emit(RETURN, 0)
	case *ast.Pass:
		// no-op
	case *ast.FuncDef:
		// compileStatements skips every function statement, named or
		// anonymous, in its second pass and compiles it in its third, so this
		// case is only reached when compileStmt is given a FuncDef directly.
		fc.compileFuncDefStmt(st)
	default:
		panic(fmt.Sprintf("compiler: unexpected statement %T", s))
	}
}

func (fc *fcomp) compileWhile(st *ast.While) {
	loopStart := fc.here()
	fc.compileExpr(st.Cond)
	jz := fc.emit(JUMPZ, 0)

	fc.loops = append(fc.loops, loopCtx{continueTarget: int(loopStart)})
	fc.compileStatements(st.Body)
	fc.emit(JUMP, uint32(loopStart))

	end := fc.here()
	fc.patch(jz, end)
	fc.patchBreaks(end)
}

func (fc *fcomp) compileFor(st *ast.For) {
	fc.compileExpr(st.Container)
	fc.emit(MKITER, 0)

	loopStart := fc.here()
	ij := fc.emit(ITERJUMP, 0)
	ix := fc.syms.Bind(st.IterName)
	fc.emit(STORELOCAL, uint32(ix))

	fc.loops = append(fc.loops, loopCtx{continueTarget: int(loopStart)})
	fc.compileStatements(st.Body)
	fc.emit(JUMP, uint32(loopStart))

	end := fc.here()
	fc.patch(ij, end)
	fc.patchBreaks(end)
}

func (fc *fcomp) patchBreaks(target uint32) {
	top := fc.loops[len(fc.loops)-1]
	for _, ix := range top.breakPatches {
		fc.patch(ix, target)
	}
	fc.loops = fc.loops[:len(fc.loops)-1]
}

func (fc *fcomp) compileIf(st *ast.IfElse) {
	fc.compileExpr(st.Cond)
	jz := fc.emit(JUMPZ, 0)
	fc.compileStatements(st.Then)

	if st.Else != nil {
		jmp := fc.emit(JUMP, 0)
		fc.patch(jz, fc.here())
		fc.compileStatements(st.Else)
		fc.patch(jmp, fc.here())
	} else {
		fc.patch(jz, fc.here())
	}
}

// --- expression compilation ---

func (fc *fcomp) compileExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Int:
		fc.emit(LOADK, fc.consts.Add(n.Value))
	case *ast.Float:
		fc.emit(LOADK, fc.consts.Add(n.Value))
	case *ast.String:
		fc.emit(LOADK, fc.consts.Add(n.Value))
	case *ast.NilLit:
		fc.emit(LOADK, fc.consts.Add(NilConst{}))
	case *ast.Id:
		fc.compileId(n)
	case *ast.ListDef:
		for _, it := range n.Items {
			fc.compileExpr(it)
		}
		fc.emit(MKLIST, uint32(len(n.Items)))
	case *ast.MapDef:
		for _, me := range n.Entries {
			fc.compileExpr(me.Key)
			fc.compileExpr(me.Value)
		}
		fc.emit(MKMAP, uint32(len(n.Entries)))
	case *ast.Unary:
		fc.compileExpr(n.X)
		fc.emit(UNOP, uint32(astUnOpToCompiler(n.Op)))
	case *ast.Binary:
		fc.compileBinary(n)
	case *ast.ContainerGet:
		fc.compileExpr(n.Container)
		fc.compileExpr(n.Index)
		fc.emit(CGET, 0)
	case *ast.Call:
		fc.compileExpr(n.Callee)
		for _, a := range n.Args {
			fc.compileExpr(a)
		}
		fc.emit(CALL, uint32(len(n.Args)))
	case *ast.Assign:
		fc.compileAssign(n)
	case *ast.ContainerPut:
		fc.compileContainerPut(n)
	case *ast.FuncDef:
		proto := compileNested(fc, n)
		fc.emit(LOADK, fc.consts.Add(proto))
	default:
		panic(fmt.Sprintf("compiler: unexpected expression %T", e))
	}
}

// compileId resolves an identifier read: first the function's own symbol
// table, then (one hop only) the enclosing function's, which the machine
// exposes to this frame as Function.Globals at call time. Neither finding
// it is a compile error, not a silent fresh binding: Luci has no implicit
// global creation on read, only on assignment.
func (fc *fcomp) compileId(n *ast.Id) {
	if ix, ok := fc.syms.Lookup(n.Name); ok {
		fc.emit(LOADLOCAL, uint32(ix))
		return
	}
	if fc.parent != nil {
		if ix, ok := fc.parent.syms.Lookup(n.Name); ok {
			fc.emit(LOADG, uint32(ix))
			return
		}
	}
	fc.fail(n.Pos(), "undefined identifier %q", n.Name)
}

func astUnOpToCompiler(op ast.UnOp) UnOp {
	switch op {
	case ast.OpNeg:
		return OpNeg
	case ast.OpLgNot:
		return OpLgNot
	case ast.OpBwNot:
		return OpBwNot
	}
	panic("unreachable")
}

// compileBinary emits the int(ast.BinOp) value directly as BINOP's
// immediate; package machine decodes it back with the same enum, since
// ast.BinOp's ordering is part of the wire contract between the two
// packages.
func (fc *fcomp) compileBinary(n *ast.Binary) {
	switch n.Op {
	case ast.OpLgAnd:
		fc.compileExpr(n.Lhs)
		fc.emit(DUP, 0)
		jz := fc.emit(JUMPZ, 0)
		fc.emit(POP, 0)
		fc.compileExpr(n.Rhs)
		fc.patch(jz, fc.here())
	case ast.OpLgOr:
		fc.compileExpr(n.Lhs)
		fc.emit(DUP, 0)
		jz := fc.emit(JUMPZ, 0)
		jmp := fc.emit(JUMP, 0)
		fc.patch(jz, fc.here())
		fc.emit(POP, 0)
		fc.compileExpr(n.Rhs)
		fc.patch(jmp, fc.here())
	default:
		fc.compileExpr(n.Lhs)
		fc.compileExpr(n.Rhs)
		fc.emit(BINOP, uint32(n.Op))
	}
}

// compileAssign binds the target name before compiling the value
// expression, not after: a self-referential closure ("f = func(n) ...
// f(n-1) ... end") must find f's slot already reserved in the parent
// symbol table by the time its own body is compiled, or its recursive
// call would resolve to nothing.
func (fc *fcomp) compileAssign(n *ast.Assign) {
	ix := fc.syms.Bind(n.Name)
	fc.compileExpr(n.Value)
	fc.emit(DUP, 0)
	fc.emit(STORELOCAL, uint32(ix))
}

func (fc *fcomp) compileContainerPut(n *ast.ContainerPut) {
	fc.compileExpr(n.Value)
	fc.emit(DUP, 0)
	fc.compileExpr(n.Container)
	fc.compileExpr(n.Index)
	fc.emit(CPUT, 0)
}
