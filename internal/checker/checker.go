// Package checker validates scoping and typing rules over a parsed program.
//
// The walk is pre-order and left to right. Every violation is reported and
// the walk continues; an expression whose type cannot be determined gets
// types.Invalid, which every later rule accepts silently.
package checker

import (
	"errors"

	"github.com/glebzikunov/MTRAN/internal/ast"
	"github.com/glebzikunov/MTRAN/internal/diag"
	"github.com/glebzikunov/MTRAN/internal/symtab"
	"github.com/glebzikunov/MTRAN/internal/types"
)

type Checker struct {
	bag   *diag.Bag
	syms  *symtab.Table
	fn    *ast.Variable // signature of the function being checked
	loops int
}

func New() *Checker { return &Checker{} }

// Check validates prog with a fresh checker and returns its diagnostics.
func Check(prog *ast.Program) []diag.Diagnostic { return New().Check(prog) }

func (c *Checker) Check(prog *ast.Program) []diag.Diagnostic {
	bag := diag.NewBag(0)
	c.Run(prog, bag)
	return bag.Items()
}

// Run validates prog and reports into bag. The checker can be reused;
// each run starts from an empty global scope.
func (c *Checker) Run(prog *ast.Program, bag *diag.Bag) {
	c.bag = bag
	c.syms = symtab.New()
	c.fn = nil
	c.loops = 0
	if prog == nil {
		return
	}
	for _, item := range ast.Functions(prog.Functions) {
		switch item := item.(type) {
		case *ast.Function:
			c.function(item)
		case ast.Stmt:
			c.stmt(item)
		}
	}
}

func (c *Checker) errorf(line int, code, format string, args ...any) {
	c.bag.Errorf(diag.Semantic, code, line, format, args...)
}

func (c *Checker) declare(name string, t types.Type, kind symtab.Kind, line int) {
	err := c.syms.Put(&symtab.Symbol{Name: name, Type: t, Kind: kind, Line: line})
	var dup *symtab.DuplicateError
	if errors.As(err, &dup) {
		c.errorf(line, diag.ErrRedeclaredSymbol, "'%s' redeclared in this scope (previous declaration at line %d)", name, dup.Previous.Line)
	}
}

// lookup resolves name, reporting it when undeclared.
func (c *Checker) lookup(name string, line int) (*symtab.Symbol, bool) {
	sym, ok := c.syms.Get(name)
	if !ok {
		c.errorf(line, diag.ErrUndefinedSymbol, "undeclared identifier '%s'", name)
	}
	return sym, ok
}

func (c *Checker) function(fn *ast.Function) {
	sig := fn.Signature
	params := ast.Variables(fn.Params)
	ptypes := make([]types.Type, len(params))
	for i, p := range params {
		ptypes[i] = types.FromBasic(p.Type)
	}
	c.declare(sig.Name, types.FuncOf(types.FromBasic(sig.Type), ptypes...), symtab.Func, sig.Line)

	// Parameters and the outermost body block share one scope.
	c.syms.Push(sig.Name)
	defer c.syms.Pop()
	c.fn = sig
	defer func() { c.fn = nil }()

	for _, p := range params {
		t := types.FromBasic(p.Type)
		if t.K == types.Void {
			c.errorf(p.Line, diag.ErrVoidVariable, "parameter '%s' declared void", p.Name)
			t = types.InvalidT()
		}
		c.declare(p.Name, t, symtab.Param, p.Line)
	}

	if block, ok := fn.Body.(*ast.Block); ok {
		c.stmts(block.Body)
		return
	}
	c.stmt(fn.Body)
}

func (c *Checker) stmts(s ast.Stmt) {
	for _, s := range ast.Instructions(s) {
		c.stmt(s)
	}
}

// scoped checks s in a new scope named name.
func (c *Checker) scoped(name string, s ast.Stmt) {
	c.syms.Push(name)
	c.stmt(s)
	c.syms.Pop()
}

func (c *Checker) loopBody(name string, s ast.Stmt) {
	c.loops++
	c.scoped(name, s)
	c.loops--
}

func (c *Checker) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case nil:
		return
	case *ast.InstructionSeq:
		c.stmts(s)

	case *ast.Variable:
		c.declare(s.Name, c.varType(s), symtab.Variable, s.Line)
	case *ast.TabDeclaration:
		c.intExpr(s.Size, "array size")
		c.declare(s.Name, types.ArrayOf(types.FromBasic(s.Elem)), symtab.Array, s.Line)
	case *ast.AssignCreate:
		vt := c.expr(s.Value)
		dt := c.varType(s.Decl)
		c.assignable(vt, dt, s.Value, s.Decl.Name, s.Line)
		c.declare(s.Decl.Name, dt, symtab.Variable, s.Decl.Line)
	case *ast.AssignCreateUnaryMinus:
		vt := c.negate(c.expr(s.Value), s.Line)
		dt := c.varType(s.Decl)
		c.assignable(vt, dt, s.Value, s.Decl.Name, s.Line)
		c.declare(s.Decl.Name, dt, symtab.Variable, s.Decl.Line)

	case *ast.Assign:
		tt := c.target(s.Target)
		vt := c.expr(s.Value)
		c.update(s.Op, tt, vt, s.Value, s.Target.Name, s.Line)
	case *ast.AssignUnaryMinus:
		tt := c.target(s.Target)
		vt := c.negate(c.expr(s.Value), s.Line)
		c.assignable(vt, tt, s.Value, s.Target.Name, s.Line)
	case *ast.AssignIncDec:
		tt := c.target(s.Target)
		c.incDec(s.Op, tt, s.Target.Name, s.Line)
	case *ast.AssignTab:
		et := c.element(s.Target, s.Index)
		vt := c.expr(s.Value)
		c.update(s.Op, et, vt, s.Value, s.Target.Name+"[]", s.Line)
	case *ast.AssignTabIncDec:
		et := c.element(s.Target, s.Index)
		c.incDec(s.Op, et, s.Target.Name+"[]", s.Line)

	case *ast.If:
		c.cond(s.Cond, "if")
		c.scoped("if", s.Then)
	case *ast.IfElse:
		c.cond(s.Cond, "if")
		c.scoped("if", s.Then)
		c.scoped("else", s.Else)
	case *ast.While:
		c.cond(s.Cond, "while")
		c.loopBody("while", s.Body)
	case *ast.For:
		c.syms.Push("for")
		c.stmt(s.Init)
		c.cond(s.Cond, "for")
		c.stmt(s.Step)
		c.loopBody("for body", s.Body)
		c.syms.Pop()

	case *ast.Break:
		if c.loops == 0 {
			c.errorf(s.Line, diag.ErrInvalidJump, "break is not in a loop")
		}
	case *ast.Continue:
		if c.loops == 0 {
			c.errorf(s.Line, diag.ErrInvalidJump, "continue is not in a loop")
		}
	case *ast.Return:
		c.ret(s)
	case *ast.Print:
		c.print(s)
	case *ast.Block:
		c.syms.Push("block")
		c.stmts(s.Body)
		c.syms.Pop()
	case *ast.ExprStmt:
		c.expr(s.X)
	}
}

// varType is the declared type of a variable, with void rejected.
func (c *Checker) varType(v *ast.Variable) types.Type {
	t := types.FromBasic(v.Type)
	if t.K == types.Void {
		c.errorf(v.Line, diag.ErrVoidVariable, "variable '%s' declared void", v.Name)
		return types.InvalidT()
	}
	return t
}

// target resolves the scalar variable on the left of an assignment.
func (c *Checker) target(ref *ast.Ref) types.Type {
	sym, ok := c.lookup(ref.Name, ref.Line)
	if !ok {
		return types.InvalidT()
	}
	switch sym.Kind {
	case symtab.Func:
		c.errorf(ref.Line, diag.ErrInvalidOperation, "cannot assign to function '%s'", ref.Name)
		return types.InvalidT()
	case symtab.Array:
		c.errorf(ref.Line, diag.ErrArrayValue, "cannot assign to array '%s' as a whole", ref.Name)
		return types.InvalidT()
	}
	return sym.Type
}

// element resolves name[index] as an assignment target.
func (c *Checker) element(ref *ast.Ref, index ast.Expr) types.Type {
	return c.indexed(ref.Name, index, ref.Line)
}

func (c *Checker) ret(s *ast.Return) {
	if c.fn == nil {
		c.errorf(s.Line, diag.ErrInvalidReturn, "return outside a function")
		c.expr(s.Value)
		return
	}
	want := types.FromBasic(c.fn.Type)
	if s.Value == nil {
		if want.K != types.Void {
			c.errorf(s.Line, diag.ErrInvalidReturn, "missing return value in function '%s' returning %s", c.fn.Name, want)
		}
		return
	}
	got := c.expr(s.Value)
	switch {
	case want.K == types.Void:
		c.errorf(s.Line, diag.ErrInvalidReturn, "function '%s' returns void but a value is returned", c.fn.Name)
	case got.IsArray():
		c.errorf(s.Line, diag.ErrArrayValue, "cannot return an array from function '%s'", c.fn.Name)
	case !got.AssignableTo(want):
		c.errorf(s.Line, diag.ErrTypeMismatch, "cannot return %s from function '%s' returning %s", got, c.fn.Name, want)
	}
}

// assignable reports a mismatch between a value and its destination.
func (c *Checker) assignable(vt, dt types.Type, value ast.Expr, name string, line int) {
	if vt.IsArray() {
		c.errorf(line, diag.ErrArrayValue, "cannot use array %s as a value", describe(value))
		return
	}
	if !vt.AssignableTo(dt) {
		c.errorf(line, diag.ErrTypeMismatch, "cannot assign %s to '%s' of type %s", vt, name, dt)
	}
}

// update checks = and the compound assignments.
func (c *Checker) update(op ast.AssignOp, tt, vt types.Type, value ast.Expr, name string, line int) {
	bin, compound := op.Arith()
	if !compound {
		c.assignable(vt, tt, value, name, line)
		return
	}
	if vt.IsArray() {
		c.errorf(line, diag.ErrArrayValue, "cannot use array %s as a value", describe(value))
		return
	}
	rt, ok := types.Arithmetic(bin, tt, vt)
	if !ok {
		c.errorf(line, diag.ErrInvalidOperation, "operator %s not defined on %s and %s", op, tt, vt)
		return
	}
	if !rt.AssignableTo(tt) {
		c.errorf(line, diag.ErrTypeMismatch, "cannot assign %s to '%s' of type %s", rt, name, tt)
	}
}

func (c *Checker) incDec(op ast.IncDecOp, t types.Type, name string, line int) {
	if !t.IsInvalid() && !t.IsNumeric() {
		c.errorf(line, diag.ErrInvalidOperation, "operator %s not defined on '%s' of type %s", op, name, t)
	}
}

func (c *Checker) negate(t types.Type, line int) types.Type {
	if t.IsInvalid() || t.IsNumeric() {
		return t
	}
	c.errorf(line, diag.ErrInvalidOperation, "unary minus not defined on %s", t)
	return types.InvalidT()
}

func (c *Checker) cond(x ast.Expr, what string) {
	t := c.expr(x)
	if !t.IsInvalid() && t.K != types.Bool {
		c.errorf(x.Pos(), diag.ErrInvalidCondition, "%s condition must be bool, got %s", what, t)
	}
}
