package checker

import (
	"github.com/glebzikunov/MTRAN/internal/ast"
	"github.com/glebzikunov/MTRAN/internal/diag"
	"github.com/glebzikunov/MTRAN/internal/symtab"
	"github.com/glebzikunov/MTRAN/internal/types"
)

// expr returns the type of x, reporting what is wrong inside it.
func (c *Checker) expr(x ast.Expr) types.Type {
	switch x := x.(type) {
	case nil:
		return types.InvalidT()
	case *ast.IntLit:
		return types.IntT()
	case *ast.FloatLit:
		return types.FloatT()
	case *ast.CharLit:
		return types.CharT()
	case *ast.StringLit:
		return types.StringT()
	case *ast.BoolLit:
		return types.BoolT()

	case *ast.Ref:
		sym, ok := c.lookup(x.Name, x.Line)
		if !ok {
			return types.InvalidT()
		}
		if sym.Kind == symtab.Func {
			c.errorf(x.Line, diag.ErrInvalidOperation, "function '%s' used as a value", x.Name)
			return types.InvalidT()
		}
		return sym.Type
	case *ast.IndexRef:
		return c.indexed(x.Name, x.Index, x.Line)

	case *ast.BinaryOp:
		l := c.expr(x.Left)
		r := c.expr(x.Right)
		t, ok := types.Arithmetic(x.Op, l, r)
		if !ok {
			if x.Op == ast.OpMod {
				c.errorf(x.Line, diag.ErrInvalidOperation, "operator %% needs int operands, got %s and %s", l, r)
			} else {
				c.errorf(x.Line, diag.ErrInvalidOperation, "operator %s not defined on %s and %s", x.Op, l, r)
			}
		}
		return t
	case *ast.Comparison:
		l := c.expr(x.Left)
		r := c.expr(x.Right)
		if !types.Comparable(l, r) {
			c.errorf(x.Line, diag.ErrInvalidOperation, "cannot compare %s and %s with %s", l, r, x.Op)
			return types.InvalidT()
		}
		return types.BoolT()
	default:
		return types.InvalidT()
	}
}

// indexed checks name[index] and returns the element type.
func (c *Checker) indexed(name string, index ast.Expr, line int) types.Type {
	sym, ok := c.lookup(name, line)
	c.intExpr(index, "array index")
	if !ok {
		return types.InvalidT()
	}
	if !sym.Type.IsArray() {
		if !sym.Type.IsInvalid() {
			c.errorf(line, diag.ErrNotIndexable, "cannot index '%s' of type %s", name, sym.Type)
		}
		return types.InvalidT()
	}
	return *sym.Type.Elem
}

// intExpr checks that x, used as what, has type int.
func (c *Checker) intExpr(x ast.Expr, what string) {
	t := c.expr(x)
	if !t.IsInvalid() && t.K != types.Int {
		c.errorf(x.Pos(), diag.ErrInvalidIndex, "%s must be int, got %s", what, t)
	}
}

// describe names an expression in a message.
func describe(x ast.Expr) string {
	switch x := x.(type) {
	case *ast.Ref:
		return "'" + x.Name + "'"
	case *ast.IndexRef:
		return "'" + x.Name + "[]'"
	default:
		return "expression"
	}
}
