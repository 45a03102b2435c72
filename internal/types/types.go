package types

import (
	"strings"

	"github.com/glebzikunov/MTRAN/internal/ast"
)

// Kind is the category of a type.
type Kind int

const (
	// Invalid marks an expression whose type could not be determined.
	// It is compatible with everything so one error does not cascade.
	Invalid Kind = iota
	Void
	Int
	Float
	Bool
	Char
	String
	Array
	Func
)

// Type is a minimal description of a value's type.
type Type struct {
	K      Kind
	Elem   *Type  // element type for Array, result type for Func
	Params []Type // parameter types for Func
}

func InvalidT() Type { return Type{K: Invalid} }
func VoidT() Type    { return Type{K: Void} }
func IntT() Type     { return Type{K: Int} }
func FloatT() Type   { return Type{K: Float} }
func BoolT() Type    { return Type{K: Bool} }
func CharT() Type    { return Type{K: Char} }
func StringT() Type  { return Type{K: String} }

func ArrayOf(elem Type) Type { return Type{K: Array, Elem: &elem} }

func FuncOf(result Type, params ...Type) Type {
	return Type{K: Func, Elem: &result, Params: params}
}

// FromBasic converts a type keyword from the AST.
func FromBasic(bt ast.BasicType) Type {
	switch bt {
	case ast.BTInt:
		return IntT()
	case ast.BTFloat:
		return FloatT()
	case ast.BTBool:
		return BoolT()
	case ast.BTChar:
		return CharT()
	case ast.BTString:
		return StringT()
	case ast.BTVoid:
		return VoidT()
	default:
		return InvalidT()
	}
}

func (t Type) String() string {
	switch t.K {
	case Invalid:
		return "<invalid>"
	case Void:
		return "void"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Char:
		return "char"
	case String:
		return "string"
	case Array:
		return t.Elem.String() + "[]"
	case Func:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		return t.Elem.String() + "(" + strings.Join(params, ", ") + ")"
	default:
		return "?"
	}
}

func (t Type) Equal(u Type) bool {
	if t.K != u.K {
		return false
	}
	switch t.K {
	case Array:
		return t.Elem.Equal(*u.Elem)
	case Func:
		if !t.Elem.Equal(*u.Elem) || len(t.Params) != len(u.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(u.Params[i]) {
				return false
			}
		}
	}
	return true
}

func (t Type) IsInvalid() bool { return t.K == Invalid }
func (t Type) IsArray() bool   { return t.K == Array }

// IsNumeric returns true for int and float.
func (t Type) IsNumeric() bool { return t.K == Int || t.K == Float }

// IsScalar returns true for types a variable can hold.
func (t Type) IsScalar() bool {
	switch t.K {
	case Int, Float, Bool, Char, String:
		return true
	default:
		return false
	}
}

// AssignableTo reports whether a value of type t can be stored in dst.
// The only conversion is int to float.
func (t Type) AssignableTo(dst Type) bool {
	if t.IsInvalid() || dst.IsInvalid() {
		return true
	}
	if !t.IsScalar() || !dst.IsScalar() {
		return false
	}
	if t.K == Int && dst.K == Float {
		return true
	}
	return t.K == dst.K
}

// Arithmetic returns the result type of l op r. ok is false when the
// operands do not support op. An Invalid operand gives Invalid with ok=true.
func Arithmetic(op ast.BinOp, l, r Type) (Type, bool) {
	if l.IsInvalid() || r.IsInvalid() {
		return InvalidT(), true
	}
	if op == ast.OpMod {
		if l.K == Int && r.K == Int {
			return IntT(), true
		}
		return InvalidT(), false
	}
	if !l.IsNumeric() || !r.IsNumeric() {
		return InvalidT(), false
	}
	if l.K == Float || r.K == Float {
		return FloatT(), true
	}
	return IntT(), true
}

// Comparable reports whether l and r may be compared: both numeric, or the
// same scalar type.
func Comparable(l, r Type) bool {
	if l.IsInvalid() || r.IsInvalid() {
		return true
	}
	if l.IsNumeric() && r.IsNumeric() {
		return true
	}
	return l.IsScalar() && l.K == r.K
}
