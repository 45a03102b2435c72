package ast

// Node is implemented by every AST node. Pos reports the source line the
// node starts on, or 0 when it has none.
type Node interface{ Pos() int }

type Stmt interface {
	Node
	isStmt()
}

type Expr interface {
	Node
	isExpr()
}

type Program struct {
	// Functions is a *Function, a top-level assignment statement, or a
	// *FunctionSeq chaining several of them. Flatten with Functions.
	Functions Node
}

func (p *Program) Pos() int { return p.Functions.Pos() }

type Function struct {
	Signature *Variable
	Params    Node // nil, *Variable or *VariableSeq
	Body      Stmt
}

func (f *Function) Pos() int { return f.Signature.Line }

// Declarations

// Variable is a "TYPE name" pair. It appears as a declaration statement, as
// a function signature and as a parameter.
type Variable struct {
	Type BasicType
	Name string
	Line int
}

type TabDeclaration struct {
	Elem BasicType
	Name string
	Size Expr
	Line int
}

// Statements

type AssignCreate struct {
	Decl  *Variable
	Value Expr
	Line  int
}

// AssignCreateUnaryMinus is "TYPE name = - expr;".
type AssignCreateUnaryMinus struct {
	Decl  *Variable
	Value Expr
	Line  int
}

type Assign struct {
	Target *Ref
	Op     AssignOp
	Value  Expr
	Line   int
}

// AssignUnaryMinus is "name = - expr".
type AssignUnaryMinus struct {
	Target *Ref
	Value  Expr
	Line   int
}

type AssignIncDec struct {
	Target *Ref
	Op     IncDecOp
	Line   int
}

type AssignTab struct {
	Target *Ref
	Index  Expr
	Op     AssignOp
	Value  Expr
	Line   int
}

type AssignTabIncDec struct {
	Target *Ref
	Index  Expr
	Op     IncDecOp
	Line   int
}

type If struct {
	Cond Expr
	Then Stmt
	Line int
}

type IfElse struct {
	Cond Expr
	Then Stmt
	Else Stmt
	Line int
}

type While struct {
	Cond Expr
	Body Stmt
	Line int
}

type For struct {
	Init Stmt
	Cond Expr
	Step Stmt
	Body Stmt
	Line int
}

type Break struct{ Line int }

type Continue struct{ Line int }

type Return struct {
	Value Expr // may be nil
	Line  int
}

type Print struct {
	Format *StringLit
	Args   Node // nil, *Ref, *IndexRef, *IdSeq or *IdSeqIndexed
	Line   int
}

type Block struct {
	Body Stmt // a single statement or an *InstructionSeq
	Line int
}

// ExprStmt is an expression used as an instruction.
type ExprStmt struct{ X Expr }

func (*Variable) isStmt()               {}
func (*TabDeclaration) isStmt()         {}
func (*AssignCreate) isStmt()           {}
func (*AssignCreateUnaryMinus) isStmt() {}
func (*Assign) isStmt()                 {}
func (*AssignUnaryMinus) isStmt()       {}
func (*AssignIncDec) isStmt()           {}
func (*AssignTab) isStmt()              {}
func (*AssignTabIncDec) isStmt()        {}
func (*If) isStmt()                     {}
func (*IfElse) isStmt()                 {}
func (*While) isStmt()                  {}
func (*For) isStmt()                    {}
func (*Break) isStmt()                  {}
func (*Continue) isStmt()               {}
func (*Return) isStmt()                 {}
func (*Print) isStmt()                  {}
func (*Block) isStmt()                  {}
func (*ExprStmt) isStmt()               {}
func (*InstructionSeq) isStmt()         {}

func (n *Variable) Pos() int               { return n.Line }
func (n *TabDeclaration) Pos() int         { return n.Line }
func (n *AssignCreate) Pos() int           { return n.Line }
func (n *AssignCreateUnaryMinus) Pos() int { return n.Line }
func (n *Assign) Pos() int                 { return n.Line }
func (n *AssignUnaryMinus) Pos() int       { return n.Line }
func (n *AssignIncDec) Pos() int           { return n.Line }
func (n *AssignTab) Pos() int              { return n.Line }
func (n *AssignTabIncDec) Pos() int        { return n.Line }
func (n *If) Pos() int                     { return n.Line }
func (n *IfElse) Pos() int                 { return n.Line }
func (n *While) Pos() int                  { return n.Line }
func (n *For) Pos() int                    { return n.Line }
func (n *Break) Pos() int                  { return n.Line }
func (n *Continue) Pos() int               { return n.Line }
func (n *Return) Pos() int                 { return n.Line }
func (n *Print) Pos() int                  { return n.Line }
func (n *Block) Pos() int                  { return n.Line }
func (n *ExprStmt) Pos() int               { return n.X.Pos() }

// Expressions

type BinaryOp struct {
	Op          BinOp
	Left, Right Expr
	Line        int
}

// Comparison has the same shape as BinaryOp but always yields bool.
type Comparison struct {
	Op          CmpOp
	Left, Right Expr
	Line        int
}

type IntLit struct {
	Value int64
	Line  int
}

type FloatLit struct {
	Value float64
	Line  int
}

// CharLit and StringLit keep their source text, quotes included.
type CharLit struct {
	Value string
	Line  int
}

type StringLit struct {
	Value string
	Line  int
}

type BoolLit struct {
	Value bool
	Line  int
}

type Ref struct {
	Name string
	Line int
}

type IndexRef struct {
	Name  string
	Index Expr
	Line  int
}

func (*BinaryOp) isExpr()   {}
func (*Comparison) isExpr() {}
func (*IntLit) isExpr()     {}
func (*FloatLit) isExpr()   {}
func (*CharLit) isExpr()    {}
func (*StringLit) isExpr()  {}
func (*BoolLit) isExpr()    {}
func (*Ref) isExpr()        {}
func (*IndexRef) isExpr()   {}

func (n *BinaryOp) Pos() int   { return n.Line }
func (n *Comparison) Pos() int { return n.Line }
func (n *IntLit) Pos() int     { return n.Line }
func (n *FloatLit) Pos() int   { return n.Line }
func (n *CharLit) Pos() int    { return n.Line }
func (n *StringLit) Pos() int  { return n.Line }
func (n *BoolLit) Pos() int    { return n.Line }
func (n *Ref) Pos() int        { return n.Line }
func (n *IndexRef) Pos() int   { return n.Line }

type BasicType int

const (
	BTInt BasicType = iota
	BTFloat
	BTBool
	BTChar
	BTString
	BTVoid
)

func (t BasicType) String() string {
	switch t {
	case BTInt:
		return "int"
	case BTFloat:
		return "float"
	case BTBool:
		return "bool"
	case BTChar:
		return "char"
	case BTString:
		return "string"
	case BTVoid:
		return "void"
	default:
		return "?"
	}
}

type AssignOp int

const (
	OpSet AssignOp = iota
	OpAddSet
	OpSubSet
	OpMulSet
	OpDivSet
)

func (op AssignOp) String() string {
	switch op {
	case OpSet:
		return "="
	case OpAddSet:
		return "+="
	case OpSubSet:
		return "-="
	case OpMulSet:
		return "*="
	case OpDivSet:
		return "/="
	default:
		return "?"
	}
}

// Arith returns the arithmetic operator a compound assignment applies.
// ok is false for plain "=".
func (op AssignOp) Arith() (BinOp, bool) {
	switch op {
	case OpAddSet:
		return OpAdd, true
	case OpSubSet:
		return OpSub, true
	case OpMulSet:
		return OpMul, true
	case OpDivSet:
		return OpDiv, true
	default:
		return 0, false
	}
}

type IncDecOp int

const (
	OpInc IncDecOp = iota
	OpDec
)

func (op IncDecOp) String() string {
	if op == OpDec {
		return "--"
	}
	return "++"
}

type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	default:
		return "?"
	}
}

type CmpOp int

const (
	OpLt CmpOp = iota
	OpGt
	OpLe
	OpGe
	OpNe
	OpEq
)

func (op CmpOp) String() string {
	switch op {
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpNe:
		return "!="
	case OpEq:
		return "=="
	default:
		return "?"
	}
}
